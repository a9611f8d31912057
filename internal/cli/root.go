package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/cache"
	"github.com/icebreaker-games/icebreaker/internal/config"
	"github.com/icebreaker-games/icebreaker/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command. Run without a subcommand it opens the
// interactive game browser.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "icebreaker",
		Short:   "Browse and share icebreaker games",
		Long:    "icebreaker: browse, rate and add icebreaker games (bli-kjent leker) from the terminal",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		// main prints the error once.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowser(cmd, "")
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().String("config", "", "config file merged over ~/.icebreaker/config.yaml")
	cmd.PersistentFlags().String("api-url", "", "gamecard API root (overrides config and environment)")
	cmd.PersistentFlags().String("rating-url", "", "rating API root (overrides config and environment)")
	cmd.PersistentFlags().String("cache-ttl", "", "list cache TTL as seconds or a duration like 5m (0 disables)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the list cache")
	cmd.PersistentFlags().Bool("plain", false, "plain text output, no colours or interactive UI")

	cmd.AddCommand(newGameCmd(), newGamesCmd(), newCacheCmd(), newConfigCmd())
	return cmd
}

const rootCmdExample = `  # Browse games interactively
  icebreaker

  # Show one game
  icebreaker game 42

  # List games in a category as JSON
  icebreaker games list --category Inne --output json

  # Add a game
  icebreaker games add --title "Navneleken" --description "..." --rules "..." --category Inne

  # Point at another server
  ICEBREAKER_API_URL=https://example.org/api/gamecard icebreaker games list`

// loadConfig loads the configuration and applies flag overrides, which take
// precedence over the config files and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.InitGlobalConfig(configPath)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("rating-url"); v != "" {
		cfg.API.RatingURL = v
	}
	if v, _ := cmd.Flags().GetString("cache-ttl"); v != "" {
		ttl, err := cache.ParseTTL(v)
		if err != nil {
			return nil, fmt.Errorf("--cache-ttl: %w", err)
		}
		cfg.Cache.TTLSeconds = ttl
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
