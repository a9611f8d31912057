package cli

import (
	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/config"
)

// NewConfigValidateCmd creates the config validate command. Loading and
// validation happen in the root command's pre-run, so reaching RunE means the
// configuration is valid.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates ~/.icebreaker/config.yaml, any --config overlay and ICEBREAKER_*
environment variables. Exits non-zero with every problem listed when invalid.`,
		Example: `  icebreaker config validate
  icebreaker config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			cmd.Println("Configuration is valid")
			if verbose {
				cmd.Printf("  API:     %s\n", cfg.API.BaseURL)
				cmd.Printf("  Ratings: %s\n", orNone(cfg.API.RatingURL))
				cmd.Printf("  Timeout: %s\n", cfg.API.Timeout)
				cmd.Printf("  Cache:   %s\n", cacheSummary(cfg.Cache))
				cmd.Printf("  Logging: %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the validated settings")
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func cacheSummary(c config.CacheConfig) string {
	if !c.Enabled {
		return "disabled"
	}
	return c.Directory
}
