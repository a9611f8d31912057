package cli

import (
	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/config"
)

const redacted = "********"

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after files, environment and flags are applied.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.API.Token != "" {
				cfg.API.Token = redacted
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
