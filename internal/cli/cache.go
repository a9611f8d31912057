package cli

import (
	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local list cache",
	}
	cmd.AddCommand(newCacheClearCmd(), newCacheInfoCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached game list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newCacheStore(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.IsEnabled() {
				cmd.Println("Cache is disabled")
				return nil
			}

			n, err := store.Clear()
			if err != nil {
				return err
			}
			logger.Debug().Ctx(cmd.Context()).Int("removed", n).Str("dir", store.Directory()).Msg("cache cleared")
			cmd.Printf("Removed %d cached responses\n", n)
			return nil
		},
	}
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where the cache lives and how many entries it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			store, err := newCacheStore(cfg)
			if err != nil {
				return err
			}
			if !store.IsEnabled() {
				cmd.Println("Cache is disabled")
				return nil
			}

			n, err := store.Count()
			if err != nil {
				return err
			}
			cmd.Printf("Directory: %s\n", store.Directory())
			cmd.Printf("TTL:       %ds\n", cfg.Cache.TTLSeconds)
			cmd.Printf("Entries:   %d\n", n)
			return nil
		},
	}
}
