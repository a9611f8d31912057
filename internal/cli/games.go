package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/cli/pagination"
	"github.com/icebreaker-games/icebreaker/internal/config"
	"github.com/icebreaker-games/icebreaker/internal/logging"
	"github.com/icebreaker-games/icebreaker/internal/tui"
)

// pagedGames is the JSON shape of a paged game list.
type pagedGames struct {
	Games      []catalog.Game  `json:"games"`
	Pagination pagination.Meta `json:"pagination"`
}

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List, look up and change games",
	}
	cmd.AddCommand(
		newGamesListCmd(),
		newGamesGetCmd(),
		newGamesAddCmd(),
		newGamesUpdateCmd(),
		newGamesDeleteCmd(),
	)
	return cmd
}

func newGamesListCmd() *cobra.Command {
	var (
		categories []string
		refresh    bool
		page       pagination.Params
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games ordered by rating",
		Example: `  icebreaker games list
  icebreaker games list --category Inne --category Ute
  icebreaker games list --refresh --output json
  icebreaker games list --sort title --page 2 --page-size 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if err := page.Validate(); err != nil {
				return err
			}

			client, err := newClient(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if refresh {
				if err := client.Invalidate(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			games, err := client.FilterByCategories(ctx, categories)
			if err != nil {
				logging.FromContext(ctx).Error().Ctx(ctx).
					Str("component", "cli").
					Strs("categories", categories).
					Err(err).
					Msg("failed to list games")
				return fmt.Errorf("listing games: %s", api.UserMessage(err))
			}

			games, err = pagination.NewGameSorter().Sort(games, page.Sort)
			if err != nil {
				return err
			}
			total := len(games)
			games = pagination.Apply(page, games)

			out := cmd.OutOrStdout()
			if format == outputJSON {
				if page.IsPageBased() {
					return writeJSON(out, pagedGames{Games: games, Pagination: pagination.NewMeta(page, total)})
				}
				return writeJSON(out, games)
			}
			return tui.RenderGamesTable(out, games)
		},
	}

	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "only games in any of these categories (repeatable)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached lists")
	page.AddFlags(cmd)
	addOutputFlag(cmd)
	return cmd
}

func newGamesAddCmd() *cobra.Command {
	var (
		req   catalog.NewGameRequest
		token string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new game to the catalogue",
		Example: `  icebreaker games add --title "Navneleken" \
    --description "Learn each other's names" \
    --rules "Say your name and an animal with the same first letter" \
    --category Inne`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if req.Username == "" {
				req.Username = cfg.UI.Username
			}
			if token != "" {
				cfg.API.Token = token
			}
			if err := req.Validate(); err != nil {
				return err
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			msg, err := client.CreateGame(ctx, req)
			if err != nil {
				logging.FromContext(ctx).Error().Ctx(ctx).
					Str("component", "cli").
					Str("title", req.Title).
					Err(err).
					Msg("failed to create game")
				return fmt.Errorf("adding game: %s", api.UserMessage(err))
			}

			cmd.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "game title (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "short description (required)")
	cmd.Flags().StringVar(&req.Rules, "rules", "", "how to play (required)")
	cmd.Flags().StringSliceVarP(&req.Categories, "category", "c", nil, "categories (repeatable)")
	cmd.Flags().StringVar(&req.Username, "username", "", "author (default: ui.username from config)")
	cmd.Flags().StringVar(&token, "token", "", "API token (default: api.token from config)")
	return cmd
}
