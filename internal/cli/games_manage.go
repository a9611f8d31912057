package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/config"
	"github.com/icebreaker-games/icebreaker/internal/logging"
	"github.com/icebreaker-games/icebreaker/internal/tui"
)

func newGamesGetCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "get --title <title>",
		Short: "Show a game looked up by its exact title",
		Example: `  icebreaker games get --title "Navneleken"
  icebreaker games get --title "Navneleken" --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			client, err := newClient(config.GetGlobalConfig())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			game, err := client.GetGameByTitle(ctx, title)
			if err != nil {
				log.Error().Ctx(ctx).
					Str("component", "cli").
					Str("title", title).
					Err(err).
					Msg("failed to look up game")
				return fmt.Errorf("finding game %q: %s", title, api.UserMessage(err))
			}

			mode := outputMode(cmd)
			if format == outputTable && mode == tui.OutputModeInteractive {
				return runBrowser(cmd, game.ID)
			}

			d := tui.GameDetail{Game: game}
			d.Ratings, d.RatingsErr = client.ListRatings(ctx, game.ID)
			if d.RatingsErr != nil {
				log.Warn().Ctx(ctx).
					Str("component", "cli").
					Str("game_id", game.ID).
					Err(d.RatingsErr).
					Msg("ratings unavailable")
			}
			return printGame(cmd, format, mode, d)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "exact game title (required)")
	_ = cmd.MarkFlagRequired("title")
	addOutputFlag(cmd)
	return cmd
}

func newGamesUpdateCmd() *cobra.Command {
	var (
		id         string
		title      string
		desc       string
		rules      string
		categories []string
		token      string
	)

	cmd := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Change fields of an existing game",
		Long: `Updates a game. Fields without a flag keep their current value;
--category replaces the whole category list.`,
		Example: `  icebreaker games update --id 42 --rules "Count to thirty"
  icebreaker games update --id 42 --category Ute --category Aktiv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := catalog.ValidateID(id); err != nil {
				return err
			}
			cfg := config.GetGlobalConfig()
			if token != "" {
				cfg.API.Token = token
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			current, err := client.GetGame(ctx, id)
			if err != nil {
				log.Error().Ctx(ctx).
					Str("component", "cli").
					Str("game_id", id).
					Err(err).
					Msg("failed to load game for update")
				return fmt.Errorf("updating game %s: %s", id, api.UserMessage(err))
			}

			req := catalog.UpdateFrom(current)
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = title
			}
			if flags.Changed("description") {
				req.Description = desc
			}
			if flags.Changed("rules") {
				req.Rules = rules
			}
			if flags.Changed("category") {
				req.Categories = categories
			}
			if err := req.Validate(); err != nil {
				return err
			}

			msg, err := client.UpdateGame(ctx, req)
			if err != nil {
				log.Error().Ctx(ctx).
					Str("component", "cli").
					Str("game_id", id).
					Err(err).
					Msg("failed to update game")
				return fmt.Errorf("updating game %s: %s", id, api.UserMessage(err))
			}

			cmd.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "game id (required)")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&desc, "description", "", "new description")
	cmd.Flags().StringVar(&rules, "rules", "", "new rules")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "new categories (repeatable)")
	cmd.Flags().StringVar(&token, "token", "", "API token (default: api.token from config)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newGamesDeleteCmd() *cobra.Command {
	var (
		title string
		token string
	)

	cmd := &cobra.Command{
		Use:   "delete [<id>]",
		Short: "Delete a game by id or by title",
		Example: `  icebreaker games delete 42
  icebreaker games delete --title "Stolleken"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (title != "") {
				return errors.New("give either a game id or --title")
			}
			cfg := config.GetGlobalConfig()
			if token != "" {
				cfg.API.Token = token
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var (
				msg    string
				target string
			)
			if title != "" {
				target = fmt.Sprintf("%q", title)
				msg, err = client.DeleteGameByTitle(ctx, title)
			} else {
				target = args[0]
				if err := catalog.ValidateID(target); err != nil {
					return err
				}
				msg, err = client.DeleteGame(ctx, target)
			}
			if err != nil {
				logging.FromContext(ctx).Error().Ctx(ctx).
					Str("component", "cli").
					Str("target", target).
					Err(err).
					Msg("failed to delete game")
				return fmt.Errorf("deleting game %s: %s", target, api.UserMessage(err))
			}

			cmd.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "delete the game with this exact title")
	cmd.Flags().StringVar(&token, "token", "", "API token (default: api.token from config)")
	return cmd
}
