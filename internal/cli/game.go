package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/config"
	"github.com/icebreaker-games/icebreaker/internal/logging"
	"github.com/icebreaker-games/icebreaker/internal/tui"
)

// gameOutput is the JSON shape of `icebreaker game`.
type gameOutput struct {
	catalog.Game
	Ratings      []catalog.Rating `json:"ratings"`
	RatingsError string           `json:"ratingsError,omitempty"`
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game <id>",
		Short: "Show a game with its rules and ratings",
		Long: `Shows one game. In an interactive terminal the game opens in the browser;
otherwise, or with --plain or --output json, it is printed.`,
		Example: `  icebreaker game 42
  icebreaker game 42 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGame(cmd, args[0])
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func runGame(cmd *cobra.Command, id string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	mode := outputMode(cmd)
	if format == outputTable && mode == tui.OutputModeInteractive {
		return runBrowser(cmd, id)
	}

	cfg := config.GetGlobalConfig()
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	d, err := tui.FetchGameDetail(ctx, client, id)
	if err != nil {
		logging.FromContext(ctx).Error().Ctx(ctx).
			Str("component", "cli").
			Str("game_id", id).
			Err(err).
			Msg("failed to load game")
		return fmt.Errorf("loading game %s: %s", id, api.UserMessage(err))
	}
	if d.RatingsErr != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "cli").
			Str("game_id", id).
			Err(d.RatingsErr).
			Msg("ratings unavailable")
	}

	return printGame(cmd, format, mode, d)
}

// printGame writes d as JSON, styled or plain text.
func printGame(cmd *cobra.Command, format string, mode tui.OutputMode, d tui.GameDetail) error {
	out := cmd.OutOrStdout()
	switch {
	case format == outputJSON:
		o := gameOutput{Game: d.Game, Ratings: d.Ratings}
		if o.Ratings == nil {
			o.Ratings = []catalog.Rating{}
		}
		if d.RatingsErr != nil {
			o.RatingsError = api.UserMessage(d.RatingsErr)
		}
		return writeJSON(out, o)
	case mode == tui.OutputModeStyled:
		return tui.RenderGameStyled(out, d, tui.TerminalWidth())
	default:
		return tui.RenderGamePlain(out, d)
	}
}
