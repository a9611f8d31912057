package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/icebreaker-games/icebreaker/internal/config"
	"github.com/icebreaker-games/icebreaker/internal/tui"
)

// runBrowser runs the interactive TUI, opening startID first when set.
func runBrowser(cmd *cobra.Command, startID string) error {
	if mode := outputMode(cmd); mode != tui.OutputModeInteractive {
		return errors.New("the game browser needs an interactive terminal; try 'icebreaker games list'")
	}

	cfg := config.GetGlobalConfig()
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session := &tui.Session{Username: cfg.UI.Username}
	model := tui.NewAppModel(ctx, client, session, cfg.UI.Categories, startID)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
