package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/icebreaker-games/icebreaker/internal/logging"
)

// AppModel routes between the landing page and game pages.
type AppModel struct {
	ctx     context.Context
	backend Backend
	session *Session

	home *HomeModel
	game *GameModel

	width  int
	height int
}

// NewAppModel creates the router. A non-empty startID opens that game first.
func NewAppModel(ctx context.Context, backend Backend, session *Session, categories []string, startID string) *AppModel {
	if session == nil {
		session = &Session{}
	}
	m := &AppModel{
		ctx:     ctx,
		backend: backend,
		session: session,
		home:    NewHomeModel(ctx, backend, session, categories),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if startID != "" {
		m.game = NewGameModel(ctx, backend, session, startID)
	}
	return m
}

// Init starts the landing page and, if open, the game page.
func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.home.Init()}
	if m.game != nil {
		cmds = append(cmds, m.game.Init())
	}
	return tea.Batch(cmds...)
}

// Home returns the landing page.
func (m *AppModel) Home() *HomeModel { return m.home }

// Game returns the open game page, or nil.
func (m *AppModel) Game() *GameModel { return m.game }

// Update routes keys to the visible page and everything else to both pages,
// so the list keeps loading while a game is open.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.Update(msg)
		if m.game != nil {
			m.game.Update(msg)
		}
		return m, nil
	case OpenGameMsg:
		return m, m.openGame(msg.ID)
	case BackMsg:
		m.closeGame()
		return m, nil
	case tea.KeyMsg:
		if m.game != nil {
			_, cmd := m.game.Update(msg)
			return m, cmd
		}
		_, cmd := m.home.Update(msg)
		return m, cmd
	}

	_, homeCmd := m.home.Update(msg)
	if m.game == nil {
		return m, homeCmd
	}
	_, gameCmd := m.game.Update(msg)
	return m, tea.Batch(homeCmd, gameCmd)
}

func (m *AppModel) openGame(id string) tea.Cmd {
	m.closeGame()
	logging.FromContext(m.ctx).Debug().Ctx(m.ctx).
		Str("component", "router").
		Str("game_id", id).
		Msg("opening game page")

	m.game = NewGameModel(m.ctx, m.backend, m.session, id)
	m.game.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return m.game.Init()
}

func (m *AppModel) closeGame() {
	if m.game == nil {
		return
	}
	m.game.Dispose()
	m.game = nil
}

// View renders the visible page.
func (m *AppModel) View() string {
	if m.game != nil {
		return m.game.View()
	}
	return m.home.View()
}
