package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/logging"
	"github.com/icebreaker-games/icebreaker/internal/tui/detail"
)

// GameDetail is everything the game page shows. A failed ratings fetch does
// not fail the page; it is kept in RatingsErr.
type GameDetail struct {
	Game       catalog.Game
	Ratings    []catalog.Rating
	RatingsErr error
}

// BackMsg asks the router to leave the game page.
type BackMsg struct{}

func backCmd() tea.Msg { return BackMsg{} }

// FetchGameDetail loads a game and its ratings concurrently.
func FetchGameDetail(ctx context.Context, backend Backend, id string) (GameDetail, error) {
	var out GameDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		game, err := backend.GetGame(gctx, id)
		if err != nil {
			return err
		}
		out.Game = game
		return nil
	})
	g.Go(func() error {
		ratings, err := backend.ListRatings(gctx, id)
		if err != nil {
			out.RatingsErr = err
			return nil
		}
		out.Ratings = ratings
		return nil
	})

	if err := g.Wait(); err != nil {
		return GameDetail{}, err
	}
	return out, nil
}

// GameModel is the game detail page.
type GameModel struct {
	ctx     context.Context
	backend Backend
	session *Session
	id      string

	state   ViewState
	loader  *detail.Loader[GameDetail]
	loading *LoadingState

	// alert blocks the page until dismissed.
	alert string

	host modalHost

	width  int
	height int
}

// NewGameModel creates the page for id. An empty id renders the loading
// placeholder and never fetches.
func NewGameModel(ctx context.Context, backend Backend, session *Session, id string) *GameModel {
	if session == nil {
		session = &Session{}
	}
	return &GameModel{
		ctx:     ctx,
		backend: backend,
		session: session,
		id:      id,
		state:   ViewStateLoading,
		loader: detail.NewLoader(ctx, func(ctx context.Context, id string) (GameDetail, error) {
			return FetchGameDetail(ctx, backend, id)
		}),
		loading: NewLoadingState(),
		host:    newModalHost(NewLoginForm(), NewSignupForm()),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init starts the spinner and the fetch for the page's id.
func (m *GameModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.loader.Load(m.id))
}

// SetID points the page at another game, superseding any in-flight request.
func (m *GameModel) SetID(id string) tea.Cmd {
	m.id = id
	m.state = ViewStateLoading
	m.alert = ""
	return m.loader.Load(id)
}

// ID returns the game id the page shows.
func (m *GameModel) ID() string { return m.id }

// State returns the page's view state.
func (m *GameModel) State() ViewState { return m.state }

// Err returns the retained error of the last failed load.
func (m *GameModel) Err() error { return m.loader.Err() }

// Alert returns the blocking alert text, or "".
func (m *GameModel) Alert() string { return m.alert }

// Modals returns the page's modal state.
func (m *GameModel) Modals() Modals { return m.host.modals }

// Detail returns the loaded detail and whether it is present.
func (m *GameModel) Detail() (GameDetail, bool) { return m.loader.Value() }

// Dispose cancels any in-flight request. Call it when the page goes away.
func (m *GameModel) Dispose() {
	m.loader.Dispose()
}

// Update handles messages for the page.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case detail.Result[GameDetail]:
		m.handleResult(msg)
		return m, nil
	case authResultMsg:
		m.host.handleAuthResult(m.ctx, m.session, msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.host.active() != nil {
		_, _, cmd := m.host.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *GameModel) handleResult(res detail.Result[GameDetail]) {
	log := logging.FromContext(m.ctx)
	if !m.loader.Accept(res) {
		log.Debug().Ctx(m.ctx).
			Str("component", "game_page").
			Str("game_id", res.Key).
			Uint64("generation", res.Gen).
			Msg("discarding stale response")
		return
	}

	switch m.loader.State() {
	case detail.StateFailed:
		err := m.loader.Err()
		m.state = ViewStateError
		m.alert = api.UserMessage(err)
		log.Error().Ctx(m.ctx).
			Str("component", "game_page").
			Str("game_id", res.Key).
			Err(err).
			Msg("failed to load game")
	case detail.StateLoaded:
		m.state = ViewStateLoaded
		if res.Value.RatingsErr != nil {
			log.Warn().Ctx(m.ctx).
				Str("component", "game_page").
				Str("game_id", res.Key).
				Err(res.Value.RatingsErr).
				Msg("ratings unavailable")
		}
	case detail.StateIdle, detail.StateLoading:
	}
}

func (m *GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	if m.alert != "" {
		switch msg.String() {
		case keyEnter, keyEsc:
			m.alert = ""
		}
		return m, nil
	}

	if m.host.active() != nil {
		action, f, cmd := m.host.update(msg)
		if action == FormActionSubmit {
			return m, submitAuth(m.ctx, m.session, f)
		}
		return m, cmd
	}

	switch msg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyBack, keyEsc:
		return m, backCmd
	case keyRetry:
		cmd := m.loader.Retry()
		if cmd == nil {
			return m, nil
		}
		m.state = ViewStateLoading
		return m, tea.Batch(m.loading.Init(), cmd)
	case keyLogin:
		return m, m.host.toggle(ModalLogin)
	case keySignup:
		return m, m.host.toggle(ModalSignup)
	}
	return m, nil
}

// View renders the page.
func (m *GameModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}
	if m.alert != "" {
		return AlertStyle.Render(CriticalStyle.Render("Error") + "\n\n" + m.alert + "\n\n" +
			HelpStyle.Render("[Enter] OK"))
	}

	var page string
	switch m.state {
	case ViewStateLoading:
		page = RenderLoading(m.loading)
	case ViewStateError:
		page = m.renderError()
	case ViewStateLoaded:
		d, _ := m.loader.Value()
		page = RenderGameDetail(d, m.width)
	case ViewStateQuitting:
	}

	page = lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), page, m.renderHelp())
	return m.host.overlay(page, m.width, m.height)
}

func (m *GameModel) renderHeader() string {
	header := HelpStyle.Render("← Back to all games")
	if m.session.Username != "" {
		header += "  " + SubtleStyle.Render("logged in as "+m.session.Username)
	}
	return header + "\n"
}

func (m *GameModel) renderError() string {
	return "\n" + CriticalStyle.Render("Could not load game") + "\n" +
		SubtleStyle.Render(api.UserMessage(m.loader.Err())) + "\n"
}

func (m *GameModel) renderHelp() string {
	help := "[h/Esc] Back  [l] Log in  [s] Sign up  [q] Quit"
	if m.state == ViewStateError {
		help = "[r] Retry  " + help
	}
	return "\n" + HelpStyle.Render(help)
}

// RenderGameDetail renders a loaded game with its ratings.
func RenderGameDetail(d GameDetail, width int) string {
	g := d.Game
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(g.Title))
	if avg := RenderAverage(g.AverageRating); avg != "" {
		sb.WriteString("  ")
		sb.WriteString(avg)
	}
	sb.WriteString("\n")
	if len(g.Categories) > 0 {
		sb.WriteString(LabelStyle.Render("Categories: "))
		sb.WriteString(strings.Join(g.Categories, ", "))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(HeaderStyle.Render("DESCRIPTION"))
	sb.WriteString("\n")
	sb.WriteString(g.Description)
	sb.WriteString("\n\n")
	sb.WriteString(HeaderStyle.Render("RULES"))
	sb.WriteString("\n")
	sb.WriteString(g.Rules)
	sb.WriteString("\n\n")

	sb.WriteString(HeaderStyle.Render("RATINGS"))
	sb.WriteString("\n")
	switch {
	case d.RatingsErr != nil:
		sb.WriteString(WarningStyle.Render("Ratings unavailable"))
	case len(d.Ratings) == 0:
		sb.WriteString(SubtleStyle.Render("No ratings yet"))
	default:
		sb.WriteString(SubtleStyle.Render(FormatRatingCount(len(d.Ratings))))
		for _, r := range d.Ratings {
			sb.WriteString("\n")
			sb.WriteString(RenderRating(r))
		}
	}

	return BoxStyle.Width(max(width-borderPadding, minContentWidth)).Render(sb.String())
}
