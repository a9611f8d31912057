package tui

import (
	"context"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/logging"
)

const (
	sidebarWidth   = 24
	appTitle       = "Bli-kjent leker"
	newGameLabel   = "+ New game"
	sidebarActions = 1
)

type homeFocus int

const (
	focusList homeFocus = iota
	focusSidebar
)

// gameCreatedMsg reports the outcome of a new-game submission.
type gameCreatedMsg struct {
	form    *Form
	message string
	err     error
}

// HomeModel is the landing page: a category sidebar, the game list and the
// login, signup and new-game modals.
type HomeModel struct {
	ctx     context.Context
	backend Backend
	session *Session

	list *GameListModel
	host modalHost

	categories      []string
	fixedCategories bool
	filter          map[string]bool
	cursor          int
	focus           homeFocus

	refreshKey RefreshKey
	status     string

	width  int
	height int
}

// NewHomeModel creates the landing page. When categories is empty the
// sidebar offers the categories found in the loaded games.
func NewHomeModel(ctx context.Context, backend Backend, session *Session, categories []string) *HomeModel {
	if session == nil {
		session = &Session{}
	}
	m := &HomeModel{
		ctx:             ctx,
		backend:         backend,
		session:         session,
		list:            NewGameListModel(ctx, backend),
		host:            newModalHost(NewLoginForm(), NewSignupForm(), NewGameForm()),
		categories:      append([]string(nil), categories...),
		fixedCategories: len(categories) > 0,
		filter:          make(map[string]bool),
		width:           defaultWidth,
		height:          defaultHeight,
	}
	m.layout()
	return m
}

// Init starts the first list fetch.
func (m *HomeModel) Init() tea.Cmd {
	return tea.Batch(m.list.Init(), m.list.Refresh(m.refreshMsg()))
}

// RefreshKey returns the key of the last requested refresh.
func (m *HomeModel) RefreshKey() RefreshKey { return m.refreshKey }

// Modals returns the page's modal state.
func (m *HomeModel) Modals() Modals { return m.host.modals }

// List returns the embedded game list.
func (m *HomeModel) List() *GameListModel { return m.list }

// Status returns the last status line.
func (m *HomeModel) Status() string { return m.status }

// ActiveFilter returns the selected categories in sidebar order.
func (m *HomeModel) ActiveFilter() []string {
	out := []string{}
	for _, c := range m.categories {
		if m.filter[c] {
			out = append(out, c)
		}
	}
	return out
}

func (m *HomeModel) refreshMsg() RefreshMsg {
	return RefreshMsg{Key: m.refreshKey, Categories: m.ActiveFilter()}
}

// requestRefresh moves to a new refresh key and asks the list to refetch.
func (m *HomeModel) requestRefresh() tea.Cmd {
	m.refreshKey = m.refreshKey.Next()
	msg := m.refreshMsg()
	return func() tea.Msg { return msg }
}

// Update handles messages for the page.
func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case RefreshMsg:
		return m, m.list.Refresh(msg)
	case GamesLoadedMsg:
		m.mergeCategories(msg.Games)
		return m, nil
	case gameCreatedMsg:
		return m, m.handleGameCreated(msg)
	case authResultMsg:
		m.host.handleAuthResult(m.ctx, m.session, msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.host.active() != nil {
		_, _, cmd := m.host.update(msg)
		_, listCmd := m.list.Update(msg)
		return m, tea.Batch(cmd, listCmd)
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *HomeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m, tea.Quit
	}

	if m.host.active() != nil {
		action, f, cmd := m.host.update(msg)
		if action != FormActionSubmit {
			return m, cmd
		}
		if f.Kind() == ModalForm {
			return m, m.submitGame(f)
		}
		return m, submitAuth(m.ctx, m.session, f)
	}

	switch msg.String() {
	case keyQuit:
		return m, tea.Quit
	case keyTab:
		if m.focus == focusList {
			m.focus = focusSidebar
		} else {
			m.focus = focusList
		}
		return m, nil
	case keyNew:
		return m, m.host.toggle(ModalForm)
	case keyLogin:
		return m, m.host.toggle(ModalLogin)
	case keySignup:
		return m, m.host.toggle(ModalSignup)
	case keyRetry:
		if err := m.backend.Invalidate(); err != nil {
			logging.FromContext(m.ctx).Warn().Ctx(m.ctx).
				Str("component", "home").
				Err(err).
				Msg("cache invalidation failed")
		}
		m.status = ""
		return m, m.requestRefresh()
	}

	if m.focus == focusSidebar {
		return m, m.handleSidebarKey(msg)
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *HomeModel) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	items := sidebarActions + len(m.categories)
	switch msg.String() {
	case keyUp, "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, "j":
		if m.cursor < items-1 {
			m.cursor++
		}
	case keyEnter, keySpace:
		if m.cursor == 0 {
			return m.host.toggle(ModalForm)
		}
		c := m.categories[m.cursor-sidebarActions]
		m.filter[c] = !m.filter[c]
		return m.requestRefresh()
	}
	return nil
}

func (m *HomeModel) submitGame(f *Form) tea.Cmd {
	req := catalog.NewGameRequest{
		Title:       f.Value(gameFieldTitle),
		Description: f.Value(gameFieldDescription),
		Rules:       f.Value(gameFieldRules),
		Username:    m.session.Username,
		Categories:  catalog.SplitCategories(f.Value(gameFieldCategories)),
	}
	if err := req.Validate(); err != nil {
		f.SetError(err.Error())
		return nil
	}

	f.SetSubmitting(true)
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		message, err := backend.CreateGame(ctx, req)
		return gameCreatedMsg{form: f, message: message, err: err}
	}
}

func (m *HomeModel) handleGameCreated(msg gameCreatedMsg) tea.Cmd {
	f := m.host.forms[ModalForm]
	if f != msg.form {
		return nil
	}
	if msg.err != nil {
		logging.FromContext(m.ctx).Warn().Ctx(m.ctx).
			Str("component", "home").
			Err(msg.err).
			Msg("failed to create game")
		f.SetError(api.UserMessage(msg.err))
		return nil
	}

	m.host.modals = m.host.modals.Close(ModalForm)
	f.Reset()
	m.status = msg.message
	return m.requestRefresh()
}

func (m *HomeModel) mergeCategories(games []catalog.Game) {
	if m.fixedCategories {
		return
	}
	seen := make(map[string]bool, len(m.categories))
	for _, c := range m.categories {
		seen[c] = true
	}
	for _, c := range catalog.Categories(games) {
		if !seen[c] {
			m.categories = append(m.categories, c)
		}
	}
	sort.Strings(m.categories)
}

func (m *HomeModel) layout() {
	listWidth := max(m.width-sidebarWidth-borderPadding, minContentWidth)
	// Title, status and help lines.
	const chrome = 5
	m.list.SetSize(listWidth, max(m.height-chrome, minHeight))
}

// View renders the page.
func (m *HomeModel) View() string {
	title := TitleStyle.Render(appTitle)
	if m.session.Username != "" {
		title += "  " + SubtleStyle.Render("logged in as "+m.session.Username)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", m.list.View())

	var status string
	if m.status != "" {
		status = WarningStyle.Render(m.status)
	}
	help := HelpStyle.Render("[Enter] Open  [Tab] Sidebar  [n] New game  [r] Refresh  [l] Log in  [s] Sign up  [q] Quit")

	page := lipgloss.JoinVertical(lipgloss.Left, title, "", body, status, help)
	return m.host.overlay(page, m.width, m.height)
}

func (m *HomeModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(m.sidebarLine(0, newGameLabel))
	sb.WriteString("\n\n")
	sb.WriteString(LabelStyle.Render("Categories"))
	for i, c := range m.categories {
		mark := "[ ] "
		if m.filter[c] {
			mark = "[x] "
		}
		sb.WriteString("\n")
		sb.WriteString(m.sidebarLine(i+sidebarActions, mark+c))
	}
	return SidebarStyle.Width(sidebarWidth).Render(sb.String())
}

func (m *HomeModel) sidebarLine(index int, text string) string {
	if m.focus == focusSidebar && index == m.cursor {
		return TableSelectedStyle.Render(text)
	}
	return text
}
