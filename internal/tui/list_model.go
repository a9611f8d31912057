package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/logging"
	"github.com/icebreaker-games/icebreaker/internal/tui/detail"
	listview "github.com/icebreaker-games/icebreaker/internal/tui/list"
)

// List column widths.
const (
	listColTitle   = 36
	listColRating  = 6
	truncateSuffix = "..."
)

// RefreshKey tells the list when its data is stale. Only change matters,
// not magnitude.
type RefreshKey uint64

// Next returns a key different from k.
func (k RefreshKey) Next() RefreshKey { return k + 1 }

// RefreshMsg asks the list to fetch again for Key. A Key equal to the last
// one fetched is ignored.
type RefreshMsg struct {
	Key        RefreshKey
	Categories []string
}

// OpenGameMsg asks the router to show a game page.
type OpenGameMsg struct {
	ID string
}

// GamesLoadedMsg reports a completed list fetch to the enclosing page.
type GamesLoadedMsg struct {
	Games []catalog.Game
}

// GameListModel lists games, best rated first.
type GameListModel struct {
	ctx     context.Context
	backend Backend

	state   ViewState
	loader  *detail.Loader[[]catalog.Game]
	loading *LoadingState
	list    *listview.VirtualListModel[catalog.Game]

	lastKey RefreshKey
	fetched bool
	fetches int

	width  int
	height int
}

// NewGameListModel creates an empty list. Nothing is fetched until the first RefreshMsg.
func NewGameListModel(ctx context.Context, backend Backend) *GameListModel {
	m := &GameListModel{
		ctx:     ctx,
		backend: backend,
		state:   ViewStateLoading,
		loading: NewLoadingState(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.loader = detail.NewLoader[[]catalog.Game](ctx, nil)
	m.list = listview.NewVirtualListModel[catalog.Game](nil, m.height, m.width, renderGameRow)
	m.list.SetEmptyText(SubtleStyle.Render("No games found"))
	return m
}

// Init starts the spinner.
func (m *GameListModel) Init() tea.Cmd {
	return m.loading.Init()
}

// Refresh fetches again when msg carries a new key, dropping the current rows.
func (m *GameListModel) Refresh(msg RefreshMsg) tea.Cmd {
	if m.fetched && msg.Key == m.lastKey {
		return nil
	}
	m.lastKey = msg.Key
	m.fetched = true
	m.fetches++

	categories := append([]string(nil), msg.Categories...)
	backend := m.backend
	fetch := func(ctx context.Context, _ string) ([]catalog.Game, error) {
		if len(categories) > 0 {
			return backend.FilterByCategories(ctx, categories)
		}
		return backend.ListGames(ctx)
	}

	m.state = ViewStateLoading
	m.list.SetItems(nil)
	m.list.SetSelected(0)
	return tea.Batch(m.loading.Init(), m.loader.LoadFunc(strconv.FormatUint(uint64(msg.Key), 10), fetch))
}

// Fetches returns how many fetches Refresh has started.
func (m *GameListModel) Fetches() int { return m.fetches }

// State returns the list's view state.
func (m *GameListModel) State() ViewState { return m.state }

// Err returns the retained error of the last failed fetch.
func (m *GameListModel) Err() error { return m.loader.Err() }

// Games returns the rows currently shown.
func (m *GameListModel) Games() []catalog.Game {
	games, _ := m.loader.Value()
	return games
}

// SetSize sets the area the list may use.
func (m *GameListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-1, minHeight))
}

// Dispose cancels any in-flight fetch.
func (m *GameListModel) Dispose() {
	m.loader.Dispose()
}

// Update handles list messages and navigation keys.
func (m *GameListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		return m, m.Refresh(msg)
	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case detail.Result[[]catalog.Game]:
		return m, m.handleResult(msg)
	case tea.KeyMsg:
		if msg.String() == keyEnter {
			if g := m.list.SelectedItem(); g != nil && g.ID != "" {
				id := g.ID
				return m, func() tea.Msg { return OpenGameMsg{ID: id} }
			}
			return m, nil
		}
		_, cmd := m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *GameListModel) handleResult(res detail.Result[[]catalog.Game]) tea.Cmd {
	if !m.loader.Accept(res) {
		return nil
	}
	log := logging.FromContext(m.ctx)

	if m.loader.State() == detail.StateFailed {
		m.state = ViewStateError
		log.Error().Ctx(m.ctx).
			Str("component", "game_list").
			Err(m.loader.Err()).
			Msg("failed to load games")
		return nil
	}

	games, _ := m.loader.Value()
	catalog.SortByRating(games)
	m.state = ViewStateLoaded
	m.list.SetItems(games)
	log.Debug().Ctx(m.ctx).
		Str("component", "game_list").
		Int("count", len(games)).
		Msg("games loaded")
	return func() tea.Msg { return GamesLoadedMsg{Games: games} }
}

// View renders the list.
func (m *GameListModel) View() string {
	switch m.state {
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateError:
		return CriticalStyle.Render("Could not load games: "+api.UserMessage(m.loader.Err())) + "\n" +
			HelpStyle.Render("[r] Refresh")
	case ViewStateLoaded:
		header := fmt.Sprintf("%s  %*s  %s", padCell("Game", listColTitle), listColRating, "Rating", "Categories")
		return HeaderStyle.Render(header) + "\n" + m.list.View()
	case ViewStateQuitting:
	}
	return ""
}

func renderGameRow(g catalog.Game, selected bool) string {
	title := padCell(ansi.Truncate(g.Title, listColTitle, truncateSuffix), listColTitle)
	rating := "-"
	if g.AverageRating != nil {
		rating = FormatScore(*g.AverageRating)
	}

	row := fmt.Sprintf("%s  %*s  %s", title, listColRating, rating, strings.Join(g.Categories, ", "))
	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

// padCell right-pads s with spaces to width terminal cells.
func padCell(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
