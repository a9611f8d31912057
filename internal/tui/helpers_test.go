package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/tui/detail"
)

// fakeBackend is an in-memory Backend that records calls.
type fakeBackend struct {
	mu sync.Mutex

	games      map[string]catalog.Game
	ratings    map[string][]catalog.Rating
	ratingsErr error
	getErrs    []error // consumed one per GetGame call
	listErr    error
	createErr  error
	createMsg  string

	// block, when set, holds GetGame until it is closed or ctx ends.
	block chan struct{}

	getCalls      int
	listCalls     int
	filterCalls   int
	lastFilter    []string
	invalidations int
	created       []catalog.NewGameRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		games:     make(map[string]catalog.Game),
		ratings:   make(map[string][]catalog.Rating),
		createMsg: "created",
	}
}

func ptr(f float64) *float64 { return &f }

func (b *fakeBackend) add(g catalog.Game) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if g.Categories == nil {
		g.Categories = []string{}
	}
	b.games[g.ID] = g
}

func (b *fakeBackend) GetGame(ctx context.Context, id string) (catalog.Game, error) {
	b.mu.Lock()
	b.getCalls++
	block := b.block
	var err error
	if len(b.getErrs) > 0 {
		err, b.getErrs = b.getErrs[0], b.getErrs[1:]
	}
	b.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return catalog.Game{}, ctx.Err()
		}
	}
	if ctx.Err() != nil {
		return catalog.Game{}, ctx.Err()
	}
	if err != nil {
		return catalog.Game{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.games[id]
	if !ok {
		return catalog.Game{}, &api.APIError{Status: 404, Message: "Finner ikke bli-kjent lek med den ID-en"}
	}
	return g, nil
}

func (b *fakeBackend) ListRatings(ctx context.Context, gameID string) ([]catalog.Rating, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ratingsErr != nil {
		return nil, b.ratingsErr
	}
	r := b.ratings[gameID]
	if r == nil {
		r = []catalog.Rating{}
	}
	return r, nil
}

func (b *fakeBackend) all() []catalog.Game {
	out := make([]catalog.Game, 0, len(b.games))
	for _, g := range b.games {
		out = append(out, g)
	}
	return out
}

func (b *fakeBackend) ListGames(ctx context.Context) ([]catalog.Game, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.all(), nil
}

func (b *fakeBackend) FilterByCategories(ctx context.Context, categories []string) ([]catalog.Game, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filterCalls++
	b.lastFilter = categories
	var out []catalog.Game
	for _, g := range b.all() {
		for _, c := range g.Categories {
			if containsString(categories, c) {
				out = append(out, g)
				break
			}
		}
	}
	return out, nil
}

func (b *fakeBackend) CreateGame(ctx context.Context, game catalog.NewGameRequest) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createErr != nil {
		return "", b.createErr
	}
	b.created = append(b.created, game)
	return b.createMsg, nil
}

func (b *fakeBackend) Invalidate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidations++
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// collect runs cmd and any batched commands it returns, one level at a time.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// isAppMsg reports whether msg is one of ours, as opposed to spinner or
// cursor ticks that would reschedule themselves forever.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case detail.Result[GameDetail], detail.Result[[]catalog.Game],
		RefreshMsg, GamesLoadedMsg, OpenGameMsg, BackMsg,
		authResultMsg, gameCreatedMsg:
		return true
	default:
		return false
	}
}

// pump feeds the app messages produced by cmd back into m until none remain.
// It returns every message that was produced.
func pump(m tea.Model, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := collect(cmd)
	for depth := 0; len(queue) > 0 && depth < 20; depth++ {
		var next []tea.Msg
		for _, msg := range queue {
			seen = append(seen, msg)
			if !isAppMsg(msg) {
				continue
			}
			_, c := m.Update(msg)
			next = append(next, collect(c)...)
		}
		queue = next
	}
	return seen
}

func hasMsg[T any](msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			return true
		}
	}
	return false
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func keyType(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m tea.Model, s string) {
	for _, r := range s {
		m.Update(keyRune(r))
	}
}
