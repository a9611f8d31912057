package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

func seededBackend() *fakeBackend {
	b := newFakeBackend()
	b.add(catalog.Game{ID: "1", Title: "Unrated", Categories: []string{"Ute"}})
	b.add(catalog.Game{ID: "2", Title: "Good", AverageRating: ptr(3.9), Categories: []string{"Inne"}})
	b.add(catalog.Game{ID: "3", Title: "Best", AverageRating: ptr(4.8), Categories: []string{"Inne", "Navn"}})
	return b
}

func TestGameListModel_RefreshKeyChangeDetection(t *testing.T) {
	tests := []struct {
		name  string
		keys  []RefreshKey
		fetch int
	}{
		{name: "first key always fetches", keys: []RefreshKey{0}, fetch: 1},
		{name: "same key is ignored", keys: []RefreshKey{0, 0, 0}, fetch: 1},
		{name: "increment by one", keys: []RefreshKey{0, 1}, fetch: 2},
		{name: "increment by five equals increment by one", keys: []RefreshKey{0, 5}, fetch: 2},
		{name: "each change fetches once", keys: []RefreshKey{0, 1, 1, 9, 9, 10}, fetch: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := seededBackend()
			m := NewGameListModel(context.Background(), backend)
			for _, k := range tt.keys {
				pump(m, m.Refresh(RefreshMsg{Key: k}))
			}
			assert.Equal(t, tt.fetch, m.Fetches())
			assert.Equal(t, tt.fetch, backend.listCalls)
		})
	}
}

func TestGameListModel_SortedByRating(t *testing.T) {
	m := NewGameListModel(context.Background(), seededBackend())
	msgs := pump(m, m.Refresh(RefreshMsg{Key: 1}))

	require.Equal(t, ViewStateLoaded, m.State())
	titles := []string{}
	for _, g := range m.Games() {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Best", "Good", "Unrated"}, titles)
	assert.True(t, hasMsg[GamesLoadedMsg](msgs))

	view := m.View()
	assert.Contains(t, view, "Best")
	assert.Contains(t, view, "4.8")
}

func TestGameListModel_CategoryFilter(t *testing.T) {
	backend := seededBackend()
	m := NewGameListModel(context.Background(), backend)

	pump(m, m.Refresh(RefreshMsg{Key: 1, Categories: []string{"Navn"}}))

	assert.Equal(t, 1, backend.filterCalls)
	assert.Equal(t, 0, backend.listCalls)
	assert.Equal(t, []string{"Navn"}, backend.lastFilter)
	require.Len(t, m.Games(), 1)
	assert.Equal(t, "Best", m.Games()[0].Title)
}

func TestGameListModel_EnterOpensSelectedGame(t *testing.T) {
	m := NewGameListModel(context.Background(), seededBackend())
	pump(m, m.Refresh(RefreshMsg{Key: 1}))

	m.Update(keyType(tea.KeyDown))
	_, cmd := m.Update(keyType(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, OpenGameMsg{ID: "2"}, cmd())
}

func TestGameListModel_RefetchDiscardsPriorResults(t *testing.T) {
	m := NewGameListModel(context.Background(), seededBackend())
	pump(m, m.Refresh(RefreshMsg{Key: 1}))
	require.Len(t, m.Games(), 3)

	first := m.Refresh(RefreshMsg{Key: 2})
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Empty(t, m.Games())

	second := m.Refresh(RefreshMsg{Key: 3, Categories: []string{"Ute"}})
	pump(m, second)
	pump(m, first)

	require.Len(t, m.Games(), 1, "superseded fetch is dropped")
	assert.Equal(t, "Unrated", m.Games()[0].Title)
}

func TestGameListModel_Error(t *testing.T) {
	backend := seededBackend()
	backend.listErr = errors.New("server unreachable")
	m := NewGameListModel(context.Background(), backend)

	pump(m, m.Refresh(RefreshMsg{}))

	assert.Equal(t, ViewStateError, m.State())
	assert.EqualError(t, m.Err(), "server unreachable")
	assert.Contains(t, m.View(), "server unreachable")
}

func TestGameListModel_Empty(t *testing.T) {
	m := NewGameListModel(context.Background(), newFakeBackend())
	pump(m, m.Refresh(RefreshMsg{}))

	assert.Equal(t, ViewStateLoaded, m.State())
	assert.Contains(t, m.View(), "No games found")

	_, cmd := m.Update(keyType(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestRenderGameRow_MultibyteTitles(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantTitle string
	}{
		{name: "fits", title: strings.Repeat("æ", 20), wantTitle: strings.Repeat("æ", 20)},
		{name: "exact width", title: strings.Repeat("ø", listColTitle), wantTitle: strings.Repeat("ø", listColTitle)},
		{name: "truncated", title: strings.Repeat("å", 40), wantTitle: strings.Repeat("å", listColTitle-3) + truncateSuffix},
		{name: "ascii", title: "Navneleken", wantTitle: "Navneleken"},
	}

	wantWidth := listColTitle + 2 + listColRating + 2 + len("Inne")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := renderGameRow(catalog.Game{Title: tt.title, Categories: []string{"Inne"}}, false)

			require.True(t, utf8.ValidString(row))
			assert.True(t, strings.HasPrefix(row, tt.wantTitle), row)
			assert.Equal(t, wantWidth, ansi.StringWidth(row), "columns aligned")
		})
	}
}
