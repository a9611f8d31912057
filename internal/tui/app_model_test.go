package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppModel_OpenAndBack(t *testing.T) {
	backend := seededBackend()
	m := NewAppModel(context.Background(), backend, nil, nil, "")
	pump(m, m.Init())
	require.Nil(t, m.Game())

	_, cmd := m.Update(keyType(tea.KeyEnter))
	pump(m, cmd)

	require.NotNil(t, m.Game())
	assert.Equal(t, "3", m.Game().ID(), "best rated game is first")
	assert.Equal(t, ViewStateLoaded, m.Game().State())
	assert.Contains(t, m.View(), "Best")

	game := m.Game()
	_, cmd = m.Update(keyRune('h'))
	pump(m, cmd)

	assert.Nil(t, m.Game())
	assert.True(t, game.loader.Disposed())
	assert.Contains(t, m.View(), appTitle)
}

func TestAppModel_StartsOnGamePage(t *testing.T) {
	backend := seededBackend()
	m := NewAppModel(context.Background(), backend, nil, nil, "2")
	pump(m, m.Init())

	require.NotNil(t, m.Game())
	assert.Equal(t, ViewStateLoaded, m.Game().State())
	assert.Equal(t, ViewStateLoaded, m.Home().List().State(), "home loads behind the game page")
	assert.Contains(t, m.View(), "Good")
}

func TestAppModel_OpeningAnotherGameDisposesPrevious(t *testing.T) {
	m := NewAppModel(context.Background(), seededBackend(), nil, nil, "1")
	first := m.Game()

	_, c := m.Update(OpenGameMsg{ID: "2"})
	pump(m, c)

	assert.True(t, first.loader.Disposed())
	assert.Equal(t, "2", m.Game().ID())
}

func TestAppModel_SessionSharedAcrossPages(t *testing.T) {
	session := &Session{}
	m := NewAppModel(context.Background(), seededBackend(), session, nil, "1")
	pump(m, m.Init())

	m.Update(keyRune('l'))
	typeText(m, "ola")
	m.Update(keyType(tea.KeyTab))
	typeText(m, "pw")
	_, cmd := m.Update(keyType(tea.KeyEnter))
	pump(m, cmd)

	assert.Equal(t, "ola", session.Username)
	_, cmd = m.Update(keyRune('h'))
	pump(m, cmd)
	assert.Contains(t, m.View(), "logged in as ola")
}
