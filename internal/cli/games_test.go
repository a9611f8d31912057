package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icebreaker-games/icebreaker/internal/apitest"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

const (
	pathAll        = "/api/gamecard/get/all"
	pathCategories = "/api/gamecard/get/categories"
)

func TestGamesList_Table(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	out, err := execute(t, "games", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "3 games")
	gjemsel := strings.Index(out, "Gjemsel")
	navn := strings.Index(out, "Navneleken")
	stol := strings.Index(out, "Stolleken")
	assert.Less(t, gjemsel, navn, "higher rating first")
	assert.Less(t, navn, stol, "unrated last")
}

func TestGamesList_JSON(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	out, err := execute(t, "games", "list", "-o", "json")
	require.NoError(t, err)

	var games []catalog.Game
	require.NoError(t, json.Unmarshal([]byte(out), &games))
	require.Len(t, games, 3)
	assert.Equal(t, "3", games[0].ID)
}

func TestGamesList_Category(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	out, err := execute(t, "games", "list", "--category", "Ute", "-o", "json")
	require.NoError(t, err)

	var games []catalog.Game
	require.NoError(t, json.Unmarshal([]byte(out), &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Gjemsel", games[0].Title)
	assert.Equal(t, 1, srv.Hits(pathCategories))
	assert.Equal(t, 0, srv.Hits(pathAll))
}

func TestGamesList_Cache(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	_, err := execute(t, "games", "list")
	require.NoError(t, err)
	_, err = execute(t, "games", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits(pathAll), "second list served from cache")

	_, err = execute(t, "games", "list", "--refresh")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Hits(pathAll))

	_, err = execute(t, "--no-cache", "games", "list")
	require.NoError(t, err)
	assert.Equal(t, 3, srv.Hits(pathAll))
}

func TestGamesList_Paging(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	out, err := execute(t, "games", "list", "--sort", "title", "--page", "2", "--page-size", "2", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Games      []catalog.Game `json:"games"`
		Pagination struct {
			CurrentPage int  `json:"current_page"`
			TotalPages  int  `json:"total_pages"`
			TotalItems  int  `json:"total_items"`
			HasNext     bool `json:"has_next"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Games, 1)
	assert.Equal(t, "Stolleken", got.Games[0].Title)
	assert.Equal(t, 2, got.Pagination.CurrentPage)
	assert.Equal(t, 2, got.Pagination.TotalPages)
	assert.Equal(t, 3, got.Pagination.TotalItems)
	assert.False(t, got.Pagination.HasNext)

	_, err = execute(t, "games", "list", "--sort", "author")
	require.Error(t, err)

	_, err = execute(t, "games", "list", "--page-size", "2")
	require.Error(t, err)
}

func TestGamesList_ServerDown(t *testing.T) {
	srv := setupCLITest(t)
	srv.Close()

	_, err := execute(t, "--no-cache", "games", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing games")
}

func TestGamesAdd(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)
	srv.RequireToken("secret")

	args := []string{
		"games", "add",
		"--title", "Ny lek",
		"--description", "Noe nytt",
		"--rules", "Gjør noe",
		"--category", "Inne",
	}

	_, err := execute(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), apitest.MsgForbidden)

	out, err := execute(t, append(args, "--token", "secret")...)
	require.NoError(t, err)
	assert.Contains(t, out, apitest.MsgCreated)

	_, err = execute(t, append(args, "--token", "secret")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), apitest.MsgConflict)

	out, err = execute(t, "games", "list", "-o", "json")
	require.NoError(t, err)
	var games []catalog.Game
	require.NoError(t, json.Unmarshal([]byte(out), &games))
	assert.Len(t, games, 4)
}

func TestGamesAdd_MissingFields(t *testing.T) {
	srv := setupCLITest(t)

	_, err := execute(t, "games", "add", "--title", "Bare tittel")
	require.ErrorIs(t, err, catalog.ErrIncompleteGame)
	assert.Equal(t, 0, srv.Hits("/api/gamecard/create"))
}
