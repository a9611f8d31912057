package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icebreaker-games/icebreaker/internal/apitest"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

func TestGamesGet_ByTitle(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)
	srv.SetRatings("1", []catalog.Rating{{Score: 4, Comment: "Morsom", Username: "kari"}})

	out, err := execute(t, "games", "get", "--title", "Navneleken")
	require.NoError(t, err)
	assert.Contains(t, out, "Say your name")
	assert.Contains(t, out, "- kari (4.0): Morsom")

	out, err = execute(t, "games", "get", "--title", "Navneleken", "-o", "json")
	require.NoError(t, err)
	var got struct {
		ID      string           `json:"id"`
		Title   string           `json:"title"`
		Ratings []catalog.Rating `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "Navneleken", got.Title)
	assert.Len(t, got.Ratings, 1)
}

func TestGamesGet_Errors(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	_, err := execute(t, "games", "get", "--title", "Finnes ikke")
	require.Error(t, err)
	assert.Contains(t, err.Error(), apitest.MsgTitleNotFound)

	_, err = execute(t, "games", "get")
	require.Error(t, err, "--title is required")
}

func TestGamesUpdate(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)
	srv.RequireToken("secret")

	_, err := execute(t, "games", "update", "--id", "2", "--rules", "Ny regel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), apitest.MsgForbidden)

	out, err := execute(t, "games", "update", "--id", "2", "--rules", "Ny regel", "--token", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, apitest.MsgUpdated)

	game, ok := srv.Game("2")
	require.True(t, ok)
	assert.Equal(t, "Ny regel", game["rules"])
	assert.Equal(t, "Stolleken", game["title"], "unchanged fields kept")
	assert.Equal(t, []string{"Inne", "Aktiv"}, game["categories"])

	_, err = execute(t, "games", "update", "--id", "2", "-c", "Ute", "--token", "secret")
	require.NoError(t, err)
	game, _ = srv.Game("2")
	assert.Equal(t, []string{"Ute"}, game["categories"])
}

func TestGamesUpdate_Errors(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "bad id", args: []string{"--id", "abc", "--rules", "x"}, wantErr: catalog.ErrInvalidID},
		{name: "unknown id", args: []string{"--id", "99", "--rules", "x"}, wantMsg: apitest.MsgNotFound},
		{name: "blank title", args: []string{"--id", "1", "--title", ""}, wantErr: catalog.ErrIncompleteGame},
		{name: "title taken", args: []string{"--id", "1", "--title", "Gjemsel"}, wantMsg: apitest.MsgConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"games", "update"}, tt.args...)...)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}

	game, _ := srv.Game("1")
	assert.Equal(t, "Navneleken", game["title"])
	assert.Equal(t, 1, srv.Hits("/api/gamecard/update"), "only the conflicting update reached the server")
}

func TestGamesDelete(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	_, err := execute(t, "games", "list")
	require.NoError(t, err)

	out, err := execute(t, "games", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, apitest.MsgDeleted)
	_, ok := srv.Game("2")
	assert.False(t, ok)

	out, err = execute(t, "games", "delete", "--title", "Gjemsel")
	require.NoError(t, err)
	assert.Contains(t, out, apitest.MsgDeleted)

	out, err = execute(t, "games", "list", "-o", "json")
	require.NoError(t, err)
	var games []catalog.Game
	require.NoError(t, json.Unmarshal([]byte(out), &games))
	require.Len(t, games, 1, "cached list dropped after delete")
	assert.Equal(t, "Navneleken", games[0].Title)
}

func TestGamesDelete_Errors(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "no target", args: nil, wantMsg: "either a game id or --title"},
		{name: "both targets", args: []string{"1", "--title", "Navneleken"}, wantMsg: "either a game id or --title"},
		{name: "bad id", args: []string{"abc"}, wantMsg: "positive integer"},
		{name: "unknown id", args: []string{"99"}, wantMsg: apitest.MsgNotFound},
		{name: "unknown title", args: []string{"--title", "Finnes ikke"}, wantMsg: apitest.MsgTitleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"games", "delete"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	_, ok := srv.Game("1")
	assert.True(t, ok)
}
