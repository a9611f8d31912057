package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icebreaker-games/icebreaker/internal/apitest"
	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

func TestGameCmd_Plain(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)
	srv.SetRatings("1", []catalog.Rating{{Score: 4, Comment: "Morsom", Username: "kari"}})

	out, err := execute(t, "game", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Navneleken")
	assert.Contains(t, out, "Categories:  Inne")
	assert.Contains(t, out, "Rating:      3.5")
	assert.Contains(t, out, "Say your name")
	assert.Contains(t, out, "- kari (4.0): Morsom")
}

func TestGameCmd_MinimalPayload(t *testing.T) {
	srv := setupCLITest(t)
	srv.AddGame("9", map[string]any{"title": "Bare tittel"})

	out, err := execute(t, "game", "9")
	require.NoError(t, err)

	assert.Contains(t, out, "Bare tittel")
	assert.Contains(t, out, "ID:          9")
	assert.NotContains(t, out, "Categories:")
	assert.NotContains(t, out, "Rating:")
	assert.Contains(t, out, "No ratings yet")
}

func TestGameCmd_JSON(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)
	srv.SetRatings("3", []catalog.Rating{{Score: 5, Username: "ola"}})

	out, err := execute(t, "game", "3", "--output", "json")
	require.NoError(t, err)

	var got struct {
		ID            string           `json:"id"`
		Title         string           `json:"title"`
		AverageRating *float64         `json:"averageRating"`
		Ratings       []catalog.Rating `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3", got.ID)
	assert.Equal(t, "Gjemsel", got.Title)
	require.NotNil(t, got.AverageRating)
	assert.InDelta(t, 4.5, *got.AverageRating, 0.001)
	assert.Len(t, got.Ratings, 1)
}

func TestGameCmd_NotFound(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "game", "404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), apitest.MsgNotFound)
}

func TestGameCmd_RatingsUnavailable(t *testing.T) {
	srv := setupCLITest(t)
	seedGames(srv)
	t.Setenv("ICEBREAKER_RATING_URL", srv.URL+"/missing")

	out, err := execute(t, "game", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Stolleken")
	assert.Contains(t, out, "Ratings unavailable")
}

func TestGameCmd_Args(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "game")
	require.Error(t, err)

	_, err = execute(t, "game", "1", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
