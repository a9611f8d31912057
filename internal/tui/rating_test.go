package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

func TestRenderRating(t *testing.T) {
	t.Run("renders all fields", func(t *testing.T) {
		out := RenderRating(catalog.Rating{Score: 4, Comment: "Veldig gøy", Username: "kari"})
		assert.Contains(t, out, "kari")
		assert.Contains(t, out, "4.0")
		assert.Contains(t, out, "Veldig gøy")
		assert.Contains(t, out, starGlyph)
	})

	t.Run("missing fields render empty", func(t *testing.T) {
		assert.NotPanics(t, func() {
			out := RenderRating(catalog.Rating{})
			assert.Contains(t, out, "0.0")
		})
	})

	t.Run("is pure", func(t *testing.T) {
		r := catalog.Rating{Score: 3.5, Comment: "ok", Username: "ola"}
		assert.Equal(t, RenderRating(r), RenderRating(r))
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "4.5", FormatScore(4.5))
	assert.Equal(t, "3.7", FormatScore(3.66))
	assert.Equal(t, "1 rating", FormatRatingCount(1))
	assert.Equal(t, "1,204 ratings", FormatRatingCount(1204))
	assert.Equal(t, "1 game", FormatGameCount(1))
	assert.Equal(t, "12 games", FormatGameCount(12))
}

func TestRenderAverage(t *testing.T) {
	assert.Empty(t, RenderAverage(nil))
	assert.Contains(t, RenderAverage(ptr(4.3)), "4.3")
}
