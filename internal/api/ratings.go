package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

// ErrNoRatingService is returned by ListRatings when no rating URL is configured.
var ErrNoRatingService = errors.New("rating service not configured")

// ListRatings fetches the ratings left for a game.
func (c *Client) ListRatings(ctx context.Context, gameID string) ([]catalog.Rating, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, ErrEmptyID
	}
	if c.ratingURL == "" {
		return nil, ErrNoRatingService
	}

	data, err := c.get(ctx, c.ratingURL+"/get/gamecard/"+url.PathEscape(gameID))
	if err != nil {
		return nil, err
	}

	ratings, err := decode[[]catalog.Rating](data)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []catalog.Rating{}
	}
	return ratings, nil
}
