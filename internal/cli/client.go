package cli

import (
	"fmt"

	"github.com/icebreaker-games/icebreaker/internal/api"
	"github.com/icebreaker-games/icebreaker/internal/cache"
	"github.com/icebreaker-games/icebreaker/internal/config"
)

// newCacheStore opens the list cache described by cfg.
func newCacheStore(cfg *config.Config) (*cache.Store, error) {
	store, err := cache.NewStore(cfg.Cache.Directory, cfg.Cache.Enabled, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// newClient builds an API client from cfg.
func newClient(cfg *config.Config) (*api.Client, error) {
	store, err := newCacheStore(cfg)
	if err != nil {
		return nil, err
	}
	return api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRatingURL(cfg.API.RatingURL),
		api.WithToken(cfg.API.Token),
		api.WithCache(store),
	), nil
}
