package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

// GetGame fetches one game by id. The returned game carries id as its ID,
// whatever the payload says.
func (c *Client) GetGame(ctx context.Context, id string) (catalog.Game, error) {
	if strings.TrimSpace(id) == "" {
		return catalog.Game{}, ErrEmptyID
	}

	data, err := c.get(ctx, c.baseURL+"/get/id/"+url.PathEscape(id))
	if err != nil {
		return catalog.Game{}, err
	}

	payload, err := decode[catalog.GamePayload](data)
	if err != nil {
		return catalog.Game{}, err
	}
	return catalog.NewGame(id, payload), nil
}

// GetGameByTitle fetches one game by its exact title.
func (c *Client) GetGameByTitle(ctx context.Context, title string) (catalog.Game, error) {
	if strings.TrimSpace(title) == "" {
		return catalog.Game{}, ErrEmptyTitle
	}

	data, err := c.get(ctx, c.baseURL+"/get/title/"+url.PathEscape(title))
	if err != nil {
		return catalog.Game{}, err
	}

	payload, err := decode[catalog.GamePayload](data)
	if err != nil {
		return catalog.Game{}, err
	}
	return payload.Game(), nil
}

// ListGames fetches every game, ordered by average rating (unrated last).
func (c *Client) ListGames(ctx context.Context) ([]catalog.Game, error) {
	req := request{method: http.MethodGet, url: c.baseURL + "/get/all"}
	data, err := c.cached(ctx, req, func() ([]byte, error) {
		return c.get(ctx, req.url)
	})
	if err != nil {
		return nil, err
	}
	return gamesFrom(data)
}

// FilterByCategories fetches games that have at least one of categories.
// An empty filter is the same as ListGames.
func (c *Client) FilterByCategories(ctx context.Context, categories []string) ([]catalog.Game, error) {
	if len(categories) == 0 {
		return c.ListGames(ctx)
	}

	req, err := newRequest(http.MethodPost, c.baseURL+"/get/categories",
		catalog.CategoryFilter{Categories: categories}, false)
	if err != nil {
		return nil, err
	}
	data, err := c.cached(ctx, req, func() ([]byte, error) {
		return c.do(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return gamesFrom(data)
}

// CreateGame submits a new game and returns the server's confirmation message.
// A successful create invalidates cached lists.
func (c *Client) CreateGame(ctx context.Context, game catalog.NewGameRequest) (string, error) {
	if err := game.Validate(); err != nil {
		return "", err
	}
	if game.Categories == nil {
		game.Categories = []string{}
	}
	return c.write(ctx, http.MethodPut, c.baseURL+"/create", game)
}

// UpdateGame replaces a game's title, description, rules and categories.
// A successful update invalidates cached lists.
func (c *Client) UpdateGame(ctx context.Context, game catalog.UpdateGameRequest) (string, error) {
	if err := game.Validate(); err != nil {
		return "", err
	}
	if game.Categories == nil {
		game.Categories = []string{}
	}
	return c.write(ctx, http.MethodPut, c.baseURL+"/update", game)
}

// DeleteGame deletes a game by id.
func (c *Client) DeleteGame(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrEmptyID
	}
	return c.write(ctx, http.MethodDelete, c.baseURL+"/delete/id/"+url.PathEscape(id), nil)
}

// DeleteGameByTitle deletes a game by its exact title.
func (c *Client) DeleteGameByTitle(ctx context.Context, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}
	return c.write(ctx, http.MethodDelete, c.baseURL+"/delete/title/"+url.PathEscape(title), nil)
}

// write sends an authenticated change, invalidates cached lists on success and
// returns the server's message.
func (c *Client) write(ctx context.Context, method, endpoint string, body any) (string, error) {
	req, err := newRequest(method, endpoint, body, true)
	if err != nil {
		return "", err
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	if err := c.Invalidate(); err != nil {
		return "", err
	}

	msg, err := decode[catalog.MessageResponse](data)
	if err != nil {
		return "", err
	}
	return msg.Message, nil
}

func gamesFrom(data []byte) ([]catalog.Game, error) {
	payloads, err := decode[[]catalog.GamePayload](data)
	if err != nil {
		return nil, err
	}
	games := catalog.GamesFromPayloads(payloads)
	catalog.SortByRating(games)
	return games, nil
}
