// Package catalog defines the game catalogue records exchanged with the API.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Game is a single catalogue entry.
type Game struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Categories    []string `json:"categories"`
	Description   string   `json:"description"`
	Rules         string   `json:"rules"`
	AverageRating *float64 `json:"averageRating,omitempty"`
}

// HasRating reports whether the game has an average rating.
func (g Game) HasRating() bool {
	return g.AverageRating != nil
}

// ID is a game identifier as sent by the API. The server encodes it as a
// JSON number; a string is accepted as well.
type ID string

// UnmarshalJSON accepts a JSON number or string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("game id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// GamePayload is the server's gamecard response body.
type GamePayload struct {
	ID            ID       `json:"id"`
	Title         string   `json:"title"`
	Categories    []string `json:"categories"`
	Description   string   `json:"description"`
	Rules         string   `json:"rules"`
	AverageRating *float64 `json:"averageRating"`
}

// NewGame merges a route-supplied identifier with a server payload.
// The route identifier always wins; missing categories become an empty slice.
func NewGame(id string, p GamePayload) Game {
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return Game{
		ID:            id,
		Title:         p.Title,
		Categories:    categories,
		Description:   p.Description,
		Rules:         p.Rules,
		AverageRating: p.AverageRating,
	}
}

// Game converts a list payload, which carries its own id.
func (p GamePayload) Game() Game {
	return NewGame(string(p.ID), p)
}

// GamesFromPayloads converts a list response.
func GamesFromPayloads(payloads []GamePayload) []Game {
	games := make([]Game, 0, len(payloads))
	for _, p := range payloads {
		games = append(games, p.Game())
	}
	return games
}

// SortByRating orders games by average rating, highest first. Unrated games
// go last; ties keep their original order.
func SortByRating(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i].AverageRating, games[j].AverageRating
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
}

// Categories returns the sorted, de-duplicated categories used by games.
func Categories(games []Game) []string {
	seen := make(map[string]struct{})
	for _, g := range games {
		for _, c := range g.Categories {
			seen[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ErrIncompleteGame is returned by NewGameRequest.Validate.
var ErrIncompleteGame = errors.New("title, description and rules are required")

// NewGameRequest is the body of a game creation request.
type NewGameRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Rules       string   `json:"rules"`
	Username    string   `json:"username"`
	Categories  []string `json:"categories"`
}

// Validate checks required fields.
func (r NewGameRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" ||
		strings.TrimSpace(r.Description) == "" ||
		strings.TrimSpace(r.Rules) == "" {
		return ErrIncompleteGame
	}
	return nil
}

// ErrInvalidID is returned for an id the server cannot address.
var ErrInvalidID = errors.New("game id must be a positive integer")

// UpdateGameRequest is the body of a game update request. The server replaces
// every field, categories included.
type UpdateGameRequest struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Rules       string      `json:"rules"`
	Categories  []string    `json:"categories"`
}

// UpdateFrom returns an update request carrying g's current values.
func UpdateFrom(g Game) UpdateGameRequest {
	return UpdateGameRequest{
		ID:          json.Number(g.ID),
		Title:       g.Title,
		Description: g.Description,
		Rules:       g.Rules,
		Categories:  append([]string{}, g.Categories...),
	}
}

// Validate checks the id and the required fields.
func (r UpdateGameRequest) Validate() error {
	if err := ValidateID(string(r.ID)); err != nil {
		return err
	}
	return NewGameRequest{Title: r.Title, Description: r.Description, Rules: r.Rules}.Validate()
}

// ValidateID checks that id is a positive integer, as the server's ids are.
func ValidateID(id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// SplitCategories parses a comma separated category list, dropping blanks.
func SplitCategories(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if c := strings.TrimSpace(part); c != "" {
			out = append(out, c)
		}
	}
	return out
}
