package tui

import (
	"context"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

// Backend is the data source behind the TUI. *api.Client implements it.
type Backend interface {
	GetGame(ctx context.Context, id string) (catalog.Game, error)
	ListRatings(ctx context.Context, gameID string) ([]catalog.Rating, error)
	ListGames(ctx context.Context) ([]catalog.Game, error)
	FilterByCategories(ctx context.Context, categories []string) ([]catalog.Game, error)
	CreateGame(ctx context.Context, game catalog.NewGameRequest) (string, error)
	Invalidate() error
}

// AuthRequest carries what the login and signup dialogs collect.
type AuthRequest struct {
	Kind     ModalKind
	Username string
	Email    string
	Password string
}

// AuthHook handles a submitted login or signup. A nil hook accepts every
// submission and only remembers the username.
type AuthHook func(ctx context.Context, req AuthRequest) error

// Session is the state shared by every page of one program run.
type Session struct {
	Username string
	Auth     AuthHook
}
