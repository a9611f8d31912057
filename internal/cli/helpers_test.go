package cli_test

import (
	"bytes"
	"testing"

	"github.com/icebreaker-games/icebreaker/internal/apitest"
	"github.com/icebreaker-games/icebreaker/internal/cli"
	"github.com/icebreaker-games/icebreaker/internal/config"
)

// setupCLITest isolates the icebreaker home directory, points the client at
// a fake server and registers cleanup for global state.
func setupCLITest(t *testing.T) *apitest.Server {
	t.Helper()

	srv := apitest.New()
	t.Cleanup(srv.Close)

	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv("ICEBREAKER_LOG_LEVEL", "error")
	t.Setenv("ICEBREAKER_API_URL", srv.GameCardURL())
	t.Setenv("ICEBREAKER_RATING_URL", srv.RatingURL())
	t.Cleanup(config.ResetGlobalConfigForTest)
	return srv
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--plain"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func seedGames(srv *apitest.Server) {
	srv.AddGame("1", map[string]any{
		"title":         "Navneleken",
		"description":   "Learn names",
		"rules":         "Say your name",
		"categories":    []string{"Inne"},
		"averageRating": 3.5,
	})
	srv.AddGame("2", map[string]any{
		"title":       "Stolleken",
		"description": "Musical chairs",
		"rules":       "Walk around the chairs",
		"categories":  []string{"Inne", "Aktiv"},
	})
	srv.AddGame("3", map[string]any{
		"title":         "Gjemsel",
		"description":   "Hide and seek",
		"rules":         "Count to twenty",
		"categories":    []string{"Ute"},
		"averageRating": 4.5,
	})
}
