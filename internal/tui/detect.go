package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how a command presents its result.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without an event loop.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// DetectOutputMode picks the output mode for stdout. plain forces plain text,
// noColor disables styling, and noInteractive keeps styled output but skips the TUI.
func DetectOutputMode(plain, noColor, noInteractive bool) OutputMode {
	if plain || !isTerminal(os.Stdout) {
		return OutputModePlain
	}
	if noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if noInteractive || os.Getenv("CI") != "" || !isTerminal(os.Stdin) {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}
