package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// TerminalWidth returns the width of stdout, or defaultWidth when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// RenderGamePlain writes a game page as plain text.
func RenderGamePlain(w io.Writer, d GameDetail) error {
	g := d.Game
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", g.Title)
	fmt.Fprintf(&sb, "%s\n", strings.Repeat("=", max(len([]rune(g.Title)), 1)))
	fmt.Fprintf(&sb, "ID:          %s\n", g.ID)
	if len(g.Categories) > 0 {
		fmt.Fprintf(&sb, "Categories:  %s\n", strings.Join(g.Categories, ", "))
	}
	if g.AverageRating != nil {
		fmt.Fprintf(&sb, "Rating:      %s\n", FormatScore(*g.AverageRating))
	}
	fmt.Fprintf(&sb, "\nDESCRIPTION\n%s\n\nRULES\n%s\n\nRATINGS\n", g.Description, g.Rules)

	switch {
	case d.RatingsErr != nil:
		sb.WriteString("Ratings unavailable\n")
	case len(d.Ratings) == 0:
		sb.WriteString("No ratings yet\n")
	default:
		for _, r := range d.Ratings {
			fmt.Fprintf(&sb, "- %s (%s): %s\n", r.Username, FormatScore(r.Score), r.Comment)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing game: %w", err)
	}
	return nil
}

// RenderGameStyled writes a game page with terminal styling.
func RenderGameStyled(w io.Writer, d GameDetail, width int) error {
	if _, err := fmt.Fprintln(w, RenderGameDetail(d, width)); err != nil {
		return fmt.Errorf("writing game: %w", err)
	}
	return nil
}

// RenderGamesTable writes games as an aligned table.
func RenderGamesTable(w io.Writer, games []catalog.Game) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "ID\tTITLE\tRATING\tCATEGORIES\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--\t-----\t------\t----------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, g := range games {
		rating := "-"
		if g.AverageRating != nil {
			rating = FormatScore(*g.AverageRating)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			g.ID, g.Title, rating, strings.Join(g.Categories, ", "),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if _, err := fmt.Fprintf(tw, "\n%s\n", FormatGameCount(len(games))); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return tw.Flush()
}

// FormatGameCount formats a count of games, e.g. "1,024 games".
func FormatGameCount(n int) string {
	if n == 1 {
		return "1 game"
	}
	return printer.Sprintf("%d games", n)
}
