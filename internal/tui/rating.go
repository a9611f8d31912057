package tui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

// printer formats scores consistently regardless of the user's locale.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

const starGlyph = "★"

// FormatScore formats a rating score with one decimal, e.g. "4.5".
func FormatScore(score float64) string {
	return printer.Sprintf("%.1f", score)
}

// FormatRatingCount formats a count of ratings, e.g. "1,204 ratings".
func FormatRatingCount(n int) string {
	if n == 1 {
		return "1 rating"
	}
	return printer.Sprintf("%d ratings", n)
}

// RenderAverage renders the average rating indicator, or "" when unrated.
func RenderAverage(avg *float64) string {
	if avg == nil {
		return ""
	}
	return StarStyle.Render(starGlyph) + " " + FormatScore(*avg)
}

// RenderRating renders one rating: the user, a star with the score, then the comment.
// Missing fields render as empty text.
func RenderRating(r catalog.Rating) string {
	var sb strings.Builder
	sb.WriteString(LabelStyle.Render(r.Username))
	sb.WriteString("  ")
	sb.WriteString(StarStyle.Render(starGlyph))
	sb.WriteString(" ")
	sb.WriteString(FormatScore(r.Score))
	if r.Comment != "" {
		sb.WriteString("\n  ")
		sb.WriteString(r.Comment)
	}
	return sb.String()
}
