// Package listview provides a generic scrolling list for Bubble Tea views.
//
// Only the rows inside the viewport, plus a small buffer, are rendered, so the
// game list stays responsive however large the catalogue grows. Navigation
// follows the usual terminal bindings (arrows, j/k, pgup/pgdn, home/end, g/G).
package listview
