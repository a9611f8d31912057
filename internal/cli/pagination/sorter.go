package pagination

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
)

// ErrInvalidSortField is returned for a field GameSorter does not know.
var ErrInvalidSortField = errors.New("invalid sort field")

// GameSorter orders games by title, rating or id.
type GameSorter struct {
	validFields map[string]bool
}

// NewGameSorter creates a GameSorter.
func NewGameSorter() *GameSorter {
	return &GameSorter{
		validFields: map[string]bool{
			"title":  true,
			"rating": true,
			"id":     true,
		},
	}
}

// IsValidField reports whether field can be sorted on.
func (s *GameSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns the sortable fields in alphabetical order.
func (s *GameSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for f := range s.validFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of games. An empty sortBy keeps the input order.
// Unrated games always sort after rated ones when sorting by rating.
func (s *GameSorter) Sort(games []catalog.Game, sortBy string) ([]catalog.Game, error) {
	field, order, err := ParseSort(sortBy)
	if err != nil {
		return nil, err
	}
	if field == "" {
		return games, nil
	}
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field,
			strings.Join(s.GetValidFields(), ", "))
	}

	sorted := slices.Clone(games)
	desc := order == SortOrderDesc
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if field == "rating" {
			if a.HasRating() != b.HasRating() {
				return a.HasRating()
			}
			if !a.HasRating() {
				return false
			}
			if desc {
				return *a.AverageRating > *b.AverageRating
			}
			return *a.AverageRating < *b.AverageRating
		}

		var c int
		switch field {
		case "title":
			c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case "id":
			c = compareIDs(a.ID, b.ID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
	return sorted, nil
}

// compareIDs orders numeric ids numerically and anything else lexically.
func compareIDs(a, b string) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return x - y
	}
	return strings.Compare(a, b)
}
