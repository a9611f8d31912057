package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icebreaker-games/icebreaker/internal/catalog"
	"github.com/icebreaker-games/icebreaker/internal/cli/pagination"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  pagination.Params
		wantErr error
	}{
		{name: "defaults", params: pagination.Params{}},
		{name: "limit and offset", params: pagination.Params{Limit: 10, Offset: 5}},
		{name: "page mode", params: pagination.Params{Page: 2, PageSize: 20}},
		{name: "negative limit", params: pagination.Params{Limit: -1}, wantErr: pagination.ErrInvalidLimit},
		{name: "limit too large", params: pagination.Params{Limit: pagination.MaxLimit + 1}, wantErr: pagination.ErrInvalidLimit},
		{name: "negative offset", params: pagination.Params{Offset: -1}, wantErr: pagination.ErrInvalidOffset},
		{name: "negative page", params: pagination.Params{Page: -1}, wantErr: pagination.ErrInvalidPage},
		{name: "mixed modes", params: pagination.Params{Page: 1, PageSize: 10, Offset: 3}, wantErr: pagination.ErrMixedModes},
		{name: "page size without page", params: pagination.Params{PageSize: 10}, wantErr: pagination.ErrPageSizeNoPage},
		{name: "page without page size", params: pagination.Params{Page: 1}, wantErr: pagination.ErrInvalidPageSize},
		{name: "bad sort order", params: pagination.Params{Sort: "title:up"}, wantErr: pagination.ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name   string
		params pagination.Params
		want   []int
	}{
		{name: "no limit", params: pagination.Params{}, want: items},
		{name: "limit", params: pagination.Params{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset", params: pagination.Params{Offset: 5}, want: []int{6, 7}},
		{name: "offset and limit", params: pagination.Params{Offset: 2, Limit: 2}, want: []int{3, 4}},
		{name: "offset past end", params: pagination.Params{Offset: 10}, want: []int{}},
		{name: "second page", params: pagination.Params{Page: 2, PageSize: 3}, want: []int{4, 5, 6}},
		{name: "last partial page", params: pagination.Params{Page: 3, PageSize: 3}, want: []int{7}},
		{name: "page past end clamps", params: pagination.Params{Page: 9, PageSize: 3}, want: []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Apply(tt.params, items))
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, PageSize: 3}, 7)
	assert.Equal(t, pagination.Meta{
		CurrentPage: 2,
		PageSize:    3,
		TotalPages:  3,
		TotalItems:  7,
		HasPrevious: true,
		HasNext:     true,
	}, meta)

	meta = pagination.NewMeta(pagination.Params{}, 4)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

func TestParseSort(t *testing.T) {
	field, order, err := pagination.ParseSort("rating:DESC")
	require.NoError(t, err)
	assert.Equal(t, "rating", field)
	assert.Equal(t, pagination.SortOrderDesc, order)

	_, _, err = pagination.ParseSort("a:b:c")
	require.ErrorIs(t, err, pagination.ErrInvalidSortFormat)

	_, _, err = pagination.ParseSort(":asc")
	require.ErrorIs(t, err, pagination.ErrEmptySortField)
}

func TestGameSorter(t *testing.T) {
	rating := func(v float64) *float64 { return &v }
	games := []catalog.Game{
		{ID: "10", Title: "banana"},
		{ID: "2", Title: "Apple", AverageRating: rating(3)},
		{ID: "3", Title: "cherry", AverageRating: rating(4.5)},
	}
	sorter := pagination.NewGameSorter()

	ids := func(gs []catalog.Game) []string {
		out := make([]string, len(gs))
		for i, g := range gs {
			out[i] = g.ID
		}
		return out
	}

	tests := []struct {
		sortBy string
		want   []string
	}{
		{sortBy: "", want: []string{"10", "2", "3"}},
		{sortBy: "title", want: []string{"2", "10", "3"}},
		{sortBy: "title:desc", want: []string{"3", "10", "2"}},
		{sortBy: "id", want: []string{"2", "3", "10"}},
		{sortBy: "rating", want: []string{"2", "3", "10"}},
		{sortBy: "rating:desc", want: []string{"3", "2", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			got, err := sorter.Sort(games, tt.sortBy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	_, err := sorter.Sort(games, "author")
	require.ErrorIs(t, err, pagination.ErrInvalidSortField)
	assert.Equal(t, []string{"id", "rating", "title"}, sorter.GetValidFields())
	assert.Equal(t, "10", games[0].ID, "input not modified")
}
