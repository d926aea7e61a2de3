package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func searchFixture() []types.Record {
	return []types.Record{
		rec(types.Values{"id": 1, "name": "Pool", "category": "spa", "capacity": 30}),
		rec(types.Values{"id": 2, "name": "Gym", "category": "fitness", "capacity": 12}),
		rec(types.Values{"id": 3, "name": "Sauna", "category": "spa", "capacity": 8}),
		rec(types.Values{"id": 4, "name": "Yoga Room", "category": "fitness"}),
	}
}

func TestSearch_TermAndFilter(t *testing.T) {
	tests := []struct {
		name   string
		params SearchParams
		want   []types.ID
	}{
		{
			name:   "empty term and filter keep everything",
			params: SearchParams{Fields: []string{"name"}},
			want:   []types.ID{"1", "2", "3", "4"},
		},
		{
			name:   "case-insensitive substring",
			params: SearchParams{Term: "POO", Fields: []string{"name"}},
			want:   []types.ID{"1"},
		},
		{
			name:   "term matches any search field",
			params: SearchParams{Term: "spa", Fields: []string{"name", "category"}},
			want:   []types.ID{"1", "3"},
		},
		{
			name:   "no match",
			params: SearchParams{Term: "bowling", Fields: []string{"name", "category"}},
			want:   []types.ID{},
		},
		{
			name:   "filter is exact",
			params: SearchParams{FilterValue: "fitness", FilterField: "category"},
			want:   []types.ID{"2", "4"},
		},
		{
			name:   "filter does not match substrings",
			params: SearchParams{FilterValue: "fit", FilterField: "category"},
			want:   []types.ID{},
		},
		{
			name: "term and filter combine",
			params: SearchParams{
				Term: "o", Fields: []string{"name"},
				FilterValue: "fitness", FilterField: "category",
			},
			want: []types.ID{"4"},
		},
		{
			name:   "numeric fields are searched by their text",
			params: SearchParams{Term: "30", Fields: []string{"capacity"}},
			want:   []types.ID{"1"},
		},
		{
			name:   "sort ascending puts missing values first",
			params: SearchParams{Sort: SortBy{Field: "capacity"}},
			want:   []types.ID{"4", "3", "2", "1"},
		},
		{
			name:   "sort descending",
			params: SearchParams{Sort: SortBy{Field: "name", Desc: true}},
			want:   []types.ID{"4", "3", "1", "2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(searchFixture(), tt.params)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearch_DefaultFilterFieldIsStatus(t *testing.T) {
	data := []types.Record{
		rec(types.Values{"id": "a", "status": "pending"}),
		rec(types.Values{"id": "b", "status": "done"}),
	}
	got := Search(data, SearchParams{FilterValue: "done"})
	assert.Equal(t, []types.ID{"b"}, ids(got))
}

func TestSearch_DoesNotModifyInput(t *testing.T) {
	data := searchFixture()
	Search(data, SearchParams{Sort: SortBy{Field: "name", Desc: true}})
	assert.Equal(t, []types.ID{"1", "2", "3", "4"}, ids(data))
}

func TestParseViewMode(t *testing.T) {
	m, err := ParseViewMode("grid")
	assert.NoError(t, err)
	assert.Equal(t, ViewGrid, m)

	_, err = ParseViewMode("table")
	assert.ErrorIs(t, err, types.ErrInvalidViewMode)
}
