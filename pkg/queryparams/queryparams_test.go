package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		in   ListParams
		want ListParams
	}{
		{
			name: "zero values get defaults",
			in:   ListParams{},
			want: ListParams{Page: 1, PerPage: 20, SortBy: "created_at", OrderBy: "desc"},
		},
		{
			name: "per_page clamped to max",
			in:   ListParams{Page: 2, PerPage: 500, SortBy: "date", OrderBy: "asc"},
			want: ListParams{Page: 2, PerPage: 100, SortBy: "date", OrderBy: "asc"},
		},
		{
			name: "invalid order_by falls back",
			in:   ListParams{Page: 1, PerPage: 10, SortBy: "id", OrderBy: "sideways"},
			want: ListParams{Page: 1, PerPage: 10, SortBy: "id", OrderBy: "desc"},
		},
		{
			name: "negative page reset",
			in:   ListParams{Page: -3, PerPage: 10},
			want: ListParams{Page: 1, PerPage: 10, SortBy: "created_at", OrderBy: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 25}
	assert.Equal(t, 50, p.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(1, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
}
