package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{name: "empty", total: 0, page: 1, limit: 10, totalPages: 0, hasNext: false, hasPrev: false},
		{name: "single partial page", total: 3, page: 1, limit: 10, totalPages: 1, hasNext: false, hasPrev: false},
		{name: "exact boundary", total: 20, page: 1, limit: 10, totalPages: 2, hasNext: true, hasPrev: false},
		{name: "middle page", total: 25, page: 2, limit: 10, totalPages: 3, hasNext: true, hasPrev: true},
		{name: "last page", total: 25, page: 3, limit: 10, totalPages: 3, hasNext: false, hasPrev: true},
		{name: "page past end", total: 5, page: 4, limit: 10, totalPages: 1, hasNext: false, hasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNextPage)
			assert.Equal(t, tt.hasPrev, p.HasPreviousPage)
		})
	}
}
