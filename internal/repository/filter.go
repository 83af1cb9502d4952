package repository

import (
	"time"

	"github.com/zagros-construction/zagros-api/internal/catalog"
)

// RecordFilter narrows project and service queries. Pagination is applied
// after filtering; an out-of-range page is clamped to the last page.
type RecordFilter struct {
	Search   string
	Category string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

func (f RecordFilter) catalogFilter() catalog.Filter {
	return catalog.Filter{
		Search:   f.Search,
		Category: f.Category,
		From:     f.From,
		To:       f.To,
	}
}

// categoryRestricts reports whether the category narrows the result set, i.e.
// it is neither empty nor the "All" sentinel.
func (f RecordFilter) categoryRestricts() bool {
	return f.Category != "" && f.Category != catalog.CategoryAll
}
