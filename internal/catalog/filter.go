// Package catalog implements the pure filtering, search, and pagination rules
// shared by the file-backed repositories and the analytics aggregator. The
// SQL-backed repositories express the same predicates as query clauses.
package catalog

import (
	"strings"
	"time"
)

// CategoryAll is the sentinel category matching every record, including
// records with an empty category.
const CategoryAll = "All"

// Filter narrows a record list. Zero values impose no restriction.
type Filter struct {
	Search   string
	Category string
	From     *time.Time
	To       *time.Time
}

// Fields are the filterable attributes extracted from a record.
type Fields struct {
	Name        string
	Description string
	Category    string
	CreatedAt   time.Time
}

// Matches reports whether a record's fields satisfy the filter. Search is a
// case-insensitive substring match on name or description; category is an
// exact match with "All" (or empty) matching everything; the date range is
// inclusive on both bounds.
func (f Filter) Matches(fields Fields) bool {
	if f.Category != "" && f.Category != CategoryAll && fields.Category != f.Category {
		return false
	}
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		name := strings.ToLower(fields.Name)
		description := strings.ToLower(fields.Description)
		if !strings.Contains(name, search) && !strings.Contains(description, search) {
			return false
		}
	}
	if f.From != nil && fields.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && fields.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// Apply returns the records matching the filter, in input order.
func Apply[T any](items []T, filter Filter, extract func(T) Fields) []T {
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if filter.Matches(extract(item)) {
			matched = append(matched, item)
		}
	}
	return matched
}

// ClampPage clamps page into [1, ceil(total/pageSize)], so a page left beyond
// the end after the filtered set shrinks still resolves to the last page.
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || total <= 0 {
		return page
	}
	maxPage := (total + pageSize - 1) / pageSize
	if page > maxPage {
		return maxPage
	}
	return page
}

// Paginate slices one page out of items and returns it with the clamped page
// number. A non-positive pageSize disables slicing.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		return items, 1
	}
	page = ClampPage(page, len(items), pageSize)
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, page
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page
}
