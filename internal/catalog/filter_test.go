package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFilterMatchesSearch(t *testing.T) {
	fields := Fields{Name: "Erbil Mall", Description: "Commercial complex downtown"}

	require.True(t, Filter{Search: "erbil"}.Matches(fields))
	require.True(t, Filter{Search: "COMPLEX"}.Matches(fields))
	require.True(t, Filter{Search: "  mall  "}.Matches(fields))
	require.False(t, Filter{Search: "bridge"}.Matches(fields))
}

func TestFilterMatchesCategory(t *testing.T) {
	fields := Fields{Name: "Erbil Mall", Category: "Commercial"}

	require.True(t, Filter{Category: "Commercial"}.Matches(fields))
	require.True(t, Filter{Category: ""}.Matches(fields))
	require.True(t, Filter{Category: CategoryAll}.Matches(fields))
	require.False(t, Filter{Category: "Residential"}.Matches(fields))

	// "All" matches records without a category too.
	require.True(t, Filter{Category: CategoryAll}.Matches(Fields{Name: "Uncategorised"}))
}

func TestFilterMatchesDateRangeInclusive(t *testing.T) {
	created := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	fields := Fields{Name: "Erbil Mall", CreatedAt: created}

	from := created
	to := created
	require.True(t, Filter{From: &from, To: &to}.Matches(fields))

	before := created.Add(-time.Hour)
	require.False(t, Filter{To: &before}.Matches(fields))

	after := created.Add(time.Hour)
	require.False(t, Filter{From: &after}.Matches(fields))
}

func TestApplyPreservesOrder(t *testing.T) {
	type record struct {
		name     string
		category string
	}
	items := []record{
		{"Bridge", "Infrastructure"},
		{"Villa", "Residential"},
		{"Highway", "Infrastructure"},
	}

	matched := Apply(items, Filter{Category: "Infrastructure"}, func(r record) Fields {
		return Fields{Name: r.name, Category: r.category}
	})

	require.Len(t, matched, 2)
	require.Equal(t, "Bridge", matched[0].name)
	require.Equal(t, "Highway", matched[1].name)
}

func TestClampPage(t *testing.T) {
	require.Equal(t, 1, ClampPage(0, 10, 5))
	require.Equal(t, 1, ClampPage(-3, 10, 5))
	require.Equal(t, 2, ClampPage(2, 10, 5))
	require.Equal(t, 2, ClampPage(7, 10, 5))
	require.Equal(t, 3, ClampPage(3, 11, 5))
	require.Equal(t, 4, ClampPage(4, 0, 5))
	require.Equal(t, 9, ClampPage(9, 10, 0))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, pageNum := Paginate(items, 1, 2)
	require.Equal(t, []int{1, 2}, page)
	require.Equal(t, 1, pageNum)

	page, pageNum = Paginate(items, 3, 2)
	require.Equal(t, []int{5}, page)
	require.Equal(t, 3, pageNum)

	// A page beyond the end clamps to the last page.
	page, pageNum = Paginate(items, 9, 2)
	require.Equal(t, []int{5}, page)
	require.Equal(t, 3, pageNum)

	// Non-positive page size disables slicing.
	page, pageNum = Paginate(items, 4, 0)
	require.Equal(t, items, page)
	require.Equal(t, 1, pageNum)
}
