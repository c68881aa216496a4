package pagination

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pages(nums ...int) []PageItem {
	items := make([]PageItem, 0, len(nums))
	for _, n := range nums {
		if n == 0 {
			items = append(items, Gap())
			continue
		}
		items = append(items, PageNumber(n))
	}
	return items
}

func TestWindow(t *testing.T) {
	// 0 stands for an ellipsis in the expectations below.
	tests := []struct {
		name       string
		current    int
		total      int
		maxVisible int
		want       []PageItem
	}{
		{name: "no pages", current: 0, total: 0, want: []PageItem{}},
		{name: "three pages", current: 0, total: 3, want: pages(1, 2, 3)},
		{name: "exactly max visible", current: 4, total: 5, want: pages(1, 2, 3, 4, 5)},
		{name: "middle of twenty", current: 10, total: 20, want: pages(1, 0, 10, 11, 12, 0, 20)},
		{name: "first page", current: 0, total: 20, want: pages(1, 2, 0, 20)},
		{name: "second page", current: 1, total: 20, want: pages(1, 2, 3, 0, 20)},
		{name: "third page", current: 2, total: 20, want: pages(1, 2, 3, 4, 0, 20)},
		{name: "last page", current: 19, total: 20, want: pages(1, 0, 19, 20)},
		{name: "next to last", current: 18, total: 20, want: pages(1, 0, 18, 19, 20)},
		{name: "current beyond range clamps", current: 50, total: 20, want: pages(1, 0, 19, 20)},
		{name: "negative current clamps", current: -3, total: 20, want: pages(1, 2, 0, 20)},
		{name: "six pages", current: 2, total: 6, want: pages(1, 2, 3, 4, 0, 6)},
		{name: "custom max visible", current: 0, total: 8, maxVisible: 10, want: pages(1, 2, 3, 4, 5, 6, 7, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.current, tt.total, tt.maxVisible)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Window(%d, %d) mismatch (-want +got):\n%s", tt.current, tt.total, diff)
			}
		})
	}
}

func TestFormatWindow(t *testing.T) {
	assert.Equal(t, "1 … 10 [11] 12 … 20", FormatWindow(Window(10, 20, 0), 10))
	assert.Equal(t, "[1] 2 3", FormatWindow(Window(0, 3, 0), 0))
	assert.Empty(t, FormatWindow(Window(0, 0, 0), 0))
}

func TestWindowInvariants(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 0; current < total; current++ {
			items := Window(current, total, DefaultMaxVisible)
			require.NotEmpty(t, items)

			seen := map[int]bool{}
			last := 0
			gapsBefore, gapsAfter := 0, 0
			for _, it := range items {
				if it.Ellipsis {
					if last < current+1 {
						gapsBefore++
					} else {
						gapsAfter++
					}
					continue
				}
				assert.False(t, seen[it.Page], "duplicate page %d (current=%d total=%d)", it.Page, current, total)
				assert.Greater(t, it.Page, last, "not increasing (current=%d total=%d)", current, total)
				seen[it.Page] = true
				last = it.Page
			}
			assert.True(t, seen[1], "first page missing")
			assert.True(t, seen[total], "last page missing")
			assert.True(t, seen[current+1], "current page missing")
			assert.LessOrEqual(t, gapsBefore, 1)
			assert.LessOrEqual(t, gapsAfter, 1)
		}
	}
}

func TestSortSpecToggleCycle(t *testing.T) {
	var spec SortSpec

	spec = spec.Toggle("title")
	assert.Equal(t, []SortColumn{{Field: "title", Direction: Ascending}}, spec.Columns())

	spec = spec.Toggle("title")
	assert.Equal(t, []SortColumn{{Field: "title", Direction: Descending}}, spec.Columns())

	spec = spec.Toggle("title")
	assert.Empty(t, spec.Columns())
	assert.True(t, spec.IsEmpty())
}

func TestSortSpecMultiColumnOrder(t *testing.T) {
	spec := SortSpec{}.Toggle("title").Toggle("updatedAt").Toggle("title")

	assert.Equal(t, []SortColumn{
		{Field: "title", Direction: Descending},
		{Field: "updatedAt", Direction: Ascending},
	}, spec.Columns())

	spec = spec.Toggle("title")
	assert.Equal(t, []SortColumn{{Field: "updatedAt", Direction: Ascending}}, spec.Columns())

	spec = spec.Toggle("title")
	assert.Equal(t, []SortColumn{
		{Field: "updatedAt", Direction: Ascending},
		{Field: "title", Direction: Ascending},
	}, spec.Columns(), "re-added column goes to the end")
}

func TestSortSpecToggleDoesNotMutateReceiver(t *testing.T) {
	base := SortSpec{}.Toggle("title")
	_ = base.Toggle("title")
	dir, ok := base.Direction("title")
	require.True(t, ok)
	assert.Equal(t, Ascending, dir)
}

func TestSortSpecQueryString(t *testing.T) {
	assert.Empty(t, SortSpec{}.QueryString())

	spec := NewSortSpec(
		SortColumn{Field: "title", Direction: Ascending},
		SortColumn{Field: "updatedAt", Direction: Descending},
		SortColumn{Field: "title", Direction: Descending},
	)
	assert.Equal(t, "title,asc&sort=updatedAt,desc", spec.QueryString())
	assert.Equal(t, []string{"title,asc", "updatedAt,desc"}, spec.Values())
	assert.Equal(t, spec.QueryString(), spec.QueryString(), "deterministic")
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in        string
		wantField string
		wantDir   Direction
		wantErr   error
	}{
		{in: "title", wantField: "title", wantDir: Ascending},
		{in: "updatedAt:desc", wantField: "updatedAt", wantDir: Descending},
		{in: " title : ASC ", wantField: "title", wantDir: Ascending},
		{in: "", wantErr: ErrEmptySortField},
		{in: ":desc", wantErr: ErrEmptySortField},
		{in: "title:sideways", wantErr: ErrInvalidSortOrder},
		{in: "a:b:c", wantErr: ErrInvalidSortFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			field, dir, err := ParseSort(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestPageSizes(t *testing.T) {
	assert.True(t, IsAllowedPageSize(DefaultPageSize))
	assert.False(t, IsAllowedPageSize(7))
	require.ErrorIs(t, ValidatePageSize(0), ErrInvalidPageSize)
	require.NoError(t, ValidatePageSize(25))

	sizes := AllowedPageSizes()
	sizes[0] = 999
	assert.True(t, IsAllowedPageSize(10), "returned slice is a copy")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(0, 10, 35, 4)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.False(t, meta.HasPrevious)
	assert.True(t, meta.HasNext)

	meta = NewPaginationMeta(3, 10, 35, 4)
	assert.Equal(t, 4, meta.CurrentPage)
	assert.True(t, meta.HasPrevious)
	assert.False(t, meta.HasNext)
}
