package pagination_test

import (
	"fmt"
	"testing"

	"lavender_breeze/internal/lib/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const E = pagination.Ellipsis

func TestClamp(t *testing.T) {
	tests := []struct {
		page, total, size, want int
	}{
		{page: 0, total: 30, size: 12, want: 1},
		{page: -4, total: 30, size: 12, want: 1},
		{page: 2, total: 30, size: 12, want: 2},
		{page: 3, total: 30, size: 12, want: 3},
		{page: 4, total: 30, size: 12, want: 3},
		{page: 5, total: 0, size: 12, want: 1},
		{page: 1, total: 12, size: 12, want: 1},
		{page: 2, total: 12, size: 12, want: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d total=%d", tt.page, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Clamp(tt.page, tt.total, tt.size))
		})
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 30)
	for i := range items {
		items[i] = i
	}

	assert.Equal(t, items[0:12], pagination.Slice(items, 12, 1))
	assert.Equal(t, items[12:24], pagination.Slice(items, 12, 2))
	assert.Equal(t, items[24:30], pagination.Slice(items, 12, 3))
	assert.Equal(t, items[24:30], pagination.Slice(items, 12, 99))
	assert.Empty(t, pagination.Slice([]int{}, 12, 1))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{current: 1, total: 1, want: []int{1}},
		{current: 3, total: 7, want: []int{1, 2, 3, 4, 5, 6, 7}},
		{current: 1, total: 10, want: []int{1, 2, E, 10}},
		{current: 2, total: 10, want: []int{1, 2, 3, E, 10}},
		{current: 3, total: 10, want: []int{1, 2, 3, 4, E, 10}},
		{current: 5, total: 10, want: []int{1, E, 4, 5, 6, E, 10}},
		{current: 8, total: 10, want: []int{1, E, 7, 8, 9, 10}},
		{current: 10, total: 10, want: []int{1, E, 9, 10}},
		{current: 4, total: 8, want: []int{1, E, 3, 4, 5, E, 8}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d", tt.current, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Window(tt.current, tt.total))
		})
	}
}

func TestWindow_Invariants(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			pages := pagination.Window(current, total)

			require.Equal(t, 1, pages[0])
			require.Equal(t, total, pages[len(pages)-1])
			require.Contains(t, pages, current)

			last := 0
			for i, p := range pages {
				if p == E {
					require.NotEqual(t, E, pages[i-1], "double ellipsis for %d of %d", current, total)
					continue
				}
				require.Greater(t, p, last)
				last = p
			}
		}
	}
}

func TestPaginate(t *testing.T) {
	items := make([]string, 25)

	page := pagination.Paginate(items, pagination.GalleryPageSize, 7)

	assert.Equal(t, 3, page.Current)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())
	assert.Equal(t, []int{1, 2, 3}, page.Window)
}
