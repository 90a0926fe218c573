package pagination

// Ellipsis marks a gap in the page list returned by Window.
const Ellipsis = 0

const (
	// GalleryPageSize is four rows of three images.
	GalleryPageSize = 4 * 3
	// PostsPageSize is three rows of four cards.
	PostsPageSize = 3 * 4

	windowDelta  = 1
	maxFlatPages = 7
)

// TotalPages is never less than one, so an empty list still has a page 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}

	return (total + pageSize - 1) / pageSize
}

// Clamp keeps page inside [1, TotalPages(total, pageSize)].
func Clamp(page, total, pageSize int) int {
	last := TotalPages(total, pageSize)

	switch {
	case page < 1:
		return 1
	case page > last:
		return last
	default:
		return page
	}
}

// Slice returns the items shown on page. page is clamped first.
func Slice[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 {
		return items
	}

	page = Clamp(page, len(items), pageSize)

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// Window lists the page buttons to draw. Up to seven pages are all listed.
// Past that the first and last pages are always present, the current page is
// surrounded by one neighbour on each side, and Ellipsis fills the gaps.
func Window(current, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}

	if totalPages <= maxFlatPages {
		pages := make([]int, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			pages = append(pages, p)
		}

		return pages
	}

	start := max(2, current-windowDelta)
	end := min(totalPages-1, current+windowDelta)

	pages := []int{1}
	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	if end < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	pages = append(pages, totalPages)

	return pages
}

// Page is everything a template needs to draw one page of a list.
type Page[T any] struct {
	Items      []T
	Current    int
	TotalPages int
	Window     []int
}

func (p Page[T]) HasPrev() bool {
	return p.Current > 1
}

func (p Page[T]) HasNext() bool {
	return p.Current < p.TotalPages
}

func (p Page[T]) Prev() int {
	return p.Current - 1
}

func (p Page[T]) Next() int {
	return p.Current + 1
}

// Paginate clamps page and cuts items for it.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	total := TotalPages(len(items), pageSize)
	current := Clamp(page, len(items), pageSize)

	return Page[T]{
		Items:      Slice(items, pageSize, current),
		Current:    current,
		TotalPages: total,
		Window:     Window(current, total),
	}
}
