package pagination

import (
	"strconv"
	"strings"
)

// DefaultMaxVisible is the page count up to which every page is listed.
const DefaultMaxVisible = 5

// PageItem is one entry of a page window: a 1-based page number or an ellipsis.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageNumber returns an item for the 1-based page n.
func PageNumber(n int) PageItem { return PageItem{Page: n} }

// Gap returns an ellipsis item.
func Gap() PageItem { return PageItem{Ellipsis: true} }

// Window computes the page controls for a 0-based currentPage out of totalPages.
//
// Up to maxVisible pages are listed in full. Beyond that the first and last pages are
// always present, the current page is shown with one neighbour on each side, and an
// ellipsis marks each side where the neighbourhood does not reach the end. A
// non-positive maxVisible means DefaultMaxVisible.
func Window(currentPage, totalPages, maxVisible int) []PageItem {
	if totalPages <= 0 {
		return []PageItem{}
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}

	if totalPages <= maxVisible {
		items := make([]PageItem, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			items = append(items, PageNumber(p))
		}
		return items
	}

	currentPage = max(0, min(currentPage, totalPages-1))
	current := currentPage + 1

	// Neighbourhood, clamped to the pages between first and last.
	from := max(2, current-1)
	to := min(totalPages-1, current+1)

	items := []PageItem{PageNumber(1)}
	if from > 2 {
		items = append(items, Gap())
	}
	for p := from; p <= to; p++ {
		items = append(items, PageNumber(p))
	}
	if to < totalPages-1 {
		items = append(items, Gap())
	}
	return append(items, PageNumber(totalPages))
}

// FormatWindow renders items as plain text, bracketing the 0-based current page:
// "1 … 4 [5] 6 … 20".
func FormatWindow(items []PageItem, currentPage int) string {
	parts := make([]string, len(items))
	for i, it := range items {
		switch {
		case it.Ellipsis:
			parts[i] = "…"
		case it.Page == currentPage+1:
			parts[i] = "[" + strconv.Itoa(it.Page) + "]"
		default:
			parts[i] = strconv.Itoa(it.Page)
		}
	}
	return strings.Join(parts, " ")
}
