package console

// Allowed page sizes for the user list.
var allowedPageSizes = map[int]bool{10: true, 20: true, 50: true, 100: true}

// ValidPageSize reports whether size is one of the supported page sizes.
func ValidPageSize(size int) bool {
	return allowedPageSizes[size]
}

// PageItem is one entry of the rendered page-number strip: either a page
// number or an ellipsis gap.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageWindow derives the visible page-number strip: a sliding window of up
// to five numbers centered on the current page, with the first and last
// page pinned at the edges and ellipses where the window doesn't touch
// them. Pure indexing; no state beyond the two arguments.
func PageWindow(current, total int) []PageItem {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	} else if current > total {
		current = total
	}

	start := current - 2
	if start < 1 {
		start = 1
	}
	end := start + 4
	if end > total {
		end = total
	}
	if end-start+1 < 5 {
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	var items []PageItem

	if start > 1 {
		items = append(items, PageItem{Page: 1})
		if start > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}

	for p := start; p <= end; p++ {
		items = append(items, PageItem{Page: p, Current: p == current})
	}

	if end < total {
		if end < total-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: total})
	}

	return items
}
