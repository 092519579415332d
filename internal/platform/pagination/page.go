// Package pagination normalizes list paging and ordering inputs and derives
// the visible page window for list views.
package pagination

// DefaultSpan is the number of page links shown when no span is configured.
const DefaultSpan = 5

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// TotalPages returns the number of pages needed to show count records.
// An empty result has zero pages.
func TotalPages(count int, pageSize int) int {
	if count <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage clamps page into [1, totalPages]. Page 1 is always valid, even for
// an empty result.
func ClampPage(page int, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window describes one page of a paged list and the page links around it.
type Window struct {
	Current    int
	PageSize   int
	TotalCount int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	// Pages are the page numbers to render as links, in ascending order.
	Pages []int
	// StartIndex and EndIndex are the 1-based record positions shown on the
	// current page; both are zero for an empty result.
	StartIndex int
	EndIndex   int
}

// NewWindow builds the page window for current.
//
// The visible links form a sliding window of at most span pages centered on
// current and shifted inward at either end of the range so it never runs
// past page 1 or the last page.
func NewWindow(current int, totalCount int, pageSize int, span int) Window {
	if pageSize <= 0 {
		pageSize = 1
	}
	if span <= 0 {
		span = DefaultSpan
	}
	if totalCount < 0 {
		totalCount = 0
	}
	totalPages := TotalPages(totalCount, pageSize)
	current = ClampPage(current, totalPages)

	w := Window{
		Current:    current,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
	}
	if totalPages == 0 {
		return w
	}

	start := max(1, current-span/2)
	end := min(totalPages, start+span-1)
	start = max(1, end-span+1)
	w.Pages = make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		w.Pages = append(w.Pages, page)
	}

	w.StartIndex = (current-1)*pageSize + 1
	w.EndIndex = min(totalCount, current*pageSize)
	return w
}

// ShowFirst reports whether the window starts after page 1 so a jump link to the
// first page is useful.
func (w Window) ShowFirst() bool {
	return len(w.Pages) > 0 && w.Pages[0] > 1
}

// ShowLast reports whether the window ends before the last page.
func (w Window) ShowLast() bool {
	return len(w.Pages) > 0 && w.Pages[len(w.Pages)-1] < w.TotalPages
}
