package grid

// Pagination defaults.
const (
	DefaultPageSize = 25
	FirstPage       = 1
)

// PageState is the current page (1-based) and page size.
type PageState struct {
	Current int
	Size    int
}

// TotalPages returns ceil(total/size). It is 0 for an empty dataset.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return ceilDiv(total, size)
}

// Clamp returns the state with Current inside [1, max(1, TotalPages)].
func (p PageState) Clamp(total int) PageState {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	p.Current = clamp(p.Current, FirstPage, max(FirstPage, TotalPages(total, p.Size)))
	return p
}

// PageSlice is the subset of rows shown on one page.
type PageSlice struct {
	// Start and End are the 0-based half-open index range.
	Start int
	End   int
	// FirstItem and LastItem are the 1-based positions for display. Both are 0 when empty.
	FirstItem int
	LastItem  int
}

// Slice returns the rows of the current page for total rows. p should already be clamped.
func (p PageState) Slice(total int) PageSlice {
	if total <= 0 || p.Size <= 0 {
		return PageSlice{}
	}
	start := min((p.Current-1)*p.Size, total)
	end := min(p.Current*p.Size, total)
	ps := PageSlice{Start: start, End: end}
	if end > start {
		ps.FirstItem = start + 1
		ps.LastItem = end
	}
	return ps
}

// PageMeta describes the current page for footers and structured output.
type PageMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
	FirstItem   int  `json:"first_item"   yaml:"first_item"`
	LastItem    int  `json:"last_item"    yaml:"last_item"`
}

// Meta builds page metadata for total rows.
func (p PageState) Meta(total int) PageMeta {
	p = p.Clamp(total)
	pages := TotalPages(total, p.Size)
	slice := p.Slice(total)
	return PageMeta{
		CurrentPage: p.Current,
		PageSize:    p.Size,
		TotalPages:  pages,
		TotalItems:  total,
		HasPrevious: p.Current > FirstPage,
		HasNext:     p.Current < pages,
		FirstItem:   slice.FirstItem,
		LastItem:    slice.LastItem,
	}
}
