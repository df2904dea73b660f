package grid

// Density selects the fixed row height.
type Density string

// Densities.
const (
	DensityCompact     Density = "compact"
	DensityNormal      Density = "normal"
	DensityComfortable Density = "comfortable"
)

// Windowing defaults.
const (
	// DefaultViewportHeight stands in for a viewport that has not been measured yet.
	DefaultViewportHeight = 600
	// DefaultOverscan is the number of extra rows rendered above and below the viewport.
	DefaultOverscan = 5

	rowHeightCompact     = 32
	rowHeightNormal      = 40
	rowHeightComfortable = 48
)

// RowHeight returns the fixed row height for the density. Unknown densities use normal.
func (d Density) RowHeight() int {
	switch d {
	case DensityCompact:
		return rowHeightCompact
	case DensityComfortable:
		return rowHeightComfortable
	default:
		return rowHeightNormal
	}
}

// Window is the half-open range of row indices to materialize for a scroll position.
type Window struct {
	Start        int
	End          int
	VisibleCount int

	// ScrollOffset is the offset the window was computed for, after clamping.
	ScrollOffset int
	// TotalHeight is the spacer height that anchors the scrollable area (N * rowHeight).
	TotalHeight int
	// Offset is the translation of the first materialized row (Start * rowHeight).
	Offset int
}

// Len returns the number of materialized rows.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether index is materialized.
func (w Window) Contains(index int) bool {
	return index >= w.Start && index < w.End
}

// ComputeWindow returns the rows to materialize for n rows of rowHeight in a viewport of
// viewportHeight scrolled to scrollOffset, padded by overscan rows on each side.
//
// scrollOffset is clamped to [0, n*rowHeight-viewportHeight] so that the window always
// covers a full viewport. A zero viewportHeight falls back to DefaultViewportHeight.
func ComputeWindow(n, rowHeight, viewportHeight, scrollOffset, overscan int) Window {
	if rowHeight <= 0 {
		rowHeight = rowHeightNormal
	}
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}
	if overscan < 0 {
		overscan = 0
	}
	if n < 0 {
		n = 0
	}

	total := n * rowHeight
	s := clamp(scrollOffset, 0, MaxScrollOffset(n, rowHeight, viewportHeight))

	visible := ceilDiv(viewportHeight, rowHeight)
	start := max(0, s/rowHeight-overscan)
	end := min(n, ceilDiv(s+viewportHeight, rowHeight)+overscan)
	start = min(start, end)

	return Window{
		Start:        start,
		End:          end,
		VisibleCount: visible,
		ScrollOffset: s,
		TotalHeight:  total,
		Offset:       start * rowHeight,
	}
}

// MaxScrollOffset returns the largest meaningful scroll offset for n rows.
func MaxScrollOffset(n, rowHeight, viewportHeight int) int {
	if viewportHeight <= 0 {
		viewportHeight = DefaultViewportHeight
	}
	return max(0, n*rowHeight-viewportHeight)
}

// ViewportState is the windowing state carried between scroll events.
type ViewportState struct {
	ScrollOffset int
	StartIndex   int
	EndIndex     int
	VisibleCount int
}

func viewportFromWindow(w Window) ViewportState {
	return ViewportState{
		ScrollOffset: w.ScrollOffset,
		StartIndex:   w.Start,
		EndIndex:     w.End,
		VisibleCount: w.VisibleCount,
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
