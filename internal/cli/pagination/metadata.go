package pagination

import (
	"github.com/rshade/gridview/internal/grid"
)

// WindowMeta describes the viewport of a virtualized snapshot.
type WindowMeta struct {
	ScrollOffset int `json:"scroll_offset" yaml:"scroll_offset"`
	StartIndex   int `json:"start_index"   yaml:"start_index"`
	EndIndex     int `json:"end_index"     yaml:"end_index"`
	VisibleCount int `json:"visible_count" yaml:"visible_count"`
	TotalHeight  int `json:"total_height"  yaml:"total_height"`
}

// Meta contains metadata about the part of the dataset a snapshot shows.
// FirstItem and LastItem are 1-based and both 0 when nothing is shown.
type Meta struct {
	Strategy   string         `json:"strategy"         yaml:"strategy"`
	TotalItems int            `json:"total_items"      yaml:"total_items"`
	FirstItem  int            `json:"first_item"       yaml:"first_item"`
	LastItem   int            `json:"last_item"        yaml:"last_item"`
	Page       *grid.PageMeta `json:"page,omitempty"   yaml:"page,omitempty"`
	Window     *WindowMeta    `json:"window,omitempty" yaml:"window,omitempty"`
}

// NewMeta builds snapshot metadata from a frame. top is the first on-screen row and
// visible the number of on-screen rows; both only apply to windowed frames.
func NewMeta[T any](f grid.Frame[T], top, visible int) Meta {
	m := Meta{
		Strategy:   f.Strategy.String(),
		TotalItems: f.Total,
	}
	if f.Total == 0 {
		return m
	}

	switch f.Strategy {
	case grid.StrategyPaged:
		page := f.Page
		m.Page = &page
		m.FirstItem = page.FirstItem
		m.LastItem = page.LastItem
	case grid.StrategyWindowed:
		m.Window = &WindowMeta{
			ScrollOffset: f.Window.ScrollOffset,
			StartIndex:   f.Window.Start,
			EndIndex:     f.Window.End,
			VisibleCount: f.Window.VisibleCount,
			TotalHeight:  f.Window.TotalHeight,
		}
		m.FirstItem = top + 1
		m.LastItem = min(f.Total, top+visible)
	case grid.StrategyAll:
		m.FirstItem = 1
		m.LastItem = f.Total
	}
	return m
}
