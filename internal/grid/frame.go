package grid

// HeaderCell is one rendered column header.
type HeaderCell struct {
	Key       string
	Label     string
	Sortable  bool
	Direction Direction
	Align     Align
	Width     int
	ClassName string
}

// Cell is one rendered cell.
type Cell struct {
	Text      string
	Align     Align
	ClassName string
}

// FrameRow is one materialized row.
type FrameRow[T any] struct {
	// Index is the row's absolute position in the sorted dataset.
	Index    int
	Key      string
	Row      T
	Cells    []Cell
	Selected bool
	Expanded bool
	Striped  bool
	Detail   string
}

// Frame is the output of one render pass: the bounded row subset plus header and footer
// chrome. Rows is empty in every state but StateReady.
type Frame[T any] struct {
	State    RenderState
	Error    string
	CanRetry bool

	Strategy Strategy
	Header   []HeaderCell
	Rows     []FrameRow[T]

	// ShowCheckboxes is set when rows are selectable. SelectAll is the header control
	// state and only applies in multi mode.
	ShowCheckboxes bool
	Selection      SelectionMode
	SelectAll      CheckState
	SelectedCount  int

	Sort  SortState
	Total int

	// Window is set for StrategyWindowed. Its TotalHeight and Offset position the rows.
	Window Window
	// Page is set for StrategyPaged.
	Page PageMeta

	Scrolling bool
	RowHeight int

	Theme        string
	Density      Density
	Striped      bool
	Bordered     bool
	Hoverable    bool
	StickyHeader bool
}

// Frame renders the current state. Sorting runs only if the dataset or sort changed
// since the last pass.
func (g *Grid[T]) Frame() Frame[T] {
	f := Frame[T]{
		State:        g.State(),
		Selection:    g.selection.Mode(),
		Strategy:     g.cfg.Strategy(),
		Header:       g.header(),
		Sort:         g.sort,
		Total:        len(g.rows),
		RowHeight:    g.cfg.RowHeight(),
		Theme:        g.cfg.Theme,
		Density:      g.cfg.Density,
		Striped:      g.cfg.Striped,
		Bordered:     g.cfg.Bordered,
		Hoverable:    g.cfg.Hoverable,
		StickyHeader: g.cfg.StickyHeader,
	}

	switch f.State {
	case StateError:
		f.Error = g.errMsg
		f.CanRetry = g.cb.OnRetry != nil
		return f
	case StateLoading, StateEmpty:
		return f
	case StateReady:
	}

	f.ShowCheckboxes = g.selection.Mode() != SelectNone
	f.SelectedCount = g.selection.Len()
	if g.selection.Mode() == SelectMulti {
		f.SelectAll = g.selection.AllState(g.distinct)
	}

	start, end := 0, len(g.rows)
	switch f.Strategy {
	case StrategyWindowed:
		f.Window = g.Window()
		f.Scrolling = g.scroll.Active()
		start, end = f.Window.Start, f.Window.End
	case StrategyPaged:
		f.Page = g.PageMeta()
		slice := g.page.Clamp(len(g.rows)).Slice(len(g.rows))
		start, end = slice.Start, slice.End
	case StrategyAll:
	}

	f.Rows = g.materialize(start, end, f.Strategy != StrategyWindowed)
	return f
}

func (g *Grid[T]) header() []HeaderCell {
	cells := make([]HeaderCell, len(g.columns))
	for i, c := range g.columns {
		h := HeaderCell{
			Key:       c.Key,
			Label:     c.Label,
			Sortable:  g.cfg.Sortable && c.Sortable,
			Align:     c.Align,
			Width:     c.ResolvedWidth(0),
			ClassName: c.HeaderClass,
		}
		if g.sort.Field == c.Key {
			h.Direction = g.sort.Direction
		}
		cells[i] = h
	}
	return cells
}

// materialize renders sorted rows [start, end).
func (g *Grid[T]) materialize(start, end int, withDetail bool) []FrameRow[T] {
	order := g.sortedOrder()
	rows := make([]FrameRow[T], 0, end-start)
	for i := start; i < end; i++ {
		idx := order[i]
		row, key := g.rows[idx], g.keys[idx]

		cells := make([]Cell, len(g.columns))
		for c, col := range g.columns {
			cells[c] = Cell{Text: col.CellText(row, i), Align: col.Align, ClassName: col.CellClass}
		}

		fr := FrameRow[T]{
			Index:    i,
			Key:      key,
			Row:      row,
			Cells:    cells,
			Selected: g.selection.Has(key),
			Striped:  g.cfg.Striped && i%2 == 1,
		}
		if withDetail && g.detail != nil && g.Expanded(key) {
			fr.Expanded = true
			fr.Detail = g.detail(row, i)
		}
		rows = append(rows, fr)
	}
	return rows
}
