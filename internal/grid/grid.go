package grid

import (
	"github.com/rs/zerolog"
)

// DetailFunc renders the expanded detail of a row.
type DetailFunc[T any] func(row T, index int) string

// Options configures a new Grid. Columns and Key are required.
type Options[T any] struct {
	Config    Config
	Columns   []Column[T]
	Key       KeyFunc[T]
	Callbacks Callbacks[T]

	// Compare orders defined cell values. Nil uses CompareValues.
	Compare CompareFunc
	// Detail renders expanded rows. Nil disables expansion.
	Detail DetailFunc[T]
	// Logger receives debug events. Nil discards them.
	Logger *zerolog.Logger
	// ScrollNotify is called when the scrolling indicator changes. It may run on a
	// timer goroutine.
	ScrollNotify func(active bool)
	// Scroll overrides the scrolling indicator, mainly for tests.
	Scroll *ScrollIndicator
}

// sortMemo identifies the inputs the cached order was computed from.
type sortMemo struct {
	valid   bool
	version uint64
	sort    SortState
}

// Grid is one mounted grid instance. It owns its sort, selection, viewport and page
// state and is not safe for concurrent use.
type Grid[T any] struct {
	cfg     Config
	columns []Column[T]
	keyOf   KeyFunc[T]
	cb      Callbacks[T]
	compare CompareFunc
	detail  DetailFunc[T]
	log     zerolog.Logger

	rows    []T
	keys    []string
	// distinct is the number of unique keys; duplicate keys share one selection entry.
	distinct int
	version uint64
	loading bool
	errMsg  string

	sort       SortState
	order      []int
	memo       sortMemo
	sortPasses int

	selection Selection
	expanded  map[string]struct{}
	viewport  ViewportState
	page      PageState
	scroll    *ScrollIndicator
}

// New mounts a grid with no data, no sort, no selection, offset 0 and page 1.
func New[T any](opts Options[T]) *Grid[T] {
	cfg := opts.Config.normalized()

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "grid").Logger()
	}

	scroll := opts.Scroll
	if scroll == nil {
		scroll = NewScrollIndicator(opts.ScrollNotify)
	}

	g := &Grid[T]{
		cfg:       cfg,
		columns:   opts.Columns,
		keyOf:     opts.Key,
		cb:        opts.Callbacks,
		compare:   opts.Compare,
		detail:    opts.Detail,
		log:       log,
		selection: NewSelection(cfg.Selectable),
		expanded:  make(map[string]struct{}),
		page:      PageState{Current: FirstPage, Size: cfg.PageSize},
		scroll:    scroll,
	}
	g.recomputeWindow(0)
	return g
}

// Close unmounts the grid and cancels the scrolling indicator timer.
func (g *Grid[T]) Close() {
	g.scroll.Stop()
}

// Dispatch applies one event synchronously.
func (g *Grid[T]) Dispatch(ev Event) {
	switch e := ev.(type) {
	case DataReplaced[T]:
		g.replaceData(e.Rows)
	case ColumnsReplaced[T]:
		g.replaceColumns(e.Columns)
	case StatusChanged:
		g.loading = e.Loading
		g.errMsg = e.Err
	case Resized:
		g.cfg.ViewportHeight = max(0, e.Height)
		g.recomputeWindow(g.viewport.ScrollOffset)
	case Scrolled:
		g.scrollTo(e.Offset)
	case SortClicked:
		g.clickSort(e.Field)
	case RowClicked:
		g.clickRow(e.Index)
	case RowDoubleClicked:
		g.doubleClickRow(e.Index)
	case SelectAllToggled:
		g.toggleAll()
	case ExpandToggled:
		g.toggleExpand(e.Index)
	case PageChanged:
		g.changePage(e.Page)
	case PageSizeChanged:
		g.changePageSize(e.Size)
	case RetryRequested:
		if g.State() == StateError && g.cb.OnRetry != nil {
			g.cb.OnRetry()
		}
	default:
		g.log.Debug().Type("event", ev).Msg("ignoring unknown event")
	}
}

// State returns the render state for the current inputs.
func (g *Grid[T]) State() RenderState {
	return Resolve(g.loading, g.errMsg, len(g.rows))
}

// Config returns the effective configuration.
func (g *Grid[T]) Config() Config {
	return g.cfg
}

// Columns returns the column set in display order.
func (g *Grid[T]) Columns() []Column[T] {
	return g.columns
}

// Len returns the number of rows in the dataset.
func (g *Grid[T]) Len() int {
	return len(g.rows)
}

// Sort returns the active sort.
func (g *Grid[T]) Sort() SortState {
	return g.sort
}

// Viewport returns the windowing state.
func (g *Grid[T]) Viewport() ViewportState {
	return g.viewport
}

// Window returns the current window with spacer geometry.
func (g *Grid[T]) Window() Window {
	return ComputeWindow(len(g.rows), g.cfg.RowHeight(), g.cfg.ViewportHeight, g.viewport.ScrollOffset, g.cfg.Overscan)
}

// PageMeta returns the current page metadata.
func (g *Grid[T]) PageMeta() PageMeta {
	return g.page.Meta(len(g.rows))
}

// Scrolling reports whether the cosmetic scrolling indicator is set.
func (g *Grid[T]) Scrolling() bool {
	return g.scroll.Active()
}

// SelectedKeys returns the selected keys in lexical order.
func (g *Grid[T]) SelectedKeys() []string {
	return g.selection.Keys()
}

// SelectedRows returns the selected rows in sorted order.
func (g *Grid[T]) SelectedRows() []T {
	if g.selection.Len() == 0 {
		return []T{}
	}
	order := g.sortedOrder()
	out := make([]T, 0, g.selection.Len())
	for _, idx := range order {
		if g.selection.Has(g.keys[idx]) {
			out = append(out, g.rows[idx])
		}
	}
	return out
}

// Expanded reports whether the row with key is expanded.
func (g *Grid[T]) Expanded(key string) bool {
	_, ok := g.expanded[key]
	return ok
}

// RowAt returns the row at index in sorted order.
func (g *Grid[T]) RowAt(index int) (T, string, bool) {
	var zero T
	if index < 0 || index >= len(g.rows) {
		return zero, "", false
	}
	idx := g.sortedOrder()[index]
	return g.rows[idx], g.keys[idx], true
}

// SortedRows returns the dataset in sorted order.
func (g *Grid[T]) SortedRows() []T {
	order := g.sortedOrder()
	out := make([]T, len(order))
	for i, idx := range order {
		out[i] = g.rows[idx]
	}
	return out
}

func (g *Grid[T]) replaceData(rows []T) {
	g.rows = rows
	g.version++

	g.keys = make([]string, len(rows))
	present := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		k := g.keyOf(r, i)
		g.keys[i] = k
		present[k] = struct{}{}
	}

	g.distinct = len(present)
	if g.distinct < len(rows) {
		g.log.Warn().Int("rows", len(rows)).Int("distinct_keys", g.distinct).Msg("dataset has duplicate row keys")
	}
	g.log.Debug().Int("rows", len(rows)).Uint64("version", g.version).Msg("dataset replaced")

	if g.cfg.StaleSelection == StalePrune {
		for k := range g.expanded {
			if _, ok := present[k]; !ok {
				delete(g.expanded, k)
			}
		}
		if g.selection.Retain(present) {
			g.emitSelection()
		}
	}

	g.clampPage()
	g.recomputeWindow(g.viewport.ScrollOffset)
}

func (g *Grid[T]) replaceColumns(columns []Column[T]) {
	g.columns = columns
	if g.sort.Active() {
		if i := columnIndex(columns, g.sort.Field); i < 0 || !columns[i].Sortable {
			g.log.Debug().Str("field", g.sort.Field).Msg("clearing sort on removed column")
			g.sort = SortState{}
		}
	}
	// Accessors may have changed even when the sort field survived.
	g.memo.valid = false
}

// sortedOrder returns input positions in sorted order, recomputing only when the
// dataset version or sort state changed.
func (g *Grid[T]) sortedOrder() []int {
	if g.memo.valid && g.memo.version == g.version && g.memo.sort == g.sort {
		return g.order
	}

	var value ValueFunc[T]
	if i := columnIndex(g.columns, g.sort.Field); i >= 0 {
		value = g.columns[i].Value
	}
	g.order = SortIndices(g.rows, value, g.sort.Direction, g.compare)
	g.memo = sortMemo{valid: true, version: g.version, sort: g.sort}
	g.sortPasses++

	g.log.Debug().
		Str("field", g.sort.Field).
		Str("direction", string(g.sort.Direction)).
		Int("rows", len(g.rows)).
		Msg("sorted dataset")
	return g.order
}

func (g *Grid[T]) ready() bool {
	return g.State() == StateReady
}

func (g *Grid[T]) scrollTo(offset int) {
	if !g.ready() || g.cfg.Strategy() != StrategyWindowed {
		return
	}
	g.recomputeWindow(offset)
	g.scroll.Touch()
}

func (g *Grid[T]) recomputeWindow(offset int) {
	w := ComputeWindow(len(g.rows), g.cfg.RowHeight(), g.cfg.ViewportHeight, offset, g.cfg.Overscan)
	g.viewport = viewportFromWindow(w)
}

func (g *Grid[T]) clickSort(field string) {
	if !g.ready() || !g.cfg.Sortable {
		return
	}
	i := columnIndex(g.columns, field)
	if i < 0 || !g.columns[i].Sortable {
		g.log.Debug().Str("field", field).Msg("ignoring click on unsortable column")
		return
	}
	g.sort = g.sort.Toggle(field)
	if g.cb.OnSort != nil {
		g.cb.OnSort(g.sort.Field, g.sort.Direction)
	}
}

func (g *Grid[T]) clickRow(index int) {
	row, key, ok := g.rowAtReady(index)
	if !ok {
		return
	}
	if g.selection.Click(key) {
		g.emitSelection()
	}
	if g.cb.OnRowClick != nil {
		g.cb.OnRowClick(row, index)
	}
}

func (g *Grid[T]) doubleClickRow(index int) {
	row, _, ok := g.rowAtReady(index)
	if !ok {
		return
	}
	if g.cb.OnRowDoubleClick != nil {
		g.cb.OnRowDoubleClick(row, index)
	}
}

func (g *Grid[T]) rowAtReady(index int) (T, string, bool) {
	if !g.ready() {
		var zero T
		return zero, "", false
	}
	return g.RowAt(index)
}

// toggleAll applies select-all over the full dataset, not just the materialized rows.
func (g *Grid[T]) toggleAll() {
	if !g.ready() || g.selection.Mode() != SelectMulti {
		return
	}
	if g.selection.ToggleAll(g.keys) {
		g.emitSelection()
	}
}

func (g *Grid[T]) toggleExpand(index int) {
	if !g.ready() || g.detail == nil {
		return
	}
	if g.cfg.Strategy() == StrategyWindowed {
		g.log.Debug().Int("index", index).Msg("row expansion is not available while windowing")
		return
	}
	_, key, ok := g.RowAt(index)
	if !ok {
		return
	}
	if _, open := g.expanded[key]; open {
		delete(g.expanded, key)
	} else {
		g.expanded[key] = struct{}{}
	}
}

func (g *Grid[T]) changePage(page int) {
	if !g.ready() || g.cfg.Strategy() != StrategyPaged {
		return
	}
	next := PageState{Current: page, Size: g.page.Size}.Clamp(len(g.rows))
	if next.Current == g.page.Current {
		return
	}
	g.page = next
	if g.cb.OnPageChange != nil {
		g.cb.OnPageChange(next.Current)
	}
}

func (g *Grid[T]) changePageSize(size int) {
	if !g.ready() || g.cfg.Strategy() != StrategyPaged {
		return
	}
	if size <= 0 || size == g.page.Size {
		return
	}
	g.page.Size = size
	g.cfg.PageSize = size
	if g.cb.OnPageSizeChange != nil {
		g.cb.OnPageSizeChange(size)
	}
	g.clampPage()
}

// clampPage keeps the current page in range after size or data length changes.
func (g *Grid[T]) clampPage() {
	next := g.page.Clamp(len(g.rows))
	if next.Current == g.page.Current {
		g.page = next
		return
	}
	g.page = next
	if g.cb.OnPageChange != nil && g.cfg.Strategy() == StrategyPaged {
		g.cb.OnPageChange(next.Current)
	}
}

func (g *Grid[T]) emitSelection() {
	if g.cb.OnSelectionChange != nil {
		g.cb.OnSelectionChange(g.SelectedRows())
	}
}
