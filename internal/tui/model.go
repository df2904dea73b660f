package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/source"
)

// Layout defaults used until the terminal reports its size.
const (
	defaultWidth  = 100
	defaultHeight = 24

	// wheelStep is the number of rows one mouse wheel notch scrolls.
	wheelStep    = 3
	pageSizeStep = 5
	minPageSize  = 5

	headerLines = 1
	footerLines = 1
	borderLines = 2
)

// Loader reads the dataset shown by the grid.
type Loader func(ctx context.Context) (*source.Dataset, error)

// DataLoadedMsg carries the result of a Loader call.
type DataLoadedMsg struct {
	Dataset *source.Dataset
	Err     error
}

// ReloadMsg asks the model to reload its data source.
type ReloadMsg struct{}

// scrollChangedMsg is sent when the scrolling indicator flips.
type scrollChangedMsg struct {
	active bool
}

// notices collects callback output between Dispatch calls. It is shared by every copy
// of a model.
type notices struct {
	status string
	retry  bool
}

// ModelOptions configures a GridModel.
type ModelOptions struct {
	Config *config.Config
	Load   Loader
	// Changes triggers a reload on every receive. Nil disables watching.
	Changes <-chan source.Change
	Logger  *zerolog.Logger
}

// GridModel is the Bubble Tea model that drives a grid over a loaded dataset.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type GridModel struct {
	ctx    context.Context
	cfg    *config.Config
	load   Loader
	grid   *RecordGrid
	fields []string

	// Interactive components
	loading *LoadingState
	help    help.Model
	pager   paginator.Model
	keys    KeyMap
	styles  Styles

	// Viewport in rows; one row is one terminal line.
	cursor    int
	top       int
	width     int
	height    int
	bodyLines int

	scrollCh chan scrollChangedMsg
	changes  <-chan source.Change
	notice   *notices
	log      zerolog.Logger
	quitting bool
}

// NewGridModel creates a model in the loading state. Init starts the first load.
func NewGridModel(ctx context.Context, opts ModelOptions) GridModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "tui").Logger()
	}

	m := GridModel{
		ctx:      ctx,
		cfg:      cfg,
		load:     opts.Load,
		loading:  NewLoadingState(),
		help:     help.New(),
		pager:    paginator.New(),
		keys:     DefaultKeyMap(),
		styles:   NewStyles(ThemeByName(cfg.Grid.Theme)),
		width:    defaultWidth,
		height:   defaultHeight,
		scrollCh: make(chan scrollChangedMsg, 1),
		changes:  opts.Changes,
		notice:   &notices{},
		log:      log,
	}
	m.pager.Type = paginator.Dots

	gopts := GridOptions(cfg, nil)
	gopts.Logger = opts.Logger
	gopts.Callbacks = m.callbacks()
	scrollCh := m.scrollCh
	gopts.ScrollNotify = func(active bool) {
		select {
		case scrollCh <- scrollChangedMsg{active: active}:
		default:
		}
	}
	m.grid = grid.New(gopts)
	m.grid.Dispatch(grid.StatusChanged{Loading: true})
	m.layout()
	return m
}

func (m GridModel) callbacks() grid.Callbacks[source.Record] {
	n := m.notice
	return grid.Callbacks[source.Record]{
		OnSort: func(field string, dir grid.Direction) {
			if dir == grid.DirectionNone {
				n.status = "sort cleared"
				return
			}
			n.status = fmt.Sprintf("sorted by %s %s", field, dir)
		},
		OnSelectionChange: func(rows []source.Record) {
			n.status = fmt.Sprintf("%d selected", len(rows))
		},
		OnRowDoubleClick: func(_ source.Record, index int) {
			n.status = fmt.Sprintf("opened row %d", index+1)
		},
		OnPageChange: func(page int) {
			n.status = fmt.Sprintf("page %d", page)
		},
		OnPageSizeChange: func(size int) {
			n.status = fmt.Sprintf("%d rows per page", size)
		},
		OnRetry: func() {
			n.retry = true
		},
	}
}

// Grid returns the underlying grid engine.
func (m GridModel) Grid() *RecordGrid {
	return m.grid
}

// Close stops the grid's timers.
func (m GridModel) Close() {
	m.grid.Close()
}

// Init starts loading and listening for scroll and file changes (Bubble Tea interface).
func (m GridModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loading.Init(), m.loadCmd(), m.waitForScroll()}
	if m.changes != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m GridModel) loadCmd() tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		if load == nil {
			return DataLoadedMsg{Dataset: &source.Dataset{}}
		}
		ds, err := load(ctx)
		return DataLoadedMsg{Dataset: ds, Err: err}
	}
}

func (m GridModel) waitForScroll() tea.Cmd {
	ch := m.scrollCh
	return func() tea.Msg {
		return <-ch
	}
}

func (m GridModel) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ReloadMsg{}
	}
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	case DataLoadedMsg:
		return m.handleLoaded(msg)
	case ReloadMsg:
		cmd := m.reload()
		if m.changes != nil {
			cmd = tea.Batch(cmd, m.waitForChange())
		}
		return m, cmd
	case scrollChangedMsg:
		m.log.Trace().Bool("active", msg.active).Msg("scroll indicator")
		return m, m.waitForScroll()
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.grid.State() == grid.StateLoading {
		return m, m.loading.Update(msg)
	}
	return m, nil
}

// reload puts the grid in the loading state and starts the loader.
func (m *GridModel) reload() tea.Cmd {
	m.log.Debug().Msg("reloading data source")
	m.grid.Dispatch(grid.StatusChanged{Loading: true})
	return tea.Batch(m.loadCmd(), m.loading.Init())
}

func (m GridModel) handleLoaded(msg DataLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Msg("loading data source")
		m.grid.Dispatch(grid.StatusChanged{Err: msg.Err.Error()})
		return m, nil
	}

	ds := msg.Dataset
	if ds == nil {
		ds = &source.Dataset{}
	}
	if !slices.Equal(ds.Columns, m.fields) {
		m.fields = slices.Clone(ds.Columns)
		m.grid.Dispatch(grid.ColumnsReplaced[source.Record]{Columns: BuildColumns(m.cfg, m.fields)})
	}
	m.grid.Dispatch(grid.DataReplaced[source.Record]{Rows: ds.Records})
	m.grid.Dispatch(grid.StatusChanged{})
	m.log.Debug().Int("rows", len(ds.Records)).Int("columns", len(ds.Columns)).Msg("data loaded")

	m.follow()
	m.syncPager()
	return m, nil
}

func (m GridModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.grid.State() != grid.StateReady || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button { //nolint:exhaustive // Only the wheel scrolls the grid.
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
	}
	return m, nil
}

func (m GridModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	switch m.grid.State() {
	case grid.StateLoading:
		return m, nil
	case grid.StateError:
		if key.Matches(msg, m.keys.Reload, m.keys.Open) {
			return m, m.dispatch(grid.RetryRequested{})
		}
		return m, nil
	case grid.StateEmpty:
		if key.Matches(msg, m.keys.Reload) {
			return m, m.reload()
		}
		return m, nil
	case grid.StateReady:
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.bodyLines)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.bodyLines)
	case key.Matches(msg, m.keys.Home):
		lo, _ := m.bounds()
		m.cursor = lo
		m.follow()
	case key.Matches(msg, m.keys.End):
		_, hi := m.bounds()
		m.cursor = hi - 1
		m.follow()
	case key.Matches(msg, m.keys.Select):
		return m, m.dispatch(grid.RowClicked{Index: m.cursor})
	case key.Matches(msg, m.keys.Open):
		return m, m.dispatch(grid.RowDoubleClicked{Index: m.cursor})
	case key.Matches(msg, m.keys.SelectAll):
		return m, m.dispatch(grid.SelectAllToggled{})
	case key.Matches(msg, m.keys.Expand):
		return m, m.dispatch(grid.ExpandToggled{Index: m.cursor})
	case key.Matches(msg, m.keys.Sort):
		return m, m.sortByDigit(msg.String())
	case key.Matches(msg, m.keys.NextPage):
		return m, m.turnPage(1)
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.turnPage(-1)
	case key.Matches(msg, m.keys.Bigger):
		return m, m.resizePage(pageSizeStep)
	case key.Matches(msg, m.keys.Smaller):
		return m, m.resizePage(-pageSizeStep)
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}
	return m, nil
}

// dispatch forwards ev to the grid and turns a requested retry into a reload.
func (m *GridModel) dispatch(ev grid.Event) tea.Cmd {
	m.grid.Dispatch(ev)
	if m.notice.retry {
		m.notice.retry = false
		return m.reload()
	}
	return nil
}

func (m *GridModel) sortByDigit(s string) tea.Cmd {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return nil
	}
	cols := m.grid.Columns()
	i := int(s[0] - '1')
	if i >= len(cols) {
		return nil
	}
	cmd := m.dispatch(grid.SortClicked{Field: cols[i].Key})
	m.follow()
	return cmd
}

func (m *GridModel) turnPage(delta int) tea.Cmd {
	if m.grid.Config().Strategy() != grid.StrategyPaged {
		return nil
	}
	meta := m.grid.PageMeta()
	if (delta < 0 && !meta.HasPrevious) || (delta > 0 && !meta.HasNext) {
		return nil
	}
	cmd := m.dispatch(grid.PageChanged{Page: meta.CurrentPage + delta})
	m.cursor = m.grid.PageMeta().FirstItem - 1
	m.top = m.cursor
	m.follow()
	m.syncPager()
	return cmd
}

func (m *GridModel) resizePage(delta int) tea.Cmd {
	if m.grid.Config().Strategy() != grid.StrategyPaged {
		return nil
	}
	size := max(minPageSize, m.grid.PageMeta().PageSize+delta)
	cmd := m.dispatch(grid.PageSizeChanged{Size: size})
	m.follow()
	m.syncPager()
	return cmd
}

// bounds returns the half-open range of sorted indexes the cursor may visit.
func (m GridModel) bounds() (int, int) {
	if m.grid.Config().Strategy() == grid.StrategyPaged {
		meta := m.grid.PageMeta()
		if meta.FirstItem == 0 {
			return 0, 0
		}
		return meta.FirstItem - 1, meta.LastItem
	}
	return 0, m.grid.Len()
}

func (m *GridModel) moveCursor(delta int) {
	m.cursor += delta
	m.follow()
}

// scrollBy moves the viewport and drags the cursor along when it leaves the screen.
func (m *GridModel) scrollBy(delta int) {
	m.top += delta
	lo, hi := m.bounds()
	m.top = max(lo, min(m.top, max(lo, hi-m.bodyLines)))
	m.cursor = max(m.top, min(m.cursor, m.top+m.bodyLines-1))
	m.follow()
}

// follow clamps the cursor and keeps it on screen, reporting viewport moves to the grid.
func (m *GridModel) follow() {
	lo, hi := m.bounds()
	if hi <= lo {
		m.cursor, m.top = lo, lo
		return
	}
	m.cursor = max(lo, min(m.cursor, hi-1))
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.bodyLines {
		m.top = m.cursor - m.bodyLines + 1
	}
	m.top = max(lo, min(m.top, max(lo, hi-m.bodyLines)))

	if m.grid.Config().Strategy() == grid.StrategyWindowed {
		offset := m.top * m.grid.Config().RowHeight()
		if offset != m.grid.Viewport().ScrollOffset {
			m.grid.Dispatch(grid.Scrolled{Offset: offset})
		}
	}
}

// layout recomputes the body height from the terminal size and reports it to the grid.
func (m *GridModel) layout() {
	reserved := headerLines + footerLines + m.helpLines()
	if m.grid.Config().Bordered {
		reserved += borderLines
	}
	m.bodyLines = max(1, m.height-reserved)
	m.grid.Dispatch(grid.Resized{Height: m.bodyLines * m.grid.Config().RowHeight()})
	m.follow()
}

func (m GridModel) helpLines() int {
	if !m.help.ShowAll {
		return 1
	}
	lines := 0
	for _, col := range m.keys.FullHelp() {
		lines = max(lines, len(col))
	}
	return lines
}

func (m *GridModel) syncPager() {
	meta := m.grid.PageMeta()
	m.pager.PerPage = max(1, meta.PageSize)
	m.pager.SetTotalPages(meta.TotalItems)
	m.pager.Page = max(0, meta.CurrentPage-1)
}
