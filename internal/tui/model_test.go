package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/source"
)

func testDataset(n int) *source.Dataset {
	ds := &source.Dataset{Columns: []string{"id", "name", "size"}}
	for i := range n {
		ds.Records = append(ds.Records, source.Record{
			"id":   int64(i),
			"name": fmt.Sprintf("row%03d", i),
			"size": int64((i * 7) % 50),
		})
	}
	return ds
}

func newTestModel(t *testing.T, cfg *config.Config) GridModel {
	t.Helper()
	m := NewGridModel(context.Background(), ModelOptions{Config: cfg})
	t.Cleanup(m.Close)
	return m
}

func update(t *testing.T, m GridModel, msg tea.Msg) (GridModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GridModel)
	require.True(t, ok)
	return gm, cmd
}

func loaded(t *testing.T, cfg *config.Config, n int) GridModel {
	t.Helper()
	m := newTestModel(t, cfg)
	m, _ = update(t, m, DataLoadedMsg{Dataset: testDataset(n)})
	require.Equal(t, grid.StateReady, m.grid.State())
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func view(m GridModel) string {
	return ansi.Strip(m.View())
}

func TestNewGridModel(t *testing.T) {
	m := newTestModel(t, nil)

	assert.Equal(t, grid.StateLoading, m.grid.State())
	assert.Equal(t, defaultHeight-3, m.bodyLines)
	assert.Equal(t, m.bodyLines*grid.DensityNormal.RowHeight(), m.grid.Config().ViewportHeight)
	assert.NotNil(t, m.Init())
	assert.Contains(t, view(m), "Loading rows...")
}

func TestGridModel_LoadCmd(t *testing.T) {
	ds := testDataset(3)
	m := NewGridModel(context.Background(), ModelOptions{
		Load: func(context.Context) (*source.Dataset, error) { return ds, nil },
	})
	t.Cleanup(m.Close)

	msg := m.loadCmd()()
	loadedMsg, ok := msg.(DataLoadedMsg)
	require.True(t, ok)
	assert.NoError(t, loadedMsg.Err)
	assert.Same(t, ds, loadedMsg.Dataset)
}

func TestGridModel_Ready(t *testing.T) {
	m := loaded(t, nil, 100)

	out := view(m)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "row000")
	assert.Contains(t, out, "Rows 1-21 of 100")
	assert.NotContains(t, out, "row099")
	assert.Equal(t, []string{"id", "name", "size"}, m.fields)
}

func TestGridModel_Empty(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, DataLoadedMsg{Dataset: &source.Dataset{}})

	assert.Equal(t, grid.StateEmpty, m.grid.State())
	assert.Contains(t, view(m), "No rows to display")

	m, cmd := update(t, m, runes("r"))
	assert.NotNil(t, cmd)
	assert.Equal(t, grid.StateLoading, m.grid.State())
}

func TestGridModel_ErrorAndRetry(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, DataLoadedMsg{Err: errors.New("connection refused")})

	assert.Equal(t, grid.StateError, m.grid.State())
	out := view(m)
	assert.Contains(t, out, "Failed to load data")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Press r to retry")

	// Navigation is ignored outside the ready state.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.Equal(t, grid.StateError, m.grid.State())

	m, cmd = update(t, m, runes("r"))
	assert.NotNil(t, cmd)
	assert.Equal(t, grid.StateLoading, m.grid.State())
	assert.False(t, m.notice.retry)
}

func TestGridModel_CursorFollowsScroll(t *testing.T) {
	m := loaded(t, nil, 100)
	rowHeight := grid.DensityNormal.RowHeight()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, 0, m.top)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 99, m.cursor)
	assert.Equal(t, 100-m.bodyLines, m.top)
	assert.Equal(t, m.top*rowHeight, m.grid.Viewport().ScrollOffset)
	assert.True(t, m.grid.Scrolling())

	out := view(m)
	assert.Contains(t, out, "row099")
	assert.Contains(t, out, "Rows 80-100 of 100")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.grid.Viewport().ScrollOffset)
}

func TestGridModel_MouseWheel(t *testing.T) {
	m := loaded(t, nil, 100)

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, wheelStep, m.top)
	assert.Equal(t, wheelStep, m.cursor)

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, m.top)
}

func TestGridModel_SortKey(t *testing.T) {
	m := loaded(t, nil, 30)

	m, _ = update(t, m, runes("3"))
	assert.Equal(t, grid.SortState{Field: "size", Direction: grid.SortAsc}, m.grid.Sort())
	assert.Equal(t, "sorted by size asc", m.notice.status)

	m, _ = update(t, m, runes("3"))
	assert.Equal(t, grid.SortDesc, m.grid.Sort().Direction)

	// No column for this digit.
	m, _ = update(t, m, runes("9"))
	assert.Equal(t, "size", m.grid.Sort().Field)
}

func TestGridModel_Selection(t *testing.T) {
	cfg := config.New()
	cfg.Grid.Selectable = string(grid.SelectMulti)
	m := loaded(t, cfg, 10)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Len(t, m.grid.SelectedKeys(), 1)
	assert.Contains(t, view(m), "1 selected")

	m, _ = update(t, m, runes("a"))
	assert.Len(t, m.grid.SelectedKeys(), 10)
	assert.Equal(t, "10 selected", m.notice.status)
}

func TestGridModel_Paged(t *testing.T) {
	cfg := config.New()
	cfg.Grid.VirtualScroll = false
	cfg.Grid.Pagination = true
	cfg.Grid.PageSize = 10
	m := loaded(t, cfg, 25)

	assert.Contains(t, view(m), "Showing 1-10 of 25")
	assert.Equal(t, 3, m.pager.TotalPages)

	m, _ = update(t, m, runes("n"))
	assert.Equal(t, 2, m.grid.PageMeta().CurrentPage)
	assert.Equal(t, 10, m.cursor)
	assert.Equal(t, 1, m.pager.Page)

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, runes("n"))
	assert.Equal(t, 3, m.grid.PageMeta().CurrentPage)
	assert.Contains(t, view(m), "Showing 21-25 of 25")

	// The cursor stays on the current page.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 24, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 20, m.cursor)

	m, _ = update(t, m, runes("+"))
	assert.Equal(t, 15, m.grid.PageMeta().PageSize)
	assert.Equal(t, 2, m.grid.PageMeta().CurrentPage)
	assert.Equal(t, "page 2", m.notice.status)
}

func TestGridModel_PageKeysIgnoredWhenWindowed(t *testing.T) {
	m := loaded(t, nil, 50)

	m, cmd := update(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.grid.PageMeta().CurrentPage)
}

func TestGridModel_Expand(t *testing.T) {
	cfg := config.New()
	cfg.Grid.VirtualScroll = false
	m := loaded(t, cfg, 5)

	m, _ = update(t, m, runes("e"))
	_, key, ok := m.grid.RowAt(0)
	require.True(t, ok)
	assert.True(t, m.grid.Expanded(key))
	assert.Contains(t, view(m), "name: row000")
}

func TestGridModel_ReloadWithNewColumns(t *testing.T) {
	m := loaded(t, nil, 5)
	m, _ = update(t, m, runes("2"))
	require.Equal(t, "name", m.grid.Sort().Field)

	ds := &source.Dataset{Columns: []string{"id", "owner"}}
	for i := range 3 {
		ds.Records = append(ds.Records, source.Record{"id": int64(i), "owner": "team"})
	}
	m, _ = update(t, m, DataLoadedMsg{Dataset: ds})

	assert.Equal(t, []string{"id", "owner"}, m.fields)
	assert.Len(t, m.grid.Columns(), 2)
	assert.False(t, m.grid.Sort().Active())
	assert.Contains(t, view(m), "Owner")
}

func TestGridModel_WindowResize(t *testing.T) {
	m := loaded(t, nil, 100)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 13})
	assert.Equal(t, 10, m.bodyLines)
	assert.Equal(t, 10*grid.DensityNormal.RowHeight(), m.grid.Config().ViewportHeight)
	assert.Equal(t, 10, m.grid.Viewport().VisibleCount)

	m, _ = update(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.bodyLines, 10)
}

func TestGridModel_Quit(t *testing.T) {
	m := loaded(t, nil, 3)

	m, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestGridModel_ReloadMsg(t *testing.T) {
	changes := make(chan source.Change, 1)
	m := NewGridModel(context.Background(), ModelOptions{Changes: changes})
	t.Cleanup(m.Close)
	m, _ = update(t, m, DataLoadedMsg{Dataset: testDataset(2)})

	m, cmd := update(t, m, ReloadMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, grid.StateLoading, m.grid.State())

	changes <- source.Change{Path: "data.csv"}
	assert.Equal(t, ReloadMsg{}, m.waitForChange()())

	close(changes)
	assert.Nil(t, m.waitForChange()())
}

func TestPageSummary(t *testing.T) {
	assert.Equal(t, "Showing 0 of 0", PageSummary(grid.PageMeta{}))
	meta := grid.PageState{Current: 4, Size: 25}.Meta(97)
	assert.Equal(t, "Showing 76-97 of 97", PageSummary(meta))
}
