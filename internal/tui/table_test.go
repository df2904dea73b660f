package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/source"
)

func recordGrid(t *testing.T, cfg *config.Config, n int) *RecordGrid {
	t.Helper()
	ds := testDataset(n)
	g := grid.New(GridOptions(cfg, ds.Columns))
	t.Cleanup(g.Close)
	g.Dispatch(grid.DataReplaced[source.Record]{Rows: ds.Records})
	return g
}

func TestRenderTable_NotReady(t *testing.T) {
	g := grid.New(GridOptions(config.New(), nil))
	t.Cleanup(g.Close)

	assert.Empty(t, RenderTable(g.Frame(), TableLayout{}, NewStyles(DarkTheme())))
}

func TestRenderTable_HeaderAndRows(t *testing.T) {
	cfg := config.New()
	cfg.Grid.VirtualScroll = false
	g := recordGrid(t, cfg, 3)
	g.Dispatch(grid.SortClicked{Field: "name"})

	out := ansi.Strip(RenderTable(g.Frame(), TableLayout{Cursor: -1}, NewStyles(DarkTheme())))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name ▲")
	assert.Contains(t, lines[1], "row000")
	assert.Contains(t, lines[3], "row002")
}

func TestRenderTable_WindowedSlice(t *testing.T) {
	g := recordGrid(t, config.New(), 200)
	g.Dispatch(grid.Resized{Height: 10 * grid.DensityNormal.RowHeight()})
	g.Dispatch(grid.Scrolled{Offset: 50 * grid.DensityNormal.RowHeight()})

	f := g.Frame()
	require.Equal(t, grid.StrategyWindowed, f.Strategy)
	out := ansi.Strip(RenderTable(f, TableLayout{Top: 50, Lines: 10, Cursor: -1, Scrollbar: true}, NewStyles(DarkTheme())))

	assert.Contains(t, out, "row050")
	assert.Contains(t, out, "row059")
	assert.NotContains(t, out, "row049")
	assert.NotContains(t, out, "row060")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "Name")
}

func TestRenderTable_PadsBody(t *testing.T) {
	cfg := config.New()
	cfg.Grid.VirtualScroll = false
	g := recordGrid(t, cfg, 2)

	out := ansi.Strip(RenderTable(g.Frame(), TableLayout{Lines: 5, Cursor: -1}, NewStyles(DarkTheme())))
	assert.Len(t, strings.Split(out, "\n"), 6)
}

func TestRenderTable_Checkboxes(t *testing.T) {
	cfg := config.New()
	cfg.Grid.VirtualScroll = false
	cfg.Grid.Selectable = string(grid.SelectMulti)
	g := recordGrid(t, cfg, 3)
	g.Dispatch(grid.RowClicked{Index: 1})

	out := ansi.Strip(RenderTable(g.Frame(), TableLayout{Cursor: -1}, NewStyles(DarkTheme())))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "[-]"))
	assert.True(t, strings.HasPrefix(lines[1], "[ ]"))
	assert.True(t, strings.HasPrefix(lines[2], "[x]"))
}

func TestRenderTable_Bordered(t *testing.T) {
	cfg := config.New()
	cfg.Grid.VirtualScroll = false
	cfg.Grid.Bordered = true
	g := recordGrid(t, cfg, 1)

	out := ansi.Strip(RenderTable(g.Frame(), TableLayout{Cursor: -1}, NewStyles(DarkTheme())))
	assert.True(t, strings.HasPrefix(out, "╭"))
}

func TestColumnWidths_Shrink(t *testing.T) {
	f := grid.Frame[source.Record]{
		Header: []grid.HeaderCell{{Label: "A", Width: 30}, {Label: "B", Width: 30}},
	}
	widths := columnWidths(f, 31)
	assert.Equal(t, []int{15, 15}, widths)

	assert.Equal(t, []int{30, 30}, columnWidths(f, 0))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		align grid.Align
		want  string
	}{
		{"pad left align", "ab", 4, grid.AlignLeft, "ab  "},
		{"pad right align", "ab", 4, grid.AlignRight, "  ab"},
		{"center", "ab", 6, grid.AlignCenter, "  ab  "},
		{"truncate", "abcdef", 4, grid.AlignLeft, "abc…"},
		{"flatten newlines", "a\nb", 3, grid.AlignLeft, "a b"},
		{"zero width", "abc", 0, grid.AlignLeft, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fit(tt.in, tt.width, tt.align))
		})
	}
}

func TestRenderScrollbar(t *testing.T) {
	styles := NewStyles(DarkTheme())

	assert.Empty(t, RenderScrollbar(styles, 10, 5, 10, 0))

	bar := ansi.Strip(RenderScrollbar(styles, 10, 100, 10, 90))
	lines := strings.Split(bar, "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "█", lines[9])
	assert.Equal(t, "░", lines[0])
}
