package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/gridview/internal/cli/pagination"
	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/source"
)

func snapshotDataset(n int) source.Dataset {
	ds := source.Dataset{Columns: []string{"id", "name"}}
	for i := range n {
		ds.Records = append(ds.Records, source.Record{
			"id":   int64(i),
			"name": fmt.Sprintf("item%02d", i),
		})
	}
	return ds
}

func TestTakeSnapshot_Windowed(t *testing.T) {
	log := zerolog.Nop()
	snap, err := takeSnapshot(config.New(), snapshotDataset(50), pagination.Params{Scroll: 20, Height: 10}, &log)
	require.NoError(t, err)

	assert.Equal(t, grid.StrategyWindowed, snap.frame.Strategy)
	assert.Equal(t, 20, snap.top)
	assert.Equal(t, 10, snap.lines)

	rows := snap.onScreen()
	require.Len(t, rows, 10)
	assert.Equal(t, 20, rows[0].Index)
	assert.Equal(t, 29, rows[9].Index)
	assert.Greater(t, len(snap.frame.Rows), len(rows))
}

func TestTakeSnapshot_Paged(t *testing.T) {
	log := zerolog.Nop()
	cfg := config.New()
	cfg.Grid.VirtualScroll = false
	cfg.Grid.Pagination = true
	cfg.Grid.PageSize = 20

	snap, err := takeSnapshot(cfg, snapshotDataset(50), pagination.Params{Page: 9, Sort: "name:desc"}, &log)
	require.NoError(t, err)

	assert.Equal(t, grid.StrategyPaged, snap.frame.Strategy)
	assert.Equal(t, 3, snap.frame.Page.CurrentPage)
	assert.Equal(t, grid.SortState{Field: "name", Direction: grid.SortDesc}, snap.frame.Sort)

	rows := snap.onScreen()
	require.Len(t, rows, 10)
	assert.Equal(t, "item09", rows[0].Cells[1].Text)
	assert.Equal(t, "item00", rows[9].Cells[1].Text)
}

func TestTakeSnapshot_Errors(t *testing.T) {
	log := zerolog.Nop()

	_, err := takeSnapshot(config.New(), snapshotDataset(3), pagination.Params{Sort: "missing"}, &log)
	require.ErrorIs(t, err, pagination.ErrInvalidSortField)

	cfg := config.New()
	cfg.Grid.Sortable = false
	_, err = takeSnapshot(cfg, snapshotDataset(3), pagination.Params{Sort: "name"}, &log)
	require.ErrorIs(t, err, ErrSortingDisabled)
}

func TestBuildOutput(t *testing.T) {
	log := zerolog.Nop()
	cfg := config.New()
	cfg.Grid.VirtualScroll = false

	snap, err := takeSnapshot(cfg, snapshotDataset(2), pagination.Params{Sort: "id:desc"}, &log)
	require.NoError(t, err)

	out := buildOutput(snap)
	assert.Equal(t, []string{"id", "name"}, out.Columns)
	require.NotNil(t, out.Sort)
	assert.Equal(t, "desc", out.Sort.Direction)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "1", out.Rows[0].Key)
	assert.Equal(t, map[string]string{"id": "1", "name": "item01"}, out.Rows[0].Cells)
}

func TestWriteSnapshot_EmptyTable(t *testing.T) {
	log := zerolog.Nop()
	snap, err := takeSnapshot(config.New(), source.Dataset{}, pagination.Params{}, &log)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, formatTable, config.New(), snap, 0))
	assert.Equal(t, "No rows to display\n", buf.String())

	buf.Reset()
	require.NoError(t, writeSnapshot(&buf, formatJSON, config.New(), snap, 0))
	assert.Contains(t, buf.String(), `"rows": []`)
}

func TestWriteSnapshot_TableWidth(t *testing.T) {
	log := zerolog.Nop()
	ds := source.Dataset{
		Columns: []string{"name"},
		Records: []source.Record{{"name": strings.Repeat("x", 30)}},
	}
	snap, err := takeSnapshot(config.New(), ds, pagination.Params{Height: 5}, &log)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, formatTable, config.New(), snap, 12))
	assert.Contains(t, buf.String(), "xxxxxxxxxxx…")
	assert.Contains(t, buf.String(), "Showing 1-1 of 1")
}

func TestSummaryLine(t *testing.T) {
	page := grid.PageState{Current: 2, Size: 10}.Meta(25)
	assert.Equal(t, "Showing 11-20 of 25 (page 2 of 3)", summaryLine(pagination.Meta{Page: &page}))
	assert.Equal(t, "Showing 5-9 of 40", summaryLine(pagination.Meta{FirstItem: 5, LastItem: 9, TotalItems: 40}))
}

func TestIsValidFormat(t *testing.T) {
	for _, f := range []string{"table", "json", "yaml", "ndjson"} {
		assert.True(t, isValidFormat(f), f)
	}
	assert.False(t, isValidFormat("csv"))
}

func TestResolveHeight(t *testing.T) {
	assert.Equal(t, 7, resolveHeight(7, 40))
	// Tests do not run on a terminal, so the engine default applies.
	assert.Equal(t, grid.DefaultViewportHeight/32, resolveHeight(0, 32))
}

func TestIsBrokenPipe(t *testing.T) {
	assert.False(t, isBrokenPipe(nil))
	assert.True(t, isBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)))
	assert.True(t, isBrokenPipe(errors.New("write |1: broken pipe")))
	assert.False(t, isBrokenPipe(syscall.ENOENT))
	assert.False(t, isBrokenPipe(errors.New("disk full")))
}
