package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/rshade/gridview/internal/cli/pagination"
	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/logging"
	"github.com/rshade/gridview/internal/source"
	"github.com/rshade/gridview/internal/tui"
)

// Output formats supported by render.
const (
	formatTable  = "table"
	formatJSON   = "json"
	formatYAML   = "yaml"
	formatNDJSON = "ndjson"
)

// renderChromeLines is the number of terminal lines render uses besides the rows:
// header, summary and the shell prompt.
const renderChromeLines = 3

// ErrSortingDisabled is returned when --sort is used while sorting is turned off.
var ErrSortingDisabled = errors.New("sorting is disabled by configuration")

type renderParams struct {
	source sourceFlags
	page   pagination.Params
	format string
	width  int
}

// NewRenderCmd creates the "render" command that prints a grid snapshot.
func NewRenderCmd() *cobra.Command {
	var params renderParams

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Print a snapshot of the grid",
		Long: `Loads one or more files and prints the rows a grid would show for the given
position: a page in page-based mode, or the viewport after scrolling in virtualized mode.

The snapshot goes through the same sort, selection and windowing logic as the
interactive view, so the output matches what 'gridview view' would display.`,
		Example: `  # Print the first screen of rows
  gridview render services.csv

  # Print page 4 with 25 rows per page
  gridview render services.csv --page 4 --page-size 25

  # Scroll to row 400 of a virtualized grid and print 20 rows as JSON
  gridview render services.csv --scroll 400 --height 20 --format json

  # Sort by version, newest first, as YAML
  gridview render releases.yaml --kind version=version --sort version:desc --format yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRender(cmd, args, params)
		},
	}

	params.source.register(cmd)
	f := cmd.Flags()
	f.IntVar(&params.page.Page, "page", 0, "page number for page-based output (1-indexed, 0 = disabled)")
	f.IntVar(&params.page.PageSize, "page-size", 0, "rows per page (implies page-based output)")
	f.IntVar(&params.page.Scroll, "scroll", 0, "first row of the viewport in virtualized output")
	f.IntVar(&params.page.Height, "height", 0, "rows in the viewport (0 = terminal height)")
	f.StringVar(&params.page.Sort, "sort", "", "sort expression (e.g., 'name', 'size:desc')")
	f.StringVarP(&params.format, "format", "o", formatTable, "output format: table, json, yaml or ndjson")
	f.IntVar(&params.width, "width", 0, "table width (0 = terminal width, or unlimited when piped)")

	return cmd
}

// executeRender loads the files, takes a snapshot and writes it in the requested format.
func executeRender(cmd *cobra.Command, paths []string, params renderParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := params.page.Validate(); err != nil {
		return err
	}
	if !isValidFormat(params.format) {
		return fmt.Errorf("unsupported output format: %s", params.format)
	}

	cfg := *config.GetGlobalConfig()
	if params.page.IsPageBased() {
		cfg.Grid.VirtualScroll = false
		cfg.Grid.Pagination = true
	}
	if params.page.PageSize > 0 {
		cfg.Grid.PageSize = params.page.PageSize
	}

	opts, err := params.source.options(cmd, &cfg)
	if err != nil {
		return err
	}
	ds, err := source.LoadAll(ctx, paths, opts)
	if err != nil {
		return fmt.Errorf("loading rows: %w", err)
	}

	p := params.page
	p.Height = resolveHeight(p.Height, grid.Density(cfg.Grid.Density).RowHeight())
	snap, err := takeSnapshot(&cfg, ds, p, log)
	if err != nil {
		return err
	}

	log.Debug().
		Int("rows", snap.frame.Total).
		Str("strategy", snap.frame.Strategy.String()).
		Int("top", snap.top).
		Msg("rendering snapshot")

	err = writeSnapshot(cmd.OutOrStdout(), params.format, &cfg, snap, resolveWidth(params.width))
	if params.format == formatNDJSON && isBrokenPipe(err) {
		return nil
	}
	return err
}

func isValidFormat(format string) bool {
	switch format {
	case formatTable, formatJSON, formatYAML, formatNDJSON:
		return true
	default:
		return false
	}
}

// resolveHeight returns the requested viewport height in rows, or the terminal height
// minus chrome, or the engine's default viewport.
func resolveHeight(height, rowHeight int) int {
	if height > 0 {
		return height
	}
	if isTerminal(os.Stdout) {
		if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > renderChromeLines {
			return h - renderChromeLines
		}
	}
	return max(1, grid.DefaultViewportHeight/rowHeight)
}

// resolveWidth returns the requested table width, or the terminal width when writing
// to a terminal, or 0 for no limit.
func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	if isTerminal(os.Stdout) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			return w
		}
	}
	return 0
}

// snapshot is a frame plus the on-screen part of it.
type snapshot struct {
	frame grid.Frame[source.Record]
	// top is the first on-screen row and lines the viewport height in rows.
	top   int
	lines int
}

// takeSnapshot drives a fresh grid to the requested position with the same events the
// interactive view would dispatch.
func takeSnapshot(
	cfg *config.Config,
	ds source.Dataset,
	p pagination.Params,
	log *zerolog.Logger,
) (snapshot, error) {
	opts := tui.GridOptions(cfg, ds.Columns)
	opts.Logger = log

	state, err := pagination.NewSorter(opts.Columns).Resolve(p.Sort)
	if err != nil {
		return snapshot{}, err
	}
	if state.Active() && !cfg.Grid.Sortable {
		return snapshot{}, ErrSortingDisabled
	}

	g := grid.New(opts)
	defer g.Close()

	rowHeight := g.Config().RowHeight()
	lines := max(1, p.Height)
	g.Dispatch(grid.DataReplaced[source.Record]{Rows: ds.Records})
	g.Dispatch(grid.Resized{Height: lines * rowHeight})
	for _, ev := range pagination.SortEvents(state) {
		g.Dispatch(ev)
	}

	top := 0
	switch g.Config().Strategy() {
	case grid.StrategyPaged:
		if p.IsPageBased() {
			g.Dispatch(grid.PageChanged{Page: p.EffectivePage()})
		}
	case grid.StrategyWindowed:
		g.Dispatch(grid.Scrolled{Offset: p.Scroll * rowHeight})
		top = g.Viewport().ScrollOffset / rowHeight
	case grid.StrategyAll:
	}

	return snapshot{frame: g.Frame(), top: top, lines: lines}, nil
}

// onScreen returns the frame rows inside the viewport. Windowed frames carry overscan
// rows on both sides; other strategies show every materialized row.
func (s snapshot) onScreen() []grid.FrameRow[source.Record] {
	if s.frame.Strategy != grid.StrategyWindowed {
		return s.frame.Rows
	}
	var rows []grid.FrameRow[source.Record]
	for _, r := range s.frame.Rows {
		if r.Index >= s.top && r.Index < s.top+s.lines {
			rows = append(rows, r)
		}
	}
	return rows
}

func (s snapshot) meta() pagination.Meta {
	return pagination.NewMeta(s.frame, s.top, s.lines)
}

// renderOutput is the structured form of a snapshot.
type renderOutput struct {
	Columns    []string        `json:"columns"        yaml:"columns"`
	Sort       *sortOutput     `json:"sort,omitempty" yaml:"sort,omitempty"`
	Pagination pagination.Meta `json:"pagination"     yaml:"pagination"`
	Rows       []rowOutput     `json:"rows"           yaml:"rows"`
}

type sortOutput struct {
	Field     string `json:"field"     yaml:"field"`
	Direction string `json:"direction" yaml:"direction"`
}

type rowOutput struct {
	Index    int               `json:"index"              yaml:"index"`
	Key      string            `json:"key"                yaml:"key"`
	Selected bool              `json:"selected,omitempty" yaml:"selected,omitempty"`
	Cells    map[string]string `json:"cells"              yaml:"cells"`
}

func buildOutput(s snapshot) renderOutput {
	out := renderOutput{
		Columns:    make([]string, 0, len(s.frame.Header)),
		Pagination: s.meta(),
		Rows:       []rowOutput{},
	}
	for _, h := range s.frame.Header {
		out.Columns = append(out.Columns, h.Key)
	}
	if s.frame.Sort.Active() {
		out.Sort = &sortOutput{Field: s.frame.Sort.Field, Direction: string(s.frame.Sort.Direction)}
	}
	for _, r := range s.onScreen() {
		out.Rows = append(out.Rows, toRowOutput(s.frame.Header, r))
	}
	return out
}

func toRowOutput(header []grid.HeaderCell, r grid.FrameRow[source.Record]) rowOutput {
	cells := make(map[string]string, len(r.Cells))
	for i, c := range r.Cells {
		if i < len(header) {
			cells[header[i].Key] = c.Text
		}
	}
	return rowOutput{Index: r.Index, Key: r.Key, Selected: r.Selected, Cells: cells}
}

// writeSnapshot writes s to w in format.
func writeSnapshot(w io.Writer, format string, cfg *config.Config, s snapshot, width int) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(buildOutput(s)); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case formatNDJSON:
		encoder := json.NewEncoder(w)
		for _, r := range s.onScreen() {
			if err := encoder.Encode(toRowOutput(s.frame.Header, r)); err != nil {
				return fmt.Errorf("encoding NDJSON row: %w", err)
			}
		}
		return nil
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2) //nolint:mnd // Two-space YAML indentation.
		if err := encoder.Encode(buildOutput(s)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	default:
		return writeTable(w, cfg, s, width)
	}
}

func writeTable(w io.Writer, cfg *config.Config, s snapshot, width int) error {
	if s.frame.Total == 0 {
		_, err := fmt.Fprintln(w, "No rows to display")
		return err
	}

	lines := 0
	if s.frame.Strategy == grid.StrategyWindowed {
		lines = min(s.lines, s.frame.Total-s.top)
	}
	styles := tui.NewStyles(tui.ThemeByName(cfg.Grid.Theme))
	table := tui.RenderTable(s.frame, tui.TableLayout{
		Width:  width,
		Top:    s.top,
		Lines:  lines,
		Cursor: -1,
	}, styles)

	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, summaryLine(s.meta()))
	return err
}

// summaryLine describes which rows a snapshot shows.
func summaryLine(m pagination.Meta) string {
	var b strings.Builder
	if m.Page != nil {
		b.WriteString(tui.PageSummary(*m.Page))
		fmt.Fprintf(&b, " (page %d of %d)", m.Page.CurrentPage, m.Page.TotalPages)
		return b.String()
	}
	fmt.Fprintf(&b, "Showing %d-%d of %d", m.FirstItem, m.LastItem, m.TotalItems)
	return b.String()
}

// isBrokenPipe reports whether err was caused by the reader going away, as when the
// output is piped to head.
func isBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return strings.Contains(err.Error(), "broken pipe")
}
