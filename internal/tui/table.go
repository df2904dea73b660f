package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rshade/gridview/internal/grid"
)

// Table layout constants.
const (
	maxAutoWidth   = 40
	minColumnWidth = 3
	checkboxWidth  = 4
	detailIndent   = "  │ "
	ellipsis       = "…"
)

// TableLayout controls which part of a frame is drawn.
type TableLayout struct {
	// Width is the total width available. Zero disables shrinking.
	Width int
	// Top is the sorted index of the first row on screen.
	Top int
	// Lines is the number of body lines available. Zero draws every materialized row.
	Lines int
	// Cursor is the sorted index of the highlighted row, or -1.
	Cursor int
	// Scrollbar draws a scrollbar next to windowed bodies.
	Scrollbar bool
}

// RenderTable draws the header and on-screen rows of a ready frame.
func RenderTable[T any](f grid.Frame[T], layout TableLayout, styles Styles) string {
	if f.State != grid.StateReady {
		return ""
	}

	avail := layout.Width
	if avail > 0 {
		if f.Bordered {
			avail -= 2
		}
		if layout.Scrollbar && f.Strategy == grid.StrategyWindowed {
			avail -= 2
		}
	}
	widths := columnWidths(f, avail)
	lineWidth := tableWidth(f, widths)

	var lines []string
	firstIndex := 0
	if len(f.Rows) > 0 {
		firstIndex = f.Rows[0].Index
	}
	if f.StickyHeader || layout.Top <= firstIndex {
		lines = append(lines, renderHeader(f, widths, styles))
	}

	var body []string
	for _, row := range f.Rows {
		if row.Index < layout.Top {
			continue
		}
		if layout.Lines > 0 && len(body) >= layout.Lines {
			break
		}
		body = append(body, renderRow(f, row, widths, lineWidth, layout.Cursor, styles))
		if row.Expanded && row.Detail != "" {
			for _, d := range strings.Split(row.Detail, "\n") {
				body = append(body, styles.Detail.Render(fit(detailIndent+d, lineWidth, grid.AlignLeft)))
			}
		}
	}
	if layout.Lines > 0 {
		if len(body) > layout.Lines {
			body = body[:layout.Lines]
		}
		for len(body) < layout.Lines {
			body = append(body, strings.Repeat(" ", lineWidth))
		}
	}

	content := strings.Join(body, "\n")
	if layout.Scrollbar && f.Strategy == grid.StrategyWindowed && len(body) > 0 {
		bar := RenderScrollbar(styles, len(body), f.Total, len(body), layout.Top)
		if bar != "" {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", bar)
		}
	}
	lines = append(lines, content)

	out := strings.Join(lines, "\n")
	if f.Bordered {
		out = styles.Border.Render(out)
	}
	return out
}

func renderHeader[T any](f grid.Frame[T], widths []int, styles Styles) string {
	var b strings.Builder
	if f.ShowCheckboxes {
		b.WriteString(fit(checkState(f.SelectAll, f.Selection == grid.SelectMulti), checkboxWidth, grid.AlignLeft))
	}
	for i, h := range f.Header {
		if i > 0 {
			b.WriteByte(' ')
		}
		label := h.Label
		switch h.Direction {
		case grid.SortAsc:
			label += " ▲"
		case grid.SortDesc:
			label += " ▼"
		case grid.DirectionNone:
		}
		b.WriteString(fit(label, widths[i], h.Align))
	}
	return styles.Header.Render(b.String())
}

func renderRow[T any](f grid.Frame[T], row grid.FrameRow[T], widths []int, lineWidth, cursor int, styles Styles) string {
	var b strings.Builder
	if f.ShowCheckboxes {
		mark := "[ ]"
		if row.Selected {
			mark = "[x]"
		}
		b.WriteString(fit(mark, checkboxWidth, grid.AlignLeft))
	}
	for i, c := range row.Cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(fit(c.Text, widths[i], c.Align))
	}
	line := fit(b.String(), lineWidth, grid.AlignLeft)

	style := styles.Cell
	if row.Striped {
		style = styles.Stripe
	}
	if row.Selected {
		style = style.Foreground(styles.Theme.Selected)
	}
	if f.Hoverable && row.Index == cursor {
		style = styles.Cursor
	}
	return style.Render(line)
}

// checkState renders the select-all control.
func checkState(s grid.CheckState, multi bool) string {
	if !multi {
		return ""
	}
	switch s {
	case grid.Checked:
		return "[x]"
	case grid.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// columnWidths sizes each column: configured widths are kept, other columns fit their
// content up to maxAutoWidth. When the total exceeds avail every column is scaled down.
func columnWidths[T any](f grid.Frame[T], avail int) []int {
	widths := make([]int, len(f.Header))
	for i, h := range f.Header {
		if h.Width > 0 {
			widths[i] = h.Width
			continue
		}
		w := runewidth.StringWidth(h.Label) + 2 //nolint:mnd // Room for the sort arrow.
		for _, row := range f.Rows {
			if i < len(row.Cells) {
				w = max(w, runewidth.StringWidth(flatten(row.Cells[i].Text)))
			}
		}
		widths[i] = max(minColumnWidth, min(w, maxAutoWidth))
	}

	if avail <= 0 {
		return widths
	}
	fixed := len(widths) - 1
	if f.ShowCheckboxes {
		fixed += checkboxWidth
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	room := avail - fixed
	if total <= room || total == 0 {
		return widths
	}
	for i, w := range widths {
		widths[i] = max(minColumnWidth, w*room/total)
	}
	return widths
}

func tableWidth[T any](f grid.Frame[T], widths []int) int {
	w := max(0, len(widths)-1)
	for _, cw := range widths {
		w += cw
	}
	if f.ShowCheckboxes {
		w += checkboxWidth
	}
	return w
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int, align grid.Align) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(flatten(s), width, ellipsis)
	switch align {
	case grid.AlignRight:
		return runewidth.FillLeft(s, width)
	case grid.AlignCenter:
		pad := width - runewidth.StringWidth(s)
		left := pad / 2 //nolint:mnd // Center split.
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return runewidth.FillRight(s, width)
	}
}

// flatten keeps multi-line cell text on one line.
func flatten(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}
