package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a vertical scrollbar track of the given height with a thumb
// proportional to the visible share of the rows. top is the first visible row.
//
// Returns an empty string if all rows fit.
func RenderScrollbar(styles Styles, height, totalRows, visibleRows, top int) string {
	if totalRows <= visibleRows || height < 1 {
		return ""
	}

	thumbSize := height * visibleRows / totalRows
	thumbSize = max(1, min(thumbSize, height))

	maxOffset := height - thumbSize
	maxTop := totalRows - visibleRows
	thumbStart := 0
	if maxTop > 0 {
		thumbStart = (top*maxOffset + maxTop/2) / maxTop
	}
	thumbStart = max(0, min(thumbStart, maxOffset))

	thumbStyle := lipgloss.NewStyle().Foreground(styles.Theme.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(styles.Theme.Border)

	var b strings.Builder
	b.Grow(height * 4) //nolint:mnd // Bytes per styled cell estimate.
	for i := range height {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render("█"))
		} else {
			b.WriteString(trackStyle.Render("░"))
		}
	}
	return b.String()
}
