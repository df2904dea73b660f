package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/source"
)

// View renders the current state (Bubble Tea interface).
func (m GridModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	f := m.grid.Frame()
	switch f.State {
	case grid.StateLoading:
		body = m.renderLoadingView()
	case grid.StateError:
		body = m.renderErrorView(f)
	case grid.StateEmpty:
		body = m.renderEmptyView()
	case grid.StateReady:
		body = m.renderReadyView(f)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
}

func (m GridModel) renderLoadingView() string {
	return m.styles.Info.Render(m.loading.View())
}

func (m GridModel) renderErrorView(f grid.Frame[source.Record]) string {
	var b strings.Builder
	b.WriteString(m.styles.ErrorText.Render("Failed to load data"))
	b.WriteString("\n")
	b.WriteString(f.Error)
	if f.CanRetry {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Subtle.Render("Press r to retry"))
	}
	return m.styles.ErrorBox.Render(b.String())
}

func (m GridModel) renderEmptyView() string {
	return m.styles.Subtle.Render("No rows to display")
}

func (m GridModel) renderReadyView(f grid.Frame[source.Record]) string {
	table := RenderTable(f, TableLayout{
		Width:     m.width,
		Top:       m.top,
		Lines:     m.bodyLines,
		Cursor:    m.cursor,
		Scrollbar: true,
	}, m.styles)
	return lipgloss.JoinVertical(lipgloss.Left, table, m.renderFooter(f))
}

// renderFooter shows the visible range, sort, selection and the last notice.
func (m GridModel) renderFooter(f grid.Frame[source.Record]) string {
	var parts []string
	switch f.Strategy {
	case grid.StrategyPaged:
		parts = append(parts, m.pager.View(), PageSummary(f.Page))
	case grid.StrategyWindowed:
		last := min(f.Total, m.top+m.bodyLines)
		parts = append(parts, fmt.Sprintf("Rows %d-%d of %d", m.top+1, last, f.Total))
	case grid.StrategyAll:
		parts = append(parts, fmt.Sprintf("%d rows", f.Total))
	}

	if f.Sort.Active() {
		parts = append(parts, fmt.Sprintf("sort: %s %s", f.Sort.Field, f.Sort.Direction))
	}
	if f.ShowCheckboxes {
		parts = append(parts, fmt.Sprintf("%d selected", f.SelectedCount))
	}
	if m.notice.status != "" {
		parts = append(parts, m.notice.status)
	}

	footer := m.styles.Footer.Render(strings.Join(parts, " • "))
	if f.Scrolling {
		footer += " " + m.styles.Scrolling.Render("scrolling")
	}
	return footer
}

// PageSummary describes the current page as "Showing a-b of n".
func PageSummary(p grid.PageMeta) string {
	if p.TotalItems == 0 {
		return "Showing 0 of 0"
	}
	return fmt.Sprintf("Showing %d-%d of %d", p.FirstItem, p.LastItem, p.TotalItems)
}
