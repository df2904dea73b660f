package grid

// Align is the horizontal alignment of a column's header and cells.
type Align string

// Column alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ValueFunc extracts the sortable value of a column from a row.
// A nil return marks the value as missing; missing values always sort last.
type ValueFunc[T any] func(row T) any

// RenderFunc turns a cell value into display text.
// index is the row's absolute position in the sorted dataset.
type RenderFunc[T any] func(value any, row T, index int) string

// KeyFunc extracts the stable identity of a row. index is the row's position in the
// dataset it was read from; callers that key by position accept that keys shift when
// the row order changes.
type KeyFunc[T any] func(row T, index int) string

// Column describes one column of the grid. Key must be unique within a column set.
type Column[T any] struct {
	Key      string
	Label    string
	Sortable bool

	// Width is the preferred width. MinWidth and MaxWidth clamp it when non-zero.
	Width    int
	MinWidth int
	MaxWidth int
	Align    Align

	Value  ValueFunc[T]
	Render RenderFunc[T]

	HeaderClass string
	CellClass   string
}

// CellValue returns the column's value for row, or nil when the column has no accessor.
func (c Column[T]) CellValue(row T) any {
	if c.Value == nil {
		return nil
	}
	return c.Value(row)
}

// CellText renders the column's cell for row at index.
func (c Column[T]) CellText(row T, index int) string {
	v := c.CellValue(row)
	if c.Render != nil {
		return c.Render(v, row, index)
	}
	return FormatValue(v)
}

// ResolvedWidth returns Width clamped to the column's bounds. fallback is used when
// Width is unset.
func (c Column[T]) ResolvedWidth(fallback int) int {
	w := c.Width
	if w <= 0 {
		w = fallback
	}
	if c.MinWidth > 0 && w < c.MinWidth {
		w = c.MinWidth
	}
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	return w
}

// columnIndex returns the position of the column with key, or -1.
func columnIndex[T any](columns []Column[T], key string) int {
	for i, c := range columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}
