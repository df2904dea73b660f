package pagination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/gridview/internal/grid"
)

// Sorter validates sort expressions against the sortable columns of a grid.
type Sorter struct {
	validFields map[string]bool
}

// NewSorter creates a Sorter accepting the keys of the sortable columns.
func NewSorter[T any](columns []grid.Column[T]) *Sorter {
	s := &Sorter{validFields: make(map[string]bool, len(columns))}
	for _, c := range columns {
		if c.Sortable {
			s.validFields[c.Key] = true
		}
	}
	return s
}

// IsValidField checks if the field is valid for sorting.
func (s *Sorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *Sorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Resolve parses expr and checks its field. An empty expression means no sort.
func (s *Sorter) Resolve(expr string) (grid.SortState, error) {
	if strings.TrimSpace(expr) == "" {
		return grid.SortState{}, nil
	}
	field, order, err := ParseSort(expr)
	if err != nil {
		return grid.SortState{}, err
	}
	if !s.IsValidField(field) {
		return grid.SortState{}, fmt.Errorf("%w: %q (valid: %s)",
			ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
	}
	dir := grid.SortAsc
	if order == SortOrderDesc {
		dir = grid.SortDesc
	}
	return grid.SortState{Field: field, Direction: dir}, nil
}

// SortEvents returns the header clicks that take an unsorted grid to state: one click
// sorts ascending, a second click on the same header flips to descending.
func SortEvents(state grid.SortState) []grid.Event {
	if !state.Active() {
		return nil
	}
	click := grid.SortClicked{Field: state.Field}
	if state.Direction == grid.SortDesc {
		return []grid.Event{click, click}
	}
	return []grid.Event{click}
}
