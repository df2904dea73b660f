package grid

import (
	"cmp"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction. The zero value means unsorted.
type Direction string

// Sort directions.
const (
	DirectionNone Direction = ""
	SortAsc       Direction = "asc"
	SortDesc      Direction = "desc"
)

// SortState is the active sort. Direction is DirectionNone iff Field is empty.
type SortState struct {
	Field     string
	Direction Direction
}

// Active reports whether a sort field is set.
func (s SortState) Active() bool {
	return s.Field != "" && s.Direction != DirectionNone
}

// Toggle returns the state after clicking field: the active field flips between asc and
// desc, any other field starts at asc.
func (s SortState) Toggle(field string) SortState {
	if s.Field == field && s.Direction == SortAsc {
		return SortState{Field: field, Direction: SortDesc}
	}
	return SortState{Field: field, Direction: SortAsc}
}

// CompareFunc orders two defined values, returning a negative number, zero or a positive
// number. It is never called with missing values.
type CompareFunc func(a, b any) int

// SortRows returns rows ordered by value in direction. The input slice is not modified.
// Ties keep their input order and missing values are placed last in both directions.
// A nil compare uses CompareValues.
func SortRows[T any](rows []T, value ValueFunc[T], dir Direction, compare CompareFunc) []T {
	order := SortIndices(rows, value, dir, compare)
	sorted := make([]T, len(order))
	for i, idx := range order {
		sorted[i] = rows[idx]
	}
	return sorted
}

// SortIndices returns the permutation of input positions that SortRows would produce.
func SortIndices[T any](rows []T, value ValueFunc[T], dir Direction, compare CompareFunc) []int {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	if dir == DirectionNone || value == nil || len(rows) < 2 {
		return order
	}
	if compare == nil {
		compare = CompareValues
	}

	// Extract once so the comparator does not call value O(N log N) times.
	type keyed struct {
		idx  int
		v    any
		null bool
	}
	items := make([]keyed, len(rows))
	for i, r := range rows {
		v := value(r)
		items[i] = keyed{idx: i, v: v, null: isNull(v)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.null:
			return false
		case b.null:
			return true
		}
		c := compare(a.v, b.v)
		if dir == SortDesc {
			c = -c
		}
		return c < 0
	})

	for i := range items {
		order[i] = items[i].idx
	}
	return order
}

// CompareValues orders values of the common cell types. Numbers compare numerically
// across integer and float kinds, times chronologically and semantic versions by
// precedence. Values of unrelated types compare by their printed text.
func CompareValues(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBool(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case *semver.Version:
		if y, ok := b.(*semver.Version); ok {
			return x.Compare(y)
		}
	case semver.Version:
		if y, ok := b.(semver.Version); ok {
			return x.Compare(&y)
		}
	case fmt.Stringer:
		if y, ok := b.(fmt.Stringer); ok {
			return strings.Compare(x.String(), y.String())
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// CollatingCompare returns a CompareFunc that orders string pairs with the collation
// rules of tag and falls back to CompareValues for everything else.
// The returned func is not safe for concurrent use.
func CollatingCompare(tag language.Tag) CompareFunc {
	c := collate.New(tag, collate.Loose, collate.Numeric)
	return func(a, b any) int {
		if x, ok := a.(string); ok {
			if y, ok := b.(string); ok {
				return c.CompareString(x, y)
			}
		}
		return CompareValues(a, b)
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// toFloat converts numeric kinds to float64.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// isNull reports whether v is missing: nil, or a nil pointer, map, slice or interface.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
