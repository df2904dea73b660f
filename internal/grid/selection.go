package grid

import "sort"

// SelectionMode controls how row clicks change the selection.
type SelectionMode string

// Selection modes.
const (
	SelectNone   SelectionMode = "none"
	SelectSingle SelectionMode = "single"
	SelectMulti  SelectionMode = "multi"
)

// StalePolicy decides what happens to selected keys that disappear from a replaced dataset.
type StalePolicy string

// Stale selection policies.
const (
	// StaleKeep leaves selected keys untouched when the dataset changes.
	StaleKeep StalePolicy = "keep"
	// StalePrune drops selected keys that are absent from the new dataset.
	StalePrune StalePolicy = "prune"
)

// Selection tracks selected row keys. In single mode it holds at most one key.
type Selection struct {
	mode     SelectionMode
	selected map[string]struct{}
}

// NewSelection creates an empty selection in mode.
func NewSelection(mode SelectionMode) Selection {
	if mode == "" {
		mode = SelectNone
	}
	return Selection{mode: mode, selected: make(map[string]struct{})}
}

// Mode returns the selection mode.
func (s Selection) Mode() SelectionMode {
	return s.mode
}

// Len returns the number of selected keys.
func (s Selection) Len() int {
	return len(s.selected)
}

// Has reports whether key is selected.
func (s Selection) Has(key string) bool {
	_, ok := s.selected[key]
	return ok
}

// Keys returns the selected keys in lexical order.
func (s Selection) Keys() []string {
	keys := make([]string, 0, len(s.selected))
	for k := range s.selected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Click applies a row click and reports whether the selection changed.
// Single mode always replaces the selection with key; multi mode toggles key.
func (s *Selection) Click(key string) bool {
	switch s.mode {
	case SelectSingle:
		if len(s.selected) == 1 && s.Has(key) {
			return false
		}
		clear(s.selected)
		s.selected[key] = struct{}{}
		return true
	case SelectMulti:
		if s.Has(key) {
			delete(s.selected, key)
		} else {
			s.selected[key] = struct{}{}
		}
		return true
	default:
		return false
	}
}

// ToggleAll clears the selection when it already holds as many keys as there are
// distinct keys in keys, otherwise selects every key. It only applies in multi mode.
func (s *Selection) ToggleAll(keys []string) bool {
	if s.mode != SelectMulti {
		return false
	}
	if len(s.selected) == DistinctKeys(keys) {
		if len(s.selected) == 0 {
			return false
		}
		clear(s.selected)
		return true
	}
	clear(s.selected)
	for _, k := range keys {
		s.selected[k] = struct{}{}
	}
	return true
}

// DistinctKeys counts the unique keys in keys.
func DistinctKeys(keys []string) int {
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	return len(seen)
}

// Retain drops every selected key not present in keep and reports whether any was dropped.
func (s *Selection) Retain(keep map[string]struct{}) bool {
	changed := false
	for k := range s.selected {
		if _, ok := keep[k]; !ok {
			delete(s.selected, k)
			changed = true
		}
	}
	return changed
}

// CheckState is the tri-state of the select-all control.
type CheckState int

// Select-all control states.
const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

// AllState derives the select-all control state from counts alone.
func (s Selection) AllState(total int) CheckState {
	switch n := s.Len(); {
	case n == 0:
		return Unchecked
	case n == total:
		return Checked
	default:
		return Indeterminate
	}
}
