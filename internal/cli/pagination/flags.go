package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Validation limits and defaults.
const (
	MinPageSize      = 1
	MaxPageSize      = 1000
	MinPage          = 1
	DefaultSortOrder = SortOrderAsc
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 1000")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidScroll     = errors.New("scroll must be non-negative")
	ErrInvalidHeight     = errors.New("height must be non-negative")
	ErrMixedModes        = errors.New("cannot use both row-based (--scroll) and page-based (--page) positioning")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the snapshot positioning flags. Two modes are supported:
//   - Row-based: --scroll moves a virtualized viewport to a row
//   - Page-based: --page and --page-size select a page
//
// These modes are mutually exclusive.
type Params struct {
	// Page is the 1-based page number. Zero leaves page-based mode off.
	Page int

	// PageSize is the number of rows per page. Zero uses the configured size.
	PageSize int

	// Scroll is the first row shown in a virtualized viewport.
	Scroll int

	// Height is the number of rows the viewport shows. Zero measures the terminal.
	Height int

	// Sort is a sort expression in "field" or "field:order" form.
	Sort string
}

// Validate checks the parameters for bounds and conflicting modes.
func (p Params) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.Scroll < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidScroll, p.Scroll)
	}
	if p.Height < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidHeight, p.Height)
	}
	if p.IsPageBased() && p.Scroll > 0 {
		return ErrMixedModes
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// IsPageBased returns true if page-based mode was requested.
func (p Params) IsPageBased() bool {
	return p.Page > 0 || p.PageSize > 0
}

// EffectivePage returns the requested page, or the first page when only a size was given.
func (p Params) EffectivePage() int {
	return max(MinPage, p.Page)
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "size:desc", "created:asc".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
