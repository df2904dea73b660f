package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Kind is the value type a string cell is coerced to.
type Kind string

// Supported kinds.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindDate    Kind = "date"
	KindVersion Kind = "version"
	KindBool    Kind = "bool"
	// KindAuto tries number, then date, then bool, and otherwise keeps the string.
	KindAuto Kind = "auto"
)

// dateLayouts are tried in order when parsing dates.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindString, KindNumber, KindDate, KindVersion, KindBool, KindAuto:
		return k, nil
	default:
		return "", fmt.Errorf("unknown column kind %q", s)
	}
}

// Coerce converts a cell to kind. Blank cells become nil.
func Coerce(s string, kind Kind) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil //nolint:nilnil // A blank cell is a missing value, not an error.
	}

	switch kind {
	case KindNumber:
		return parseNumber(s)
	case KindDate:
		return parseDate(s)
	case KindVersion:
		v, err := semver.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("parsing version %q: %w", s, err)
		}
		return v, nil
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("parsing bool %q: %w", s, err)
		}
		return b, nil
	case KindAuto:
		if n, err := parseNumber(s); err == nil {
			return n, nil
		}
		if d, err := parseDate(s); err == nil {
			return d, nil
		}
		if b, ok := parseAutoBool(s); ok {
			return b, nil
		}
		return s, nil
	default:
		return s, nil
	}
}

// parseNumber accepts thousands separators. Whole numbers stay integers.
func parseNumber(s string) (any, error) {
	clean := strings.ReplaceAll(s, ",", "")
	if i, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing number %q: %w", s, err)
	}
	// ParseFloat also accepts words like "nan" and "inf".
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("parsing number %q: not a finite number", s)
	}
	return f, nil
}

// parseAutoBool only accepts the words true and false; strconv.ParseBool also takes
// "1", "t" and "F", which are too loose for guessing.
func parseAutoBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: expected RFC3339 or YYYY-MM-DD", s)
}
