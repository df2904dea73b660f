package grid

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dateLayout is the display layout for time values.
const dateLayout = "2006-01-02"

// printer is the locale-aware printer for numeric cells.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatValue is the default cell formatter.
// Missing values render empty, numbers get thousands separators, times render as dates.
func FormatValue(v any) string {
	if isNull(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case int:
		return printer.Sprintf("%d", x)
	case int32:
		return printer.Sprintf("%d", x)
	case int64:
		return printer.Sprintf("%d", x)
	case uint:
		return printer.Sprintf("%d", x)
	case uint64:
		return printer.Sprintf("%d", x)
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(dateLayout)
	case *semver.Version:
		return x.Original()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat prints whole floats without decimals and everything else with two.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return printer.Sprintf("%d", int64(f))
	}
	return printer.Sprintf("%.2f", f)
}
