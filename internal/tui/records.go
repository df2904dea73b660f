package tui

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/gridview/internal/config"
	"github.com/rshade/gridview/internal/grid"
	"github.com/rshade/gridview/internal/source"
)

// RecordGrid is the grid type used for loaded datasets.
type RecordGrid = grid.Grid[source.Record]

// BuildColumns derives the column set for fields. Configured columns come first in
// configuration order, followed by the remaining fields in first-seen order. Hidden
// columns are left out.
func BuildColumns(cfg *config.Config, fields []string) []grid.Column[source.Record] {
	titler := cases.Title(language.English)

	var cols []grid.Column[source.Record]
	used := make(map[string]struct{}, len(fields))
	for _, cc := range cfg.Columns {
		used[cc.Key] = struct{}{}
		if !cc.Hidden {
			cols = append(cols, recordColumn(cc, titler))
		}
	}
	for _, f := range fields {
		if _, ok := used[f]; ok {
			continue
		}
		used[f] = struct{}{}
		cols = append(cols, recordColumn(config.ColumnConfig{Key: f}, titler))
	}
	return cols
}

func recordColumn(cc config.ColumnConfig, titler cases.Caser) grid.Column[source.Record] {
	key := cc.Key
	label := cc.Label
	if label == "" {
		label = titler.String(strings.NewReplacer("_", " ", "-", " ").Replace(key))
	}

	align := grid.Align(cc.Align)
	if align == "" {
		align = grid.AlignLeft
		if source.Kind(cc.Kind) == source.KindNumber {
			align = grid.AlignRight
		}
	}

	sortable := true
	if cc.Sortable != nil {
		sortable = *cc.Sortable
	}

	return grid.Column[source.Record]{
		Key:      key,
		Label:    label,
		Sortable: sortable,
		Width:    cc.Width,
		MinWidth: cc.MinWidth,
		MaxWidth: cc.MaxWidth,
		Align:    align,
		Value:    func(r source.Record) any { return r[key] },
	}
}

// GridOptions returns engine options for a dataset with the given fields. Callers add
// callbacks, a logger and scroll notification.
func GridOptions(cfg *config.Config, fields []string) grid.Options[source.Record] {
	opts := grid.Options[source.Record]{
		Config:  cfg.ToGridConfig(),
		Columns: BuildColumns(cfg, fields),
		Key:     source.RecordKey,
		Detail:  recordDetail,
	}
	if cfg.Grid.Locale != "" {
		if tag, err := language.Parse(cfg.Grid.Locale); err == nil {
			opts.Compare = grid.CollatingCompare(tag)
		}
	}
	return opts
}

// recordDetail renders every field of a record as "field: value" lines sorted by field name.
func recordDetail(r source.Record, _ int) string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f+": "+grid.FormatValue(r[f]))
	}
	return strings.Join(lines, "\n")
}
