// Package source loads grid rows from local files.
//
// Supported formats are JSON (an array of objects), YAML (a sequence of mappings),
// CSV (header row first) and XLSX (first sheet, header row first). Every format is
// normalized into Records keyed by column name, with the column order taken from the
// first record that mentions each column.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/gridview/internal/logging"
)

// Well-known record fields used for row identity.
const (
	FieldID  = "id"
	FieldKey = "key"
)

// ErrUnsupportedFormat is returned for files whose extension has no reader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Record is one row of a dataset. Missing cells are absent or nil.
type Record map[string]any

// Dataset is the result of loading one or more files.
type Dataset struct {
	// Columns lists every field in first-seen order.
	Columns []string
	Records []Record
}

// Options controls how files are turned into records.
type Options struct {
	// GenerateIDs assigns a ULID to records without an id field.
	GenerateIDs bool
	// Kinds coerces string cells of the named columns.
	Kinds map[string]Kind
	// Infer guesses the kind of string cells in columns without an explicit Kind.
	Infer bool
}

// Load reads a single file.
func Load(ctx context.Context, path string, opts Options) (Dataset, error) {
	log := logging.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	ds, err := readFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("loading %s: %w", path, err)
	}
	if err = ds.apply(opts); err != nil {
		return Dataset{}, fmt.Errorf("loading %s: %w", path, err)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "source").
		Str("path", path).
		Int("records", len(ds.Records)).
		Int("columns", len(ds.Columns)).
		Msg("loaded dataset")
	return ds, nil
}

// LoadAll reads every path concurrently and concatenates the results in argument order.
// The first failure cancels the remaining reads.
func LoadAll(ctx context.Context, paths []string, opts Options) (Dataset, error) {
	parts := make([]Dataset, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		g.Go(func() error {
			ds, err := Load(gCtx, p, opts)
			if err != nil {
				return err
			}
			parts[i] = ds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return Merge(parts...), nil
}

// Merge concatenates datasets, unioning their columns in first-seen order.
func Merge(parts ...Dataset) Dataset {
	var out Dataset
	seen := make(map[string]struct{})
	for _, p := range parts {
		for _, c := range p.Columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				out.Columns = append(out.Columns, c)
			}
		}
		out.Records = append(out.Records, p.Records...)
	}
	if out.Records == nil {
		out.Records = []Record{}
	}
	return out
}

// positionKeyPrefix marks keys derived from a record's position.
const positionKeyPrefix = "#"

// RecordKey returns the identity of a record: its id field, then its key field, then
// its position prefixed with positionKeyPrefix so it cannot collide with a real id.
func RecordKey(rec Record, index int) string {
	for _, field := range []string{FieldID, FieldKey} {
		if v, ok := rec[field]; ok && v != nil {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
	}
	return positionKeyPrefix + strconv.Itoa(index)
}

func readFile(path string) (Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return readXLSX(path)
	case ".json", ".yaml", ".yml", ".csv":
	default:
		return Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}

	switch ext {
	case ".csv":
		return decodeCSV(data)
	default:
		// JSON documents are valid YAML, and the node API keeps field order for both.
		return decodeYAML(data)
	}
}

// apply runs coercion and id generation over a freshly read dataset.
func (ds *Dataset) apply(opts Options) error {
	for i, rec := range ds.Records {
		for col, v := range rec {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if strings.TrimSpace(s) == "" {
				rec[col] = nil
				continue
			}
			kind, explicit := opts.Kinds[col]
			if !explicit {
				if !opts.Infer {
					continue
				}
				kind = KindAuto
			}
			coerced, err := Coerce(s, kind)
			if err != nil {
				return fmt.Errorf("record %d column %q: %w", i+1, col, err)
			}
			rec[col] = coerced
		}
	}

	if !opts.GenerateIDs {
		return nil
	}
	generated := false
	for _, rec := range ds.Records {
		if v, ok := rec[FieldID]; ok && v != nil && v != "" {
			continue
		}
		rec[FieldID] = ulid.Make().String()
		generated = true
	}
	if generated && !slices.Contains(ds.Columns, FieldID) {
		ds.Columns = append([]string{FieldID}, ds.Columns...)
	}
	return nil
}

// ParseKinds parses "column=kind" pairs.
func ParseKinds(pairs []string) (map[string]Kind, error) {
	kinds := make(map[string]Kind, len(pairs))
	for _, p := range pairs {
		col, k, ok := strings.Cut(p, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid column kind %q: expected column=kind", p)
		}
		kind, err := ParseKind(k)
		if err != nil {
			return nil, err
		}
		kinds[col] = kind
	}
	return kinds, nil
}
