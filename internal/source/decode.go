package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrNotTabular is returned when a document is not a list of records.
var ErrNotTabular = errors.New("document is not a list of records")

// decodeYAML reads a sequence of mappings. Mapping keys keep their document order.
func decodeYAML(data []byte) (Dataset, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Dataset{}, fmt.Errorf("decoding: %w", err)
	}

	ds := Dataset{Records: []Record{}}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return ds, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return Dataset{}, fmt.Errorf("%w: top level is not a sequence (line %d)", ErrNotTabular, root.Line)
	}

	seen := make(map[string]struct{})
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return Dataset{}, fmt.Errorf("%w: item at line %d is not a mapping", ErrNotTabular, item.Line)
		}
		rec := make(Record, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key := item.Content[i].Value
			var v any
			if err := item.Content[i+1].Decode(&v); err != nil {
				return Dataset{}, fmt.Errorf("decoding field %q at line %d: %w", key, item.Content[i+1].Line, err)
			}
			rec[key] = v
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				ds.Columns = append(ds.Columns, key)
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// decodeCSV reads a header row followed by data rows. Short rows leave trailing
// columns missing.
func decodeCSV(data []byte) (Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{Records: []Record{}}, nil
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("reading header: %w", err)
	}

	var rows [][]string
	for {
		row, readErr := r.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return Dataset{}, fmt.Errorf("reading row %d: %w", len(rows)+2, readErr)
		}
		rows = append(rows, row)
	}
	return fromTable(header, rows), nil
}

// fromTable turns a header and string rows into a dataset. Blank header cells are
// named after their column position.
func fromTable(header []string, rows [][]string) Dataset {
	cols := make([]string, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("column%d", i+1)
		}
		cols[i] = h
	}

	ds := Dataset{Columns: cols, Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		rec := make(Record, len(cols))
		for i, cell := range row {
			if i >= len(cols) {
				break
			}
			rec[cols[i]] = cell
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}
