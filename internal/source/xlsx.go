package source

import (
	"fmt"
	"os"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// readXLSX reads the first sheet of a workbook. The first non-empty row is the header.
// Cells are read as formatted text so they match what a spreadsheet user sees.
func readXLSX(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Dataset{}, err
	}

	wb, err := spreadsheet.Read(f, info.Size())
	if err != nil {
		return Dataset{}, fmt.Errorf("reading workbook: %w", err)
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return Dataset{Records: []Record{}}, nil
	}

	var table [][]string
	for _, row := range sheets[0].Rows() {
		var cells []string
		for _, cell := range row.Cells() {
			colName, colErr := cell.Column()
			if colErr != nil {
				continue
			}
			// Sparse rows skip empty cells, so place each cell by its column reference.
			idx := int(reference.ColumnToIndex(colName))
			for len(cells) <= idx {
				cells = append(cells, "")
			}
			cells[idx] = cell.GetFormattedValue()
		}
		if len(table) == 0 && isBlank(cells) {
			continue
		}
		table = append(table, cells)
	}

	if len(table) == 0 {
		return Dataset{Records: []Record{}}, nil
	}
	return fromTable(table[0], table[1:]), nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
