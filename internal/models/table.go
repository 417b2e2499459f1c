package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MinColumns is the smallest column count a table needs to be plotted.
const MinColumns = 3

// Table is a rectangular dataset with a header row. Cells keep their raw
// text; numeric conversion happens per column when a plot asks for it.
type Table struct {
	Source  string
	Columns []string
	Rows    [][]string
}

// NewTable builds a table from a header and data rows. Header names are
// normalised and every row must have exactly len(header) cells.
func NewTable(source string, header []string, rows [][]string) (*Table, error) {
	columns := normaliseHeader(header)
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, expected %d", i+2, len(row), len(columns))
		}
	}
	return &Table{Source: source, Columns: columns, Rows: rows}, nil
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// NumRows returns the data row count, header excluded.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Float64s parses the named column as numbers.
func (t *Table) Float64s(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}

	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		cell := strings.TrimSpace(row[idx])
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %q is not a number", name, i+1, cell)
		}
		values[i] = v
	}
	return values, nil
}

// normaliseHeader gives blank headers a positional name and disambiguates
// repeated names with a numeric suffix.
func normaliseHeader(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for seen[name] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		seen[name] = true
		columns[i] = name
	}
	return columns
}
