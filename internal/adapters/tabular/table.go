// Package tabular normalizes external spreadsheet inputs into typed domain
// records. It owns column-synonym resolution and date parsing; unparseable
// cells degrade to absent values and are surfaced as data-quality counts,
// never as errors.
package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table is a raw rectangular input: one header row plus string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the cell at (row, col), or "" when the row is ragged.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ColumnExact finds a column by exact, case-insensitive name. Returns -1
// when absent.
func (t *Table) ColumnExact(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// ColumnAllHints finds the first column whose lowercase name contains every
// hint. Returns -1 when absent.
func (t *Table) ColumnAllHints(hints []string) int {
	if len(hints) == 0 {
		return -1
	}
	for i, h := range t.Header {
		lc := strings.ToLower(h)
		all := true
		for _, hint := range hints {
			if !strings.Contains(lc, strings.ToLower(hint)) {
				all = false
				break
			}
		}
		if all {
			return i
		}
	}
	return -1
}

// ColumnAnyHint finds the first column whose lowercase name contains at
// least one hint. Returns -1 when absent.
func (t *Table) ColumnAnyHint(hints []string) int {
	for i, h := range t.Header {
		lc := strings.ToLower(h)
		for _, hint := range hints {
			if strings.Contains(lc, strings.ToLower(hint)) {
				return i
			}
		}
	}
	return -1
}

// ReadFile loads a table from path, dispatching on the file extension.
// CSV and XLSX are supported; sheet selection only applies to XLSX.
func ReadFile(path, preferredSheet string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, preferredSheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
