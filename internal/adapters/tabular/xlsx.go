package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads a table from an XLSX workbook. When preferredSheet exists
// it is used; otherwise the first sheet is read, matching how studies ship
// catalog workbooks with or without the dedicated sheet.
func ReadXLSX(path, preferredSheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheet := pickSheet(f, preferredSheet)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s of %s", ErrEmptyTable, sheet, path)
	}

	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

func pickSheet(f *excelize.File, preferred string) string {
	sheets := f.GetSheetList()
	for _, s := range sheets {
		if s == preferred {
			return s
		}
	}
	return sheets[0]
}
