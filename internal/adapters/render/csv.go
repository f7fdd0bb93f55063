// Package render writes the finalized report table to its output formats.
// Layout beyond the plain four-column table is out of scope; the merge
// spans computed upstream arrive as blank cells and are written as-is.
package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/clinops/icfcheck/internal/domain/report"
)

// WriteCSV writes the report, header first, as RFC 4180 CSV.
func WriteCSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(report.Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.ParticipantID, r.Version, r.Status, r.Comment}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
