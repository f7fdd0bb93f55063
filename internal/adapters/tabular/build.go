package tabular

import (
	"fmt"

	"github.com/clinops/icfcheck/internal/domain/model"
)

// Stats counts data-quality findings during normalization. They are
// warnings for the caller to surface, never fatal.
type Stats struct {
	UnparsedDates int
	SkippedRows   int
}

// Add merges another stats value into this one.
func (s *Stats) Add(other Stats) {
	s.UnparsedDates += other.UnparsedDates
	s.SkippedRows += other.SkippedRows
}

// BuildCatalog extracts catalog versions from the catalog table. Rows
// without a version name or with an unparseable effective date are skipped;
// the catalog contract requires typed dates.
func BuildCatalog(t *Table, m Mapping) ([]model.CatalogVersion, Stats, error) {
	var stats Stats
	if len(t.Header) == 0 {
		return nil, stats, ErrEmptyTable
	}

	nameCol := t.ColumnAllHints(m.VersionNameHints)
	if nameCol < 0 {
		return nil, stats, fmt.Errorf("%w: version name (hints %v)", ErrMissingColumn, m.VersionNameHints)
	}
	dateCol := t.ColumnAnyHint(m.EffectiveFromHints)
	if dateCol < 0 {
		return nil, stats, fmt.Errorf("%w: effective-from date (hints %v)", ErrMissingColumn, m.EffectiveFromHints)
	}

	versions := make([]model.CatalogVersion, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := t.Cell(row, nameCol)
		effective, failed := ParseDate(t.Cell(row, dateCol), m.DateLayouts)
		if failed {
			stats.UnparsedDates++
		}
		if name == "" || effective.IsZero() {
			stats.SkippedRows++
			continue
		}
		versions = append(versions, model.CatalogVersion{Name: name, EffectiveFrom: effective})
	}
	return versions, stats, nil
}

// BuildSignatures extracts signature events from the consent table.
// Unparseable signature dates stay on the event as absent values; the
// engine treats them as unresolvable, not as errors.
func BuildSignatures(t *Table, m Mapping) ([]model.SignatureEvent, Stats, error) {
	var stats Stats
	if len(t.Header) == 0 {
		return nil, stats, ErrEmptyTable
	}

	idCol := t.ColumnExact(m.ParticipantColumn)
	if idCol < 0 {
		return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, m.ParticipantColumn)
	}
	dateCol := t.ColumnExact(m.SignatureDateColumn)
	if dateCol < 0 {
		return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, m.SignatureDateColumn)
	}

	// Randomization groups are optional; older exports lack them.
	g1Col := t.ColumnExact(m.RandoGroup1Column)
	g2Col := t.ColumnExact(m.RandoGroup2Column)

	events := make([]model.SignatureEvent, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := t.Cell(row, idCol)
		if id == "" {
			stats.SkippedRows++
			continue
		}
		signedOn, failed := ParseDate(t.Cell(row, dateCol), m.DateLayouts)
		if failed {
			stats.UnparsedDates++
		}
		events = append(events, model.SignatureEvent{
			ParticipantID: id,
			Date:          signedOn,
			RandoGroup1:   t.Cell(row, g1Col),
			RandoGroup2:   t.Cell(row, g2Col),
		})
	}
	return events, stats, nil
}

// BuildExitEligibility extracts exit records and eligibility flags from the
// end-of-study table. Every date and the eligibility column are optional.
func BuildExitEligibility(t *Table, m Mapping) ([]model.ExitRecord, []model.EligibilityRecord, Stats, error) {
	var stats Stats
	if len(t.Header) == 0 {
		return nil, nil, stats, ErrEmptyTable
	}

	idCol := t.ColumnExact(m.ParticipantColumn)
	if idCol < 0 {
		return nil, nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, m.ParticipantColumn)
	}
	exitCol := t.ColumnExact(m.ExitDateColumn)
	deathCol := t.ColumnExact(m.DeathDateColumn)
	eligCol := t.ColumnAnyHint(m.EligibilityHints)

	exits := make([]model.ExitRecord, 0, len(t.Rows))
	var eligibility []model.EligibilityRecord
	for _, row := range t.Rows {
		id := t.Cell(row, idCol)
		if id == "" {
			stats.SkippedRows++
			continue
		}

		exitDate, failed := ParseDate(t.Cell(row, exitCol), m.DateLayouts)
		if failed {
			stats.UnparsedDates++
		}
		deathDate, failed := ParseDate(t.Cell(row, deathCol), m.DateLayouts)
		if failed {
			stats.UnparsedDates++
		}
		exits = append(exits, model.ExitRecord{
			ParticipantID: id,
			ExitDate:      exitDate,
			DeathDate:     deathDate,
		})

		if eligCol >= 0 {
			if eligible, ok := ParseEligibility(t.Cell(row, eligCol)); ok {
				eligibility = append(eligibility, model.EligibilityRecord{
					ParticipantID: id,
					Eligible:      eligible,
				})
			}
		}
	}
	return exits, eligibility, stats, nil
}
