// Package report flattens engine output into the final consent report
// table and performs the run-merging pass before rendering.
package report

import (
	"github.com/clinops/icfcheck/internal/domain/model"
)

// Rendered status literals, matching the historical report wording.
const (
	checkText         = "CHECK"
	notApplicableText = "n.a."
	signedDateLayout  = "2006-01-02"
)

// Header is the fixed column set of the rendered report.
var Header = []string{
	"Patient-ID",
	"Version of Informed Consent Form",
	"Date of Consent",
	"Comment",
}

// Row is one rendered report line. ParticipantID and Comment are blank on
// merged continuation rows; Version and Status are always per-row.
type Row struct {
	ParticipantID string
	Version       string
	Status        string
	Comment       string
}

// Emit produces one ReportRow per catalog version for a single participant,
// in the order the statuses were computed (catalog order), carrying the
// participant-wide comment on every row.
func Emit(participantID string, statuses []model.VersionStatus, comment string) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, model.ReportRow{
			ParticipantID: participantID,
			Version:       s.Version,
			Status:        s,
			Comment:       comment,
		})
	}
	return rows
}

// Render converts finalized rows into their textual form.
func Render(rows []model.ReportRow) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{
			ParticipantID: r.ParticipantID,
			Version:       r.Version,
			Status:        StatusText(r.Status),
			Comment:       r.Comment,
		}
	}
	return out
}

// StatusText renders a version status as the report cell value: the ISO
// signature date, the CHECK flag, or the n.a. literal.
func StatusText(s model.VersionStatus) string {
	switch s.Kind {
	case model.StatusSigned:
		return s.SignedOn.Format(signedDateLayout)
	case model.StatusNeedsVerification:
		return checkText
	default:
		return notApplicableText
	}
}

// Merge collapses each maximal run of adjacent rows sharing a participant
// into one visual block: the first row keeps the participant id and
// comment, continuation rows carry blanks for those two fields only. Rows
// for one participant must already be contiguous; non-adjacent rows are
// never merged.
func Merge(rows []Row) []Row {
	return CollapseRuns(rows,
		func(r Row) string { return r.ParticipantID },
		func(r *Row) {
			r.ParticipantID = ""
			r.Comment = ""
		},
	)
}

// CollapseRuns is the generic merge-adjacent-equal-keys pass: for every row
// whose key equals the previous row's key, blank is applied to a copy. The
// input is left untouched and the output has the same length.
func CollapseRuns[T any](rows []T, key func(T) string, blank func(*T)) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	for i := 1; i < len(rows); i++ {
		if key(rows[i]) == key(rows[i-1]) {
			blank(&out[i])
		}
	}
	return out
}
