// Package comment builds the free-text annotation carried on every report
// row of a participant.
package comment

import (
	"strings"
	"time"

	"github.com/clinops/icfcheck/internal/domain/timeline"
)

const (
	// ScreeningFailure is the exact annotation for ineligible participants.
	ScreeningFailure = "Screening Failure"

	// groupPlaceholder stands in for a missing randomization group label.
	groupPlaceholder = "-"

	// eosDateLayout is the textual day.month.year format used inside
	// annotations, distinct from the ISO format of signed-date cells.
	eosDateLayout = "02.01.2006"
)

// Compose returns the annotation for one participant. Ineligible
// participants get the literal screening-failure text; everyone else gets
// their randomization groups plus an optional end-of-study note, joined by
// a line break with empty parts dropped.
func Compose(tl timeline.Timeline) string {
	if !tl.Eligible {
		return ScreeningFailure
	}

	parts := make([]string, 0, 2)
	parts = append(parts, groupLine(tl))
	if eos := exitLine(tl); eos != "" {
		parts = append(parts, eos)
	}
	return strings.Join(parts, "\n")
}

// groupLine renders "{group1} / {group2}" from the participant's first
// signature event, with placeholders for missing labels.
func groupLine(tl timeline.Timeline) string {
	g1, g2 := groupPlaceholder, groupPlaceholder
	if len(tl.Signatures) > 0 {
		first := tl.Signatures[0]
		if first.RandoGroup1 != "" {
			g1 = first.RandoGroup1
		}
		if first.RandoGroup2 != "" {
			g2 = first.RandoGroup2
		}
	}
	return g1 + " / " + g2
}

// exitLine renders the end-of-study note. Death takes priority over a
// plain exit; neither present yields an empty string.
func exitLine(tl timeline.Timeline) string {
	switch {
	case !tl.DeathDate.IsZero():
		return "EOS (Death, " + formatEOSDate(tl.DeathDate) + ")"
	case !tl.ExitDate.IsZero():
		return "EOS (" + formatEOSDate(tl.ExitDate) + ")"
	default:
		return ""
	}
}

func formatEOSDate(t time.Time) string {
	return t.Format(eosDateLayout)
}
