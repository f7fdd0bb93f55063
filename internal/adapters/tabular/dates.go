package tabular

import (
	"strings"
	"time"
)

// ParseDate parses a cell against the candidate layouts in order. An empty
// cell is absent (zero time, failed=false); a non-empty cell matching no
// layout is absent too, but reported as a parse failure so the caller can
// surface a data-quality warning before the value reaches the engine.
func ParseDate(s string, layouts []string) (t time.Time, failed bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			// Normalize to a date-only UTC value so comparisons are
			// independent of the layout that happened to match.
			y, m, d := parsed.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), false
		}
	}
	return time.Time{}, true
}

// ParseEligibility interprets a cell as a screening-eligibility flag.
// Empty or unrecognized values count as absent (ok=false); absence means
// eligible by default at the timeline layer.
func ParseEligibility(s string) (eligible, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return true, false
	case "0", "n", "no", "false", "f", "fail", "failed", "ineligible":
		return false, true
	case "1", "y", "yes", "true", "t", "eligible":
		return true, true
	default:
		return true, false
	}
}
