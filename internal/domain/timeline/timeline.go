// Package timeline assembles per-participant consent timelines from
// normalized input rows.
package timeline

import (
	"sort"
	"time"

	"github.com/clinops/icfcheck/internal/domain/dedupe"
	"github.com/clinops/icfcheck/internal/domain/model"
)

// Timeline is the read-only snapshot of one participant's consent history.
// It is built once per report run; the engine never mutates it.
type Timeline struct {
	ParticipantID string
	Signatures    []model.SignatureEvent // chronological, absent dates first
	ExitDate      time.Time              // zero when absent
	DeathDate     time.Time              // zero when absent
	Eligible      bool
}

// LastSignatureDate returns the latest usable signature date, or zero when
// the participant has no events with a resolvable date.
func (t Timeline) LastSignatureDate() time.Time {
	var last time.Time
	for _, ev := range t.Signatures {
		if ev.Date.After(last) {
			last = ev.Date
		}
	}
	return last
}

// Builder collects normalized rows and produces timelines. The participant
// universe is the union of ids seen across all three inputs.
type Builder struct {
	deduper dedupe.Deduper
	byID    map[string]*Timeline
	dupes   int
}

// NewBuilder creates a Builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		byID: make(map[string]*Timeline),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.deduper == nil {
		b.deduper = dedupe.New()
	}
	return b
}

// AddSignature records a signature event. Exact duplicate rows (same
// participant, date, and randomization groups) are dropped. Rows without a
// participant id are ignored.
func (b *Builder) AddSignature(ev model.SignatureEvent) {
	if ev.ParticipantID == "" {
		return
	}

	key := dedupe.Key(ev.ParticipantID, dateKey(ev.Date), ev.RandoGroup1, ev.RandoGroup2)
	if b.deduper.SeenAndRecord(key) {
		b.dupes++
		return
	}

	t := b.timeline(ev.ParticipantID)
	t.Signatures = append(t.Signatures, ev)
}

// AddExit records exit and death dates for a participant.
func (b *Builder) AddExit(rec model.ExitRecord) {
	if rec.ParticipantID == "" {
		return
	}

	t := b.timeline(rec.ParticipantID)
	if !rec.ExitDate.IsZero() {
		t.ExitDate = rec.ExitDate
	}
	if !rec.DeathDate.IsZero() {
		t.DeathDate = rec.DeathDate
	}
}

// AddEligibility records a screening-eligibility flag.
func (b *Builder) AddEligibility(rec model.EligibilityRecord) {
	if rec.ParticipantID == "" {
		return
	}
	b.timeline(rec.ParticipantID).Eligible = rec.Eligible
}

// Timelines returns one Timeline per participant in ascending id order,
// with each participant's signature events sorted chronologically.
func (b *Builder) Timelines() []Timeline {
	ids := make([]string, 0, len(b.byID))
	for id := range b.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Timeline, 0, len(ids))
	for _, id := range ids {
		t := *b.byID[id]
		sort.SliceStable(t.Signatures, func(i, j int) bool {
			return t.Signatures[i].Date.Before(t.Signatures[j].Date)
		})
		out = append(out, t)
	}
	return out
}

// DuplicateCount returns the number of duplicate signature rows dropped.
func (b *Builder) DuplicateCount() int { return b.dupes }

// Count returns the number of participants collected so far.
func (b *Builder) Count() int { return len(b.byID) }

func (b *Builder) timeline(id string) *Timeline {
	t, ok := b.byID[id]
	if !ok {
		t = &Timeline{ParticipantID: id, Eligible: true}
		b.byID[id] = t
	}
	return t
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
