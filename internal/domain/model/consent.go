// Package model contains domain models passed between layers.
package model

import "time"

// CatalogVersion is a named revision of the informed-consent form together
// with the date from which participants must sign it.
type CatalogVersion struct {
	Name          string
	EffectiveFrom time.Time
}

// SignatureEvent records one participant signing a consent form.
// A zero Date means the source cell was missing or unparseable.
type SignatureEvent struct {
	ParticipantID string
	Date          time.Time
	RandoGroup1   string
	RandoGroup2   string
}

// ExitRecord carries the optional end-of-study dates for a participant.
// Both dates are independent; zero means absent.
type ExitRecord struct {
	ParticipantID string
	ExitDate      time.Time
	DeathDate     time.Time
}

// EligibilityRecord flags screening failures. Participants without a record
// are treated as eligible.
type EligibilityRecord struct {
	ParticipantID string
	Eligible      bool
}

// StatusKind classifies a catalog version against a participant's timeline.
type StatusKind int

const (
	// StatusSigned means a signature event resolved to this version.
	StatusSigned StatusKind = iota

	// StatusNeedsVerification means the version became mandatory while the
	// participant was still active but no matching signature was found.
	StatusNeedsVerification

	// StatusNotApplicable means the version never applied to the
	// participant (superseded before entry, effective after exit, or the
	// participant failed screening).
	StatusNotApplicable
)

// VersionStatus is the engine's verdict for one catalog version.
type VersionStatus struct {
	Version  string
	Kind     StatusKind
	SignedOn time.Time // set only for StatusSigned
}

// ReportRow is one finalized report line for a (participant, version) pair.
// Rows are created once per run and never mutated afterwards.
type ReportRow struct {
	ParticipantID string
	Version       string
	Status        VersionStatus
	Comment       string
}
