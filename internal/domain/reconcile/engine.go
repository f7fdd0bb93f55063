// Package reconcile classifies every consent-form catalog version against a
// participant's signature timeline.
package reconcile

import (
	"context"
	"time"

	"github.com/clinops/icfcheck/internal/domain/catalog"
	"github.com/clinops/icfcheck/internal/domain/model"
	"github.com/clinops/icfcheck/internal/domain/timeline"
)

// Engine reconciles participant timelines against a shared, read-only
// catalog. It holds no per-run state and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
}

// New creates an Engine bound to the given catalog.
func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Reconcile produces one VersionStatus per catalog version, in the
// catalog's ascending order. A participant whose dates are all unparseable
// yields a degraded but valid all-not-applicable/needs-verification sweep;
// that is never an error.
func (e *Engine) Reconcile(_ context.Context, tl timeline.Timeline) []model.VersionStatus {
	signed := e.signedVersions(tl.Signatures)
	lastSig := tl.LastSignatureDate()

	versions := e.catalog.Versions()
	statuses := make([]model.VersionStatus, 0, len(versions))
	for _, v := range versions {
		statuses = append(statuses, classify(v, tl, signed, lastSig))
	}
	return statuses
}

// signedVersions maps each version name to the earliest signature date that
// resolved to it. In tied-latest mode a single event may be attributed to
// several versions at once; all are recorded.
func (e *Engine) signedVersions(events []model.SignatureEvent) map[string]time.Time {
	signed := make(map[string]time.Time, len(events))
	for _, ev := range events {
		for _, name := range e.catalog.Resolve(ev.Date) {
			if prev, ok := signed[name]; !ok || ev.Date.Before(prev) {
				signed[name] = ev.Date
			}
		}
	}
	return signed
}

// classify applies the status rules for one catalog version. Precedence:
// signed, then screening eligibility, then the active-window comparison.
func classify(v model.CatalogVersion, tl timeline.Timeline, signed map[string]time.Time, lastSig time.Time) model.VersionStatus {
	if signedOn, ok := signed[v.Name]; ok {
		return model.VersionStatus{Version: v.Name, Kind: model.StatusSigned, SignedOn: signedOn}
	}

	// Screening failures never generate verification requests.
	if !tl.Eligible {
		return model.VersionStatus{Version: v.Name, Kind: model.StatusNotApplicable}
	}

	// A zero lastSig (no usable signature date at all) sorts before every
	// real effective date, so such participants fall through to the
	// active-window comparison for every version.
	becameMandatoryLater := v.EffectiveFrom.After(lastSig)
	stillActive := tl.ExitDate.IsZero() || !tl.ExitDate.Before(v.EffectiveFrom)
	if becameMandatoryLater && stillActive {
		return model.VersionStatus{Version: v.Name, Kind: model.StatusNeedsVerification}
	}

	return model.VersionStatus{Version: v.Name, Kind: model.StatusNotApplicable}
}
