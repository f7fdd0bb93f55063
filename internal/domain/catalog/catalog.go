// Package catalog resolves which consent-form versions are in force at a
// given date.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clinops/icfcheck/internal/domain/model"
)

// LookupMode selects how a date is attributed to catalog versions.
type LookupMode int

const (
	// IntervalLookup treats each version as covering the half-open range
	// [effectiveFrom, next version's effectiveFrom). Exactly one version
	// applies to any date at or after the first effective date.
	IntervalLookup LookupMode = iota

	// TiedLatestLookup returns every version sharing the latest
	// effectiveFrom <= date. Handles catalogs where several versions
	// (e.g. language variants) are released on the same day.
	TiedLatestLookup
)

// String returns the configuration spelling of the mode.
func (m LookupMode) String() string {
	if m == TiedLatestLookup {
		return "tied-latest"
	}
	return "interval"
}

// ParseLookupMode converts a configuration string into a LookupMode.
func ParseLookupMode(s string) (LookupMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interval":
		return IntervalLookup, nil
	case "tied-latest":
		return TiedLatestLookup, nil
	default:
		return IntervalLookup, fmt.Errorf("%w: %q", ErrUnknownLookupMode, s)
	}
}

// Catalog is an immutable, ascending-ordered set of consent-form versions.
type Catalog struct {
	versions []model.CatalogVersion
	mode     LookupMode
}

// New builds a Catalog from the given versions. The input is copied and
// sorted ascending by effective date; an empty input is a configuration
// error to be surfaced before running a report.
func New(versions []model.CatalogVersion, opts ...Option) (*Catalog, error) {
	if len(versions) == 0 {
		return nil, ErrEmptyCatalog
	}

	vs := make([]model.CatalogVersion, len(versions))
	copy(vs, versions)
	sort.SliceStable(vs, func(i, j int) bool {
		return vs[i].EffectiveFrom.Before(vs[j].EffectiveFrom)
	})

	c := &Catalog{versions: vs, mode: IntervalLookup}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Versions returns the catalog versions in ascending effective-date order.
// The returned slice is a copy; the catalog itself stays immutable.
func (c *Catalog) Versions() []model.CatalogVersion {
	out := make([]model.CatalogVersion, len(c.versions))
	copy(out, c.versions)
	return out
}

// Len returns the number of versions in the catalog.
func (c *Catalog) Len() int { return len(c.versions) }

// Mode returns the lookup mode the catalog was built with.
func (c *Catalog) Mode() LookupMode { return c.mode }

// Resolve returns the names of the versions in force at date, according to
// the catalog's lookup mode. An absent (zero) date and a date before the
// first effective date both resolve to an empty result; callers must treat
// that as "no version in force", not as an error.
func (c *Catalog) Resolve(date time.Time) []string {
	if date.IsZero() {
		return nil
	}
	last := c.lastIndexAtOrBefore(date)
	if last < 0 {
		return nil
	}

	if c.mode == TiedLatestLookup {
		return c.tiedSetAt(last)
	}
	return []string{c.versions[last].Name}
}

// lastIndexAtOrBefore returns the greatest index whose effectiveFrom is
// <= date, or -1 when the date precedes the whole catalog.
func (c *Catalog) lastIndexAtOrBefore(date time.Time) int {
	// First index with effectiveFrom > date; the answer sits just before it.
	n := sort.Search(len(c.versions), func(i int) bool {
		return c.versions[i].EffectiveFrom.After(date)
	})
	return n - 1
}

// tiedSetAt collects every version sharing the effective date at index last.
func (c *Catalog) tiedSetAt(last int) []string {
	pivot := c.versions[last].EffectiveFrom
	first := last
	for first > 0 && c.versions[first-1].EffectiveFrom.Equal(pivot) {
		first--
	}

	names := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		names = append(names, c.versions[i].Name)
	}
	return names
}
