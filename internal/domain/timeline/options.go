package timeline

import "github.com/clinops/icfcheck/internal/domain/dedupe"

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithDeduper sets the duplicate-row detector used for signature events.
func WithDeduper(d dedupe.Deduper) Option {
	return func(b *Builder) {
		if d != nil {
			b.deduper = d
		}
	}
}
