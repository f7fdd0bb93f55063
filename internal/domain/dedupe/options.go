package dedupe

// settings holds construction-time configuration.
type settings struct {
	initialCapacity int
}

// Option applies a configuration option to the Deduper.
type Option func(*settings)

// WithInitialCapacity pre-sizes the seen set for large inputs.
func WithInitialCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}
