package results

// settings holds construction-time configuration.
type settings struct {
	initialCapacity int
}

// Option applies a configuration option to the Store.
type Option func(*settings)

// WithInitialCapacity pre-sizes the block map for large trials.
func WithInitialCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}
