package catalog

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithLookupMode sets the version resolution mode. The mode is fixed for
// the lifetime of the catalog instance.
func WithLookupMode(mode LookupMode) Option {
	return func(c *Catalog) {
		c.mode = mode
	}
}
