package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrEmptyCatalog      = errors.New("empty version catalog")
	ErrUnknownLookupMode = errors.New("unknown lookup mode")
)
