package tabular

import "errors"

// Sentinel kinds for normalization errors.
var (
	ErrMissingColumn     = errors.New("required column not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyTable        = errors.New("table has no header row")
)
