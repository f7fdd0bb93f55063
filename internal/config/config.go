// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Lookup mode names accepted in configuration.
const (
	LookupInterval   = "interval"
	LookupTiedLatest = "tied-latest"
)

// Output format names accepted in configuration.
const (
	FormatDOCX = "docx"
	FormatCSV  = "csv"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LookupMode selects how signature dates resolve to catalog versions:
	// "interval" (one version per date) or "tied-latest" (all versions
	// sharing the latest effective date).
	LookupMode string `koanf:"lookup_mode"`

	// WorkerCount sets the number of reconciliation workers. Participants
	// are independent, so 1 is a valid (serial) setting.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory participant job queue.
	QueueSize int `koanf:"queue_size"`

	// MappingFile optionally points at a YAML study column mapping.
	MappingFile string `koanf:"mapping_file"`

	// OutputFormat selects the report renderer: docx or csv.
	OutputFormat string `koanf:"output_format"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LookupMode:   LookupInterval,
		WorkerCount:  runtime.NumCPU(),
		QueueSize:    1024,
		MappingFile:  "",
		OutputFormat: FormatDOCX,
	}
}
