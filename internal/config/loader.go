package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ICFCHECK_CONFIG is set
//  3. env (prefix ICFCHECK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ICFCHECK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ICFCHECK_LOOKUP_MODE, ICFCHECK_WORKER_COUNT, ...
	// Map env keys like ICFCHECK_WORKER_COUNT -> worker_count (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ICFCHECK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "icfcheck_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects settings the pipeline cannot run with.
func validate(cfg *Config) error {
	switch cfg.LookupMode {
	case LookupInterval, LookupTiedLatest:
	default:
		return fmt.Errorf("%w: unknown lookup_mode %q", ErrInvalidConfig, cfg.LookupMode)
	}

	switch cfg.OutputFormat {
	case FormatDOCX, FormatCSV:
	default:
		return fmt.Errorf("%w: unknown output_format %q", ErrInvalidConfig, cfg.OutputFormat)
	}

	if cfg.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be >= 1", ErrInvalidConfig)
	}
	if cfg.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be >= 1", ErrInvalidConfig)
	}
	return nil
}
