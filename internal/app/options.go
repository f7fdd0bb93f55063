package app

import (
	"github.com/clinops/icfcheck/internal/domain/catalog"
	"github.com/clinops/icfcheck/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLookupMode selects how signature dates resolve to catalog versions.
func WithLookupMode(m catalog.LookupMode) Option {
	return func(s *Service) {
		s.lookupMode = m
	}
}

// WithWorkerCount sets the number of reconciliation workers.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithQueueSize sets the job queue buffer size.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
