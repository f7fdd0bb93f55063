// Package app wires the reconciliation pipeline together: timelines in,
// merged report rows out.
package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/clinops/icfcheck/internal/adapters/mq/queue"
	"github.com/clinops/icfcheck/internal/adapters/mq/worker"
	"github.com/clinops/icfcheck/internal/adapters/results"
	"github.com/clinops/icfcheck/internal/domain/catalog"
	"github.com/clinops/icfcheck/internal/domain/model"
	"github.com/clinops/icfcheck/internal/domain/reconcile"
	"github.com/clinops/icfcheck/internal/domain/report"
	"github.com/clinops/icfcheck/internal/domain/timeline"
	"github.com/clinops/icfcheck/pkg/logger"
	"github.com/clinops/icfcheck/pkg/metrics"
)

// Inputs carries the normalized rows of one report run.
type Inputs struct {
	CatalogVersions []model.CatalogVersion
	Signatures      []model.SignatureEvent
	Exits           []model.ExitRecord
	Eligibility     []model.EligibilityRecord
}

// Service runs the full reconciliation pipeline over one batch.
type Service struct {
	lookupMode  catalog.LookupMode
	workerCount int
	queueSize   int
	logger      logger.Logger
}

// New creates a Service with configuration options.
func New(opts ...Option) *Service {
	s := &Service{
		lookupMode:  catalog.IntervalLookup,
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	return s
}

// Run reconciles every participant against the version catalog and returns
// the merged report rows ready for rendering.
func (s *Service) Run(ctx context.Context, in Inputs) ([]report.Row, error) {
	cat, err := catalog.New(in.CatalogVersions, catalog.WithLookupMode(s.lookupMode))
	if err != nil {
		return nil, fmt.Errorf("building version catalog: %w", err)
	}

	builder := timeline.NewBuilder()
	for _, ev := range in.Signatures {
		builder.AddSignature(ev)
	}
	for _, rec := range in.Exits {
		builder.AddExit(rec)
	}
	for _, rec := range in.Eligibility {
		builder.AddEligibility(rec)
	}

	if dupes := builder.DuplicateCount(); dupes > 0 {
		metrics.RecordDuplicateSignatures(dupes)
		s.logger.Warn(ctx, "duplicate signature rows dropped", logger.Int("count", dupes))
	}

	timelines := builder.Timelines()
	s.logger.Info(ctx, "batch assembled",
		logger.Int("participants", len(timelines)),
		logger.Int("catalog_versions", cat.Len()),
		logger.String("lookup_mode", s.lookupMode.String()),
	)

	store := results.NewMemoryStore(results.WithInitialCapacity(len(timelines)))
	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	pool := worker.NewPool(s.workerCount, q, reconcile.New(cat), store,
		worker.WithLogger(s.logger.Named("worker")),
	)

	pool.Start(ctx)
	for _, tl := range timelines {
		if !q.Enqueue(ctx, tl) {
			break
		}
	}
	if err := q.Close(); err != nil {
		return nil, fmt.Errorf("closing job queue: %w", err)
	}
	if err := pool.Wait(ctx); err != nil {
		return nil, fmt.Errorf("reconciling batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	rows := report.Render(store.Snapshot(ctx))
	merged := report.Merge(rows)

	s.logger.Info(ctx, "batch reconciled",
		logger.Int("participants", store.Count(ctx)),
		logger.Int("rows", len(merged)),
	)
	return merged, nil
}
