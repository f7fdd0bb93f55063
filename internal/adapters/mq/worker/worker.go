// Package worker fans the participant batch out over a pool of
// reconciliation workers. Participants are independent, so workers share
// nothing but the read-only catalog and the results sink.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/clinops/icfcheck/internal/adapters/mq/queue"
	"github.com/clinops/icfcheck/internal/domain/comment"
	"github.com/clinops/icfcheck/internal/domain/model"
	"github.com/clinops/icfcheck/internal/domain/report"
	"github.com/clinops/icfcheck/internal/domain/timeline"
	"github.com/clinops/icfcheck/pkg/logger"
	"github.com/clinops/icfcheck/pkg/metrics"
)

// Reconciler classifies every catalog version for one participant.
type Reconciler interface {
	Reconcile(ctx context.Context, tl timeline.Timeline) []model.VersionStatus
}

// Sink collects the finished row block of one participant.
type Sink interface {
	Put(ctx context.Context, participantID string, rows []model.ReportRow) error
}

// Queue defines how workers receive participant jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Pool runs a fixed number of workers until the queue is drained.
type Pool struct {
	workerCount int
	queue       Queue
	reconciler  Reconciler
	sink        Sink

	wg sync.WaitGroup

	// firstErr records the first sink failure; the batch is aborted by
	// reporting it from Wait.
	errOnce  sync.Once
	firstErr error

	logger logger.Logger
}

// NewPool creates a worker pool with configuration options.
func NewPool(workerCount int, q Queue, rec Reconciler, sink Sink, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}

	p := &Pool{
		workerCount: workerCount,
		queue:       q,
		reconciler:  rec,
		sink:        sink,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logger.Get().Named("worker")
	}
	return p
}

// Start launches the workers. Each worker drains the queue until its
// channel closes or the context is cancelled.
func (p *Pool) Start(ctx context.Context) {
	jobs := p.queue.Dequeue(ctx)
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.run(ctx, jobs)
	}
}

// Wait blocks until every worker has finished and returns the first
// processing error, if any.
func (p *Pool) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.firstErr
	case <-ctx.Done():
		return fmt.Errorf("waiting for workers: %w", ctx.Err())
	}
}

func (p *Pool) run(ctx context.Context, jobs <-chan queue.Job) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case tl, ok := <-jobs:
			if !ok {
				return
			}
			if err := p.process(ctx, tl); err != nil {
				p.errOnce.Do(func() { p.firstErr = err })
				p.logger.Error(ctx, "processing participant failed",
					logger.String("participant", tl.ParticipantID),
					logger.Err(err),
				)
			}
		}
	}
}

// process runs the full per-participant pipeline: reconcile, compose the
// annotation, and emit the row block.
func (p *Pool) process(ctx context.Context, tl timeline.Timeline) error {
	statuses := p.reconciler.Reconcile(ctx, tl)
	annotation := comment.Compose(tl)
	rows := report.Emit(tl.ParticipantID, statuses, annotation)

	if err := p.sink.Put(ctx, tl.ParticipantID, rows); err != nil {
		return fmt.Errorf("storing rows for %s: %w", tl.ParticipantID, err)
	}

	metrics.RecordParticipantProcessed()
	metrics.RecordRowsEmitted(len(rows))
	for _, s := range statuses {
		switch s.Kind {
		case model.StatusSigned:
			metrics.RecordSignedRow()
		case model.StatusNeedsVerification:
			metrics.RecordNeedsVerificationRow()
		case model.StatusNotApplicable:
			metrics.RecordNotApplicableRow()
		}
	}

	p.logger.Debug(ctx, "participant reconciled",
		logger.String("participant", tl.ParticipantID),
		logger.Int("rows", len(rows)),
	)
	return nil
}
