// Package queue defines the contract for feeding participant jobs to the
// reconciliation workers.
package queue

import (
	"context"
	"sync"

	"github.com/clinops/icfcheck/internal/domain/timeline"
)

// Job is one unit of reconciliation work: a single participant's timeline.
type Job = timeline.Timeline

// Queue defines how jobs are submitted and consumed. Close signals the end
// of the batch; workers drain the remaining jobs and stop.
type Queue interface {
	// Enqueue submits a job. Returns false when the queue is closed or
	// the context is cancelled.
	Enqueue(ctx context.Context, j Job) bool

	// Dequeue returns the channel workers range over. The channel closes
	// once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Job

	// Close marks the batch complete. Safe to call once.
	Close() error

	// Len returns the number of jobs currently buffered.
	Len(ctx context.Context) int
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	mu     sync.Mutex
	jobs   chan Job
	closed bool

	capacity int
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: 1024,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.jobs = make(chan Job, q.capacity)
	return q
}

// Enqueue submits a job, blocking while the buffer is full.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.mu.Unlock()

	select {
	case q.jobs <- j:
		return true
	case <-ctx.Done():
		return false
	}
}

// Dequeue returns the consumption channel.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Job {
	return q.jobs
}

// Close marks the batch complete. Enqueue calls after Close return false.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.closed = true
	close(q.jobs)
	return nil
}

// Len returns the number of buffered jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.jobs)
}
