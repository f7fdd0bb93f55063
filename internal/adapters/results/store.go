// Package results collects per-participant row blocks produced by the
// worker pool and restores a deterministic order before merging.
package results

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/clinops/icfcheck/internal/domain/model"
)

// Store accumulates finished row blocks keyed by participant.
type Store interface {
	// Put stores the complete row block of one participant. Each
	// participant may be stored exactly once per run.
	Put(ctx context.Context, participantID string, rows []model.ReportRow) error

	// Snapshot returns all rows in ascending participant order with each
	// participant's block contiguous, which the run merger depends on.
	Snapshot(ctx context.Context) []model.ReportRow

	// Count returns the number of participants stored so far.
	Count(ctx context.Context) int
}

// memoryStore implements Store with a mutex-guarded map.
type memoryStore struct {
	mu     sync.Mutex
	blocks map[string][]model.ReportRow
}

// NewMemoryStore creates an in-memory Store with configuration options.
func NewMemoryStore(opts ...Option) Store {
	cfg := settings{initialCapacity: 0}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &memoryStore{
		blocks: make(map[string][]model.ReportRow, cfg.initialCapacity),
	}
}

func (s *memoryStore) Put(_ context.Context, participantID string, rows []model.ReportRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blocks[participantID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, participantID)
	}

	block := make([]model.ReportRow, len(rows))
	copy(block, rows)
	s.blocks[participantID] = block
	return nil
}

func (s *memoryStore) Snapshot(_ context.Context) []model.ReportRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.blocks))
	total := 0
	for id, block := range s.blocks {
		ids = append(ids, id)
		total += len(block)
	}
	sort.Strings(ids)

	out := make([]model.ReportRow, 0, total)
	for _, id := range ids {
		out = append(out, s.blocks[id]...)
	}
	return out
}

func (s *memoryStore) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blocks)
}
