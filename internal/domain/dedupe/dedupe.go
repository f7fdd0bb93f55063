// Package dedupe detects duplicate normalized input rows.
//
// EDC exports routinely contain the same signature row twice when extracts
// overlap; dropping exact duplicates keeps them from skewing the earliest
// signature date per version.
package dedupe

import (
	"strings"
	"sync"
)

// Deduper records row keys and reports whether a key was seen before.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if
	// not. Returns true if key was already seen.
	SeenAndRecord(key string) bool

	// Size returns the number of distinct keys recorded so far.
	Size() int
}

// Key builds a dedupe key from row cell values. The separator is chosen so
// ordinary participant ids and dates cannot collide.
func Key(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

// mapDeduper implements Deduper with a mutex-guarded set.
type mapDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// New creates a Deduper with configuration options.
func New(opts ...Option) Deduper {
	d := &mapDeduper{}

	cfg := settings{initialCapacity: 0}
	for _, opt := range opts {
		opt(&cfg)
	}

	d.seen = make(map[string]struct{}, cfg.initialCapacity)
	return d
}

func (d *mapDeduper) SeenAndRecord(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *mapDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
