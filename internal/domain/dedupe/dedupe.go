// Package dedupe guards outcome processing against double submission:
// a judged room's outcome must update ratings at most once, no matter
// how often the caller retries.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen outcome IDs for at-most-once processing.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records
	// it if not. Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets an id so it can be retried. Use only when an
	// outcome was recorded but failed to process, for example on queue
	// backpressure.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// outcomeDeduper is a map-backed seen-set. In bounded mode a ring of
// recorded IDs drives FIFO eviction, so the memory ceiling holds over
// an unbounded stream of outcomes.
type outcomeDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // ring buffer of recorded IDs, bounded mode only
	next    int      // ring slot the next record overwrites
	maxSize int      // 0 or negative means unbounded
}

// New creates an outcome deduper. The default capacity suits a season
// of club nights; override it with WithMaxSize.
func New(opts ...Option) Deduper {
	d := &outcomeDeduper{maxSize: 4096}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.order = make([]string, d.maxSize)
	}
	return d
}

func (d *outcomeDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		if evicted := d.order[d.next]; evicted != "" {
			delete(d.seen, evicted)
		}
		d.order[d.next] = id
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *outcomeDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)

	// The ring slot keeps the stale id; it is skipped on eviction
	// because the map no longer holds it.
	if d.maxSize > 0 {
		for i, held := range d.order {
			if held == id {
				d.order[i] = ""
				break
			}
		}
	}
}

func (d *outcomeDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
