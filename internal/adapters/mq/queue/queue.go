// Package queue carries judged room outcomes from submission to the
// finalize workers. Enqueue never blocks: a full queue rejects the
// outcome so the caller can unrecord it and retry later.
package queue

import (
	"context"
	"sync"

	"github.com/opendebate/rostrum/internal/domain/rating"
	"github.com/opendebate/rostrum/pkg/metrics"
)

const defaultCapacity = 1024

// Outcome is the payload type flowing through the queue.
type Outcome = rating.RoomOutcome

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds an outcome. Returns false when the queue is full or
	// closed and the outcome was not accepted.
	Enqueue(ctx context.Context, o Outcome) bool

	// Dequeue returns a channel yielding outcomes as they arrive. The
	// channel closes when the queue closes and drains.
	Dequeue(ctx context.Context) <-chan Outcome

	// Len returns the current number of queued outcomes.
	Len(ctx context.Context) int

	// Close stops accepting outcomes; queued ones still drain.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	outcomes chan Outcome
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}

	for _, opt := range opts {
		opt(q)
	}

	q.outcomes = make(chan Outcome, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0)

	return q
}

// Enqueue implements Queue.Enqueue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, o Outcome) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueReject()
		return false
	}

	select {
	case q.outcomes <- o:
		metrics.RecordQueueEnqueue()
		q.publishGauges()
		return true
	case <-ctx.Done():
		metrics.RecordQueueReject()
		return false
	default:
		metrics.RecordQueueReject()
		return false
	}
}

// Dequeue implements Queue.Dequeue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome)
	go func() {
		defer close(out)
		for o := range q.outcomes {
			select {
			case out <- o:
				metrics.RecordQueueDequeue()
				q.publishGauges()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len implements Queue.Len.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.outcomes)
}

// Close implements Queue.Close.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.outcomes)
	q.closed = true
	return nil
}

// IsClosed implements Queue.IsClosed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) publishGauges() {
	size := len(q.outcomes)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
