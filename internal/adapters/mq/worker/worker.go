// Package worker drains the outcome queue and finalizes ratings. Each
// job is one room's outcome, so a worker failure never leaves a room
// half-rated.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/opendebate/rostrum/internal/adapters/mq/queue"
	"github.com/opendebate/rostrum/pkg/logger"
	"github.com/opendebate/rostrum/pkg/metrics"
)

const (
	defaultWorkerCount  = 4
	poolShutdownTimeout = 30 * time.Second
)

// Finalizer turns one judged outcome into applied ratings.
type Finalizer interface {
	Finalize(ctx context.Context, outcome queue.Outcome) error
}

// Queue defines how workers receive outcomes.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Outcome
}

// Worker processes outcomes until stopped.
type Worker struct {
	queue     Queue
	finalizer Finalizer
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a single worker.
func NewWorker(q Queue, finalizer Finalizer, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		finalizer: finalizer,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run processes outcomes until the context is canceled, the worker is
// shut down, or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	outcomes := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case outcome, ok := <-outcomes:
			if !ok {
				return
			}
			w.process(ctx, outcome)
		}
	}
}

// Shutdown stops the worker and waits for the in-flight outcome.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *Worker) process(ctx context.Context, outcome queue.Outcome) {
	start := time.Now()
	err := w.finalizer.Finalize(ctx, outcome)
	metrics.RecordFinalizeLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "finalize failed",
			logger.String("outcome_id", outcome.OutcomeID),
			logger.Int("room", outcome.Room.Number),
			logger.Error(err),
		)
		return
	}

	w.logger.Debug(ctx, "outcome finalized",
		logger.String("outcome_id", outcome.OutcomeID),
		logger.Int("room", outcome.Room.Number),
	)
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*Worker
	queue   Queue

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers.
func NewPool(workerCount int, q Queue, finalizer Finalizer) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := range pool.workers {
		pool.workers[i] = NewWorker(q, finalizer, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue so it drains, then waits for the workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerCount(0)
	return nil
}
