package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/opendebate/rostrum/internal/adapters/mq/queue"
	"github.com/opendebate/rostrum/internal/adapters/mq/worker"
	"github.com/opendebate/rostrum/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init("error"); err != nil {
		panic(err)
	}
}

// recordingFinalizer counts finalized outcomes and can be told to fail.
type recordingFinalizer struct {
	mu     sync.Mutex
	seen   []string
	failOn string
	done   chan struct{}
	want   int
}

func newRecordingFinalizer(want int) *recordingFinalizer {
	return &recordingFinalizer{done: make(chan struct{}), want: want}
}

func (f *recordingFinalizer) Finalize(_ context.Context, o queue.Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if o.OutcomeID == f.failOn {
		return errors.New("boom")
	}
	f.seen = append(f.seen, o.OutcomeID)
	if len(f.seen) == f.want {
		close(f.done)
	}
	return nil
}

func (f *recordingFinalizer) ids() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.seen...)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("finalizer did not see the expected outcomes")
	}
}

func TestWorker(t *testing.T) {
	ctx := context.Background()

	Convey("Given a single worker", t, func() {
		Convey("When outcomes are queued", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(8))
			fin := newRecordingFinalizer(2)
			w := worker.NewWorker(q, fin, worker.WithName("test-worker"))

			go w.Run(ctx)
			So(q.Enqueue(ctx, queue.Outcome{OutcomeID: "a"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Outcome{OutcomeID: "b"}), ShouldBeTrue)
			waitDone(t, fin.done)

			Convey("Then the worker finalizes them in order", func() {
				So(fin.ids(), ShouldResemble, []string{"a", "b"})
			})

			Convey("And shutdown returns promptly", func() {
				shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
				defer cancel()
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})

		Convey("When a finalize fails", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(8))
			fin := newRecordingFinalizer(2)
			fin.failOn = "bad"
			w := worker.NewWorker(q, fin)

			go w.Run(ctx)
			So(q.Enqueue(ctx, queue.Outcome{OutcomeID: "ok-1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Outcome{OutcomeID: "bad"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Outcome{OutcomeID: "ok-2"}), ShouldBeTrue)
			waitDone(t, fin.done)

			Convey("Then the worker keeps processing", func() {
				So(fin.ids(), ShouldResemble, []string{"ok-1", "ok-2"})
			})
		})
	})
}

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a worker pool", t, func() {
		Convey("When outcomes flood the queue", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(64))
			fin := newRecordingFinalizer(20)
			pool := worker.NewPool(4, q, fin)

			pool.Start(ctx)
			for i := 0; i < 20; i++ {
				So(q.Enqueue(ctx, queue.Outcome{OutcomeID: fmt.Sprintf("o%02d", i)}), ShouldBeTrue)
			}
			waitDone(t, fin.done)

			Convey("Then every outcome is finalized exactly once", func() {
				ids := fin.ids()
				So(len(ids), ShouldEqual, 20)
				seen := make(map[string]bool)
				for _, id := range ids {
					So(seen[id], ShouldBeFalse)
					seen[id] = true
				}
			})

			Convey("And shutdown drains and closes the queue", func() {
				So(pool.Shutdown(ctx), ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})

		Convey("When created with a non-positive count", func() {
			q := queue.NewInMemoryQueue()
			pool := worker.NewPool(0, q, newRecordingFinalizer(1))

			Convey("Then a default-sized pool still comes up", func() {
				So(pool, ShouldNotBeNil)
			})
		})
	})
}
