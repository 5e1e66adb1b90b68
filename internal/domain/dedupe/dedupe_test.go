package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/opendebate/rostrum/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOutcomeDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given an outcome deduper", t, func() {
		Convey("When recording a new outcome", func() {
			d := dedupe.New()

			seen := d.SeenAndRecord(ctx, "night-1-room-1")

			Convey("Then it is recorded as unseen", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When recording the same outcome twice", func() {
			d := dedupe.New()
			d.SeenAndRecord(ctx, "night-1-room-1")

			seen := d.SeenAndRecord(ctx, "night-1-room-1")

			Convey("Then the duplicate is reported", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an outcome is unrecorded after a failed apply", func() {
			d := dedupe.New()
			d.SeenAndRecord(ctx, "night-1-room-1")
			d.Unrecord(ctx, "night-1-room-1")

			Convey("Then a retry records it again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "night-1-room-1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown outcome", func() {
			d := dedupe.New()
			d.SeenAndRecord(ctx, "night-1-room-1")

			d.Unrecord(ctx, "night-9-room-9")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the bound is exceeded", func() {
			d := dedupe.New(dedupe.WithMaxSize(3))
			for i := 0; i < 4; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("outcome-%d", i))
			}

			Convey("Then the oldest entry is evicted first", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "outcome-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "outcome-3"), ShouldBeTrue)
			})
		})

		Convey("When unbounded", func() {
			d := dedupe.New(dedupe.WithMaxSize(0))
			for i := 0; i < 5000; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("outcome-%d", i))
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 5000)
			})
		})

		Convey("When hammered concurrently with one ID", func() {
			d := dedupe.New()

			var wg sync.WaitGroup
			firsts := make(chan bool, 64)
			for i := 0; i < 64; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "night-1-room-1") {
						firsts <- true
					}
				}()
			}
			wg.Wait()
			close(firsts)

			Convey("Then exactly one caller wins", func() {
				So(len(firsts), ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
