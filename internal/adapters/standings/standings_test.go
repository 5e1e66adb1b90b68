package standings_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/opendebate/rostrum/internal/adapters/standings"
	"github.com/opendebate/rostrum/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func newStore() *standings.TreapStore {
	return standings.NewTreapStore(standings.WithRand(rand.New(rand.NewSource(42))))
}

func TestTreapStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a standings store", t, func() {
		Convey("When ratings are set", func() {
			s := newStore()
			s.SetRating(ctx, "ada", 1100, 300)
			s.SetRating(ctx, "ben", 900, 280)
			s.SetRating(ctx, "cyd", 1200, 310)

			Convey("Then TopN lists best to worst", func() {
				top, err := s.TopN(ctx, 10)

				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 3)
				So(top[0].ParticipantID, ShouldEqual, "cyd")
				So(top[1].ParticipantID, ShouldEqual, "ada")
				So(top[2].ParticipantID, ShouldEqual, "ben")
				So(top[0].Rank, ShouldEqual, 1)
				So(top[2].Rank, ShouldEqual, 3)
			})

			Convey("Then Rank finds each participant", func() {
				entry, err := s.Rank(ctx, "ada")

				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 2)
				So(entry.Rating, ShouldEqual, 1100)
			})

			Convey("Then an unknown participant is reported", func() {
				_, err := s.Rank(ctx, "zoe")
				So(errors.Is(err, standings.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a rating is replaced", func() {
			s := newStore()
			s.SetRating(ctx, "ada", 1100, 300)
			s.SetRating(ctx, "ben", 1000, 300)
			s.SetRating(ctx, "ada", 950, 290)

			Convey("Then the order reflects the replacement", func() {
				top, _ := s.TopN(ctx, 2)
				So(top[0].ParticipantID, ShouldEqual, "ben")
				So(top[1].ParticipantID, ShouldEqual, "ada")
				So(s.Count(ctx), ShouldEqual, 2)
			})
		})

		Convey("When ratings tie", func() {
			s := newStore()
			s.SetRating(ctx, "ben", 1000, 300)
			s.SetRating(ctx, "ada", 1000, 300)
			s.SetRating(ctx, "cyd", 900, 300)

			Convey("Then ties share a rank and break order by ID", func() {
				top, _ := s.TopN(ctx, 3)
				So(top[0].ParticipantID, ShouldEqual, "ada")
				So(top[1].ParticipantID, ShouldEqual, "ben")
				So(top[0].Rank, ShouldEqual, 1)
				So(top[1].Rank, ShouldEqual, 1)
				So(top[2].Rank, ShouldEqual, 3)

				entry, err := s.Rank(ctx, "cyd")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 3)
			})
		})

		Convey("When a room's changes are applied", func() {
			s := newStore()
			s.SetRating(ctx, "ada", 1000, 333)
			s.SetRating(ctx, "ben", 1000, 333)

			s.ApplyRatings(ctx, []rating.Change{
				{ParticipantID: "ada", NewRating: 1040, NewSigma: 320, Points: 3},
				{ParticipantID: "ben", NewRating: 960, NewSigma: 320, Points: 0},
				{ParticipantID: "cyd", NewRating: 1010, NewSigma: 325, Points: 2},
			})

			Convey("Then every change lands, including new participants", func() {
				So(s.Count(ctx), ShouldEqual, 3)

				entry, err := s.Rank(ctx, "ada")
				So(err, ShouldBeNil)
				So(entry.Rating, ShouldEqual, 1040)
				So(entry.Points, ShouldEqual, 3)
			})

			Convey("And points accumulate across rooms", func() {
				s.ApplyRatings(ctx, []rating.Change{
					{ParticipantID: "ada", NewRating: 1060, NewSigma: 315, Points: 2},
				})

				entry, _ := s.Rank(ctx, "ada")
				So(entry.Points, ShouldEqual, 5)
			})
		})

		Convey("When a participant is removed", func() {
			s := newStore()
			s.SetRating(ctx, "ada", 1000, 300)

			So(s.Remove(ctx, "ada"), ShouldBeTrue)
			So(s.Remove(ctx, "ada"), ShouldBeFalse)
			So(s.Count(ctx), ShouldEqual, 0)
		})

		Convey("When TopN gets a bad limit", func() {
			_, err := newStore().TopN(ctx, 0)
			So(errors.Is(err, standings.ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("When TopN asks beyond the population", func() {
			s := newStore()
			s.SetRating(ctx, "ada", 1000, 300)

			top, err := s.TopN(ctx, 50)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 1)
		})

		Convey("When many writers race", func() {
			s := newStore()

			var wg sync.WaitGroup
			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					id := fmt.Sprintf("p%02d", i)
					s.SetRating(ctx, id, float64(1000+i), 300)
				}(i)
			}
			wg.Wait()

			Convey("Then the store stays consistent", func() {
				So(s.Count(ctx), ShouldEqual, 32)
				top, err := s.TopN(ctx, 32)
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 32)
				So(top[0].ParticipantID, ShouldEqual, "p31")
			})
		})
	})
}
