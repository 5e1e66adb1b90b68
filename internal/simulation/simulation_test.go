package simulation_test

import (
	"context"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/opendebate/rostrum/internal/domain/partition"
	"github.com/opendebate/rostrum/internal/domain/roster"
	"github.com/opendebate/rostrum/internal/simulation"
	"github.com/opendebate/rostrum/pkg/logger"
)

func init() {
	if err := logger.Init("error"); err != nil {
		panic(err)
	}
}

func TestGenerateClub(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		rng := rand.New(rand.NewSource(3))

		Convey("When a club is generated", func() {
			club := simulation.GenerateClub(rng, 50)

			Convey("Then every member is distinct and named", func() {
				So(club, ShouldHaveLength, 50)
				ids := make(map[string]bool)
				for _, m := range club {
					So(ids[m.ID], ShouldBeFalse)
					ids[m.ID] = true
					So(m.Name, ShouldNotBeEmpty)
				}
			})

			Convey("And the skill spread covers chairs and speakers", func() {
				var chairs, speakers int
				for _, m := range club {
					if m.JudgeSkill == roster.Chair {
						chairs++
					}
					if m.DebateSkill >= roster.Intermediate {
						speakers++
					}
				}
				So(chairs, ShouldBeGreaterThan, 0)
				So(speakers, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When two clubs share a seed", func() {
			a := simulation.GenerateClub(rand.New(rand.NewSource(9)), 12)
			b := simulation.GenerateClub(rand.New(rand.NewSource(9)), 12)

			Convey("Then their skill draws match", func() {
				for i := range a {
					So(a[i].JudgeSkill, ShouldEqual, b[i].JudgeSkill)
					So(a[i].DebateSkill, ShouldEqual, b[i].DebateSkill)
				}
			})
		})
	})
}

func TestRunSeason(t *testing.T) {
	Convey("Given a small reproducible season", t, func() {
		cfg := &simulation.Config{
			ClubSize: 20,
			Nights:   3,
			Scenario: "O-B",
			Mode:     partition.ModeRandom,
			Seed:     7,
			TopN:     5,
		}

		Convey("When the season runs", func() {
			err := simulation.Run(context.Background(), cfg)

			Convey("Then it completes without error", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}
