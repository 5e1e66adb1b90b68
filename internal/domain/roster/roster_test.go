package roster_test

import (
	"testing"

	"github.com/opendebate/rostrum/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSoloSkill(t *testing.T) {
	Convey("Given a participant with OPD history", t, func() {
		p := roster.Participant{ID: "p1"}

		Convey("When fewer scores exist than the window", func() {
			p.SoloScores = []float64{40, 42}

			Convey("Then the solo skill is undefined", func() {
				_, ok := p.SoloSkill(5)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the window is full", func() {
			p.SoloScores = []float64{40, 42, 44, 46, 48}

			Convey("Then the solo skill is the window mean", func() {
				solo, ok := p.SoloSkill(5)
				So(ok, ShouldBeTrue)
				So(solo, ShouldEqual, 44)
			})
		})

		Convey("When more scores exist than the window", func() {
			p.SoloScores = []float64{10, 50, 50, 50, 50, 50}

			Convey("Then only the most recent window counts", func() {
				solo, ok := p.SoloSkill(5)
				So(ok, ShouldBeTrue)
				So(solo, ShouldEqual, 50)
			})
		})
	})
}

func TestSkillFor(t *testing.T) {
	Convey("Given the format skill metric", t, func() {
		Convey("When a BP rating has converged", func() {
			p := roster.Participant{Rating: 1234, RatingSigma: 200, DebateSkill: roster.Beginner}

			Convey("Then the rating is used directly", func() {
				So(p.SkillFor(roster.FormatBP, 5), ShouldEqual, 1234)
			})
		})

		Convey("When a BP rating is still uncertain", func() {
			p := roster.Participant{Rating: 1234, RatingSigma: 400, DebateSkill: roster.Advanced}

			Convey("Then the experience proxy is used", func() {
				So(p.SkillFor(roster.FormatBP, 5), ShouldEqual, 800+50*3)
			})
		})

		Convey("When no OPD history exists", func() {
			p := roster.Participant{DebateSkill: roster.Expert}

			Convey("Then the OPD proxy is used", func() {
				So(p.SkillFor(roster.FormatOPD, 5), ShouldEqual, 35+5*4)
			})
		})

		Convey("When OPD history exists", func() {
			p := roster.Participant{
				DebateSkill: roster.FirstTimer,
				SoloScores:  []float64{50, 50, 50, 50, 50},
			}

			Convey("Then the rolling average wins over the proxy", func() {
				So(p.SkillFor(roster.FormatOPD, 5), ShouldEqual, 50)
			})
		})

		Convey("When the night is mixed", func() {
			p := roster.Participant{Rating: 1000, RatingSigma: 100, DebateSkill: roster.Intermediate}

			Convey("Then both components contribute order-stably", func() {
				So(p.SkillFor(roster.FormatMixed, 5), ShouldEqual, 1000.0/20+45)
			})
		})
	})
}

func TestVocabulary(t *testing.T) {
	Convey("Given the skill vocabulary", t, func() {
		Convey("Then debate skills are ordered", func() {
			So(roster.FirstTimer, ShouldBeLessThan, roster.Beginner)
			So(roster.Advanced, ShouldBeLessThan, roster.Expert)
		})

		Convey("Then judge helpers reflect the state", func() {
			So(roster.Participant{JudgeSkill: roster.Chair}.CanChair(), ShouldBeTrue)
			So(roster.Participant{JudgeSkill: roster.Suspended}.IsSuspended(), ShouldBeTrue)
			So(roster.Participant{JudgeSkill: roster.Wing}.CanChair(), ShouldBeFalse)
		})

		Convey("Then names render for display", func() {
			So(roster.FirstTimer.String(), ShouldEqual, "First Timer")
			So(roster.Suspended.String(), ShouldEqual, "Suspended")
		})
	})
}
