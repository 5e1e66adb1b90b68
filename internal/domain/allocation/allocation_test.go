package allocation_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/opendebate/rostrum/internal/domain/allocation"
	"github.com/opendebate/rostrum/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func member(id string, js roster.JudgeSkill, ds roster.DebateSkill) roster.Participant {
	return roster.Participant{ID: id, Name: id, JudgeSkill: js, DebateSkill: ds}
}

func makePool(n int, js roster.JudgeSkill) []roster.Participant {
	out := make([]roster.Participant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, member(fmt.Sprintf("p%02d", i), js, roster.Intermediate))
	}
	return out
}

func rolesByID(room allocation.Room) map[string]allocation.Role {
	out := make(map[string]allocation.Role)
	for _, a := range room.Assignments {
		out[a.ParticipantID] = a.Role
	}
	return out
}

func countRole(room allocation.Room, pred func(allocation.Role) bool) int {
	n := 0
	for _, a := range room.Assignments {
		if pred(a.Role) {
			n++
		}
	}
	return n
}

func newAllocator(opts ...allocation.Option) *allocation.Allocator {
	opts = append([]allocation.Option{allocation.WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return allocation.New(opts...)
}

func TestAllocateOPD(t *testing.T) {
	ctx := context.Background()

	Convey("Given an OPD allocator", t, func() {
		Convey("When the pool is below seven", func() {
			_, err := newAllocator().AllocateOPD(ctx, makePool(6, roster.Newbie), 1)

			Convey("Then the room fails without a partial result", func() {
				So(errors.Is(err, allocation.ErrTooFewParticipants), ShouldBeTrue)
			})
		})

		Convey("When exactly seven participants with a chair are available", func() {
			members := makePool(6, roster.Newbie)
			members = append(members, member("chair", roster.Chair, roster.Expert))

			room, err := newAllocator().AllocateOPD(ctx, members, 1)

			Convey("Then the room is one chair plus six speakers", func() {
				So(err, ShouldBeNil)
				So(len(room.Assignments), ShouldEqual, 7)
				So(rolesByID(room)["chair"], ShouldEqual, allocation.RoleChair)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleGov }), ShouldEqual, 3)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleOpp }), ShouldEqual, 3)
			})
		})

		Convey("When eleven participants are available", func() {
			members := makePool(10, roster.Newbie)
			members = append(members, member("chair", roster.Chair, roster.Expert))

			room, err := newAllocator().AllocateOPD(ctx, members, 2)

			Convey("Then everyone is seated and free labels are contiguous", func() {
				So(err, ShouldBeNil)
				So(len(room.Assignments), ShouldEqual, 11)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleChair }), ShouldEqual, 1)
				So(countRole(room, allocation.Role.IsFree), ShouldEqual, 3)

				seen := map[int]bool{}
				for _, a := range room.Assignments {
					if a.Role.IsFree() {
						seen[a.Role.FreeIndex()] = true
					}
				}
				So(seen, ShouldResemble, map[int]bool{1: true, 2: true, 3: true})
			})
		})

		Convey("When a preference-marked chair competes with a plain chair", func() {
			members := makePool(8, roster.Newbie)
			preferred := member("volunteer", roster.Chair, roster.Expert)
			preferred.PrefersJudging = true
			members = append(members, preferred, member("other-chair", roster.Chair, roster.Expert))

			room, err := newAllocator().AllocateOPD(ctx, members, 1)

			Convey("Then the volunteer chairs the room", func() {
				So(err, ShouldBeNil)
				So(rolesByID(room)["volunteer"], ShouldEqual, allocation.RoleChair)
			})
		})

		Convey("When a trainee is present in a pool of eight or more", func() {
			members := makePool(7, roster.Newbie)
			members = append(members,
				member("trainee", roster.Trainee, roster.Intermediate),
				member("chair", roster.Chair, roster.Expert),
			)

			room, err := newAllocator().AllocateOPD(ctx, members, 1)

			Convey("Then the trainee chairs in training mode with the chair as first wing", func() {
				So(err, ShouldBeNil)
				So(room.Training, ShouldBeTrue)
				roles := rolesByID(room)
				So(roles["trainee"], ShouldEqual, allocation.RoleChair)
				So(roles["chair"], ShouldEqual, allocation.RoleWing)
			})
		})

		Convey("When a trainee is present in a pool of seven", func() {
			members := makePool(5, roster.Newbie)
			members = append(members,
				member("trainee", roster.Trainee, roster.Intermediate),
				member("chair", roster.Chair, roster.Expert),
			)

			room, err := newAllocator().AllocateOPD(ctx, members, 1)

			Convey("Then training mode does not trigger", func() {
				So(err, ShouldBeNil)
				So(room.Training, ShouldBeFalse)
				So(rolesByID(room)["chair"], ShouldEqual, allocation.RoleChair)
			})
		})

		Convey("When every judge candidate is suspended except one", func() {
			members := []roster.Participant{
				member("ok", roster.Newbie, roster.Beginner),
			}
			for i := 0; i < 6; i++ {
				members = append(members, member(fmt.Sprintf("s%d", i), roster.Suspended, roster.Beginner))
			}

			room, err := newAllocator().AllocateOPD(ctx, members, 1)

			Convey("Then the last eligible candidate chairs", func() {
				So(err, ShouldBeNil)
				So(rolesByID(room)["ok"], ShouldEqual, allocation.RoleChair)
			})
		})

		Convey("When free-speaking volunteers are in the pool", func() {
			members := makePool(9, roster.Newbie)
			free := member("freester", roster.CannotJudge, roster.Beginner)
			free.PrefersFreeSpeaking = true
			members = append(members, free, member("chair", roster.Chair, roster.Expert))

			room, err := newAllocator().AllocateOPD(ctx, members, 1)

			Convey("Then the volunteer gets a free-speaker slot", func() {
				So(err, ShouldBeNil)
				So(rolesByID(room)["freester"].IsFree(), ShouldBeTrue)
			})
		})

		Convey("When pro-am ordering is on", func() {
			members := []roster.Participant{member("chair", roster.Chair, roster.Expert)}
			for i := 0; i < 6; i++ {
				p := member(fmt.Sprintf("sp%d", i), roster.Newbie, roster.Beginner)
				p.SoloScores = []float64{float64(30 + 5*i), float64(30 + 5*i), float64(30 + 5*i), float64(30 + 5*i), float64(30 + 5*i)}
				members = append(members, p)
			}

			room, err := newAllocator(allocation.WithProAm(true)).AllocateOPD(ctx, members, 1)

			Convey("Then each side mixes strong and weak speakers", func() {
				So(err, ShouldBeNil)
				var gov, opp []string
				for _, a := range room.Assignments {
					switch a.Role {
					case allocation.RoleGov:
						gov = append(gov, a.ParticipantID)
					case allocation.RoleOpp:
						opp = append(opp, a.ParticipantID)
					}
				}
				So(len(gov), ShouldEqual, 3)
				So(len(opp), ShouldEqual, 3)
				// The strongest and weakest speakers land on the same side.
				So(gov, ShouldContain, "sp5")
				So(gov, ShouldContain, "sp0")
			})
		})

		Convey("When true-random mode is on", func() {
			members := makePool(11, roster.Suspended)

			room, err := newAllocator(allocation.WithTrueRandom(true)).AllocateOPD(ctx, members, 1)

			Convey("Then the room still fills positionally", func() {
				So(err, ShouldBeNil)
				So(len(room.Assignments), ShouldEqual, 11)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleChair }), ShouldEqual, 1)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleGov }), ShouldEqual, 3)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleOpp }), ShouldEqual, 3)
			})
		})
	})
}

func TestAllocateBP(t *testing.T) {
	ctx := context.Background()

	Convey("Given a BP allocator", t, func() {
		Convey("When the pool is below nine", func() {
			_, err := newAllocator().AllocateBP(ctx, makePool(8, roster.Newbie), 1)

			Convey("Then the room fails without a partial result", func() {
				So(errors.Is(err, allocation.ErrTooFewParticipants), ShouldBeTrue)
			})
		})

		Convey("When exactly nine participants with a chair are available", func() {
			members := makePool(8, roster.Newbie)
			members = append(members, member("chair", roster.Chair, roster.Expert))

			room, err := newAllocator().AllocateBP(ctx, members, 1)

			Convey("Then the four teams hold two speakers each", func() {
				So(err, ShouldBeNil)
				So(len(room.Assignments), ShouldEqual, 9)
				So(rolesByID(room)["chair"], ShouldEqual, allocation.RoleChair)
				for _, team := range allocation.TeamLabels() {
					So(countRole(room, func(r allocation.Role) bool { return r == team }), ShouldEqual, 2)
				}
			})
		})

		Convey("When eleven participants are available", func() {
			members := makePool(10, roster.Newbie)
			members = append(members, member("chair", roster.Chair, roster.Expert))

			room, err := newAllocator().AllocateBP(ctx, members, 1)

			Convey("Then the extras wing the room", func() {
				So(err, ShouldBeNil)
				So(len(room.Assignments), ShouldEqual, 11)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleWing }), ShouldEqual, 2)
			})
		})

		Convey("When four first timers meet four experienced speakers", func() {
			members := []roster.Participant{member("chair", roster.Chair, roster.Expert)}
			for i := 0; i < 4; i++ {
				members = append(members, member(fmt.Sprintf("ft%d", i), roster.CannotJudge, roster.FirstTimer))
			}
			for i := 0; i < 4; i++ {
				members = append(members, member(fmt.Sprintf("ex%d", i), roster.Newbie, roster.Advanced))
			}

			room, err := newAllocator().AllocateBP(ctx, members, 1)

			Convey("Then no team is all first timers", func() {
				So(err, ShouldBeNil)
				byID := make(map[string]roster.Participant)
				for _, m := range members {
					byID[m.ID] = m
				}
				firstTimers := make(map[allocation.Role]int)
				for _, a := range room.Assignments {
					if a.Role.IsJudge() {
						continue
					}
					if byID[a.ParticipantID].DebateSkill == roster.FirstTimer {
						firstTimers[a.Role]++
					}
				}
				for _, team := range allocation.TeamLabels() {
					So(firstTimers[team], ShouldBeLessThanOrEqualTo, 1)
				}
			})
		})

		Convey("When true-random mode is on", func() {
			members := makePool(11, roster.Suspended)

			room, err := newAllocator(allocation.WithTrueRandom(true)).AllocateBP(ctx, members, 1)

			Convey("Then the room fills positionally with capped wings", func() {
				So(err, ShouldBeNil)
				So(len(room.Assignments), ShouldEqual, 11)
				So(countRole(room, func(r allocation.Role) bool { return r == allocation.RoleWing }), ShouldEqual, 2)
			})
		})
	})
}

func TestRoleHelpers(t *testing.T) {
	Convey("Given the role vocabulary", t, func() {
		Convey("Then free roles carry their index", func() {
			So(allocation.FreeRole(2), ShouldEqual, allocation.Role("Free-2"))
			So(allocation.FreeRole(2).IsFree(), ShouldBeTrue)
			So(allocation.FreeRole(2).FreeIndex(), ShouldEqual, 2)
			So(allocation.RoleGov.FreeIndex(), ShouldEqual, 0)
		})

		Convey("Then judge roles are recognized", func() {
			So(allocation.RoleChair.IsJudge(), ShouldBeTrue)
			So(allocation.RoleWing.IsJudge(), ShouldBeTrue)
			So(allocation.RoleOG.IsJudge(), ShouldBeFalse)
		})
	})
}
