package allocation

import (
	"math/rand"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// predicate is one eligibility test over a pool member.
type predicate func(roster.Participant) bool

// Base predicates over the judge vocabulary and preferences.
func chairSkill(p roster.Participant) bool   { return p.JudgeSkill == roster.Chair }
func traineeSkill(p roster.Participant) bool { return p.JudgeSkill == roster.Trainee }
func wingSkill(p roster.Participant) bool    { return p.JudgeSkill == roster.Wing }
func newbieSkill(p roster.Participant) bool  { return p.JudgeSkill == roster.Newbie }
func cannotJudge(p roster.Participant) bool  { return p.JudgeSkill == roster.CannotJudge }
func suspended(p roster.Participant) bool    { return p.JudgeSkill == roster.Suspended }
func firstTimer(p roster.Participant) bool   { return p.DebateSkill == roster.FirstTimer }
func prefersJudging(p roster.Participant) bool { return p.PrefersJudging }
func prefersFree(p roster.Participant) bool    { return p.PrefersFreeSpeaking }
func anyone(roster.Participant) bool           { return true }

// all combines predicates conjunctively.
func all(preds ...predicate) predicate {
	return func(p roster.Participant) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// anyOf combines predicates disjunctively.
func anyOf(preds ...predicate) predicate {
	return func(p roster.Participant) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// not negates a predicate.
func not(pred predicate) predicate {
	return func(p roster.Participant) bool { return !pred(p) }
}

// pool is the single owned collection a room allocation consumes from.
// Members leave the pool exactly once; there are no parallel candidate
// lists to drift out of sync.
type pool struct {
	members []roster.Participant
}

func newPool(members []roster.Participant) *pool {
	cp := make([]roster.Participant, len(members))
	copy(cp, members)
	return &pool{members: cp}
}

func (p *pool) size() int { return len(p.members) }

func (p *pool) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p.members), func(i, j int) {
		p.members[i], p.members[j] = p.members[j], p.members[i]
	})
}

// takeFirst evaluates the chain in priority order and removes and returns
// the first member matching the highest-priority predicate that matches
// anyone at all.
func (p *pool) takeFirst(chain ...predicate) (roster.Participant, bool) {
	for _, pred := range chain {
		for i, m := range p.members {
			if pred(m) {
				return p.takeAt(i), true
			}
		}
	}
	return roster.Participant{}, false
}

func (p *pool) takeAt(i int) roster.Participant {
	m := p.members[i]
	p.members = append(p.members[:i], p.members[i+1:]...)
	return m
}

// remove drops the member with the given id, reporting whether it was present.
func (p *pool) remove(id string) bool {
	for i, m := range p.members {
		if m.ID == id {
			p.takeAt(i)
			return true
		}
	}
	return false
}

// filter returns the members matching pred, in pool order, without removal.
func (p *pool) filter(pred predicate) []roster.Participant {
	var out []roster.Participant
	for _, m := range p.members {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out
}

// drain removes and returns every remaining member.
func (p *pool) drain() []roster.Participant {
	out := p.members
	p.members = nil
	return out
}
