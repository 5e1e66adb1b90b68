package allocation

import (
	"sort"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// selectChair picks the chair judge for a room and reports whether the
// room runs in training mode.
//
// Training mode: an OPD pool of at least eight with a Trainee present
// promotes that Trainee to chair, bypassing preference handling; the
// pool size guarantees an experienced first wing behind them. The
// trigger is deliberately this narrow and does not apply to BP.
func (a *Allocator) selectChair(p *pool, format roster.Format) (roster.Participant, bool, bool) {
	if format == roster.FormatOPD && p.size() >= trainingMinPool {
		if trainee, ok := p.takeFirst(traineeSkill); ok {
			return trainee, true, true
		}
	}

	chair, ok := p.takeFirst(
		all(prefersJudging, not(suspended), chairSkill),
		chairSkill,
		all(wingSkill, not(cannotJudge)),
		all(not(cannotJudge), not(suspended)),
		not(suspended),
	)
	return chair, false, ok
}

// firstWingChain ranks candidates for the first wing judge.
//
// Under training mode the first wing backs up the trainee chair, so a
// full Chair is wanted (volunteers first). Otherwise Wings and Newbies
// are treated equally, preference-marked candidates first.
func firstWingChain(training bool) []predicate {
	if training {
		return []predicate{
			all(prefersJudging, not(suspended), chairSkill),
			chairSkill,
			anyOf(wingSkill, newbieSkill),
		}
	}
	return []predicate{
		all(prefersJudging, not(suspended), anyOf(wingSkill, newbieSkill)),
		anyOf(wingSkill, newbieSkill),
		not(suspended),
	}
}

// wingChain ranks candidates for the remaining wing judges: volunteers
// first, then anyone who is neither suspended, a first-time judge, nor a
// Chair (to spread judging fatigue), relaxing those exclusions in order.
func wingChain() []predicate {
	return []predicate{
		all(prefersJudging, not(suspended)),
		all(not(suspended), not(cannotJudge), not(chairSkill)),
		all(not(suspended), not(chairSkill)),
		anyone,
	}
}

// proAmOrder ranks candidates by the format skill metric and alternates
// between the strongest and weakest remaining, so consecutive slots mix
// skill levels. Returns the first n in that order.
func proAmOrder(cands []roster.Participant, format roster.Format, window, n int) []roster.Participant {
	ranked := make([]roster.Participant, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SkillFor(format, window) > ranked[j].SkillFor(format, window)
	})

	out := make([]roster.Participant, 0, n)
	lo, hi := 0, len(ranked)-1
	for lo <= hi && len(out) < n {
		out = append(out, ranked[lo])
		lo++
		if lo <= hi && len(out) < n {
			out = append(out, ranked[hi])
			hi--
		}
	}
	return out
}
