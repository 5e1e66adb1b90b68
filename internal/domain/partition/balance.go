package partition

import "github.com/opendebate/rostrum/internal/domain/roster"

func chairCount(pool []roster.Participant) int {
	n := 0
	for _, m := range pool {
		if m.JudgeSkill == roster.Chair {
			n++
		}
	}
	return n
}

func preferredCount(pool []roster.Participant) int {
	n := 0
	for _, m := range pool {
		if m.PrefersJudging {
			n++
		}
	}
	return n
}

// repairChairs fixes chair-less pools after a skill-ordered slice by
// swapping a spare chair from another pool for a non-chair member, so
// pool sizes never change. Returns true when at least one pool could
// not be given a chair.
func repairChairs(pools [][]roster.Participant) bool {
	unsafe := false

	for needy := range pools {
		if chairCount(pools[needy]) > 0 {
			continue
		}
		if !borrowChair(pools, needy) {
			unsafe = true
		}
	}
	return unsafe
}

// borrowChair swaps a chair from a pool holding at least two into the
// needy pool, giving back one of the needy pool's members.
func borrowChair(pools [][]roster.Participant, needy int) bool {
	if len(pools[needy]) == 0 {
		return false
	}

	for donor := range pools {
		if donor == needy || chairCount(pools[donor]) < 2 {
			continue
		}
		for i, m := range pools[donor] {
			if m.JudgeSkill != roster.Chair {
				continue
			}
			pools[donor][i], pools[needy][0] = pools[needy][0], pools[donor][i]
			return true
		}
	}
	return false
}

// balancePreferred evens out judging-preference volunteers across pools
// by swapping a volunteer from the richest pool for a non-volunteer
// from the poorest, until the spread is within one. Swaps never change
// pool sizes and never strand a pool without a Chair-skill member.
func balancePreferred(pools [][]roster.Participant) {
	if len(pools) < 2 {
		return
	}

	// Each swap narrows the spread by two, so the volunteer total
	// bounds the number of iterations.
	limit := 0
	for _, pool := range pools {
		limit += preferredCount(pool)
	}

	for iter := 0; iter < limit; iter++ {
		rich, poor := -1, -1
		for i := range pools {
			if rich == -1 || preferredCount(pools[i]) > preferredCount(pools[rich]) {
				rich = i
			}
			if poor == -1 || preferredCount(pools[i]) < preferredCount(pools[poor]) {
				poor = i
			}
		}
		if preferredCount(pools[rich])-preferredCount(pools[poor]) <= 1 {
			return
		}
		if !swapPreferred(pools[rich], pools[poor]) {
			return
		}
	}
}

// swapPreferred exchanges a volunteer in rich for a non-volunteer in
// poor. A member is held back when moving them would leave their pool
// with zero chairs and the incoming member is not a chair.
func swapPreferred(rich, poor []roster.Participant) bool {
	for i, out := range rich {
		if !out.PrefersJudging {
			continue
		}
		for j, in := range poor {
			if in.PrefersJudging {
				continue
			}
			if leavesNoChair(rich, out, in) || leavesNoChair(poor, in, out) {
				continue
			}
			rich[i], poor[j] = poor[j], rich[i]
			return true
		}
	}
	return false
}

// leavesNoChair reports whether swapping out for in would strand the
// pool without any Chair-skill member.
func leavesNoChair(pool []roster.Participant, out, in roster.Participant) bool {
	if out.JudgeSkill != roster.Chair || in.JudgeSkill == roster.Chair {
		return false
	}
	return chairCount(pool) == 1
}
