package allocation

import (
	"context"
	"fmt"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// AllocateBP fills one BP room: one chair judge, wing judges, and eight
// speakers across the four teams OG, OO, CG, CO. The pool must hold at
// least nine participants. On failure no partial room is returned.
func (a *Allocator) AllocateBP(_ context.Context, members []roster.Participant, number int) (Room, error) {
	p := newPool(members)
	p.shuffle(a.rng)

	if p.size() < minBPPool {
		return Room{}, fmt.Errorf("%w: BP needs at least %d participants including a chair, got %d",
			ErrTooFewParticipants, minBPPool, p.size())
	}

	if a.trueRandom {
		return a.allocateBPTrueRandom(p, number), nil
	}

	room := Room{Number: number, Format: roster.FormatBP}

	// Training mode never triggers for BP; the chair chain is shared.
	chair, _, ok := a.selectChair(p, roster.FormatBP)
	if !ok {
		return Room{}, fmt.Errorf("%w: room %d", ErrNoEligibleChair, number)
	}
	room.add(chair, RoleChair)

	required := p.size() - bpSpeakers
	for i := 0; i < required; i++ {
		wing, ok := p.takeFirst(wingChain()...)
		if !ok {
			break
		}
		room.add(wing, RoleWing)
	}

	speakers, err := a.bpTeamSpeakers(p)
	if err != nil {
		return Room{}, fmt.Errorf("room %d: %w", number, err)
	}
	for i, sp := range speakers {
		room.add(sp, bpSpeakerRoles()[i])
	}

	// The wing arithmetic above should leave nothing behind; absorb any
	// remainder as extra wings rather than dropping participants.
	for _, left := range p.drain() {
		room.add(left, RoleWing)
	}

	return room, nil
}

// bpTeamSpeakers draws the eight team speakers. The default policy
// interleaves first-time debaters with experienced ones so no two-person
// team ends up all-novice unless unavoidable; pro-am alternates the
// strong and weak ends of the BP skill ranking instead.
func (a *Allocator) bpTeamSpeakers(p *pool) ([]roster.Participant, error) {
	if a.proAm {
		cands := p.filter(anyone)
		if len(cands) < bpSpeakers {
			return nil, fmt.Errorf("%w: %d candidates for %d team slots",
				ErrTooFewParticipants, len(cands), bpSpeakers)
		}
		speakers := proAmOrder(cands, roster.FormatBP, a.soloWindow, bpSpeakers)
		for _, sp := range speakers {
			p.remove(sp.ID)
		}
		return speakers, nil
	}

	firsts := p.filter(firstTimer)
	rest := p.filter(not(firstTimer))

	speakers := make([]roster.Participant, 0, bpSpeakers)
	for len(firsts) > 0 && len(rest) > 0 && len(speakers) < bpSpeakers {
		speakers = append(speakers, firsts[0], rest[0])
		firsts = firsts[1:]
		rest = rest[1:]
	}
	for len(speakers) < bpSpeakers && len(rest) > 0 {
		speakers = append(speakers, rest[0])
		rest = rest[1:]
	}
	for len(speakers) < bpSpeakers && len(firsts) > 0 {
		speakers = append(speakers, firsts[0])
		firsts = firsts[1:]
	}

	if len(speakers) < bpSpeakers {
		return nil, fmt.Errorf("%w: %d candidates for %d team slots",
			ErrTooFewParticipants, len(speakers), bpSpeakers)
	}
	// Trim a trailing odd pick from the pairwise loop.
	speakers = speakers[:bpSpeakers]

	for _, sp := range speakers {
		p.remove(sp.ID)
	}
	return speakers, nil
}

// allocateBPTrueRandom fills the room positionally: chair, eight team
// speakers, then up to three wings.
func (a *Allocator) allocateBPTrueRandom(p *pool, number int) Room {
	room := Room{Number: number, Format: roster.FormatBP}

	room.add(p.takeAt(0), RoleChair)

	for _, role := range bpSpeakerRoles() {
		room.add(p.takeAt(0), role)
	}

	for i := 0; i < maxBPWings && p.size() > 0; i++ {
		room.add(p.takeAt(0), RoleWing)
	}

	return room
}
