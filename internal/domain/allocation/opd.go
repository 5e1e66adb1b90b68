package allocation

import (
	"context"
	"fmt"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// AllocateOPD fills one OPD room: one chair judge, wing judges, six main
// speakers (Gov/Opp), and up to three free speakers. The pool must hold
// at least seven participants. On failure no partial room is returned.
func (a *Allocator) AllocateOPD(_ context.Context, members []roster.Participant, number int) (Room, error) {
	p := newPool(members)
	p.shuffle(a.rng)

	if p.size() < minOPDPool {
		return Room{}, fmt.Errorf("%w: OPD needs at least %d participants including a chair, got %d",
			ErrTooFewParticipants, minOPDPool, p.size())
	}

	if a.trueRandom {
		return a.allocateOPDTrueRandom(p, number), nil
	}

	room := Room{Number: number, Format: roster.FormatOPD}

	chair, training, ok := a.selectChair(p, roster.FormatOPD)
	if !ok {
		return Room{}, fmt.Errorf("%w: room %d", ErrNoEligibleChair, number)
	}
	room.Training = training
	room.add(chair, RoleChair)

	// A first wing exists whenever more than six remain after the chair.
	if p.size() > opdMainSpeakers {
		if wing, ok := p.takeFirst(firstWingChain(training)...); ok {
			room.add(wing, RoleWing)
		}
	}

	// The remaining wing count is fixed by what the speaker and free
	// slots cannot absorb.
	required := p.size() - opdReserved
	for i := 0; i < required; i++ {
		wing, ok := p.takeFirst(wingChain()...)
		if !ok {
			break
		}
		room.add(wing, RoleWing)
	}

	speakers, err := a.opdMainSpeakers(p)
	if err != nil {
		return Room{}, fmt.Errorf("room %d: %w", number, err)
	}
	for i, sp := range speakers {
		role := RoleGov
		if i >= opdGovSpeakers {
			role = RoleOpp
		}
		room.add(sp, role)
	}

	for k := 1; k <= maxFreeSpeakers && p.size() > 0; k++ {
		free, _ := p.takeFirst(prefersFree, anyone)
		room.add(free, FreeRole(k))
	}

	// Anyone still unassigned reinforces the jury.
	for _, left := range p.drain() {
		room.add(left, RoleWing)
	}

	return room, nil
}

// opdMainSpeakers draws six speakers from the pool. Participants who
// marked the free-speaking preference are held back unless the rest of
// the pool cannot fill the six slots.
func (a *Allocator) opdMainSpeakers(p *pool) ([]roster.Participant, error) {
	cands := p.filter(not(prefersFree))
	if len(cands) < opdMainSpeakers {
		cands = append(cands, p.filter(prefersFree)...)
	}
	if len(cands) < opdMainSpeakers {
		return nil, fmt.Errorf("%w: %d candidates for %d speaker slots",
			ErrTooFewParticipants, len(cands), opdMainSpeakers)
	}

	var speakers []roster.Participant
	if a.proAm {
		speakers = proAmOrder(cands, roster.FormatOPD, a.soloWindow, opdMainSpeakers)
	} else {
		speakers = cands[:opdMainSpeakers]
	}

	for _, sp := range speakers {
		p.remove(sp.ID)
	}
	return speakers, nil
}

// allocateOPDTrueRandom fills the room positionally from the already
// shuffled pool: chair, six speakers, one wing, up to three free
// speakers, remainder as wings.
func (a *Allocator) allocateOPDTrueRandom(p *pool, number int) Room {
	room := Room{Number: number, Format: roster.FormatOPD}

	room.add(p.takeAt(0), RoleChair)

	for i := 0; i < opdMainSpeakers; i++ {
		role := RoleGov
		if i >= opdGovSpeakers {
			role = RoleOpp
		}
		room.add(p.takeAt(0), role)
	}

	if p.size() > 0 {
		room.add(p.takeAt(0), RoleWing)
	}

	for k := 1; k <= maxFreeSpeakers && p.size() > 0; k++ {
		room.add(p.takeAt(0), FreeRole(k))
	}

	for _, left := range p.drain() {
		room.add(left, RoleWing)
	}

	return room
}
