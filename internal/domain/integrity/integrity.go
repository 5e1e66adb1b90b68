// Package integrity validates allocated rooms before they are
// committed. The allocators are expected to produce valid rooms; this
// is the backstop that keeps a malformed room from reaching judging.
package integrity

import (
	"fmt"

	"github.com/opendebate/rostrum/internal/domain/allocation"
)

const (
	opdChairs       = 1
	opdMainSpeakers = 6
	maxFreeSpeakers = 3
)

// CheckOPD verifies the structural invariants of an OPD room: exactly
// one chair, exactly six main speakers split over Gov and Opp, free
// speakers labelled contiguously from Free-1, no unknown roles, and no
// participant seated twice.
func CheckOPD(room allocation.Room) error {
	var chairs, gov, opp int
	frees := make(map[int]bool)
	seen := make(map[string]bool)

	for _, a := range room.Assignments {
		if seen[a.ParticipantID] {
			return fmt.Errorf("%w: participant %s holds more than one role in room %d",
				ErrDuplicateParticipant, a.ParticipantID, room.Number)
		}
		seen[a.ParticipantID] = true

		switch {
		case a.Role == allocation.RoleChair:
			chairs++
		case a.Role == allocation.RoleWing:
			// Any wing count is valid.
		case a.Role == allocation.RoleGov:
			gov++
		case a.Role == allocation.RoleOpp:
			opp++
		case a.Role.IsFree():
			k := a.Role.FreeIndex()
			if k < 1 || k > maxFreeSpeakers {
				return fmt.Errorf("%w: %q in room %d", ErrUnknownRole, a.Role, room.Number)
			}
			if frees[k] {
				return fmt.Errorf("%w: free slot %d assigned twice in room %d",
					ErrMalformedRoom, k, room.Number)
			}
			frees[k] = true
		default:
			return fmt.Errorf("%w: %q in room %d", ErrUnknownRole, a.Role, room.Number)
		}
	}

	if chairs != opdChairs {
		return fmt.Errorf("%w: room %d has %d chairs, want exactly %d",
			ErrMalformedRoom, room.Number, chairs, opdChairs)
	}
	if gov+opp != opdMainSpeakers {
		return fmt.Errorf("%w: room %d has %d main speakers, want exactly %d",
			ErrMalformedRoom, room.Number, gov+opp, opdMainSpeakers)
	}
	for k := 1; k <= len(frees); k++ {
		if !frees[k] {
			return fmt.Errorf("%w: room %d free slots skip Free-%d",
				ErrMalformedRoom, room.Number, k)
		}
	}

	return nil
}
