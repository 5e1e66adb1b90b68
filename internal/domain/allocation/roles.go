// Package allocation fills a single room with judges, speakers, and teams
// according to the format rules. Candidate selection is expressed as
// ranked eligibility predicates evaluated over one owned pool.
package allocation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// Role is the room role assigned to a participant.
type Role string

// Judge and OPD speaker roles.
const (
	RoleChair Role = "Judge-Chair"
	RoleWing  Role = "Judge-Wing"
	RoleGov   Role = "Gov"
	RoleOpp   Role = "Opp"
)

// BP team roles double as team labels.
const (
	RoleOG Role = "OG"
	RoleOO Role = "OO"
	RoleCG Role = "CG"
	RoleCO Role = "CO"
)

const freePrefix = "Free-"

// FreeRole returns the free-speaker role for position k (1-based).
func FreeRole(k int) Role {
	return Role(freePrefix + strconv.Itoa(k))
}

// IsJudge reports whether the role is a judging role.
func (r Role) IsJudge() bool { return r == RoleChair || r == RoleWing }

// IsFree reports whether the role is a free-speaker slot.
func (r Role) IsFree() bool { return strings.HasPrefix(string(r), freePrefix) }

// FreeIndex returns the 1-based free-speaker position, or 0 for other roles.
func (r Role) FreeIndex() int {
	if !r.IsFree() {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(r), freePrefix))
	if err != nil {
		return 0
	}
	return n
}

// TeamLabels lists the four BP teams in speaking order.
func TeamLabels() []Role { return []Role{RoleOG, RoleOO, RoleCG, RoleCO} }

// bpSpeakerRoles is the slot order eight BP speakers are drawn into.
func bpSpeakerRoles() []Role {
	return []Role{RoleOG, RoleOG, RoleOO, RoleOO, RoleCG, RoleCG, RoleCO, RoleCO}
}

// Assignment binds one participant to one role in one room.
type Assignment struct {
	ParticipantID string
	Role          Role
	Room          int
}

// Room is a fully allocated room.
type Room struct {
	Number      int
	Format      roster.Format
	Training    bool // a trainee chairs this room
	Assignments []Assignment
}

func (r *Room) add(p roster.Participant, role Role) {
	r.Assignments = append(r.Assignments, Assignment{
		ParticipantID: p.ID,
		Role:          role,
		Room:          r.Number,
	})
}

// Judges returns the participant IDs holding a judging role.
func (r Room) Judges() []string {
	var ids []string
	for _, a := range r.Assignments {
		if a.Role.IsJudge() {
			ids = append(ids, a.ParticipantID)
		}
	}
	return ids
}

// Speakers returns the assignments holding a non-judging role.
func (r Room) Speakers() []Assignment {
	var out []Assignment
	for _, a := range r.Assignments {
		if !a.Role.IsJudge() {
			out = append(out, a)
		}
	}
	return out
}

// String renders a short room summary for messages.
func (r Room) String() string {
	return fmt.Sprintf("Room %d (%s): %d assignments", r.Number, r.Format, len(r.Assignments))
}
