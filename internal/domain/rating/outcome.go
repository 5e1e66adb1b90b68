// Package rating turns a judged room into new skill ratings. OPD rooms
// use a direct linear update over judge score averages; BP rooms run a
// team-rank update through the openskill model. Either all of a room's
// ratings update or none do.
package rating

import (
	"github.com/opendebate/rostrum/internal/domain/allocation"
	"github.com/opendebate/rostrum/internal/domain/roster"
)

// Score is one judge's score for one speaker in an OPD room.
type Score struct {
	SpeakerID string
	JudgeID   string
	Value     float64
}

// RoomOutcome is the judged result of one room.
type RoomOutcome struct {
	// OutcomeID identifies this outcome for idempotent processing.
	OutcomeID string

	// NightID names the scheduled night the room belongs to.
	NightID string

	Room   allocation.Room
	Format roster.Format

	// Scores carries per-speaker judge scores for OPD rooms.
	Scores []Score

	// Ranks maps each BP team label to its final rank, 1 the best.
	// Tied ranks are allowed; input order breaks them.
	Ranks map[allocation.Role]int
}

// Change records one participant's rating movement.
type Change struct {
	ParticipantID string
	OldRating     float64
	NewRating     float64
	OldSigma      float64
	NewSigma      float64

	// Points is the BP display score (3/2/1/0 by rank). It is recorded
	// for standings display only and never feeds back into the rating.
	Points int
}

// Result is the complete, not-yet-applied outcome of rating one room.
type Result struct {
	Updated []roster.Participant
	Changes []Change
}
