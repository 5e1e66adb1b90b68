package simulation

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/opendebate/rostrum/internal/domain/allocation"
	"github.com/opendebate/rostrum/internal/domain/rating"
	"github.com/opendebate/rostrum/internal/domain/roster"
)

// judgeRooms fabricates a judged outcome for every allocated room.
// Scores and ranks lean on each speaker's experience level so stronger
// members drift upward over a season, with enough jitter to keep the
// standings lively.
func judgeRooms(
	rng *rand.Rand,
	nightID string,
	rooms []allocation.Room,
	members map[string]roster.Participant,
) []rating.RoomOutcome {
	outcomes := make([]rating.RoomOutcome, 0, len(rooms))
	for _, room := range rooms {
		outcome := rating.RoomOutcome{
			OutcomeID: uuid.NewString(),
			NightID:   nightID,
			Room:      room,
			Format:    room.Format,
		}

		switch room.Format {
		case roster.FormatBP:
			outcome.Ranks = drawRanks(rng, room, members)
		default:
			outcome.Scores = drawScores(rng, room, members)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// drawScores has every judge in the room score every speaker.
func drawScores(rng *rand.Rand, room allocation.Room, members map[string]roster.Participant) []rating.Score {
	judges := room.Judges()
	var scores []rating.Score
	for _, a := range room.Speakers() {
		skill := members[a.ParticipantID].DebateSkill
		for _, judge := range judges {
			value := scoreBase + scorePerSkill*float64(skill) + (rng.Float64()*2-1)*scoreJitter
			scores = append(scores, rating.Score{
				SpeakerID: a.ParticipantID,
				JudgeID:   judge,
				Value:     value,
			})
		}
	}
	return scores
}

// drawRanks orders the four teams by their summed experience plus a
// jittered draw, so the best team usually but not always wins.
func drawRanks(rng *rand.Rand, room allocation.Room, members map[string]roster.Participant) map[allocation.Role]int {
	labels := allocation.TeamLabels()

	strength := make(map[allocation.Role]float64, bpTeamCount)
	for _, a := range room.Speakers() {
		strength[a.Role] += float64(members[a.ParticipantID].DebateSkill) + rng.Float64()*scorePerSkill
	}

	order := append([]allocation.Role(nil), labels...)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if strength[order[j]] > strength[order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	ranks := make(map[allocation.Role]int, bpTeamCount)
	for pos, label := range order {
		ranks[label] = pos + 1
	}
	return ranks
}
