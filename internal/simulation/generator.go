package simulation

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// GenerateClub builds a synthetic roster. Skill levels follow the
// distributions in constants.go so a club of reasonable size always
// carries enough chairs to schedule.
func GenerateClub(rng *rand.Rand, size int) []roster.Participant {
	faker := gofakeit.New(uint64(rng.Int63())) //nolint:gosec // simulation seeding, not crypto

	members := make([]roster.Participant, size)
	for i := range members {
		members[i] = roster.Participant{
			ID:                  uuid.NewString(),
			Name:                faker.Name(),
			DebateSkill:         drawDebateSkill(rng),
			JudgeSkill:          drawJudgeSkill(rng),
			PrefersJudging:      rng.Float64() < prefersJudgingShare,
			PrefersFreeSpeaking: rng.Float64() < prefersFreeSpeakingShare,
		}
	}
	return members
}

func drawJudgeSkill(rng *rand.Rand) roster.JudgeSkill {
	switch draw := rng.Float64(); {
	case draw < chairShare:
		return roster.Chair
	case draw < wingShare:
		return roster.Wing
	case draw < newbieShare:
		return roster.Newbie
	case draw < traineeShare:
		return roster.Trainee
	default:
		return roster.CannotJudge
	}
}

func drawDebateSkill(rng *rand.Rand) roster.DebateSkill {
	switch draw := rng.Float64(); {
	case draw < firstTimerShare:
		return roster.FirstTimer
	case draw < beginnerShare:
		return roster.Beginner
	case draw < intermediateShare:
		return roster.Intermediate
	case draw < advancedShare:
		return roster.Advanced
	default:
		return roster.Expert
	}
}
