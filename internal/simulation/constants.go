package simulation

// Defaults for a simulated season.
const (
	DefaultClubSize = 20
	DefaultNights   = 10
	DefaultTopN     = 10
)

// Judging qualification distribution of the synthetic club, cumulative
// over a unit draw.
const (
	chairShare   = 0.20
	wingShare    = 0.35
	newbieShare  = 0.60
	traineeShare = 0.70
	// the rest cannot judge
)

// Speaking experience distribution, cumulative over a unit draw.
const (
	firstTimerShare   = 0.15
	beginnerShare     = 0.40
	intermediateShare = 0.70
	advancedShare     = 0.90
	// the rest are experts
)

// Preference shares.
const (
	prefersJudgingShare      = 0.25
	prefersFreeSpeakingShare = 0.15
)

// Synthetic OPD judge scores center on the speaker's experience level.
const (
	scoreBase     = 37.0
	scorePerSkill = 3.0
	scoreJitter   = 6.0
	bpTeamCount   = 4
	percentFactor = 100.0
)
