// Package roster defines the participant model and the skill vocabulary
// used by the allocation and rating components.
package roster

// Format identifies a debate format.
type Format string

// Supported formats. Mixed labels a night that combines OPD and BP rooms.
const (
	FormatOPD   Format = "OPD"
	FormatBP    Format = "BP"
	FormatMixed Format = "Mixed"
)

// DebateSkill is the ordinal speaking-experience level of a participant.
type DebateSkill int

const (
	FirstTimer DebateSkill = iota
	Beginner
	Intermediate
	Advanced
	Expert
)

func (s DebateSkill) String() string {
	switch s {
	case FirstTimer:
		return "First Timer"
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	case Expert:
		return "Expert"
	default:
		return "Unknown"
	}
}

// JudgeSkill is the judging qualification of a participant. Suspended is a
// disqualifying state, not the top of an ordinal scale.
type JudgeSkill int

const (
	CannotJudge JudgeSkill = iota
	Trainee
	Newbie
	Wing
	Chair
	Suspended
)

func (s JudgeSkill) String() string {
	switch s {
	case CannotJudge:
		return "Cannot Judge"
	case Trainee:
		return "Trainee"
	case Newbie:
		return "Newbie"
	case Wing:
		return "Wing"
	case Chair:
		return "Chair"
	case Suspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// Rating defaults and skill-metric constants.
const (
	// DefaultMu and DefaultSigma seed a new participant's BP rating.
	DefaultMu    = 1000.0
	DefaultSigma = DefaultMu / 3.0

	// ConvergedSigma is the uncertainty below which the BP rating is
	// trusted over the experience-derived proxy.
	ConvergedSigma = 320.0

	// DefaultSoloWindow is the number of recent OPD averages that make up
	// the solo skill.
	DefaultSoloWindow = 5

	bpProxyBase = 800.0
	bpProxyStep = 50.0

	opdProxyBase = 35.0
	opdProxyStep = 5.0

	// mixedScale keeps the BP component order-stable next to the OPD one
	// when both formats run on the same night.
	mixedScale = 20.0
)

// Participant is a snapshot of one club member eligible for a night.
// Allocation treats snapshots as values; only the rating engine produces
// updated copies.
type Participant struct {
	ID   string
	Name string

	DebateSkill DebateSkill
	JudgeSkill  JudgeSkill

	// Rating and RatingSigma are the BP team-format skill belief.
	Rating      float64
	RatingSigma float64

	// SoloScores holds the most recent OPD averages, oldest first.
	SoloScores []float64

	PrefersJudging      bool
	PrefersFreeSpeaking bool
}

// SoloSkill returns the rolling mean of the last window OPD averages.
// It is undefined (ok == false) until window scores exist.
func (p Participant) SoloSkill(window int) (float64, bool) {
	if window <= 0 {
		window = DefaultSoloWindow
	}
	if len(p.SoloScores) < window {
		return 0, false
	}
	recent := p.SoloScores[len(p.SoloScores)-window:]
	var sum float64
	for _, s := range recent {
		sum += s
	}
	return sum / float64(len(recent)), true
}

// SkillFor returns the numeric skill metric for the given format.
func (p Participant) SkillFor(format Format, window int) float64 {
	switch format {
	case FormatBP:
		if p.RatingSigma > 0 && p.RatingSigma <= ConvergedSigma {
			return p.Rating
		}
		return bpProxyBase + bpProxyStep*float64(p.DebateSkill)
	case FormatMixed:
		return p.SkillFor(FormatBP, window)/mixedScale + p.SkillFor(FormatOPD, window)
	default: // OPD
		if solo, ok := p.SoloSkill(window); ok {
			return solo
		}
		return opdProxyBase + opdProxyStep*float64(p.DebateSkill)
	}
}

// CanChair reports whether the participant holds full chair qualification.
func (p Participant) CanChair() bool { return p.JudgeSkill == Chair }

// IsSuspended reports whether the participant is barred from judging.
func (p Participant) IsSuspended() bool { return p.JudgeSkill == Suspended }
