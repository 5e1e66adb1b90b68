package rating

import (
	"context"
	"fmt"
	"sort"

	"github.com/opendebate/rostrum/internal/domain/allocation"
	"github.com/opendebate/rostrum/internal/domain/roster"
)

// Linear-update defaults for OPD rooms.
const (
	DefaultBaseline = 43.0
	DefaultDivisor  = 10.0

	bpTeamCount = 4
	maxPoints   = 3
)

// Engine computes rating updates for judged rooms. It never mutates the
// snapshots it is given; callers apply the returned Result.
type Engine struct {
	baseline   float64
	divisor    float64
	soloWindow int
	mu0        float64
	sigma0     float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithBaseline sets the neutral OPD average score.
func WithBaseline(baseline float64) Option {
	return func(e *Engine) { e.baseline = baseline }
}

// WithDivisor sets the OPD delta divisor.
func WithDivisor(divisor float64) Option {
	return func(e *Engine) {
		if divisor != 0 {
			e.divisor = divisor
		}
	}
}

// WithSoloWindow sets the rolling-window size for the solo skill.
func WithSoloWindow(window int) Option {
	return func(e *Engine) {
		if window > 0 {
			e.soloWindow = window
		}
	}
}

// WithInitialRating seeds unrated participants entering a BP update.
func WithInitialRating(mu, sigma float64) Option {
	return func(e *Engine) {
		if mu > 0 {
			e.mu0 = mu
		}
		if sigma > 0 {
			e.sigma0 = sigma
		}
	}
}

// NewEngine constructs an Engine with default configuration.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		baseline:   DefaultBaseline,
		divisor:    DefaultDivisor,
		soloWindow: roster.DefaultSoloWindow,
		mu0:        roster.DefaultMu,
		sigma0:     roster.DefaultSigma,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Apply rates one judged room against the given participant snapshots.
// The whole room is computed before anything is returned, so an error
// leaves every rating untouched.
func (e *Engine) Apply(_ context.Context, outcome RoomOutcome, members map[string]roster.Participant) (Result, error) {
	switch outcome.Format {
	case roster.FormatOPD:
		return e.applyOPD(outcome, members)
	case roster.FormatBP:
		return e.applyBP(outcome, members)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, outcome.Format)
	}
}

// applyOPD averages each speaker's judge scores and applies the linear
// delta (avg − baseline) / divisor. The average is also appended to the
// speaker's solo window.
func (e *Engine) applyOPD(outcome RoomOutcome, members map[string]roster.Participant) (Result, error) {
	scoresBy := make(map[string][]float64)
	for _, s := range outcome.Scores {
		scoresBy[s.SpeakerID] = append(scoresBy[s.SpeakerID], s.Value)
	}

	var res Result
	for _, a := range outcome.Room.Speakers() {
		p, ok := members[a.ParticipantID]
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, a.ParticipantID)
		}
		vals := scoresBy[a.ParticipantID]
		if len(vals) == 0 {
			return Result{}, fmt.Errorf("%w: speaker %s in room %d",
				ErrMissingScores, a.ParticipantID, outcome.Room.Number)
		}

		var sum float64
		for _, v := range vals {
			sum += v
		}
		avg := sum / float64(len(vals))

		next := p
		next.Rating = p.Rating + (avg-e.baseline)/e.divisor
		next.SoloScores = append(append([]float64(nil), p.SoloScores...), avg)

		res.Updated = append(res.Updated, next)
		res.Changes = append(res.Changes, Change{
			ParticipantID: p.ID,
			OldRating:     p.Rating,
			NewRating:     next.Rating,
			OldSigma:      p.RatingSigma,
			NewSigma:      next.RatingSigma,
		})
	}
	return res, nil
}

// applyBP groups the room's speakers by team label, orders the teams by
// final rank, and runs the team-rank update jointly for all four teams.
func (e *Engine) applyBP(outcome RoomOutcome, members map[string]roster.Participant) (Result, error) {
	teamIDs := make(map[allocation.Role][]string)
	for _, a := range outcome.Room.Speakers() {
		teamIDs[a.Role] = append(teamIDs[a.Role], a.ParticipantID)
	}

	labels := allocation.TeamLabels()
	for _, label := range labels {
		if len(teamIDs[label]) == 0 {
			return Result{}, fmt.Errorf("%w: team %s is empty in room %d",
				ErrIncompleteTeams, label, outcome.Room.Number)
		}
		rank, ok := outcome.Ranks[label]
		if !ok || rank < 1 || rank > bpTeamCount {
			return Result{}, fmt.Errorf("%w: team %s has rank %d in room %d",
				ErrInvalidRanks, label, rank, outcome.Room.Number)
		}
	}

	// Best team first; input order breaks rank ties.
	sort.SliceStable(labels, func(i, j int) bool {
		return outcome.Ranks[labels[i]] < outcome.Ranks[labels[j]]
	})

	teams := make([][]ratingState, len(labels))
	ranks := make([]int64, len(labels))
	for i, label := range labels {
		ranks[i] = int64(outcome.Ranks[label])
		for _, id := range teamIDs[label] {
			p, ok := members[id]
			if !ok {
				return Result{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
			}
			teams[i] = append(teams[i], e.seeded(p))
		}
	}

	rated := rateTeams(teams, ranks)

	var res Result
	for i, label := range labels {
		points := maxPoints - (outcome.Ranks[label] - 1)
		if points < 0 {
			points = 0
		}
		for j, id := range teamIDs[label] {
			p := members[id]
			old := e.seeded(p)

			next := p
			next.Rating = rated[i][j].mu
			next.RatingSigma = rated[i][j].sigma

			res.Updated = append(res.Updated, next)
			res.Changes = append(res.Changes, Change{
				ParticipantID: id,
				OldRating:     old.mu,
				NewRating:     next.Rating,
				OldSigma:      old.sigma,
				NewSigma:      next.RatingSigma,
				Points:        points,
			})
		}
	}
	return res, nil
}

// seeded returns the participant's rating belief, falling back to the
// engine defaults for anyone who has never been rated.
func (e *Engine) seeded(p roster.Participant) ratingState {
	state := ratingState{mu: p.Rating, sigma: p.RatingSigma}
	if state.mu == 0 {
		state.mu = e.mu0
	}
	if state.sigma == 0 {
		state.sigma = e.sigma0
	}
	return state
}
