package allocation

import (
	"math/rand"
	"time"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// Room composition constants.
const (
	minOPDPool      = 7 // 1 chair + 6 main speakers
	opdMainSpeakers = 6
	opdGovSpeakers  = 3
	maxFreeSpeakers = 3
	// opdReserved is the headcount kept out of the wing count: six main
	// speakers plus three free-speaker slots.
	opdReserved = opdMainSpeakers + maxFreeSpeakers

	minBPPool  = 9 // 1 chair + 8 team speakers
	bpSpeakers = 8
	maxBPWings = 3

	trainingMinPool = 8
)

// Allocator fills single rooms for both formats.
type Allocator struct {
	rng        *rand.Rand
	soloWindow int
	trueRandom bool
	proAm      bool
}

// Option applies a configuration option to the Allocator.
type Option func(*Allocator)

// WithRand sets the randomness source (useful for deterministic tests).
func WithRand(rng *rand.Rand) Option {
	return func(a *Allocator) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithSoloWindow sets the rolling-window size for the OPD skill metric.
func WithSoloWindow(window int) Option {
	return func(a *Allocator) {
		if window > 0 {
			a.soloWindow = window
		}
	}
}

// WithTrueRandom bypasses all preference and eligibility handling and
// fills roles positionally from the shuffled pool.
func WithTrueRandom(enabled bool) Option {
	return func(a *Allocator) { a.trueRandom = enabled }
}

// WithProAm orders main speakers by alternating strong and weak ends of
// the skill ranking.
func WithProAm(enabled bool) Option {
	return func(a *Allocator) { a.proAm = enabled }
}

// New constructs an Allocator with default configuration.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // role shuffling, not crypto
		soloWindow: roster.DefaultSoloWindow,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}
