// Package partition splits the full roster into per-room pools before
// the room allocators run. Four strategies are available; all of them
// finish with a judging-preference balancer so volunteer judges spread
// evenly across rooms.
package partition

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/opendebate/rostrum/internal/domain/roster"
)

// Mode selects the partitioning strategy.
type Mode string

const (
	// ModeTrueRandom shuffles and slices contiguously.
	ModeTrueRandom Mode = "true-random"
	// ModeRandom shuffles but guarantees one Chair-skill participant
	// per room, failing when there are fewer chairs than rooms.
	ModeRandom Mode = "random"
	// ModeSkill ranks by the format skill metric and slices
	// contiguously, so rooms are skill-tiered.
	ModeSkill Mode = "skill"
	// ModeProAm walks the skill ranking in a serpentine pattern across
	// rooms, so every room mixes strong and weak participants.
	ModeProAm Mode = "proam"
)

// ParseMode maps a configuration string to a Mode. Matching is
// case-insensitive and tolerant of spaces, dashes, and underscores.
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(s)
	norm = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(norm)

	switch norm {
	case "truerandom":
		return ModeTrueRandom, nil
	case "random", "":
		return ModeRandom, nil
	case "skill", "skillbased", "skillsorted":
		return ModeSkill, nil
	case "proam":
		return ModeProAm, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Partitioner splits rosters into per-room pools.
type Partitioner struct {
	rng        *rand.Rand
	soloWindow int
}

// Option applies a configuration option to the Partitioner.
type Option func(*Partitioner)

// WithRand sets the randomness source (useful for deterministic tests).
func WithRand(rng *rand.Rand) Option {
	return func(p *Partitioner) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithSoloWindow sets the rolling-window size for the OPD skill metric.
func WithSoloWindow(window int) Option {
	return func(p *Partitioner) {
		if window > 0 {
			p.soloWindow = window
		}
	}
}

// New constructs a Partitioner with default configuration.
func New(opts ...Option) *Partitioner {
	p := &Partitioner{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // pool shuffling, not crypto
		soloWindow: roster.DefaultSoloWindow,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Split partitions members into one pool per entry of counts. The
// returned unsafe flag reports that a skill-ordered strategy could not
// secure a Chair-skill participant for every room; the pools are still
// usable because the allocator chair chain has non-Chair fallbacks.
func (p *Partitioner) Split(
	_ context.Context,
	members []roster.Participant,
	counts []int,
	format roster.Format,
	mode Mode,
) ([][]roster.Participant, bool, error) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(members) {
		return nil, false, fmt.Errorf("%w: %d participants for counts summing to %d",
			ErrCountMismatch, len(members), total)
	}

	var (
		pools  [][]roster.Participant
		unsafe bool
		err    error
	)

	switch mode {
	case ModeTrueRandom:
		pools = p.sliceShuffled(members, counts)
	case ModeRandom:
		pools, err = p.randomWithChairs(members, counts)
	case ModeSkill:
		pools = slicePools(p.ranked(members, format), counts)
		unsafe = repairChairs(pools)
	case ModeProAm:
		pools = serpentine(p.ranked(members, format), counts)
		unsafe = repairChairs(pools)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		return nil, false, err
	}

	balancePreferred(pools)
	return pools, unsafe, nil
}

func (p *Partitioner) sliceShuffled(members []roster.Participant, counts []int) [][]roster.Participant {
	shuffled := make([]roster.Participant, len(members))
	copy(shuffled, members)
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return slicePools(shuffled, counts)
}

// randomWithChairs seeds one Chair-skill participant into every room
// before distributing the shuffled remainder.
func (p *Partitioner) randomWithChairs(members []roster.Participant, counts []int) ([][]roster.Participant, error) {
	var chairs, rest []roster.Participant
	for _, m := range members {
		if m.JudgeSkill == roster.Chair {
			chairs = append(chairs, m)
		} else {
			rest = append(rest, m)
		}
	}
	if len(chairs) < len(counts) {
		return nil, fmt.Errorf("%w: %d rooms need a chair each, only %d Chair-skill participants",
			ErrInsufficientChairs, len(counts), len(chairs))
	}

	p.rng.Shuffle(len(chairs), func(i, j int) { chairs[i], chairs[j] = chairs[j], chairs[i] })
	rest = append(rest, chairs[len(counts):]...)
	p.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	pools := make([][]roster.Participant, len(counts))
	for i := range counts {
		pools[i] = append(pools[i], chairs[i])
	}
	for i, c := range counts {
		need := c - 1
		pools[i] = append(pools[i], rest[:need]...)
		rest = rest[need:]
	}
	return pools, nil
}

// ranked sorts a copy of members descending by the format skill metric,
// participant ID breaking ties for determinism.
func (p *Partitioner) ranked(members []roster.Participant, format roster.Format) []roster.Participant {
	out := make([]roster.Participant, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].SkillFor(format, p.soloWindow), out[j].SkillFor(format, p.soloWindow)
		if si != sj {
			return si > sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func slicePools(ordered []roster.Participant, counts []int) [][]roster.Participant {
	pools := make([][]roster.Participant, len(counts))
	for i, c := range counts {
		pools[i] = append(pools[i], ordered[:c]...)
		ordered = ordered[c:]
	}
	return pools
}

// serpentine deals the ranking across rooms in a 1..n, n..1 pattern,
// skipping rooms that have reached their count.
func serpentine(ordered []roster.Participant, counts []int) [][]roster.Participant {
	pools := make([][]roster.Participant, len(counts))
	i := 0
	for i < len(ordered) {
		for r := 0; r < len(counts) && i < len(ordered); r++ {
			if len(pools[r]) < counts[r] {
				pools[r] = append(pools[r], ordered[i])
				i++
			}
		}
		for r := len(counts) - 1; r >= 0 && i < len(ordered); r-- {
			if len(pools[r]) < counts[r] {
				pools[r] = append(pools[r], ordered[i])
				i++
			}
		}
	}
	return pools
}
