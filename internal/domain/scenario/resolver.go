package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/opendebate/rostrum/internal/domain/allocation"
	"github.com/opendebate/rostrum/internal/domain/integrity"
	"github.com/opendebate/rostrum/internal/domain/partition"
	"github.com/opendebate/rostrum/internal/domain/roster"
	"github.com/opendebate/rostrum/internal/domain/sizing"
)

// Plan is the outcome of resolving one night.
type Plan struct {
	Success  bool
	Unsafe   bool
	Format   roster.Format
	Messages []string
	Rooms    []allocation.Room
	Failures []RoomFailure
}

// RoomFailure is one room that could not be allocated.
type RoomFailure struct {
	Number int
	Err    error
}

// Resolver orchestrates sizing, partitioning, allocation, and the
// integrity check for a whole night.
type Resolver struct {
	rng        *rand.Rand
	soloWindow int
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithRand sets the randomness source (useful for deterministic tests).
func WithRand(rng *rand.Rand) Option {
	return func(r *Resolver) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSoloWindow sets the rolling-window size for the OPD skill metric.
func WithSoloWindow(window int) Option {
	return func(r *Resolver) {
		if window > 0 {
			r.soloWindow = window
		}
	}
}

// NewResolver constructs a Resolver with default configuration.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // scheduling shuffles, not crypto
		soloWindow: roster.DefaultSoloWindow,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve plans one night. An empty descriptor falls back to a
// roster-size heuristic. Capacity and partition failures are fatal for
// the run and nothing is planned; individual room failures are
// collected into the plan messages and clear the success flag while the
// remaining rooms still allocate.
func (r *Resolver) Resolve(
	ctx context.Context,
	members []roster.Participant,
	descriptor string,
	mode partition.Mode,
) (Plan, error) {
	if len(members) == 0 {
		return Plan{}, ErrEmptyRoster
	}

	var (
		specs []RoomSpec
		err   error
	)
	if descriptor == "" {
		specs = Fallback(len(members))
	} else {
		specs, err = Parse(descriptor, len(members))
		if err != nil {
			return Plan{}, err
		}
	}

	bounds := make([]sizing.Bounds, len(specs))
	for i, spec := range specs {
		bounds[i] = spec.Bounds
	}
	counts, err := sizing.Counts(ctx, len(members), bounds)
	if err != nil {
		return Plan{}, err
	}

	label := FormatLabel(specs)
	partitioner := partition.New(partition.WithRand(r.rng), partition.WithSoloWindow(r.soloWindow))
	pools, unsafe, err := partitioner.Split(ctx, members, counts, label, mode)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Success: true, Unsafe: unsafe, Format: label}
	if unsafe {
		plan.Messages = append(plan.Messages, "Warning: not every room could be given a chair-qualified judge.")
	}

	alloc := allocation.New(
		allocation.WithRand(r.rng),
		allocation.WithSoloWindow(r.soloWindow),
		allocation.WithTrueRandom(mode == partition.ModeTrueRandom),
		allocation.WithProAm(mode == partition.ModeProAm),
	)

	for i, spec := range specs {
		number := i + 1
		room, err := r.allocateRoom(ctx, alloc, spec, pools[i], number)
		if err != nil {
			plan.Success = false
			plan.Messages = append(plan.Messages, fmt.Sprintf("Room %d: %s assignment failed: %v.", number, spec.Format, err))
			plan.Failures = append(plan.Failures, RoomFailure{Number: number, Err: err})
			continue
		}
		plan.Rooms = append(plan.Rooms, room)
		plan.Messages = append(plan.Messages, fmt.Sprintf("Room %d: %s assignment complete.", number, spec.Format))
	}

	return plan, nil
}

func (r *Resolver) allocateRoom(
	ctx context.Context,
	alloc *allocation.Allocator,
	spec RoomSpec,
	pool []roster.Participant,
	number int,
) (allocation.Room, error) {
	switch spec.Format {
	case roster.FormatBP:
		return alloc.AllocateBP(ctx, pool, number)
	default:
		room, err := alloc.AllocateOPD(ctx, pool, number)
		if err != nil {
			return allocation.Room{}, err
		}
		// Allocator bugs must surface here, never as a committed room.
		if err := integrity.CheckOPD(room); err != nil {
			return allocation.Room{}, err
		}
		return room, nil
	}
}
