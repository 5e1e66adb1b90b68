// Package app wires the scheduling and rating components into one
// service: nights are scheduled through the scenario resolver, judged
// outcomes flow through the dedupe guard and the outcome queue, and the
// finalize workers land ratings in the registry and the standings.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/opendebate/rostrum/internal/adapters/mq/queue"
	"github.com/opendebate/rostrum/internal/adapters/mq/worker"
	"github.com/opendebate/rostrum/internal/adapters/standings"
	"github.com/opendebate/rostrum/internal/domain/allocation"
	"github.com/opendebate/rostrum/internal/domain/dedupe"
	"github.com/opendebate/rostrum/internal/domain/integrity"
	"github.com/opendebate/rostrum/internal/domain/partition"
	"github.com/opendebate/rostrum/internal/domain/rating"
	"github.com/opendebate/rostrum/internal/domain/roster"
	"github.com/opendebate/rostrum/internal/domain/scenario"
	"github.com/opendebate/rostrum/internal/domain/sizing"
	"github.com/opendebate/rostrum/pkg/logger"
	"github.com/opendebate/rostrum/pkg/metrics"
)

// RoomState tracks a room through its lifecycle after scheduling.
type RoomState string

const (
	StateCommitted RoomState = "committed"
	StateJudged    RoomState = "judged"
	StateRated     RoomState = "rated"
)

// night holds one scheduled night and its per-room states.
type night struct {
	plan   scenario.Plan
	states map[int]RoomState
}

// Service implements the scheduling and finalize entry points.
type Service struct {
	mu sync.RWMutex

	standings standings.Store
	deduper   dedupe.Deduper
	outcomes  queue.Queue
	pool      *worker.Pool
	resolver  *scenario.Resolver
	engine    *rating.Engine

	members map[string]roster.Participant
	nights  map[string]*night

	scenarioStr   string
	mode          partition.Mode
	queueSize     int
	workerCount   int
	dedupeSize    int
	maxStandings  int
	soloWindow    int
	rng           *rand.Rand
	ratingOptions []rating.Option

	started bool
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		members:      make(map[string]roster.Participant),
		nights:       make(map[string]*night),
		mode:         partition.ModeRandom,
		queueSize:    1024,
		workerCount:  4,
		dedupeSize:   4096,
		maxStandings: 100,
		soloWindow:   roster.DefaultSoloWindow,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start brings up the store, the queue, and the finalize workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	resolverOpts := []scenario.Option{scenario.WithSoloWindow(s.soloWindow)}
	if s.rng != nil {
		resolverOpts = append(resolverOpts, scenario.WithRand(s.rng))
	}

	s.standings = standings.NewTreapStore()
	s.deduper = dedupe.New(dedupe.WithMaxSize(s.dedupeSize))
	s.outcomes = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.resolver = scenario.NewResolver(resolverOpts...)
	s.engine = rating.NewEngine(append([]rating.Option{rating.WithSoloWindow(s.soloWindow)}, s.ratingOptions...)...)

	s.pool = worker.NewPool(s.workerCount, s.outcomes, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "scheduling service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.String("mode", string(s.mode)),
	)
	return nil
}

// Stop drains the outcome queue and shuts the workers down.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	pool := s.pool
	running := s.started
	s.started = false
	s.mu.Unlock()

	if !running {
		return
	}

	// Shutdown must run unlocked: draining workers call Finalize, which
	// takes the service lock.
	if err := pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown failed", logger.Error(err))
	}
	s.logger.Info(ctx, "scheduling service stopped")
}

// Schedule plans one night for the given roster snapshot. Allocated
// rooms have passed the integrity check and are committed; individual
// room failures are reported in the plan without failing the run.
func (s *Service) Schedule(ctx context.Context, nightID string, members []roster.Participant) (scenario.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return scenario.Plan{}, ErrNotStarted
	}
	if _, exists := s.nights[nightID]; exists {
		return scenario.Plan{}, fmt.Errorf("%w: %s", ErrNightExists, nightID)
	}

	metrics.RecordSchedulingRun()
	start := time.Now()

	for _, m := range members {
		s.members[m.ID] = m
	}

	plan, err := s.resolver.Resolve(ctx, members, s.scenarioStr, s.mode)
	metrics.RecordAllocationLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordRoomFailure(failureReason(err))
		s.logger.Error(ctx, "scheduling run failed",
			logger.String("night", nightID),
			logger.Error(err),
		)
		return scenario.Plan{}, err
	}

	if plan.Unsafe {
		metrics.RecordUnsafeFallback()
		s.logger.Warn(ctx, "unsafe chair fallback used", logger.String("night", nightID))
	}
	for range plan.Rooms {
		metrics.RecordRoomAllocated()
	}
	for _, failure := range plan.Failures {
		if isIntegrityErr(failure.Err) {
			metrics.RecordIntegrityViolation()
		}
		metrics.RecordRoomFailure(failureReason(failure.Err))
		s.logger.Warn(ctx, "room allocation failed",
			logger.String("night", nightID),
			logger.Int("room", failure.Number),
			logger.Error(failure.Err),
		)
	}

	states := make(map[int]RoomState, len(plan.Rooms))
	for _, room := range plan.Rooms {
		states[room.Number] = StateCommitted
	}
	s.nights[nightID] = &night{plan: plan, states: states}

	s.logger.Info(ctx, "night scheduled",
		logger.String("night", nightID),
		logger.String("format", string(plan.Format)),
		logger.Int("rooms", len(plan.Rooms)),
		logger.Bool("success", plan.Success),
	)
	return plan, nil
}

// Reschedule discards a committed-but-unjudged night so it can be
// scheduled again. Nights with judged or rated rooms are kept.
func (s *Service) Reschedule(ctx context.Context, nightID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nights[nightID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNight, nightID)
	}
	for number, state := range n.states {
		if state != StateCommitted {
			return fmt.Errorf("%w: room %d is %s", ErrNightJudged, number, state)
		}
	}

	delete(s.nights, nightID)
	s.logger.Info(ctx, "night discarded for rescheduling", logger.String("night", nightID))
	return nil
}

// SubmitOutcome queues a judged room for asynchronous finalize. A
// duplicate outcome is rejected; a full queue rejects and forgets the
// outcome ID so the caller can retry.
func (s *Service) SubmitOutcome(ctx context.Context, outcome rating.RoomOutcome) error {
	if !s.isStarted() {
		return ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, outcome.OutcomeID) {
		metrics.RecordOutcomeDuplicate()
		return fmt.Errorf("%w: %s", ErrDuplicateOutcome, outcome.OutcomeID)
	}

	if !s.outcomes.Enqueue(ctx, outcome) {
		s.deduper.Unrecord(ctx, outcome.OutcomeID)
		return fmt.Errorf("%w: %s", ErrQueueFull, outcome.OutcomeID)
	}

	s.mu.Lock()
	s.markRoom(outcome.NightID, outcome.Room.Number, StateJudged)
	s.mu.Unlock()
	return nil
}

// Finalize rates one judged room and applies the result to the
// participant registry and the standings. It backs the worker pool.
func (s *Service) Finalize(ctx context.Context, outcome queue.Outcome) error {
	_, err := s.finalize(ctx, outcome)
	return err
}

// FinalizeNight rates a night's outcomes synchronously and returns the
// combined change log. Outcomes still pass the dedupe guard, so a mixed
// sync/async caller cannot double-rate a room.
func (s *Service) FinalizeNight(ctx context.Context, nightID string, outcomes []rating.RoomOutcome) ([]rating.Change, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}

	var changes []rating.Change
	var errs []error
	for _, outcome := range outcomes {
		if outcome.NightID == "" {
			outcome.NightID = nightID
		}
		if s.deduper.SeenAndRecord(ctx, outcome.OutcomeID) {
			metrics.RecordOutcomeDuplicate()
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateOutcome, outcome.OutcomeID))
			continue
		}
		roomChanges, err := s.finalize(ctx, outcome)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		changes = append(changes, roomChanges...)
	}
	return changes, errors.Join(errs...)
}

func (s *Service) finalize(ctx context.Context, outcome queue.Outcome) ([]rating.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.engine.Apply(ctx, outcome, s.members)
	if err != nil {
		metrics.RecordRatingError()
		// Forget the ID so a corrected resubmission can go through.
		s.deduper.Unrecord(ctx, outcome.OutcomeID)
		return nil, fmt.Errorf("finalize outcome %s: %w", outcome.OutcomeID, err)
	}

	for _, p := range result.Updated {
		s.members[p.ID] = p
	}
	s.standings.ApplyRatings(ctx, result.Changes)
	s.markRoom(outcome.NightID, outcome.Room.Number, StateRated)

	metrics.RecordOutcomeProcessed()
	metrics.RecordRatingUpdates(len(result.Changes))
	for _, c := range result.Changes {
		s.logger.Debug(ctx, "rating updated",
			logger.String("participant", c.ParticipantID),
			logger.Float64("old", c.OldRating),
			logger.Float64("new", c.NewRating),
			logger.Int("points", c.Points),
		)
	}
	return result.Changes, nil
}

// TopN returns the best n standings entries, capped by configuration.
func (s *Service) TopN(ctx context.Context, n int) ([]standings.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if n > s.maxStandings {
		n = s.maxStandings
	}
	return s.standings.TopN(ctx, n)
}

// Rank returns one participant's standings entry.
func (s *Service) Rank(ctx context.Context, participantID string) (standings.Entry, error) {
	if !s.isStarted() {
		return standings.Entry{}, ErrNotStarted
	}
	return s.standings.Rank(ctx, participantID)
}

// Snapshot returns the registry's current view of one participant.
func (s *Service) Snapshot(participantID string) (roster.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.members[participantID]
	return p, ok
}

// RoomStates returns a copy of one night's per-room states.
func (s *Service) RoomStates(nightID string) (map[int]RoomState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nights[nightID]
	if !ok {
		return nil, false
	}
	out := make(map[int]RoomState, len(n.states))
	for number, state := range n.states {
		out[number] = state
	}
	return out, true
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":      s.started,
		"worker_count": s.workerCount,
		"queue_size":   s.queueSize,
		"nights":       len(s.nights),
		"participants": len(s.members),
	}
	if s.started {
		stats["queue_length"] = s.outcomes.Len(ctx)
		stats["standings_size"] = s.standings.Count(ctx)
		stats["dedupe_size"] = s.deduper.Size()
	}
	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// markRoom must be called with s.mu held.
func (s *Service) markRoom(nightID string, number int, state RoomState) {
	if n, ok := s.nights[nightID]; ok {
		if _, tracked := n.states[number]; tracked {
			n.states[number] = state
		}
	}
}

func isIntegrityErr(err error) bool {
	return errors.Is(err, integrity.ErrMalformedRoom) ||
		errors.Is(err, integrity.ErrUnknownRole) ||
		errors.Is(err, integrity.ErrDuplicateParticipant)
}

// failureReason maps an allocation error to a stable metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, sizing.ErrInfeasible):
		return "infeasible_capacity"
	case errors.Is(err, allocation.ErrNoEligibleChair):
		return "no_eligible_chair"
	case errors.Is(err, allocation.ErrTooFewParticipants):
		return "too_few_participants"
	case errors.Is(err, partition.ErrInsufficientChairs):
		return "insufficient_chairs"
	case isIntegrityErr(err):
		return "integrity_violation"
	default:
		return "other"
	}
}
