// Package standings keeps the club's rating order in memory.
//
// Ordering: rating DESC, then participant ID ASC, so traversal yields a
// deterministic table from best to worst. The backing structure is a
// treap, giving expected O(log n) writes and rank queries.
package standings

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/opendebate/rostrum/internal/domain/rating"
	"github.com/opendebate/rostrum/pkg/metrics"
)

// Entry is one standings row. Rank uses competition ranking: equal
// ratings share a rank and the next distinct rating skips past them.
type Entry struct {
	Rank          int
	ParticipantID string
	Rating        float64
	Sigma         float64

	// Points accumulates the BP display points over the season.
	Points int
}

// Store provides read/write access to the standings.
type Store interface {
	// SetRating replaces a participant's rating, inserting them if new.
	SetRating(ctx context.Context, participantID string, rating, sigma float64)

	// ApplyRatings applies one room's rating changes as a unit: the
	// standings never show a room half-applied.
	ApplyRatings(ctx context.Context, changes []rating.Change)

	// Rank returns the current entry for a participant.
	// Returns ErrNotFound for unknown participants.
	Rank(ctx context.Context, participantID string) (Entry, error)

	// TopN returns the best n entries in standings order.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of participants tracked.
	Count(ctx context.Context) int

	// Remove drops a participant, reporting whether they were present.
	Remove(ctx context.Context, participantID string) bool
}

// record holds the stored state for one participant.
type record struct {
	rating float64
	sigma  float64
	points int
}

// TreapStore is the in-memory Store implementation.
type TreapStore struct {
	mu   sync.RWMutex
	root *node
	byID map[string]record
	rng  *rand.Rand
}

var _ Store = (*TreapStore)(nil)

// NewTreapStore constructs an empty standings store.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byID: make(map[string]record),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // treap priorities, not crypto
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetRating implements Store.SetRating.
func (s *TreapStore) SetRating(_ context.Context, participantID string, newRating, sigma float64) {
	s.mu.Lock()
	s.replace(participantID, func(rec record) record {
		rec.rating = newRating
		rec.sigma = sigma
		return rec
	})
	size := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateStandingsSize(size)
}

// ApplyRatings implements Store.ApplyRatings. All changes land under a
// single lock acquisition.
func (s *TreapStore) ApplyRatings(_ context.Context, changes []rating.Change) {
	s.mu.Lock()
	for _, c := range changes {
		change := c
		s.replace(change.ParticipantID, func(rec record) record {
			rec.rating = change.NewRating
			rec.sigma = change.NewSigma
			rec.points += change.Points
			return rec
		})
	}
	size := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateStandingsSize(size)
}

// replace swaps a participant's treap node for one holding the updated
// record. Must be called with s.mu held.
func (s *TreapStore) replace(participantID string, update func(record) record) {
	old, existed := s.byID[participantID]
	if existed {
		s.root = deleteNode(s.root, participantID, old.rating)
	}
	rec := update(old)
	s.byID[participantID] = rec
	s.root = insert(s.root, participantID, rec.rating, s.rng.Uint64())
}

// Rank implements Store.Rank in expected O(log n).
func (s *TreapStore) Rank(_ context.Context, participantID string) (Entry, error) {
	metrics.RecordStandingsRead()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[participantID]
	if !ok {
		return Entry{}, ErrNotFound
	}

	return Entry{
		Rank:          countHigher(s.root, rec.rating) + 1,
		ParticipantID: participantID,
		Rating:        rec.rating,
		Sigma:         rec.sigma,
		Points:        rec.points,
	}, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	metrics.RecordStandingsRead()

	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, n)
	collectTop(s.root, n, s.byID, &out)

	for i := range out {
		if i > 0 && out[i].Rating == out[i-1].Rating {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out, nil
}

// Count implements Store.Count.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Remove implements Store.Remove.
func (s *TreapStore) Remove(_ context.Context, participantID string) bool {
	s.mu.Lock()
	rec, ok := s.byID[participantID]
	if ok {
		s.root = deleteNode(s.root, participantID, rec.rating)
		delete(s.byID, participantID)
	}
	size := len(s.byID)
	s.mu.Unlock()

	if ok {
		metrics.UpdateStandingsSize(size)
	}
	return ok
}
