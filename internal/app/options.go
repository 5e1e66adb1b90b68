package app

import (
	"math/rand"

	"github.com/opendebate/rostrum/internal/domain/partition"
	"github.com/opendebate/rostrum/internal/domain/rating"
	"github.com/opendebate/rostrum/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScenario sets the default room-format descriptor, e.g. "O-B".
// Empty keeps the roster-size fallback.
func WithScenario(descriptor string) Option {
	return func(s *Service) { s.scenarioStr = descriptor }
}

// WithMode selects the partitioning strategy.
func WithMode(mode partition.Mode) Option {
	return func(s *Service) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithQueueSize bounds the outcome queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of finalize workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDedupeSize bounds the outcome idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) { s.dedupeSize = size }
}

// WithMaxStandingsLimit caps standings queries.
func WithMaxStandingsLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxStandings = limit
		}
	}
}

// WithSoloWindow sets the rolling-window size for the solo skill.
func WithSoloWindow(window int) Option {
	return func(s *Service) {
		if window > 0 {
			s.soloWindow = window
		}
	}
}

// WithRatingOptions forwards options to the rating engine.
func WithRatingOptions(opts ...rating.Option) Option {
	return func(s *Service) {
		s.ratingOptions = append(s.ratingOptions, opts...)
	}
}

// WithRand sets the randomness source (useful for deterministic tests).
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
