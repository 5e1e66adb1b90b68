package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/opendebate/rostrum/internal/app"
	"github.com/opendebate/rostrum/pkg/logger"
)

// Run simulates a whole season: it generates a club, schedules the
// configured number of nights, fabricates judged outcomes, and
// finalizes them synchronously. The final standings are verified for
// internal consistency before the summary is printed.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("simulation")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // simulation randomness, not crypto

	log.Info(ctx, "starting season simulation",
		logger.Int("club_size", cfg.ClubSize),
		logger.Int("nights", cfg.Nights),
		logger.String("scenario", cfg.Scenario),
		logger.String("mode", string(cfg.Mode)),
		logger.Any("seed", seed),
	)

	svc := app.New(
		app.WithScenario(cfg.Scenario),
		app.WithMode(cfg.Mode),
		app.WithRand(rand.New(rand.NewSource(rng.Int63()))), //nolint:gosec // simulation randomness, not crypto
		app.WithLogger(log),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop(ctx)

	club := GenerateClub(rng, cfg.ClubSize)

	for n := 1; n <= cfg.Nights; n++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulation canceled: %w", err)
		}
		nightID := fmt.Sprintf("night-%03d", n)

		plan, err := svc.Schedule(ctx, nightID, club)
		if err != nil {
			stats.NightsFailed++
			log.Warn(ctx, "night could not be scheduled",
				logger.String("night", nightID),
				logger.Error(err),
			)
			continue
		}
		stats.NightsScheduled++
		stats.RoomsAllocated += len(plan.Rooms)
		stats.RoomsFailed += len(plan.Failures)
		if plan.Unsafe {
			stats.UnsafeNights++
		}

		outcomes := judgeRooms(rng, nightID, plan.Rooms, snapshotMap(svc, club))
		stats.OutcomesSubmitted += len(outcomes)

		changes, err := svc.FinalizeNight(ctx, nightID, outcomes)
		if err != nil {
			return fmt.Errorf("finalize %s: %w", nightID, err)
		}
		stats.RatingsApplied += len(changes)

		if cfg.Verbose {
			for _, c := range changes {
				log.Info(ctx, "rating change",
					logger.String("night", nightID),
					logger.String("participant", c.ParticipantID),
					logger.Float64("old", c.OldRating),
					logger.Float64("new", c.NewRating),
					logger.Int("points", c.Points),
				)
			}
		}

		// Next night schedules from the post-rating registry state.
		refreshClub(svc, club)
	}

	entries, err := svc.TopN(ctx, cfg.TopN)
	if err != nil {
		return fmt.Errorf("read standings: %w", err)
	}
	if err := verifyStandings(ctx, svc, entries); err != nil {
		return fmt.Errorf("standings verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats, entries, snapshotMap(svc, club))

	return nil
}
