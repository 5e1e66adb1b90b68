package simulation

import (
	"context"
	"fmt"

	"github.com/opendebate/rostrum/internal/adapters/standings"
	"github.com/opendebate/rostrum/internal/app"
	"github.com/opendebate/rostrum/internal/domain/roster"
	"github.com/opendebate/rostrum/pkg/logger"
)

// refreshClub replaces each club member with the registry's current
// snapshot, so ratings carry over into the next night.
func refreshClub(svc *app.Service, club []roster.Participant) {
	for i := range club {
		if p, ok := svc.Snapshot(club[i].ID); ok {
			club[i] = p
		}
	}
}

// snapshotMap returns the registry view of the club keyed by ID.
func snapshotMap(svc *app.Service, club []roster.Participant) map[string]roster.Participant {
	out := make(map[string]roster.Participant, len(club))
	for _, m := range club {
		if p, ok := svc.Snapshot(m.ID); ok {
			out[m.ID] = p
			continue
		}
		out[m.ID] = m
	}
	return out
}

// verifyStandings checks the final table for internal consistency:
// descending rating order, competition-style ranks, and agreement
// between the table and per-participant rank lookups.
func verifyStandings(ctx context.Context, svc *app.Service, entries []standings.Entry) error {
	for i := 1; i < len(entries); i++ {
		if entries[i].Rating > entries[i-1].Rating {
			return fmt.Errorf("standings out of order at position %d", i)
		}
		switch {
		case entries[i].Rating == entries[i-1].Rating:
			if entries[i].Rank != entries[i-1].Rank {
				return fmt.Errorf("tied ratings at position %d do not share a rank", i)
			}
		default:
			if entries[i].Rank != i+1 {
				return fmt.Errorf("rank at position %d is %d, want %d", i, entries[i].Rank, i+1)
			}
		}
	}

	for _, entry := range entries {
		looked, err := svc.Rank(ctx, entry.ParticipantID)
		if err != nil {
			return fmt.Errorf("rank lookup for %s: %w", entry.ParticipantID, err)
		}
		if looked.Rank != entry.Rank || looked.Rating != entry.Rating {
			return fmt.Errorf("table and lookup disagree for %s: table rank %d rating %.3f, lookup rank %d rating %.3f",
				entry.ParticipantID, entry.Rank, entry.Rating, looked.Rank, looked.Rating)
		}
	}

	logger.Get().Named("simulation").Info(ctx, "standings verified",
		logger.Int("entries", len(entries)),
	)
	return nil
}

// displayFinalStats logs the season summary and the top of the table.
func displayFinalStats(ctx context.Context, stats *Stats, entries []standings.Entry, members map[string]roster.Participant) {
	log := logger.Get().Named("simulation")

	var successRate float64
	total := stats.NightsScheduled + stats.NightsFailed
	if total > 0 {
		successRate = float64(stats.NightsScheduled) / float64(total) * percentFactor
	}

	log.Info(ctx, "season summary",
		logger.Int("nights_scheduled", stats.NightsScheduled),
		logger.Int("nights_failed", stats.NightsFailed),
		logger.Int("rooms_allocated", stats.RoomsAllocated),
		logger.Int("rooms_failed", stats.RoomsFailed),
		logger.Int("unsafe_nights", stats.UnsafeNights),
		logger.Int("outcomes_submitted", stats.OutcomesSubmitted),
		logger.Int("ratings_applied", stats.RatingsApplied),
		logger.Float64("night_success_rate", successRate),
		logger.String("duration", stats.Duration.String()),
	)

	for _, entry := range entries {
		name := entry.ParticipantID
		if p, ok := members[entry.ParticipantID]; ok {
			name = p.Name
		}
		log.Info(ctx, "standings entry",
			logger.Int("rank", entry.Rank),
			logger.String("name", name),
			logger.Float64("rating", entry.Rating),
			logger.Int("points", entry.Points),
		)
	}
}
