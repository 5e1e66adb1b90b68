package simulation

import (
	"time"

	"github.com/opendebate/rostrum/internal/domain/partition"
)

// Config holds configuration for a simulated season.
type Config struct {
	ClubSize int            // number of members in the synthetic club
	Nights   int            // number of club nights to simulate
	Scenario string         // room-format descriptor, empty for the fallback
	Mode     partition.Mode // partitioning strategy
	Seed     int64          // randomness seed, 0 picks one from the clock
	TopN     int            // standings entries to display at the end
	Verbose  bool           // log every rating change
}

// Stats holds simulation statistics.
type Stats struct {
	NightsScheduled   int
	NightsFailed      int
	RoomsAllocated    int
	RoomsFailed       int
	UnsafeNights      int
	OutcomesSubmitted int
	RatingsApplied    int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
