// Command simnight simulates a season of club nights in-process.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/opendebate/rostrum/internal/domain/partition"
	"github.com/opendebate/rostrum/internal/simulation"
	"github.com/opendebate/rostrum/pkg/logger"
)

const defaultSeasonTimeout = 10 * time.Minute

func main() {
	var (
		clubSize = flag.Int("club", simulation.DefaultClubSize, "Number of members in the synthetic club")
		nights   = flag.Int("nights", simulation.DefaultNights, "Number of club nights to simulate")
		scenario = flag.String("scenario", "", "Room-format descriptor, e.g. \"O-B\" (empty picks one by roster size)")
		mode     = flag.String("mode", "random", "Partitioning strategy: true-random, random, skill, proam")
		seed     = flag.Int64("seed", 0, "Randomness seed (0 seeds from the clock)")
		topN     = flag.Int("top", simulation.DefaultTopN, "Standings entries to display at the end")
		verbose  = flag.Bool("verbose", false, "Log every rating change")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulation.ShowHelp()
		return
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	parsedMode, err := partition.ParseMode(*mode)
	if err != nil {
		os.Stderr.WriteString("invalid mode: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSeasonTimeout)
	defer cancel()

	cfg := &simulation.Config{
		ClubSize: *clubSize,
		Nights:   *nights,
		Scenario: *scenario,
		Mode:     parsedMode,
		Seed:     *seed,
		TopN:     *topN,
		Verbose:  *verbose,
	}

	if err := simulation.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
