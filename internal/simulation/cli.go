package simulation

import "os"

// ShowHelp prints usage information for the season simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Rostrum Season Simulator
========================

Simulates a whole club season in-process: generates a synthetic roster,
schedules nights, fabricates judged outcomes, and finalizes ratings.

Usage:
  go run cmd/simnight/main.go [options]

Options:
  -club int
        Number of members in the synthetic club (default 24)
  -nights int
        Number of club nights to simulate (default 10)
  -scenario string
        Room-format descriptor, e.g. "O-B". Empty picks one by roster size
  -mode string
        Partitioning strategy: true-random, random, skill, proam (default "random")
  -seed int
        Randomness seed. 0 seeds from the clock
  -top int
        Standings entries to display at the end (default 10)
  -verbose
        Log every rating change
  -help
        Show this help message

Examples:
  # One default season
  go run cmd/simnight/main.go

  # A skill-sorted season of a big club
  go run cmd/simnight/main.go -club 40 -nights 20 -scenario O-O-B -mode skill

  # Reproducible run
  go run cmd/simnight/main.go -seed 42 -verbose
`)
}
