package standings

import "math/rand"

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithRand sets the priority source (useful for deterministic tests).
func WithRand(rng *rand.Rand) Option {
	return func(s *TreapStore) {
		if rng != nil {
			s.rng = rng
		}
	}
}
