package dedupe

// Option applies a configuration option to the outcome deduper.
type Option func(*outcomeDeduper)

// WithMaxSize bounds the number of remembered outcome IDs. Zero or
// negative disables eviction.
func WithMaxSize(maxSize int) Option {
	return func(d *outcomeDeduper) {
		d.maxSize = maxSize
	}
}
