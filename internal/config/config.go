// Package config defines process configuration and its loading order.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for metrics and health.
	Addr string `koanf:"addr"`

	// Scenario is the default room-format descriptor, e.g. "O-B".
	// Empty selects the roster-size fallback.
	Scenario string `koanf:"scenario"`

	// Mode selects the partitioning strategy: true-random, random,
	// skill, or proam.
	Mode string `koanf:"mode"`

	// Baseline and Divisor shape the OPD linear rating update.
	Baseline float64 `koanf:"baseline"`
	Divisor  float64 `koanf:"divisor"`

	// SoloWindow is the rolling-window size for the OPD skill metric.
	SoloWindow int `koanf:"solo_window"`

	// DefaultMu and DefaultSigma seed the rating of participants who
	// have never debated a BP room.
	DefaultMu    float64 `koanf:"default_mu"`
	DefaultSigma float64 `koanf:"default_sigma"`

	// OutcomeQueueSize bounds the in-memory outcome queue.
	OutcomeQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of finalize workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the outcome idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxStandingsLimit caps standings queries.
	MaxStandingsLimit int `koanf:"max_standings_limit"`

	// SimNights runs that many synthetic club nights on startup when
	// positive. Useful for demos and load checks.
	SimNights int `koanf:"sim_nights"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		Scenario:          "",
		Mode:              "random",
		Baseline:          43,
		Divisor:           10,
		SoloWindow:        5,
		DefaultMu:         1000,
		DefaultSigma:      1000.0 / 3.0,
		OutcomeQueueSize:  1024,
		WorkerCount:       4,
		DedupeSize:        4096,
		MaxStandingsLimit: 100,
		SimNights:         0,
	}
}
