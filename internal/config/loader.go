package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/opendebate/rostrum/internal/domain/partition"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ROSTRUM_CONFIG is set
//  3. env (prefix ROSTRUM_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ROSTRUM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROSTRUM_ADDR, ROSTRUM_QUEUE_SIZE, ...
	// Keys keep their underscores to match the koanf tags.
	envProvider := env.Provider("ROSTRUM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "rostrum_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := partition.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Scenario != "" {
		for _, letter := range strings.Split(strings.ToUpper(c.Scenario), "-") {
			if letter != "O" && letter != "B" {
				return fmt.Errorf("%w: scenario letter %q", ErrInvalidConfig, letter)
			}
		}
	}
	if c.Divisor == 0 {
		return fmt.Errorf("%w: divisor must not be zero", ErrInvalidConfig)
	}
	if c.SoloWindow < 1 {
		return fmt.Errorf("%w: solo_window must be positive", ErrInvalidConfig)
	}
	if c.DefaultMu <= 0 || c.DefaultSigma <= 0 {
		return fmt.Errorf("%w: default_mu and default_sigma must be positive", ErrInvalidConfig)
	}
	if c.OutcomeQueueSize < 1 || c.WorkerCount < 1 {
		return fmt.Errorf("%w: queue_size and worker_count must be positive", ErrInvalidConfig)
	}
	if c.MaxStandingsLimit < 1 {
		return fmt.Errorf("%w: max_standings_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
