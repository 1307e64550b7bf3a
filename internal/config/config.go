package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTrials is the sampling budget used when the config omits one.
const DefaultTrials = 10000

// Event holds display metadata for the tournament.
type Event struct {
	Name string `yaml:"name"`
}

// Player is one tournament entrant with a skill rating. Any positive
// rating scale works; only relative differences matter.
type Player struct {
	Name   string  `yaml:"name"`
	Rating float64 `yaml:"rating"`
}

// Search controls the optimizer's sampling budget and parallelism.
type Search struct {
	Trials  int   `yaml:"trials"`
	Workers int   `yaml:"workers"` // 0 means one worker per CPU
	Seed    int64 `yaml:"seed"`
}

type Config struct {
	Event   Event    `yaml:"event"`
	Players []Player `yaml:"players"`
	Search  Search   `yaml:"search"`
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Search.Trials == 0 {
		cfg.Search.Trials = DefaultTrials
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// validate covers the YAML-shape checks. Roster construction applies
// the stricter entry requirements (player count, ratings, duplicates).
func (c *Config) validate() error {
	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}

	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has no name", i+1)
		}
	}

	if c.Search.Trials < 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Search.Trials)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Search.Workers)
	}

	return nil
}
