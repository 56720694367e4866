package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Ship holds the travel tunables shared by the graph builder and the route search.
type Ship struct {
	FuelCapacity     int `json:"fuel_capacity" yaml:"fuel_capacity"`
	StartFuel        int `json:"start_fuel" yaml:"start_fuel"`
	Speed            int `json:"speed" yaml:"speed"`
	MaxJumpgateRange int `json:"max_jumpgate_range" yaml:"max_jumpgate_range"`
	MaxWarpRange     int `json:"max_warp_range" yaml:"max_warp_range"` // drift warp only
	FuelSegment      int `json:"fuel_segment" yaml:"fuel_segment"`     // search fuel granularity
	DriftFuelCost    int `json:"drift_fuel_cost" yaml:"drift_fuel_cost"`
	MinJumpDuration  int `json:"min_jump_duration" yaml:"min_jump_duration"` // seconds
}

// Config holds run settings for the CLI.
type Config struct {
	Ship    Ship   `yaml:"ship"`
	Source  string `yaml:"source"`
	Workers int    `yaml:"workers"`
}

// DefaultShip returns the ship profile the planner was tuned against.
func DefaultShip() Ship {
	return Ship{
		FuelCapacity:     1500,
		StartFuel:        1500,
		Speed:            30,
		MaxJumpgateRange: 2000,
		MaxWarpRange:     10000,
		FuelSegment:      150,
		DriftFuelCost:    1,
		MinJumpDuration:  60,
	}
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Ship:    DefaultShip(),
		Source:  "X1-ZU66-93668D",
		Workers: 8,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the run settings and the ship profile.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	return c.Ship.Validate()
}

// Validate rejects profiles the search cannot work with.
func (s Ship) Validate() error {
	switch {
	case s.FuelCapacity <= 0:
		return fmt.Errorf("%w: fuel_capacity must be > 0, got %d", ErrInvalid, s.FuelCapacity)
	case s.StartFuel < 0 || s.StartFuel > s.FuelCapacity:
		return fmt.Errorf("%w: start_fuel must be within [0, %d], got %d", ErrInvalid, s.FuelCapacity, s.StartFuel)
	case s.Speed <= 0:
		return fmt.Errorf("%w: speed must be > 0, got %d", ErrInvalid, s.Speed)
	case s.FuelSegment <= 0:
		return fmt.Errorf("%w: fuel_segment must be > 0, got %d", ErrInvalid, s.FuelSegment)
	case s.MaxJumpgateRange < 0 || s.MaxWarpRange < 0:
		return fmt.Errorf("%w: ranges must be >= 0", ErrInvalid)
	case s.DriftFuelCost < 0 || s.MinJumpDuration < 0:
		return fmt.Errorf("%w: drift_fuel_cost and min_jump_duration must be >= 0", ErrInvalid)
	}
	return nil
}
