package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/evdash/core/geo"
)

// DateLayout is the layout of the window bounds in configuration files.
const DateLayout = "2006-01-02"

// GeneratorConfig configures the synthetic dataset generator.
type GeneratorConfig struct {
	Seed                 uint64  `json:"seed"`
	Stations             int     `json:"stations"`
	Sessions             int     `json:"sessions"`
	Start                string  `json:"start"`
	End                  string  `json:"end"`
	ExpansionThresholdKm float64 `json:"expansion_threshold_km"`
	Nearest              string  `json:"nearest"`
}

const (
	DefaultSeed     = 42
	DefaultSessions = 25000
)

// DefaultGenerator returns the generator settings used when neither a file
// nor the environment sets them.
func DefaultGenerator() GeneratorConfig {
	c := GeneratorConfig{Seed: DefaultSeed, Sessions: DefaultSessions}
	c.SetDefaults()
	return c
}

// SetDefaults fills fields whose zero value is never valid. Seed and
// Sessions are left alone since 0 is a legitimate request for both; their
// defaults come from DefaultGenerator.
func (c *GeneratorConfig) SetDefaults() {
	if c.Stations == 0 {
		c.Stations = 50
	}
	if c.Start == "" {
		c.Start = "2022-01-01"
	}
	if c.End == "" {
		c.End = "2024-12-31"
	}
	if c.ExpansionThresholdKm == 0 {
		c.ExpansionThresholdKm = 30
	}
	if c.Nearest == "" {
		c.Nearest = geo.StrategyBrute
	}
}

// Validate checks ranges and the session window.
func (c GeneratorConfig) Validate() error {
	if c.Stations < 2 {
		return fmt.Errorf("stations must be >= 2, got %d", c.Stations)
	}
	if c.Sessions < 0 {
		return fmt.Errorf("sessions must be >= 0, got %d", c.Sessions)
	}
	if c.ExpansionThresholdKm <= 0 {
		return fmt.Errorf("expansion_threshold_km must be > 0")
	}
	if _, err := geo.Lookup(c.Nearest); err != nil {
		return err
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	return nil
}

// Window returns the inclusive bounds of the hourly start-time grid in UTC.
func (c GeneratorConfig) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(DateLayout, c.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end %s before start %s", c.End, c.Start)
	}
	return start, end, nil
}
