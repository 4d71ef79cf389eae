package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LogConfig sets the minimum level of the zerolog output.
type LogConfig struct {
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks that the level is known to zerolog.
func (c LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}
