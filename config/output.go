package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputConfig locates the two parquet snapshots.
type OutputConfig struct {
	Dir          string `json:"dir"`
	StationsFile string `json:"stations_file"`
	SessionsFile string `json:"sessions_file"`
	// Compression is one of "snappy", "gzip", "zstd" or "none".
	Compression string `json:"compression"`
}

// SetDefaults applies the file names used by the dashboard.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.StationsFile == "" {
		c.StationsFile = "stations_enhanced.parquet"
	}
	if c.SessionsFile == "" {
		c.SessionsFile = "sessions_enhanced.parquet"
	}
	if c.Compression == "" {
		c.Compression = "snappy"
	}
}

// Validate checks the compression codec and file names.
func (c OutputConfig) Validate() error {
	switch strings.ToLower(c.Compression) {
	case "snappy", "gzip", "zstd", "none":
	default:
		return fmt.Errorf("unknown compression %s", c.Compression)
	}
	if c.StationsFile == c.SessionsFile {
		return fmt.Errorf("stations_file and sessions_file must differ")
	}
	return nil
}

// StationsPath joins Dir and StationsFile.
func (c OutputConfig) StationsPath() string { return filepath.Join(c.Dir, c.StationsFile) }

// SessionsPath joins Dir and SessionsFile.
func (c OutputConfig) SessionsPath() string { return filepath.Join(c.Dir, c.SessionsFile) }
