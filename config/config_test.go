package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `generator:
  seed: 7
  stations: 12
  sessions: 300
  start: "2023-01-01"
  end: "2023-06-30"
  expansion_threshold_km: 45
  nearest: "kdtree"
output:
  dir: "out"
  compression: "zstd"
server:
  addr: ":9000"
metrics:
  prometheus_addr: ":9200"
  sinks:
    - type: "prometheus"
notify:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "evdash/datasets"
  qos: 1
log:
  level: "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"seed", cfg.Generator.Seed, uint64(7)},
		{"stations", cfg.Generator.Stations, 12},
		{"sessions", cfg.Generator.Sessions, 300},
		{"start", cfg.Generator.Start, "2023-01-01"},
		{"threshold", cfg.Generator.ExpansionThresholdKm, 45.0},
		{"nearest", cfg.Generator.Nearest, "kdtree"},
		{"dir", cfg.Output.Dir, "out"},
		{"stations_file", cfg.Output.StationsFile, "stations_enhanced.parquet"},
		{"compression", cfg.Output.Compression, "zstd"},
		{"addr", cfg.Server.Addr, ":9000"},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9200"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "prometheus", true},
		{"notify.enabled", cfg.Notify.Enabled, true},
		{"notify.qos", cfg.Notify.QoS, byte(1)},
		{"notify.topic", cfg.Notify.Topic, "evdash/datasets"},
		{"log.level", cfg.Log.Level, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, 50, cfg.Generator.Stations)
	assert.Equal(t, 25000, cfg.Generator.Sessions)
	assert.Equal(t, 30.0, cfg.Generator.ExpansionThresholdKm)
	assert.Equal(t, "brute", cfg.Generator.Nearest)
	assert.Equal(t, filepath.Join(".", "stations_enhanced.parquet"), cfg.Output.StationsPath())
	assert.Equal(t, filepath.Join(".", "sessions_enhanced.parquet"), cfg.Output.SessionsPath())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)

	start, end, err := cfg.Generator.Window()
	require.NoError(t, err)
	assert.Equal(t, 2022, start.Year())
	assert.Equal(t, 2024, end.Year())
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.json", `{"generator": {"seed": 1, "sessions": 10}}`)
	t.Setenv("EVDASH_GENERATOR__SESSIONS", "99")
	t.Setenv("EVDASH_OUTPUT__STATIONS_FILE", "st.parquet")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.Generator.Seed)
	assert.Equal(t, 99, cfg.Generator.Sessions)
	assert.Equal(t, "st.parquet", cfg.Output.StationsFile)
}

func TestLoadKeepsExplicitZero(t *testing.T) {
	path := writeFile(t, "config.yaml", "generator:\n  seed: 0\n  sessions: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.Generator.Seed)
	assert.Equal(t, 0, cfg.Generator.Sessions)
	assert.Equal(t, 50, cfg.Generator.Stations)

	t.Setenv("EVDASH_GENERATOR__SEED", "0")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.Generator.Seed)
	assert.Equal(t, DefaultSessions, cfg.Generator.Sessions)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "config.toml", "seed = 1")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"single station", func(c *Config) { c.Generator.Stations = 1 }},
		{"negative sessions", func(c *Config) { c.Generator.Sessions = -1 }},
		{"window reversed", func(c *Config) { c.Generator.Start, c.Generator.End = "2024-01-01", "2023-01-01" }},
		{"bad date", func(c *Config) { c.Generator.Start = "01/01/2022" }},
		{"unknown nearest", func(c *Config) { c.Generator.Nearest = "grid" }},
		{"negative threshold", func(c *Config) { c.Generator.ExpansionThresholdKm = -5 }},
		{"unknown compression", func(c *Config) { c.Output.Compression = "lzo" }},
		{"same files", func(c *Config) { c.Output.SessionsFile = c.Output.StationsFile }},
		{"bad qos", func(c *Config) { c.Notify.QoS = 3 }},
		{"notify without broker", func(c *Config) { c.Notify.Enabled = true; c.Notify.Broker = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			c.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
