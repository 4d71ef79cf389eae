package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/evdash/core/metrics"
	"github.com/kilianp07/evdash/infra/mqtt"
)

// EnvPrefix prefixes environment overrides, e.g. EVDASH_GENERATOR__SEED.
const EnvPrefix = "EVDASH_"

type Config struct {
	Generator GeneratorConfig `json:"generator"`
	Output    OutputConfig    `json:"output"`
	Server    ServerConfig    `json:"server"`
	Metrics   metrics.Config  `json:"metrics"`
	Notify    mqtt.Config     `json:"notify"`
	Log       LogConfig       `json:"log"`
}

// Load reads the configuration file at path, applies environment overrides
// and defaults, then validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	// Unmarshal over the generator defaults so an explicit seed or session
	// count of 0 is kept.
	cfg := Config{Generator: DefaultGenerator()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated configuration built only from defaults.
func Default() *Config {
	cfg := Config{Generator: DefaultGenerator()}
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Generator.SetDefaults()
	c.Output.SetDefaults()
	c.Server.SetDefaults()
	c.Metrics.SetDefaults()
	c.Notify.SetDefaults()
	c.Log.SetDefaults()
}

// Validate checks every section and prefixes errors with the section name.
func (c Config) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Notify.Validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}
