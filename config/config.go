// Package config loads optional runtime configuration from a TOML file.
// Every field has a default that matches the built-in timing and transport
// constants, so running without a file is the normal case.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full runtime configuration.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Render RenderConfig `toml:"render"`

	// Debug enables file logging, equivalent to the -debug flag.
	Debug bool `toml:"debug"`
}

// InputConfig tunes key-release timing.
type InputConfig struct {
	// ArrowDelayMs must exceed the terminal's auto-repeat interval or held
	// arrow keys flicker between down and up.
	ArrowDelayMs int `toml:"arrow_delay_ms"`

	// ActionDelayMs applies to all non-directional keys.
	ActionDelayMs int `toml:"action_delay_ms"`
}

// RenderConfig tunes the frame transport.
type RenderConfig struct {
	// Policy is "auto", "animate", or "retransmit". Auto picks animate on
	// kitty proper and retransmit elsewhere.
	Policy string `toml:"policy"`

	// DiffThresholdPercent elides frames that changed less than this.
	// Zero disables frame elision.
	DiffThresholdPercent int `toml:"diff_threshold_percent"`

	// ChunkBytes is the encoded payload size per protocol chunk.
	ChunkBytes int `toml:"chunk_bytes"`

	// Compress deflates pixel data before transmission (protocol o=z).
	Compress bool `toml:"compress"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Input: InputConfig{
			ArrowDelayMs:  150,
			ActionDelayMs: 50,
		},
		Render: RenderConfig{
			Policy:               "auto",
			DiffThresholdPercent: 1,
			ChunkBytes:           4096,
		},
	}
}

// Load reads path and merges it over the defaults. A missing file is not an
// error; a malformed one is, because silently ignoring a config the user
// wrote would be worse than failing at startup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Render.Policy {
	case "auto", "animate", "retransmit":
	default:
		return fmt.Errorf("unknown render policy %q", c.Render.Policy)
	}
	if c.Input.ArrowDelayMs <= 0 || c.Input.ActionDelayMs <= 0 {
		return fmt.Errorf("key delays must be positive")
	}
	if c.Render.DiffThresholdPercent < 0 || c.Render.DiffThresholdPercent > 100 {
		return fmt.Errorf("diff threshold must be within 0..100")
	}
	if c.Render.ChunkBytes <= 0 {
		return fmt.Errorf("chunk size must be positive")
	}
	return nil
}
