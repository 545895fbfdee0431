package webengine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds host-side renderer configuration, loadable from a YAML
// file. Zero fields take defaults; Validate rejects anything the render
// systems would fail on later, so configuration errors surface before any
// GPU resource is created.
type Config struct {
	// Width and Height are the render target dimensions in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Backend selects the GPU backend by name ("vulkan", "noop").
	// Empty means automatic selection.
	Backend string `yaml:"backend,omitempty"`

	// ClearColor is the RGBA frame clear color. Empty means opaque black.
	ClearColor []float32 `yaml:"clear_color,omitempty"`
}

// DefaultConfig returns the default renderer configuration.
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		ClearColor: []float32{0, 0, 0, 1},
	}
}

// LoadConfig reads a YAML config file, applies defaults for absent
// fields, and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data, applies defaults for absent
// fields, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the renderer cannot use.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("webengine: invalid render size: %dx%d", c.Width, c.Height)
	}
	switch len(c.ClearColor) {
	case 0, 4:
	default:
		return fmt.Errorf("webengine: clear_color needs 4 components, got %d", len(c.ClearColor))
	}
	return nil
}

// ClearEngineColor returns the configured clear color, or opaque black if
// none was set.
func (c Config) ClearEngineColor() EngineColor {
	if len(c.ClearColor) != 4 {
		return Black
	}
	return EngineColor{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}
