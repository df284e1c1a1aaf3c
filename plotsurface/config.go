package plotsurface

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned for non-positive figure dimensions.
var ErrInvalidConfig = errors.New("plotsurface: invalid config")

// Config holds the figure export settings.
type Config struct {
	Width  float64 `toml:"width"`  // Figure width in inches (default: 6.4)
	Height float64 `toml:"height"` // Figure height in inches (default: 4.8)
	DPI    int     `toml:"dpi"`    // PNG resolution (default: 600)
}

// DefaultConfig returns the default export settings.
func DefaultConfig() *Config {
	return &Config{
		Width:  6.4,
		Height: 4.8,
		DPI:    600,
	}
}

// Validate checks the dimensions.
func (c *Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: size %vx%v in", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi %d", ErrInvalidConfig, c.DPI)
	}
	return nil
}

// LoadConfig reads export settings from a TOML file. Missing keys keep
// their defaults.
//
//	width = 8
//	height = 4
//	dpi = 300
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
