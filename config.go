package trellis

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config sets the engine's canvas, stacking, hit-test, and atlas behavior.
// The zero value is not usable directly; start from DefaultConfig or
// LoadConfig so unset fields keep their defaults.
type Config struct {
	// Width and Height are the canvas dimensions in UI units. The canvas
	// rect is the implicit parent of every root widget.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// UIScale multiplies UI units into screen pixels at batch time.
	UIScale float64 `toml:"ui_scale"`

	// NewestOnTop draws later-created widgets above earlier ones when
	// nothing else separates them. Disable for oldest-on-top stacking.
	NewestOnTop bool `toml:"newest_on_top"`

	// HitCellSize is the hit grid cell edge in screen pixels.
	HitCellSize float64 `toml:"hit_cell_size"`

	// HitTestExcluded lists widget names that never receive hits.
	HitTestExcluded []string `toml:"hit_test_excluded"`

	// AtlasTexSize is the edge of every atlas backing texture.
	// AtlasCellSizes are the tier cell sizes, ascending divisors of
	// AtlasTexSize.
	AtlasTexSize   int   `toml:"atlas_tex_size"`
	AtlasCellSizes []int `toml:"atlas_cell_sizes"`

	// Debug enables stderr diagnostics for silent no-op operations.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Width:          1280,
		Height:         720,
		UIScale:        1,
		NewestOnTop:    true,
		HitCellSize:    64,
		AtlasTexSize:   2048,
		AtlasCellSizes: []int{64, 128, 256, 512, 2048},
	}
}

// withDefaults replaces unusable values with their defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.UIScale <= 0 {
		c.UIScale = d.UIScale
	}
	if c.HitCellSize <= 0 {
		c.HitCellSize = d.HitCellSize
	}
	if c.AtlasTexSize <= 0 {
		c.AtlasTexSize = d.AtlasTexSize
	}
	if len(c.AtlasCellSizes) == 0 {
		c.AtlasCellSizes = d.AtlasCellSizes
	}
	return c
}

// LoadConfig reads a TOML file over the defaults, so a partial file only
// overrides the fields it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("trellis: read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("trellis: parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// SaveConfig writes the config as TOML.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("trellis: encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("trellis: write config: %w", err)
	}
	return nil
}
