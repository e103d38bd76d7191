package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
)

// Config is the application configuration. Every field has a default, so an
// absent file is not an error.
type Config struct {
	Surface SurfaceConfig `json:"surface"`
	Import  ImportConfig  `json:"import"`
	Export  ExportConfig  `json:"export"`
	Log     LogConfig     `json:"log"`
}

// SurfaceConfig drawing surface settings
type SurfaceConfig struct {
	Foreground     string  `json:"foreground"` // #RRGGBB or #RRGGBBAA
	Background     string  `json:"background"`
	StrokeWidth    float64 `json:"stroke_width"`
	TouchTolerance float64 `json:"touch_tolerance"`
	OverlayX       float64 `json:"overlay_x"` // position of a freshly attached image
	OverlayY       float64 `json:"overlay_y"`
}

// ImportConfig image import settings. Bounds are fractions of the display.
type ImportConfig struct {
	WidthFraction  float64 `json:"width_fraction"`
	HeightFraction float64 `json:"height_fraction"`
}

// ExportConfig export settings
type ExportConfig struct {
	Dir            string `json:"dir"`    // empty: app storage root
	Format         string `json:"format"` // jpg, pdf
	Quality        int    `json:"quality"`
	CaptureTimeout int    `json:"capture_timeout_ms"`
}

type LogConfig struct {
	Level string `json:"level"`
}

const (
	EnvConfigPath = "PHOTOSKETCH_CONFIG"
	EnvExportDir  = "PHOTOSKETCH_EXPORT_DIR"
	EnvLogLevel   = "PHOTOSKETCH_LOG_LEVEL"
)

func Default() *Config {
	return &Config{
		Surface: SurfaceConfig{
			Foreground:     "#FF0000",
			Background:     "#FFFFFF",
			StrokeWidth:    12,
			TouchTolerance: 4,
			OverlayX:       100,
			OverlayY:       100,
		},
		Import: ImportConfig{
			WidthFraction:  0.5,
			HeightFraction: 0.25,
		},
		Export: ExportConfig{
			Format:         "jpg",
			Quality:        70,
			CaptureTimeout: 3000,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults, then applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		c.Export.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) Validate() error {
	if _, err := ParseColor(c.Surface.Foreground); err != nil {
		return fmt.Errorf("surface.foreground: %w", err)
	}
	if _, err := ParseColor(c.Surface.Background); err != nil {
		return fmt.Errorf("surface.background: %w", err)
	}
	if c.Surface.StrokeWidth <= 0 {
		return fmt.Errorf("surface.stroke_width must be > 0, got %v", c.Surface.StrokeWidth)
	}
	if c.Surface.TouchTolerance < 0 {
		return fmt.Errorf("surface.touch_tolerance must be >= 0, got %v", c.Surface.TouchTolerance)
	}
	if c.Import.WidthFraction <= 0 || c.Import.HeightFraction <= 0 {
		return errors.New("import fractions must be > 0")
	}
	switch c.Export.Format {
	case "jpg", "pdf":
	default:
		return fmt.Errorf("export.format: unsupported %q", c.Export.Format)
	}
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return fmt.Errorf("export.quality must be 1..100, got %d", c.Export.Quality)
	}
	return nil
}

// ParseColor parses #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustColor is ParseColor for values already checked by Validate.
func MustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
