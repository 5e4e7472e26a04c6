package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/raster"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the environment overrides, e.g. RASTER_WIDTH.
const EnvPrefix = "RASTER"

// Defaults applied by Resolve.
const (
	DefaultBackground = 0.99
	DefaultShading    = "flat"
	DefaultQuality    = 90
	DefaultFormat     = "webp"
	DefaultOutputDir  = "renders"
)

// Config holds all configurable render and output settings.
type Config struct {
	// Canvas
	Width      int      `json:"width" envconfig:"WIDTH"`
	Height     int      `json:"height" envconfig:"HEIGHT"`
	Background *float64 `json:"background" envconfig:"BACKGROUND"`
	Shading    string   `json:"shading" envconfig:"SHADING"`
	Workers    int      `json:"workers" envconfig:"WORKERS"`

	// Batch output
	Jobs      int    `json:"jobs" envconfig:"JOBS"`
	Format    string `json:"format" envconfig:"FORMAT"`
	Quality   int    `json:"quality" envconfig:"QUALITY"`
	OutputDir string `json:"output_dir" envconfig:"OUTPUT_DIR"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays RASTER_* environment variables onto c. Unset variables
// leave the current value alone.
func (c *Config) ApplyEnv() error {
	var env Config
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	c.merge(env)
	return nil
}

// merge copies every non-zero field of o into c.
func (c *Config) merge(o Config) {
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	if o.Background != nil {
		bg := *o.Background
		c.Background = &bg
	}
	if o.Shading != "" {
		c.Shading = o.Shading
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.Jobs > 0 {
		c.Jobs = o.Jobs
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Quality > 0 {
		c.Quality = o.Quality
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
}

// Flags holds CLI flag values that override config file and environment settings.
type Flags struct {
	Mode      string
	Width     int
	Height    int
	Workers   int
	Jobs      int
	Format    string
	Quality   int
	OutputDir string
}

// Resolve applies flags over c, then fills any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	c.merge(Config{
		Width:     flags.Width,
		Height:    flags.Height,
		Shading:   flags.Mode,
		Workers:   flags.Workers,
		Jobs:      flags.Jobs,
		Format:    flags.Format,
		Quality:   flags.Quality,
		OutputDir: flags.OutputDir,
	})

	if c.Width <= 0 {
		c.Width = raster.DefaultCanvasSize
	}
	if c.Height <= 0 {
		c.Height = raster.DefaultCanvasSize
	}
	if c.Background == nil {
		bg := DefaultBackground
		c.Background = &bg
	}
	if c.Shading == "" {
		c.Shading = DefaultShading
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	if c.Quality <= 0 {
		c.Quality = DefaultQuality
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// Options converts the canvas settings to raster options. Call Resolve first.
func (c *Config) Options() (raster.Options, error) {
	mode, err := raster.ParseMode(c.Shading)
	if err != nil {
		return raster.Options{}, fmt.Errorf("config: shading: %w", err)
	}
	bg := DefaultBackground
	if c.Background != nil {
		bg = *c.Background
	}
	return raster.Options{
		Width:      c.Width,
		Height:     c.Height,
		Background: mathutil.Gray(bg),
		Mode:       mode,
		Workers:    c.Workers,
	}, nil
}
