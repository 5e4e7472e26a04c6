package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/raster"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{"width": 320, "shading": "gouraud", "background": 0, "output_dir": "out"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 0 {
		t.Errorf("Load() size = %dx%d, want 320x0", cfg.Width, cfg.Height)
	}
	if cfg.Background == nil || *cfg.Background != 0 {
		t.Errorf("Load().Background = %v, want explicit 0", cfg.Background)
	}
	if cfg.Shading != "gouraud" || cfg.OutputDir != "out" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
	if _, err := Load(writeConfig(t, `{"width": "wide"}`)); err == nil {
		t.Error("Load(bad type) error = nil")
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.Width != 512 || cfg.Height != 512 {
		t.Errorf("size = %dx%d, want 512x512", cfg.Width, cfg.Height)
	}
	if *cfg.Background != DefaultBackground {
		t.Errorf("Background = %v, want %v", *cfg.Background, DefaultBackground)
	}
	if cfg.Shading != "flat" || cfg.Workers != 1 || cfg.Jobs != runtime.NumCPU() {
		t.Errorf("Resolve() = %+v", cfg)
	}
	if cfg.Format != "webp" || cfg.Quality != 90 || cfg.OutputDir != "renders" {
		t.Errorf("Resolve() output = %q %d %q", cfg.Format, cfg.Quality, cfg.OutputDir)
	}
}

func TestLayering(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"width": 100, "height": 100, "format": "png", "jobs": 3}`))
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("RASTER_HEIGHT", "200")
	t.Setenv("RASTER_SHADING", "g")
	t.Setenv("RASTER_BACKGROUND", "0.5")
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	cfg.Resolve(Flags{Format: ".BMP", Workers: 4})

	if cfg.Width != 100 {
		t.Errorf("Width = %d, want 100 from file", cfg.Width)
	}
	if cfg.Height != 200 {
		t.Errorf("Height = %d, want 200 from environment", cfg.Height)
	}
	if cfg.Format != "bmp" {
		t.Errorf("Format = %q, want bmp from flags", cfg.Format)
	}
	if cfg.Jobs != 3 || cfg.Workers != 4 {
		t.Errorf("Jobs, Workers = %d, %d, want 3, 4", cfg.Jobs, cfg.Workers)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	want := raster.Options{Width: 100, Height: 200, Background: mathutil.Gray(0.5), Mode: raster.Gouraud, Workers: 4}
	if opts != want {
		t.Errorf("Options() = %+v, want %+v", opts, want)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("RASTER_WIDTH", "many")
	var cfg Config
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("ApplyEnv() error = nil for non-numeric width")
	}
}

func TestOptionsUnknownShading(t *testing.T) {
	cfg := Config{Shading: "phong"}
	cfg.Resolve(Flags{})
	if _, err := cfg.Options(); !errors.Is(err, raster.ErrUnknownMode) {
		t.Errorf("Options() error = %v, want ErrUnknownMode", err)
	}
}
