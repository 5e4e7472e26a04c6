package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mesh-rasterizer/internal/batch"
	"mesh-rasterizer/internal/config"
	"mesh-rasterizer/internal/imageio"
	"mesh-rasterizer/internal/mesh"
	"mesh-rasterizer/internal/raster"

	"github.com/google/uuid"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	mode := flag.String("mode", "", "Shading mode: flat or gouraud (default: flat)")
	width := flag.Int("width", 0, "Canvas width in pixels (default: 512)")
	height := flag.Int("height", 0, "Canvas height in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Horizontal bands rendered concurrently per scene (default: 1)")
	jobs := flag.Int("jobs", 0, "Scenes rendered concurrently (default: NumCPU)")
	format := flag.String("format", "", "Output format: webp, png, jpg, bmp or tiff (default: webp)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	verbose := flag.Bool("v", false, "Log per-render debug records")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: render [flags] <scene.json|dir>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	raster.SetLogger(logger)
	batch.SetLogger(logger)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file and environment
	cfg.Resolve(config.Flags{
		Mode:      *mode,
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		Jobs:      *jobs,
		Format:    *format,
		Quality:   *quality,
		OutputDir: *outputDir,
	})

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !imageio.Supported(cfg.Format) {
		fmt.Fprintf(os.Stderr, "Error: unsupported output format %q\n", cfg.Format)
		os.Exit(1)
	}

	// Collect scene files
	var scenes []string
	for _, arg := range flag.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !info.IsDir() {
			scenes = append(scenes, arg)
			continue
		}
		found, err := mesh.Discover(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", arg, err)
			os.Exit(1)
		}
		scenes = append(scenes, found...)
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	runID := uuid.NewString()

	fmt.Printf("Mesh rasterizer (%s, %dx%d) → %s\n", opts.Mode, opts.Width, opts.Height, cfg.Format)
	fmt.Printf("Scenes: %d, Jobs: %d, Bands: %d\n", len(scenes), cfg.Jobs, opts.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Printf("Run: %s\n", runID)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Quality:   cfg.Quality,
		Options:   opts,
		Workers:   cfg.Jobs,
	}, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Rendered: %d/%d\n", len(results)-failed, len(results))

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			fmt.Printf("  %s: %s\n", r.Scene, r.Error)
			if shown++; shown == 20 {
				break
			}
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, mesh.ManifestName)
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, runID, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
