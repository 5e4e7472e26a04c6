package batch

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"mesh-rasterizer/internal/imageio"
	"mesh-rasterizer/internal/mesh"
	"mesh-rasterizer/internal/raster"
)

// ProgressInterval is how often Run logs throughput while scenes are rendering.
var ProgressInterval = 2 * time.Second

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Format    string
	Quality   int
	Options   raster.Options
	Workers   int
}

// Result holds the outcome of rendering one scene file.
type Result struct {
	Scene   string
	Image   string // path relative to OutputDir
	Faces   int
	Success bool
	Error   string
}

// Run renders every scene file using a worker pool. Results keep the order of paths.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64
	workers := max(cfg.Workers, 1)

	start := time.Now()
	log := Logger()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "scenes_per_sec", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, paths[idx])
				if !results[idx].Success {
					log.Warn("scene failed", "scene", paths[idx], "error", results[idx].Error)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	log.Debug("batch finished", "scenes", total, "workers", workers, "elapsed", time.Since(start))
	return results
}

func processScene(cfg Config, path string) Result {
	res := Result{Scene: path}

	s, err := mesh.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Faces = len(s.Faces)

	canvas, err := raster.RenderScene(s, cfg.Options)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	name := mesh.Stem(path) + "." + cfg.Format
	if err := imageio.Save(filepath.Join(cfg.OutputDir, name), canvas.Image(), cfg.Quality); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Image = name
	res.Success = true
	return res
}

// Failed counts the unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}
