package raster

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
	"time"

	"mesh-rasterizer/internal/mesh"

	"golang.org/x/sync/errgroup"
)

// Mode selects the shading model.
type Mode int

const (
	Flat Mode = iota + 1
	Gouraud
)

var (
	// ErrUnknownMode is returned for a shading mode other than Flat or Gouraud.
	ErrUnknownMode = errors.New("raster: unknown shading mode")

	// ErrInvalidSize is returned for a non-positive canvas dimension.
	ErrInvalidSize = errors.New("raster: invalid canvas size")
)

func (m Mode) String() string {
	switch m {
	case Flat:
		return "flat"
	case Gouraud:
		return "gouraud"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "flat"/"f" and "gouraud"/"g", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "f":
		return Flat, nil
	case "gouraud", "g":
		return Gouraud, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Shader returns the fill function for m.
func (m Mode) Shader() (Shader, error) {
	switch m {
	case Flat:
		return ShadeFlat, nil
	case Gouraud:
		return ShadeGouraud, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMode, m)
}

// Options controls the canvas and compositing of a render.
type Options struct {
	Width      int
	Height     int
	Background Color
	Mode       Mode
	// Workers > 1 splits the canvas into that many horizontal bands rendered
	// concurrently. Output is identical to a single-worker render.
	Workers int
}

// DefaultCanvasSize is the width and height used by Render.
const DefaultCanvasSize = 512

// DefaultOptions returns a 512x512 near-white flat-shaded single-worker render.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultCanvasSize,
		Height:     DefaultCanvasSize,
		Background: DefaultBackground,
		Mode:       Flat,
		Workers:    1,
	}
}

// Render composites every face onto a fresh default-size canvas using mode.
func Render(faces []mesh.Face, vertices []image.Point, colors []Color, depths []float64, mode Mode) (*Canvas, error) {
	opts := DefaultOptions()
	opts.Mode = mode
	return RenderScene(&mesh.Scene{
		Faces:    faces,
		Vertices: vertices,
		Colors:   colors,
		Depths:   depths,
	}, opts)
}

// RenderScene validates s and composites its faces back to front onto a new
// canvas. Faces are drawn in DepthOrder, so nearer faces (smaller mean depth)
// overwrite farther ones where they overlap.
func RenderScene(s *mesh.Scene, opts Options) (*Canvas, error) {
	shade, err := opts.Mode.Shader()
	if err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("raster: scene: %w", err)
	}

	start := time.Now()
	order := DepthOrder(s)
	canvas := NewCanvas(opts.Width, opts.Height, opts.Background)

	workers := min(max(opts.Workers, 1), opts.Height)
	if workers == 1 {
		err = composite(canvas, s, order, shade)
	} else {
		err = compositeBands(canvas, s, order, shade, workers)
	}
	if err != nil {
		return nil, err
	}

	Logger().Debug("render",
		"faces", len(s.Faces),
		"mode", opts.Mode.String(),
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"workers", workers,
		"elapsed", time.Since(start))
	return canvas, nil
}

// DepthOrder returns face indices sorted by descending mean depth, farthest
// first. Faces with equal depth keep their original order. Drawing in this
// order lets the face with the smaller mean depth win every shared pixel.
func DepthOrder(s *mesh.Scene) []int {
	depth := make([]float64, len(s.Faces))
	order := make([]int, len(s.Faces))
	for i, f := range s.Faces {
		depth[i] = s.FaceDepth(f)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return depth[order[a]] > depth[order[b]]
	})
	return order
}

func composite(c *Canvas, s *mesh.Scene, order []int, shade Shader) error {
	return shadeFaces(c, s, order, shade, nil)
}

// compositeBands renders each horizontal band in its own goroutine. Every
// band walks the full depth order, so each pixel receives the same sequence
// of writes as in composite.
func compositeBands(c *Canvas, s *mesh.Scene, order []int, shade Shader, workers int) error {
	rows := make([][2]int, len(s.Faces))
	for i, f := range s.Faces {
		a, b, d := s.Vertices[f[0]].Y, s.Vertices[f[1]].Y, s.Vertices[f[2]].Y
		rows[i] = [2]int{min(a, b, d), max(a, b, d)}
	}

	bandH := (c.Height + workers - 1) / workers
	var g errgroup.Group
	for y0 := 0; y0 < c.Height; y0 += bandH {
		band := c.Band(y0, y0+bandH)
		g.Go(func() error {
			return shadeFaces(band, s, order, shade, rows)
		})
	}
	return g.Wait()
}

// shadeFaces draws the faces of s onto c in order. When rows is non-nil,
// faces whose row range misses c's clip are skipped. A panicking shader is
// reported as an error naming the face.
func shadeFaces(c *Canvas, s *mesh.Scene, order []int, shade Shader, rows [][2]int) (err error) {
	clip := c.Bounds()
	face := -1
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("raster: shade face %d in rows [%d,%d): %v", face, clip.Min.Y, clip.Max.Y, r)
		}
	}()

	for _, fi := range order {
		if rows != nil && (rows[fi][1] < clip.Min.Y || rows[fi][0] >= clip.Max.Y) {
			continue
		}
		face = fi
		v, col := s.Resolve(s.Faces[fi])
		shade(c, v, col)
	}
	return nil
}
