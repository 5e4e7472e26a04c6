package mesh

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"mesh-rasterizer/internal/mathutil"
)

// sceneFile matches the JSON schema of a scene file.
type sceneFile struct {
	Faces    [][3]int     `json:"faces"`
	Vertices [][2]int     `json:"vertices"`
	VColors  [][3]float64 `json:"vcolors"`
	Depth    []float64    `json:"depth"`
}

// Load reads a JSON scene file. The scene is validated before it is returned.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: load %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a JSON scene from r and validates it.
func Decode(r io.Reader) (*Scene, error) {
	var raw sceneFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("mesh: decode: %w", err)
	}

	s := &Scene{
		Faces:    make([]Face, len(raw.Faces)),
		Vertices: make([]image.Point, len(raw.Vertices)),
		Colors:   make([]mathutil.Vec3, len(raw.VColors)),
		Depths:   raw.Depth,
	}
	for i, f := range raw.Faces {
		s.Faces[i] = Face(f)
	}
	for i, v := range raw.Vertices {
		s.Vertices[i] = image.Pt(v[0], v[1])
	}
	for i, c := range raw.VColors {
		s.Colors[i] = mathutil.Vec3(c)
	}
	if s.Depths == nil {
		s.Depths = []float64{}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode writes s as indented JSON.
func Encode(w io.Writer, s *Scene) error {
	raw := sceneFile{
		Faces:    make([][3]int, len(s.Faces)),
		Vertices: make([][2]int, len(s.Vertices)),
		VColors:  make([][3]float64, len(s.Colors)),
		Depth:    s.Depths,
	}
	for i, f := range s.Faces {
		raw.Faces[i] = f
	}
	for i, v := range s.Vertices {
		raw.Vertices[i] = [2]int{v.X, v.Y}
	}
	for i, c := range s.Colors {
		raw.VColors[i] = c
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

// Save writes s to path as JSON. A failed write leaves no file behind.
func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mesh: create %s: %w", path, err)
	}
	err = Encode(f, s)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("mesh: write %s: %w", path, err)
	}
	return nil
}
