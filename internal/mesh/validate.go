package mesh

import (
	"errors"
	"fmt"
)

// MaxCoord bounds the absolute value of every vertex coordinate. Vertices may
// lie outside the canvas, but not beyond this bound.
const MaxCoord = 1 << 24

var (
	// ErrMismatchedTables is returned when the vertex, color and depth tables differ in length.
	ErrMismatchedTables = errors.New("mesh: vertex, color and depth tables differ in length")

	// ErrCoordRange is returned for a vertex with a coordinate beyond ±MaxCoord.
	ErrCoordRange = errors.New("mesh: vertex coordinate out of range")
)

// IndexError reports a face that references a vertex outside the tables.
type IndexError struct {
	Face   int // position of the face in Scene.Faces
	Corner int // 0, 1 or 2
	Index  int // offending vertex index
	Len    int // number of vertices
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("mesh: face %d corner %d: vertex index %d out of range [0,%d)",
		e.Face, e.Corner, e.Index, e.Len)
}

// Validate checks that the tables are aligned, every face index is in range
// and every vertex lies within ±MaxCoord.
// It is meant to run once before rendering so a bad scene never fails mid-render.
func (s *Scene) Validate() error {
	n := len(s.Vertices)
	if len(s.Colors) != n || len(s.Depths) != n {
		return fmt.Errorf("%w: vertices=%d colors=%d depths=%d",
			ErrMismatchedTables, n, len(s.Colors), len(s.Depths))
	}
	for i, p := range s.Vertices {
		if p.X < -MaxCoord || p.X > MaxCoord || p.Y < -MaxCoord || p.Y > MaxCoord {
			return fmt.Errorf("%w: vertex %d at %v exceeds ±%d", ErrCoordRange, i, p, MaxCoord)
		}
	}
	for i, f := range s.Faces {
		for c, vi := range f {
			if vi < 0 || vi >= n {
				return &IndexError{Face: i, Corner: c, Index: vi, Len: n}
			}
		}
	}
	return nil
}
