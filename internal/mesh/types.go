package mesh

import (
	"image"

	"mesh-rasterizer/internal/mathutil"
)

// Face holds three indices into the scene's vertex, color and depth tables.
type Face [3]int

// Scene is a read-only triangle mesh stored as parallel flat tables.
// Faces[i] picks three indices that are valid for Vertices, Colors and Depths.
// Renderers draw faces farthest first, so where two faces overlap the one
// with the smaller mean depth stays visible.
type Scene struct {
	Faces    []Face
	Vertices []image.Point   // pixel coordinates, X column, Y row
	Colors   []mathutil.Vec3 // per-vertex RGB in [0,1]
	Depths   []float64       // per-vertex depth, larger is farther
}

// FaceDepth returns the mean depth of the face's three vertices.
func (s *Scene) FaceDepth(f Face) float64 {
	return (s.Depths[f[0]] + s.Depths[f[1]] + s.Depths[f[2]]) / 3
}

// Resolve returns the positions and colors of a face's three vertices.
func (s *Scene) Resolve(f Face) ([3]image.Point, [3]mathutil.Vec3) {
	return [3]image.Point{s.Vertices[f[0]], s.Vertices[f[1]], s.Vertices[f[2]]},
		[3]mathutil.Vec3{s.Colors[f[0]], s.Colors[f[1]], s.Colors[f[2]]}
}

// Bounds returns the smallest rectangle containing every vertex.
func (s *Scene) Bounds() image.Rectangle {
	if len(s.Vertices) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: s.Vertices[0], Max: s.Vertices[0]}
	for _, v := range s.Vertices[1:] {
		if v.X < r.Min.X {
			r.Min.X = v.X
		}
		if v.Y < r.Min.Y {
			r.Min.Y = v.Y
		}
		if v.X > r.Max.X {
			r.Max.X = v.X
		}
		if v.Y > r.Max.Y {
			r.Max.Y = v.Y
		}
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}
