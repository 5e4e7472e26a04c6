package mesh

import (
	"image"
	"math/rand/v2"

	"mesh-rasterizer/internal/mathutil"
)

// Random builds a scene of n independent triangles with vertices uniformly
// distributed over a size x size canvas. Colors use two decimal places
// and depths lie in [0, 1). The same seed always yields the same scene.
// A size below 1 is treated as 1 and a negative n as 0.
func Random(n, size int, seed uint64) *Scene {
	n, size = max(n, 0), max(size, 1)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := &Scene{
		Faces:    make([]Face, n),
		Vertices: make([]image.Point, 0, 3*n),
		Colors:   make([]mathutil.Vec3, 0, 3*n),
		Depths:   make([]float64, 0, 3*n),
	}
	for i := 0; i < n; i++ {
		base := len(s.Vertices)
		for k := 0; k < 3; k++ {
			s.Vertices = append(s.Vertices, image.Pt(rng.IntN(size), rng.IntN(size)))
			s.Colors = append(s.Colors, mathutil.Vec3{
				float64(rng.IntN(100)) / 100,
				float64(rng.IntN(100)) / 100,
				float64(rng.IntN(100)) / 100,
			})
			s.Depths = append(s.Depths, rng.Float64())
		}
		s.Faces[i] = Face{base, base + 1, base + 2}
	}
	return s
}

// Grid builds a cols x rows lattice over a size x size canvas where every cell
// is split into two triangles sharing the cell diagonal. Adjacent triangles
// share vertices, so the scene exercises seams between neighbours.
// A size below 1 is treated as 1.
func Grid(cols, rows, size int, seed uint64) *Scene {
	size = max(size, 1)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := &Scene{}
	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			x := i * (size - 1) / max(cols, 1)
			y := j * (size - 1) / max(rows, 1)
			s.Vertices = append(s.Vertices, image.Pt(x, y))
			s.Colors = append(s.Colors, mathutil.Vec3{rng.Float64(), rng.Float64(), rng.Float64()})
			s.Depths = append(s.Depths, rng.Float64())
		}
	}
	at := func(i, j int) int { return j*(cols+1) + i }
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			s.Faces = append(s.Faces,
				Face{at(i, j), at(i+1, j), at(i+1, j+1)},
				Face{at(i, j), at(i+1, j+1), at(i, j+1)},
			)
		}
	}
	return s
}
