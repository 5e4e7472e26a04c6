package raster

import (
	"image"
	"math"

	"mesh-rasterizer/internal/mathutil"
	"mesh-rasterizer/internal/mesh"
)

// Shader fills one triangle into a canvas.
type Shader func(c *Canvas, v [3]image.Point, col [3]Color)

// span is the inclusive x range a triangle covers on one scanline.
type span struct {
	minX, maxX int
}

// spans holds one span per scanline from y0 to y0+len(rows)-1.
type spans struct {
	y0   int
	rows []span
}

// edgeSpans rasterizes the three edges and records, for each scanline of the
// triangle inside clip, the leftmost and rightmost boundary pixel. Every row
// between the lowest and highest vertex gets at least one pixel because each
// edge is 8-connected. Rows outside clip are never allocated.
func edgeSpans(v [3]image.Point, clip image.Rectangle) spans {
	lo := max(min(v[0].Y, v[1].Y, v[2].Y), clip.Min.Y)
	hi := min(max(v[0].Y, v[1].Y, v[2].Y), clip.Max.Y-1)
	if lo > hi {
		return spans{y0: lo}
	}

	s := spans{y0: lo, rows: make([]span, hi-lo+1)}
	for i := range s.rows {
		s.rows[i] = span{minX: math.MaxInt, maxX: math.MinInt}
	}
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		if max(a.Y, b.Y) < lo || min(a.Y, b.Y) > hi {
			continue
		}
		walkLine(a, b, func(p image.Point) bool {
			if p.Y > hi {
				return false
			}
			if p.Y >= lo {
				r := &s.rows[p.Y-lo]
				r.minX = min(r.minX, p.X)
				r.maxX = max(r.maxX, p.X)
			}
			return true
		})
	}
	return s
}

// visible reports whether the triangle can touch clip. Triangles with a
// vertex beyond mesh.MaxCoord are rejected so edge walks stay bounded.
func visible(v [3]image.Point, clip image.Rectangle) bool {
	for _, p := range v {
		if abs(p.X) > mesh.MaxCoord || abs(p.Y) > mesh.MaxCoord {
			return false
		}
	}
	return min(v[0].X, v[1].X, v[2].X) < clip.Max.X &&
		max(v[0].X, v[1].X, v[2].X) >= clip.Min.X &&
		min(v[0].Y, v[1].Y, v[2].Y) < clip.Max.Y &&
		max(v[0].Y, v[1].Y, v[2].Y) >= clip.Min.Y
}

// ShadeFlat fills the triangle and its boundary with the mean of the three
// vertex colors. Each scanline is filled over [minX, maxX] inclusive; a row
// with a single boundary pixel (an apex) colors just that pixel.
func ShadeFlat(c *Canvas, v [3]image.Point, col [3]Color) {
	clip := c.Bounds()
	if !visible(v, clip) {
		return
	}
	flat := mathutil.Mean3(col[0], col[1], col[2])

	s := edgeSpans(v, clip)
	for i, r := range s.rows {
		y := s.y0 + i
		x0 := max(r.minX, clip.Min.X)
		x1 := min(r.maxX, clip.Max.X-1)
		for x := x0; x <= x1; x++ {
			c.Set(x, y, flat)
		}
	}
}

// ShadeGouraud fills the triangle with colors interpolated from its vertices.
//
// Vertices are ordered by (y, x) into v0, v1, v2. On every scanline the color
// of the long edge v0-v2 and of the active short edge (v0-v1 above v1, v1-v2
// from v1 down) are interpolated by y, then the span between the leftmost and
// rightmost boundary pixel is interpolated by x between those two border
// colors. Boundary pixels are painted last with colors interpolated along each
// edge's dominant axis, which covers vertical edges and apex rows.
func ShadeGouraud(c *Canvas, v [3]image.Point, col [3]Color) {
	clip := c.Bounds()
	if !visible(v, clip) {
		return
	}
	p, pc := sortVertices(v, col)
	s := edgeSpans(p, clip)

	// All three vertices on one row: the edges already cover the whole span.
	if p[0].Y != p[2].Y {
		// v1 right of the long edge means the long edge bounds the span on the left.
		longLeft := (p[1].X-p[0].X)*(p[2].Y-p[0].Y) > (p[1].Y-p[0].Y)*(p[2].X-p[0].X)

		for i, r := range s.rows {
			y := s.y0 + i
			if r.minX == r.maxX {
				continue
			}

			// Each segment below spans y (and the span spans x), so the
			// zero-extent error of InterpolateColor cannot occur.
			long, _ := InterpolateColor(p[0], p[2], pc[0], pc[2], y, AxisY)
			var short Color
			if y < p[1].Y || p[1].Y == p[2].Y {
				short, _ = InterpolateColor(p[0], p[1], pc[0], pc[1], y, AxisY)
			} else {
				short, _ = InterpolateColor(p[1], p[2], pc[1], pc[2], y, AxisY)
			}
			left, right := short, long
			if longLeft {
				left, right = long, short
			}

			a := image.Point{X: r.minX, Y: y}
			b := image.Point{X: r.maxX, Y: y}
			x0 := max(r.minX, clip.Min.X)
			x1 := min(r.maxX, clip.Max.X-1)
			for x := x0; x <= x1; x++ {
				g, _ := InterpolateColor(a, b, left, right, x, AxisX)
				c.Set(x, y, g)
			}
		}
	}

	paintEdge(c, clip, p[0], p[1], pc[0], pc[1])
	paintEdge(c, clip, p[1], p[2], pc[1], pc[2])
	paintEdge(c, clip, p[0], p[2], pc[0], pc[2])
}

// paintEdge colors the pixels of a-b inside clip by interpolating ca..cb
// along the edge's dominant axis. A zero-length edge takes ca.
func paintEdge(c *Canvas, clip image.Rectangle, a, b image.Point, ca, cb Color) {
	if a == b {
		c.Set(a.X, a.Y, ca)
		return
	}
	if max(a.X, b.X) < clip.Min.X || min(a.X, b.X) >= clip.Max.X ||
		max(a.Y, b.Y) < clip.Min.Y || min(a.Y, b.Y) >= clip.Max.Y {
		return
	}
	axis := AxisX
	if abs(b.Y-a.Y) > abs(b.X-a.X) {
		axis = AxisY
	}

	walkLine(a, b, func(p image.Point) bool {
		if p.Y >= clip.Max.Y {
			return false
		}
		if !p.In(clip) {
			return true
		}
		coord := p.X
		if axis == AxisY {
			coord = p.Y
		}
		col, _ := InterpolateColor(a, b, ca, cb, coord, axis)
		c.Set(p.X, p.Y, col)
		return true
	})
}

// sortVertices orders the vertices by (y, x) and keeps colors aligned.
// Ties on both coordinates keep their input order.
func sortVertices(v [3]image.Point, col [3]Color) ([3]image.Point, [3]Color) {
	idx := [3]int{0, 1, 2}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && pointLess(v[idx[j]], v[idx[j-1]]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return [3]image.Point{v[idx[0]], v[idx[1]], v[idx[2]]},
		[3]Color{col[idx[0]], col[idx[1]], col[idx[2]]}
}
