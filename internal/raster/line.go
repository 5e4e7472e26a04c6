package raster

import "image"

// RasterizeLine returns the 8-connected pixel sequence from start to end,
// both endpoints included, using integer Bresenham stepping.
//
// The pixels are always computed from the endpoint that comes first in
// (y, x) order and reversed when needed, so RasterizeLine(q, p) is exactly
// RasterizeLine(p, q) backwards. Triangles sharing an edge therefore agree
// on its pixels.
func RasterizeLine(start, end image.Point) []image.Point {
	pts := make([]image.Point, 0, max(abs(end.X-start.X), abs(end.Y-start.Y))+1)
	walkLine(start, end, func(p image.Point) bool {
		pts = append(pts, p)
		return true
	})
	if pointLess(end, start) {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}

// walkLine visits the pixels of start-end in (y, x) order, so y never
// decreases along the walk. It stops early when visit returns false.
func walkLine(start, end image.Point, visit func(image.Point) bool) {
	if pointLess(end, start) {
		start, end = end, start
	}
	dx := abs(end.X - start.X)
	dy := end.Y - start.Y
	sx := 1
	if start.X > end.X {
		sx = -1
	}

	x, y := start.X, start.Y
	err := dx - dy
	for {
		if !visit(image.Point{X: x, Y: y}) {
			return
		}
		if x == end.X && y == end.Y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y++
		}
	}
}

// pointLess orders points top to bottom, then left to right.
func pointLess(a, b image.Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
