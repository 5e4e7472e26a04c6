package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
// Colors are carried as Vec3 with channels in R, G, B order.
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Lerp returns (1-t)*a + t*b per component.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		(1-t)*a[0] + t*b[0],
		(1-t)*a[1] + t*b[1],
		(1-t)*a[2] + t*b[2],
	}
}

// Mean3 returns the per-component arithmetic mean of three vectors.
func Mean3(a, b, c Vec3) Vec3 {
	return Vec3{
		(a[0] + b[0] + c[0]) / 3,
		(a[1] + b[1] + c[1]) / 3,
		(a[2] + b[2] + c[2]) / 3,
	}
}

// Gray returns a vector with all three components set to v.
func Gray(v float64) Vec3 {
	return Vec3{v, v, v}
}

// Near reports whether every component of a and b differs by at most eps.
func (a Vec3) Near(b Vec3, eps float64) bool {
	for k := 0; k < 3; k++ {
		if math.Abs(a[k]-b[k]) > eps {
			return false
		}
	}
	return true
}

// Clamp01 clamps every component into [0, 1].
func (v Vec3) Clamp01() Vec3 {
	for k := 0; k < 3; k++ {
		if v[k] < 0 {
			v[k] = 0
		} else if v[k] > 1 {
			v[k] = 1
		}
	}
	return v
}
