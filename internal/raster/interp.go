package raster

import (
	"errors"
	"fmt"
	"image"

	"mesh-rasterizer/internal/mathutil"
)

// Axis selects which coordinate of a point an interpolation target is given in.
type Axis int

const (
	AxisX Axis = iota + 1
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

var (
	// ErrDegenerateSegment is returned when the segment has no extent along the
	// requested axis (a vertical segment interpolated by x, or a horizontal one by y).
	ErrDegenerateSegment = errors.New("raster: segment has zero extent along interpolation axis")

	// ErrInvalidAxis is returned for an Axis other than AxisX or AxisY.
	ErrInvalidAxis = errors.New("raster: invalid interpolation axis")
)

// Param returns the interpolation parameter t = (coord - p1[axis]) / (p2[axis] - p1[axis])
// of the point on p1-p2 whose axis coordinate is coord. t is not clamped:
// the caller guarantees the point lies on the segment.
func Param(p1, p2 image.Point, coord int, axis Axis) (float64, error) {
	var a1, a2 int
	switch axis {
	case AxisX:
		a1, a2 = p1.X, p2.X
	case AxisY:
		a1, a2 = p1.Y, p2.Y
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidAxis, axis)
	}
	if a1 == a2 {
		return 0, fmt.Errorf("%w: %v-%v along %v", ErrDegenerateSegment, p1, p2, axis)
	}
	return float64(coord-a1) / float64(a2-a1), nil
}

// Interpolate returns (1-t)*v1 + t*v2 at the point on p1-p2 whose axis
// coordinate equals coord.
func Interpolate(p1, p2 image.Point, v1, v2 float64, coord int, axis Axis) (float64, error) {
	t, err := Param(p1, p2, coord, axis)
	if err != nil {
		return 0, err
	}
	return (1-t)*v1 + t*v2, nil
}

// InterpolateColor applies Interpolate to each channel of c1 and c2.
func InterpolateColor(p1, p2 image.Point, c1, c2 Color, coord int, axis Axis) (Color, error) {
	t, err := Param(p1, p2, coord, axis)
	if err != nil {
		return Color{}, err
	}
	return mathutil.Lerp(c1, c2, t), nil
}
