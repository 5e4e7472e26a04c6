package raster

import (
	"image"

	"mesh-rasterizer/internal/mathutil"
)

// Color is an RGB triple with channels normalized to [0,1].
type Color = mathutil.Vec3

// DefaultBackground is the near-white canvas fill.
var DefaultBackground = mathutil.Gray(0.99)

// Canvas holds the rendering target as a flat slice for cache locality.
// Pixel (x, y) is column x of row y. Writes outside the clip rectangle
// are dropped, so upstream geometry does not need to be pre-clipped.
type Canvas struct {
	Width  int
	Height int
	Pix    []float64 // RGB interleaved, len = W*H*3

	clip image.Rectangle
}

// NewCanvas allocates a w x h canvas filled with bg.
// Negative dimensions are treated as zero.
func NewCanvas(w, h int, bg Color) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Pix:    make([]float64, w*h*3),
		clip:   image.Rect(0, 0, w, h),
	}
	c.Fill(bg)
	return c
}

// Bounds returns the rectangle writes are clipped to.
func (c *Canvas) Bounds() image.Rectangle {
	return c.clip
}

// Band returns a view over rows [y0, y1) that shares c's pixels.
// Views over disjoint bands may be written from different goroutines.
func (c *Canvas) Band(y0, y1 int) *Canvas {
	v := *c
	v.clip = c.clip.Intersect(image.Rect(0, y0, c.Width, y1))
	return &v
}

// Set writes col at (x, y) and reports whether the pixel was inside the clip.
func (c *Canvas) Set(x, y int, col Color) bool {
	if x < c.clip.Min.X || x >= c.clip.Max.X || y < c.clip.Min.Y || y >= c.clip.Max.Y {
		return false
	}
	i := (y*c.Width + x) * 3
	c.Pix[i] = col[0]
	c.Pix[i+1] = col[1]
	c.Pix[i+2] = col[2]
	return true
}

// At returns the color at (x, y), or black outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return Color{}
	}
	i := (y*c.Width + x) * 3
	return Color{c.Pix[i], c.Pix[i+1], c.Pix[i+2]}
}

// Fill sets every pixel inside the clip to col.
func (c *Canvas) Fill(col Color) {
	for y := c.clip.Min.Y; y < c.clip.Max.Y; y++ {
		row := y * c.Width * 3
		for x := c.clip.Min.X; x < c.clip.Max.X; x++ {
			i := row + x*3
			c.Pix[i] = col[0]
			c.Pix[i+1] = col[1]
			c.Pix[i+2] = col[2]
		}
	}
}

// Image converts the whole canvas to an opaque NRGBA image.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		src := y * c.Width * 3
		dst := y * img.Stride
		for x := 0; x < c.Width; x++ {
			s := src + x*3
			d := dst + x*4
			img.Pix[d] = clamp255(c.Pix[s] * 255)
			img.Pix[d+1] = clamp255(c.Pix[s+1] * 255)
			img.Pix[d+2] = clamp255(c.Pix[s+2] * 255)
			img.Pix[d+3] = 255
		}
	}
	return img
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
