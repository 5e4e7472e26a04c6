// Package histeq implements histogram-based contrast equalization of 8-bit
// grayscale images, globally and adaptively over a grid of contextual regions.
package histeq

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Levels is the number of gray levels of an 8-bit image.
const Levels = 256

// ErrInvalidRegion is returned for a contextual region that is empty or
// larger than the image.
var ErrInvalidRegion = errors.New("histeq: invalid contextual region size")

// Transform returns the equalization lookup table of img.
func Transform(img *image.Gray) [Levels]uint8 {
	return transformRect(img, img.Bounds())
}

// transformRect builds T(k) = round((u(k) - u(0)) * 255 / (1 - u(0))) where u
// is the cumulative distribution of the gray levels inside r. Halves round to
// even. An empty region, or one where every pixel is 0, maps to the identity.
func transformRect(img *image.Gray, r image.Rectangle) [Levels]uint8 {
	var counts [Levels]int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		for _, v := range img.Pix[off : off+r.Dx()] {
			counts[v]++
		}
	}

	var t [Levels]uint8
	n := r.Dx() * r.Dy()
	if n == 0 || counts[0] == n {
		for k := range t {
			t[k] = uint8(k)
		}
		return t
	}

	u0 := float64(counts[0]) / float64(n)
	cum := 0
	for k := 0; k < Levels; k++ {
		cum += counts[k]
		u := float64(cum) / float64(n)
		t[k] = uint8(math.RoundToEven((u - u0) * (Levels - 1) / (1 - u0)))
	}
	return t
}

// Global equalizes img with its own transform.
func Global(img *image.Gray) *image.Gray {
	t := Transform(img)
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		dst := y * out.Stride
		for x := 0; x < b.Dx(); x++ {
			out.Pix[dst+x] = t[img.Pix[src+x]]
		}
	}
	return out
}

// Adaptive equalizes img over a grid of regionH x regionW contextual regions.
// The output covers only whole regions, so trailing rows and columns that do
// not fill a region are cropped.
//
// Pixels of the outermost regions use their own region's transform. Every
// other pixel at (x, y) in region (hm, wm) blends the transforms of regions
// (hm, wm), (hm, wm+1), (hm+1, wm) and (hm+1, wm+1) bilinearly with weights
// a = x/regionW - wm and b = y/regionH - hm.
func Adaptive(img *image.Gray, regionH, regionW int) (*image.Gray, error) {
	b := img.Bounds()
	if regionH <= 0 || regionW <= 0 || regionH > b.Dy() || regionW > b.Dx() {
		return nil, fmt.Errorf("%w: %dx%d for %dx%d image", ErrInvalidRegion, regionH, regionW, b.Dy(), b.Dx())
	}

	tilesH := b.Dy() / regionH
	tilesW := b.Dx() / regionW
	transforms := make([][Levels]uint8, tilesH*tilesW)
	for h := 0; h < tilesH; h++ {
		for w := 0; w < tilesW; w++ {
			r := image.Rect(w*regionW, h*regionH, (w+1)*regionW, (h+1)*regionH).Add(b.Min)
			transforms[h*tilesW+w] = transformRect(img, r)
		}
	}
	at := func(h, w int) *[Levels]uint8 { return &transforms[h*tilesW+w] }

	out := image.NewGray(image.Rect(0, 0, tilesW*regionW, tilesH*regionH))
	src := func(x, y int) uint8 { return img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)] }

	// Outer regions without interpolation.
	for h := 0; h < tilesH; h++ {
		for w := 0; w < tilesW; w++ {
			if h != 0 && w != 0 && h != tilesH-1 && w != tilesW-1 {
				continue
			}
			t := at(h, w)
			for y := h * regionH; y < (h+1)*regionH; y++ {
				row := y * out.Stride
				for x := w * regionW; x < (w+1)*regionW; x++ {
					out.Pix[row+x] = t[src(x, y)]
				}
			}
		}
	}

	// Inner regions blend the four neighbouring transforms.
	for y := regionH; y < (tilesH-1)*regionH; y++ {
		hm := y / regionH
		bw := float64(y)/float64(regionH) - float64(hm)
		row := y * out.Stride
		for x := regionW; x < (tilesW-1)*regionW; x++ {
			wm := x / regionW
			aw := float64(x)/float64(regionW) - float64(wm)
			v := src(x, y)

			f := (1-aw)*(1-bw)*float64(at(hm, wm)[v]) +
				(1-aw)*bw*float64(at(hm+1, wm)[v]) +
				aw*(1-bw)*float64(at(hm, wm+1)[v]) +
				aw*bw*float64(at(hm+1, wm+1)[v])
			out.Pix[row+x] = clamp8(f)
		}
	}

	return out, nil
}

// Histogram counts the pixels of img in bins equal-width bins spanning
// [min, max] of its values. The maximum value falls in the last bin; a
// constant image puts every pixel in bin 0.
func Histogram(img *image.Gray, bins int) ([]int, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histeq: bins must be positive, got %d", bins)
	}
	counts := make([]int, bins)
	b := img.Bounds()
	if b.Empty() {
		return counts, nil
	}

	lo, hi := uint8(255), uint8(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for _, v := range img.Pix[off : off+b.Dx()] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	width := float64(hi-lo) / float64(bins)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for _, v := range img.Pix[off : off+b.Dx()] {
			i := 0
			if width > 0 {
				i = int(float64(v-lo) / width)
			}
			if i >= bins {
				i = bins - 1
			}
			counts[i]++
		}
	}
	return counts, nil
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
