package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when an output extension has no encoder.
var ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

// DefaultJPEGQuality is used when Save is given a non-positive quality.
const DefaultJPEGQuality = 90

// decoders maps a file format to its decoder. TGA has no magic number, so
// formats are chosen by extension rather than by sniffing.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"tga":  tga.Decode,
	"bmp":  bmp.Decode,
	"tiff": tiff.Decode,
	"webp": webp.Decode,
}

// Load decodes a PNG, JPEG, TGA, BMP, TIFF or WebP file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	decode, ok := decoders[Format(path)]
	if !ok {
		return nil, fmt.Errorf("imageio: load %s: %w", path, ErrUnsupportedFormat)
	}
	img, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}
	return img, nil
}

// LoadGray decodes path and converts it to 8-bit grayscale.
func LoadGray(path string) (*image.Gray, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ToGray(img), nil
}

// ToGray converts any image to an origin-anchored Gray image.
func ToGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Format returns the lowercase extension of path without the dot,
// normalizing "jpeg" to "jpg" and "tif" to "tiff".
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "jpeg":
		return "jpg"
	case "tif":
		return "tiff"
	}
	return ext
}

// Supported reports whether Encode can write format.
func Supported(format string) bool {
	switch format {
	case "webp", "png", "jpg", "jpeg", "bmp", "tiff", "tif":
		return true
	}
	return false
}

// Encode writes img to w in the given format ("webp", "png", "jpg", "bmp" or "tiff").
// quality applies to JPEG only; WebP output is lossless.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: min(quality, 100)})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff", "tif":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Save encodes img to path, choosing the encoder from the file extension.
// Parent directories are created as needed. A failed encode leaves no file behind.
func Save(path string, img image.Image, quality int) error {
	format := Format(path)
	if !Supported(format) {
		return fmt.Errorf("imageio: save %s: %w: %q", path, ErrUnsupportedFormat, format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	err = Encode(bw, img, format, quality)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}
