package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SaveOptions control how images are encoded
type SaveOptions struct {
	JPEGQuality int // 1-100, 0 = jpeg.DefaultQuality
}

// FormatForPath returns "png" or "jpeg" for a file name's extension
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	default:
		return "", fmt.Errorf("%w %q (use .png, .jpg or .jpeg)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// SaveImage encodes img to path as PNG or JPEG depending on the extension,
// creating parent directories as needed
func SaveImage(path string, img image.Image, opts SaveOptions) (err error) {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close image file: %w", closeErr)
		}
	}()

	// Encoding from an RGBA copy avoids the per-pixel interface calls of At
	if rt, ok := img.(*renderer.Image); ok {
		img = rt.ToRGBA()
	}

	switch format {
	case "png":
		err = png.Encode(file, img)
	case "jpeg":
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: min(quality, 100)})
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// LoadImage loads a PNG or JPEG image into a renderer image
func LoadImage(filename string) (*renderer.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	out, err := renderer.NewImage(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < out.Height(); y++ {
		row := out.Row(y)
		for x := range row {
			// RGBA returns alpha-premultiplied uint32 in [0, 65535]
			r, g, b, a := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			row[x] = core.NewColor(
				core.U8ToScalar(uint8(r>>8)),
				core.U8ToScalar(uint8(g>>8)),
				core.U8ToScalar(uint8(b>>8)),
				core.U8ToScalar(uint8(a>>8)),
			)
		}
	}

	return out, nil
}

// CountDifferentPixels compares two images at 8 bits per channel and returns
// how many pixels differ. Images of different sizes are an error.
func CountDifferentPixels(a, b image.Image) (int, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	diff := 0
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			r1, g1, b1, a1 := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			r2, g2, b2, a2 := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 || a1>>8 != a2>>8 {
				diff++
			}
		}
	}
	return diff, nil
}
