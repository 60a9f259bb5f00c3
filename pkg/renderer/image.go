package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"github.com/df07/go-raytracer/pkg/core"
)

// ErrAllocation is returned when the image buffer cannot be allocated
var ErrAllocation = errors.New("image allocation failed")

// MaxImageBytes caps the total pixel storage NewImage will try to allocate
var MaxImageBytes int64 = 8 << 30

const colorSize = int(unsafe.Sizeof(core.Color{}))

// Image is a grid of floating point pixels stored one row per allocation.
// Every row starts on a cache line boundary and is padded to whole lines,
// so goroutines writing different rows never touch the same line.
// Each row is owned by a single writer during a render pass.
type Image struct {
	width, height int
	lineSize      int
	rows          [][]core.Color
}

// NewImage allocates a width x height image aligned to CacheLineSize()
func NewImage(width, height int) (*Image, error) {
	return NewImageAligned(width, height, CacheLineSize())
}

// NewImageAligned allocates an image whose rows are aligned to lineSize bytes
func NewImageAligned(width, height, lineSize int) (img *Image, err error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, width, height)
	}
	if !validCacheLineSize(lineSize) {
		return nil, fmt.Errorf("%w: invalid row alignment %d", ErrAllocation, lineSize)
	}

	rowBytes := paddedRowBytes(width, lineSize)
	if rowBytes <= 0 || int64(height) > MaxImageBytes/int64(rowBytes) {
		return nil, fmt.Errorf("%w: %dx%d image exceeds the %d byte limit", ErrAllocation, width, height, MaxImageBytes)
	}

	// make panics with a runtime error on impossible lengths
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()

	rows := make([][]core.Color, height)
	for y := range rows {
		rows[y] = allocAlignedRow(width, rowBytes, lineSize)
	}

	return &Image{
		width:    width,
		height:   height,
		lineSize: lineSize,
		rows:     rows,
	}, nil
}

func paddedRowBytes(width, lineSize int) int {
	if width > (int(^uint(0)>>1)-lineSize)/colorSize {
		return -1
	}
	rowBytes := width * colorSize
	return (rowBytes + lineSize - 1) / lineSize * lineSize
}

// allocAlignedRow over-allocates by one line and slices from the first
// aligned address. The returned slice keeps the whole backing array alive.
func allocAlignedRow(width, rowBytes, lineSize int) []core.Color {
	buf := make([]byte, rowBytes+lineSize)
	offset := 0
	if rem := int(uintptr(unsafe.Pointer(&buf[0])) % uintptr(lineSize)); rem != 0 {
		offset = lineSize - rem
	}
	return unsafe.Slice((*core.Color)(unsafe.Pointer(&buf[offset])), width)
}

// Width returns the image width in pixels
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels
func (img *Image) Height() int { return img.height }

// LineSize returns the row alignment in bytes
func (img *Image) LineSize() int { return img.lineSize }

// Row returns the pixels of row y (0 is the top). Writes go straight to the image.
func (img *Image) Row(y int) []core.Color {
	return img.rows[y]
}

// Pixel returns the color at (x, y)
func (img *Image) Pixel(x, y int) core.Color {
	return img.rows[y][x]
}

// SetPixel stores the color at (x, y)
func (img *Image) SetPixel(x, y int, c core.Color) {
	img.rows[y][x] = c
}

// ColorModel implements image.Image
func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// At implements image.Image using the 8-bit conversion of core.Color
func (img *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return color.RGBA{}
	}
	return img.rows[y][x].RGBA8()
}

// ToRGBA converts the image to 8 bits per channel
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for y, row := range img.rows {
		for x, c := range row {
			out.SetRGBA(x, y, c.RGBA8())
		}
	}
	return out
}
