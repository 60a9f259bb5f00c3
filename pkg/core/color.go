package core

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a floating point RGBA color. Channels are conceptually in [0,1]
// but the type does not clamp them.
type Color struct {
	R, G, B, A Scalar
}

var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b, a Scalar) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewRGB creates an opaque color
func NewRGB(r, g, b Scalar) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ColorFromVec3 maps x, y, z onto r, g, b with full alpha
func ColorFromVec3(v Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z, A: 1}
}

func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A} }
func (c Color) Sub(o Color) Color { return Color{c.R - o.R, c.G - o.G, c.B - o.B, c.A - o.A} }
func (c Color) Mul(o Color) Color { return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A} }
func (c Color) Div(o Color) Color { return Color{c.R / o.R, c.G / o.G, c.B / o.B, c.A / o.A} }

func (c Color) AddScalar(s Scalar) Color { return Color{c.R + s, c.G + s, c.B + s, c.A + s} }
func (c Color) SubScalar(s Scalar) Color { return Color{c.R - s, c.G - s, c.B - s, c.A - s} }
func (c Color) MulScalar(s Scalar) Color { return Color{c.R * s, c.G * s, c.B * s, c.A * s} }
func (c Color) DivScalar(s Scalar) Color { return Color{c.R / s, c.G / s, c.B / s, c.A / s} }

// Lerp linearly interpolates from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t Scalar) Color {
	return c.MulScalar(1 - t).Add(other.MulScalar(t))
}

// Luminance returns the perceptual luminance of the RGB channels
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() Scalar {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Equals checks if two colors are equal within a small tolerance
func (c Color) Equals(o Color) bool {
	const tolerance = 1e-5
	d := c.Sub(o)
	return math32.Abs(d.R) < tolerance && math32.Abs(d.G) < tolerance &&
		math32.Abs(d.B) < tolerance && math32.Abs(d.A) < tolerance
}

// RGBA8 converts to 8 bits per channel. Each channel is clamped to [0,1]
// and scaled by 255.99 with truncation.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{
		R: ScalarToU8(c.R),
		G: ScalarToU8(c.G),
		B: ScalarToU8(c.B),
		A: ScalarToU8(c.A),
	}
}

// ColorFromRGBA8 converts an 8-bit color back to floating point
func ColorFromRGBA8(p color.RGBA) Color {
	return Color{
		R: U8ToScalar(p.R),
		G: U8ToScalar(p.G),
		B: U8ToScalar(p.B),
		A: U8ToScalar(p.A),
	}
}

// ScalarToU8 clamps f to [0,1] and scales it into a byte
func ScalarToU8(f Scalar) uint8 {
	return uint8(Clamp(f, 0, 1) * 255.99)
}

// U8ToScalar maps a byte onto [0,1]
func U8ToScalar(b uint8) Scalar {
	return Scalar(b) / 255
}

// Clamp restricts f to [lo, hi]. NaN clamps to lo.
func Clamp(f, lo, hi Scalar) Scalar {
	if !(f >= lo) {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
