package scene

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h core.Scalar) core.Color {
	hRad := h * math32.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewRGB(core.Clamp(r, 0, 1), core.Clamp(g, 0, 1), core.Clamp(blue, 0, 1))
}

// NewRandomScene creates a ground plane covered in a grid of small spheres
// with randomly chosen materials, plus three large feature spheres. The
// layout depends only on seed.
func NewRandomScene(seed uint64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		Aperture:      0.1,
		FocusDistance: 10,
	}

	s := newScene("random", applyOverrides(defaultCameraConfig, cameraOverrides))
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        20,
	}

	random := rand.New(rand.NewPCG(seed, 0x5eed))
	next := func() core.Scalar { return core.Scalar(random.Float64()) }

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewRGB(0.5, 0.5, 0.5)))

	glass := material.NewDielectric(1.5)
	keepClear := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(core.Scalar(a)+0.9*next(), 0.2, core.Scalar(b)+0.9*next())
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch choose := next(); {
			case choose < 0.8:
				// Diffuse with a hue picked around the color wheel
				mat = material.NewLambertian(oklchToRGB(0.55+0.2*next(), 0.05+0.15*next(), 360*next()))
			case choose < 0.95:
				albedo := core.NewRGB(0.5*(1+next()), 0.5*(1+next()), 0.5*(1+next()))
				mat = material.NewMetal(albedo, 0.5*next())
			default:
				mat = glass
			}
			s.AddSphere(center, 0.2, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewRGB(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewRGB(0.7, 0.6, 0.5), 0.0))

	return s
}

// NewRingScene creates a ring of small diffuse spheres around a glass and a
// metal sphere resting on a pale ground
func NewRingScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:   core.NewVec3(0, 3.5, 7),
		LookAt:   core.NewVec3(0, 0.6, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40,
		Aperture: 0.05,
	}

	s := newScene("ring", applyOverrides(defaultCameraConfig, cameraOverrides))
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: 64,
		MaxDepth:        20,
	}

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewRGB(0.88, 0.96, 0.7)))
	s.AddSphere(core.NewVec3(1.5, 1, 0), 1, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-1.5, 1, 0), 1, material.NewMetal(core.NewRGB(0.8, 0.9, 0.8), 0))

	const ringRadius = 3
	for deg := 0; deg < 360; deg += 15 {
		theta := core.Scalar(deg) * math32.Pi / 180
		x, z := math32.Sin(theta), math32.Cos(theta)
		r := 0.33 + x*z/9
		albedo := core.NewRGB(core.Clamp(x, 0, 1), 0.5+x*z/2, core.Clamp(z, 0, 1))
		s.AddSphere(core.NewVec3(ringRadius*x, r, ringRadius*z), r, material.NewLambertian(albedo))
	}

	return s
}
