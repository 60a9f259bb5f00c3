package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0, // Narrower field of view for focus effect
		Aperture:      0.05,
		FocusDistance: 0.0, // Focus on the look-at point
	}

	s := newScene("default", applyOverrides(defaultCameraConfig, cameraOverrides))
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewRGB(0.48, 0.48, 0.0))
	lambertianBlue := material.NewLambertian(core.NewRGB(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewRGB(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewRGB(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewRGB(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	// Ground is a huge sphere whose top touches y = 0
	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)

	// Hollow glass sphere with a blue sphere inside
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	return s
}

// NewSingleSphereScene creates one diffuse sphere in front of a pinhole camera
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}

	s := newScene("single", applyOverrides(defaultCameraConfig, cameraOverrides))
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: 16,
		MaxDepth:        10,
	}
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewRGB(0.5, 0.5, 0.5)))
	return s
}
