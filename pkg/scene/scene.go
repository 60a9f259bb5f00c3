package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Default sky colors: white at the horizon fading to blue overhead
var (
	DefaultTopColor    = core.NewRGB(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewRGB(1.0, 1.0, 1.0)
)

// Scene contains all the elements needed for rendering. It must not be
// modified once rendering starts.
type Scene struct {
	Name           string
	CameraConfig   renderer.CameraConfig
	World          *geometry.ShapeList
	TopColor       core.Color
	BottomColor    core.Color
	SamplingConfig renderer.SamplingConfig // Suggested sampling for this scene
}

// newScene creates an empty scene with the default sky and sampling
func newScene(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:           name,
		CameraConfig:   cameraConfig,
		World:          geometry.NewShapeList(),
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}

// applyOverrides merges the first camera override, if any, into config
func applyOverrides(config renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(config, overrides[0])
	}
	return config
}

// GetCameraConfig implements renderer.Scene
func (s *Scene) GetCameraConfig() renderer.CameraConfig {
	return s.CameraConfig
}

// GetBackgroundColors implements renderer.Scene
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Color) {
	return s.TopColor, s.BottomColor
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	if s.World == nil {
		return nil
	}
	return s.World
}

// AddSphere adds a sphere to the scene and returns it
func (s *Scene) AddSphere(center core.Point3, radius core.Scalar, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.World.Add(sphere)
	return sphere
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// Validate checks every sphere and the camera
func (s *Scene) Validate() error {
	if s.World == nil {
		return errors.New("scene has no world")
	}
	for i, shape := range s.World.Shapes() {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			continue
		}
		if err := sphere.Validate(); err != nil {
			return fmt.Errorf("sphere %d: %w", i, err)
		}
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return nil
}

var _ renderer.Scene = (*Scene)(nil)
