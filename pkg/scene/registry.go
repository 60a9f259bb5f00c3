package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Lookup for names with no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// BuildOptions parameterize a built-in scene
type BuildOptions struct {
	Seed           uint64                // Seed for procedurally generated scenes
	CameraOverride renderer.CameraConfig // Non-zero fields replace the scene's camera settings
}

// Builder creates a fresh scene
type Builder func(opts BuildOptions) *Scene

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	Build       Builder
}

var builtins = []SceneInfo{
	{
		Name:        "default",
		Description: "Diffuse, metal and glass spheres including a hollow glass bubble",
		Build: func(opts BuildOptions) *Scene {
			return NewDefaultScene(opts.CameraOverride)
		},
	},
	{
		Name:        "random",
		Description: "Grid of small random spheres around three large ones, laid out by --seed",
		Build: func(opts BuildOptions) *Scene {
			return NewRandomScene(opts.Seed, opts.CameraOverride)
		},
	},
	{
		Name:        "ring",
		Description: "Ring of colored spheres around a glass and a metal sphere",
		Build: func(opts BuildOptions) *Scene {
			return NewRingScene(opts.CameraOverride)
		},
	},
	{
		Name:        "single",
		Description: "One diffuse sphere in front of a pinhole camera",
		Build: func(opts BuildOptions) *Scene {
			return NewSingleSphereScene(opts.CameraOverride)
		},
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, info := range builtins {
		names = append(names, info.Name)
	}
	slices.Sort(names)
	return names
}

// ListScenes returns information about every built-in scene
func ListScenes() []SceneInfo {
	return slices.Clone(builtins)
}

// Lookup returns the builder for a built-in scene name
func Lookup(name string) (Builder, error) {
	for _, info := range builtins {
		if strings.EqualFold(info.Name, name) {
			return info.Build, nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}
