package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Material type names used in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// Vec3Spec is a vector or RGB color written as a three element sequence
type Vec3Spec [3]core.Scalar

func (v Vec3Spec) vec() core.Vec3     { return core.NewVec3(v[0], v[1], v[2]) }
func (v Vec3Spec) color() core.Color  { return core.NewRGB(v[0], v[1], v[2]) }
func vecSpec(v core.Vec3) Vec3Spec    { return Vec3Spec{v.X, v.Y, v.Z} }
func colorSpec(c core.Color) Vec3Spec { return Vec3Spec{c.R, c.G, c.B} }

// CameraSpec is the camera section of a scene file
type CameraSpec struct {
	Center        Vec3Spec    `yaml:"center"`
	LookAt        Vec3Spec    `yaml:"lookAt"`
	Up            Vec3Spec    `yaml:"up"`
	VFov          core.Scalar `yaml:"vfov"`
	Aperture      core.Scalar `yaml:"aperture,omitempty"`
	FocusDistance core.Scalar `yaml:"focusDistance,omitempty"`
}

// SkySpec holds the background gradient colors
type SkySpec struct {
	Top    Vec3Spec `yaml:"top"`
	Bottom Vec3Spec `yaml:"bottom"`
}

// SamplingSpec holds the suggested sampling settings of a scene
type SamplingSpec struct {
	SamplesPerPixel int `yaml:"samplesPerPixel"`
	MaxDepth        int `yaml:"maxDepth"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type      string      `yaml:"type"`
	Albedo    *Vec3Spec   `yaml:"albedo,omitempty"`
	Roughness core.Scalar `yaml:"roughness,omitempty"`
	IOR       core.Scalar `yaml:"ior,omitempty"`
}

// SphereSpec places a sphere that uses a named material
type SphereSpec struct {
	Center   Vec3Spec    `yaml:"center"`
	Radius   core.Scalar `yaml:"radius"`
	Material string      `yaml:"material"`
}

// Description is the YAML form of a scene. Spheres refer to materials by
// name so that one material instance can be shared by many spheres.
type Description struct {
	Name      string                  `yaml:"name,omitempty"`
	Camera    CameraSpec              `yaml:"camera"`
	Sky       SkySpec                 `yaml:"sky"`
	Sampling  SamplingSpec            `yaml:"sampling"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Spheres   []SphereSpec            `yaml:"spheres"`
}

// defaultDescription supplies the values used for anything a file omits
func defaultDescription() Description {
	sampling := renderer.DefaultSamplingConfig()
	return Description{
		Camera: CameraSpec{
			Center: Vec3Spec{0, 0, 0},
			LookAt: Vec3Spec{0, 0, -1},
			Up:     Vec3Spec{0, 1, 0},
			VFov:   40,
		},
		Sky: SkySpec{
			Top:    colorSpec(DefaultTopColor),
			Bottom: colorSpec(DefaultBottomColor),
		},
		Sampling: SamplingSpec{
			SamplesPerPixel: sampling.SamplesPerPixel,
			MaxDepth:        sampling.MaxDepth,
		},
	}
}

// LoadFile reads a YAML scene file
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := Load(file, name)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// Load decodes a YAML scene description and builds the scene. fallbackName
// is used when the description has no name. Unknown keys are rejected.
func Load(r io.Reader, fallbackName string) (*Scene, error) {
	desc := defaultDescription()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&desc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if desc.Name == "" {
		desc.Name = fallbackName
	}
	return desc.Build()
}

// Build turns the description into a validated scene
func (d Description) Build() (*Scene, error) {
	s := newScene(d.Name, renderer.CameraConfig{
		Center:        d.Camera.Center.vec(),
		LookAt:        d.Camera.LookAt.vec(),
		Up:            d.Camera.Up.vec(),
		VFov:          d.Camera.VFov,
		Aperture:      d.Camera.Aperture,
		FocusDistance: d.Camera.FocusDistance,
	})
	s.TopColor = d.Sky.Top.color()
	s.BottomColor = d.Sky.Bottom.color()
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: d.Sampling.SamplesPerPixel,
		MaxDepth:        d.Sampling.MaxDepth,
	}
	if s.SamplingConfig.SamplesPerPixel <= 0 || s.SamplingConfig.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid sampling: %d samples, depth %d", s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)
	}

	materials := make(map[string]material.Material, len(d.Materials))
	for name, spec := range d.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, spec := range d.Spheres {
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, spec.Material)
		}
		s.AddSphere(spec.Center.vec(), spec.Radius, mat)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (m MaterialSpec) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case MaterialLambertian:
		if m.Albedo == nil {
			return nil, errors.New("lambertian material needs an albedo")
		}
		return material.NewLambertian(m.Albedo.color()), nil
	case MaterialMetal:
		if m.Albedo == nil {
			return nil, errors.New("metal material needs an albedo")
		}
		return material.NewMetal(m.Albedo.color(), m.Roughness), nil
	case MaterialDielectric:
		if !(m.IOR > 0) {
			return nil, fmt.Errorf("dielectric needs a positive ior, got %v", m.IOR)
		}
		if m.Albedo != nil {
			return material.NewTintedDielectric(m.Albedo.color(), m.IOR), nil
		}
		return material.NewDielectric(m.IOR), nil
	case "":
		return nil, errors.New("missing material type")
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

// Describe converts a scene of spheres back into its file form. Materials
// shared between spheres keep a single named entry.
func Describe(s *Scene) (Description, error) {
	desc := Description{
		Name: s.Name,
		Camera: CameraSpec{
			Center:        vecSpec(s.CameraConfig.Center),
			LookAt:        vecSpec(s.CameraConfig.LookAt),
			Up:            vecSpec(s.CameraConfig.Up),
			VFov:          s.CameraConfig.VFov,
			Aperture:      s.CameraConfig.Aperture,
			FocusDistance: s.CameraConfig.FocusDistance,
		},
		Sky: SkySpec{Top: colorSpec(s.TopColor), Bottom: colorSpec(s.BottomColor)},
		Sampling: SamplingSpec{
			SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
			MaxDepth:        s.SamplingConfig.MaxDepth,
		},
		Materials: map[string]MaterialSpec{},
	}
	if s.World == nil {
		return desc, nil
	}

	names := map[material.Material]string{}
	counts := map[string]int{}
	for i, shape := range s.World.Shapes() {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return Description{}, fmt.Errorf("shape %d: only spheres can be described, got %T", i, shape)
		}

		name, seen := names[sphere.Material]
		if !seen {
			spec, err := describeMaterial(sphere.Material)
			if err != nil {
				return Description{}, fmt.Errorf("sphere %d: %w", i, err)
			}
			counts[spec.Type]++
			name = fmt.Sprintf("%s-%d", spec.Type, counts[spec.Type])
			names[sphere.Material] = name
			desc.Materials[name] = spec
		}

		desc.Spheres = append(desc.Spheres, SphereSpec{
			Center:   vecSpec(sphere.Center),
			Radius:   sphere.Radius,
			Material: name,
		})
	}
	return desc, nil
}

func describeMaterial(m material.Material) (MaterialSpec, error) {
	switch mat := m.(type) {
	case *material.Lambertian:
		albedo := colorSpec(mat.Albedo)
		return MaterialSpec{Type: MaterialLambertian, Albedo: &albedo}, nil
	case *material.Metal:
		albedo := colorSpec(mat.Albedo)
		return MaterialSpec{Type: MaterialMetal, Albedo: &albedo, Roughness: mat.Roughness}, nil
	case *material.Dielectric:
		spec := MaterialSpec{Type: MaterialDielectric, IOR: mat.RefractiveIndex}
		if !mat.Albedo.Equals(core.White) {
			albedo := colorSpec(mat.Albedo)
			spec.Albedo = &albedo
		}
		return spec, nil
	default:
		return MaterialSpec{}, fmt.Errorf("material %T has no file form", m)
	}
}

// Encode writes the scene as YAML
func Encode(w io.Writer, s *Scene) error {
	desc, err := Describe(s)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(desc); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return encoder.Close()
}
