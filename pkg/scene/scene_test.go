package scene

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

func TestBuiltinScenes_AreValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			build, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			s := build(BuildOptions{Seed: 1})
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene is invalid: %v", err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene has no shapes")
			}
			if s.SamplingConfig.SamplesPerPixel <= 0 {
				t.Errorf("Expected positive sample hint, got %d", s.SamplingConfig.SamplesPerPixel)
			}

			// Every built-in renders a tiny image without error
			rt, err := renderer.NewRaytracer(s, renderer.Options{
				Width:    6,
				Height:   4,
				Workers:  2,
				Sampling: renderer.SamplingConfig{SamplesPerPixel: 1, MaxDepth: 3},
				Logger:   zerolog.Nop(),
			})
			if err != nil {
				t.Fatalf("NewRaytracer failed: %v", err)
			}
			if _, _, err := rt.Render(); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
		})
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	expected := []string{"default", "random", "ring", "single"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, names)
			break
		}
	}
	if len(ListScenes()) != len(names) {
		t.Error("ListScenes and Names disagree")
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("cornell")
	if !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("Expected ErrUnknownScene, got %v", err)
	}

	if _, err := Lookup("DEFAULT"); err != nil {
		t.Errorf("Lookup should ignore case, got %v", err)
	}
}

func TestRandomScene_SeedControlsLayout(t *testing.T) {
	centers := func(seed uint64) []core.Vec3 {
		var out []core.Vec3
		for _, shape := range NewRandomScene(seed).World.Shapes() {
			out = append(out, shape.(*geometry.Sphere).Center)
		}
		return out
	}

	a, b, c := centers(42), centers(42), centers(43)
	if len(a) != len(b) {
		t.Fatalf("Same seed produced %d and %d spheres", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed produced different sphere %d: %v vs %v", i, a[i], b[i])
		}
	}

	differs := len(a) != len(c)
	for i := 0; !differs && i < len(a); i++ {
		differs = a[i] != c[i]
	}
	if !differs {
		t.Error("Different seeds produced identical layouts")
	}

	// Small spheres keep clear of the large metal sphere
	keepClear := core.NewVec3(4, 0.2, 0)
	for _, center := range a {
		if center.Y == 0.2 && center.Subtract(keepClear).Length() <= 0.9 {
			t.Errorf("Sphere at %v overlaps the feature sphere", center)
		}
	}
}

func TestRandomScene_SharesGlass(t *testing.T) {
	s := NewRandomScene(5)
	var glass material.Material
	for _, shape := range s.World.Shapes() {
		sphere := shape.(*geometry.Sphere)
		if _, ok := sphere.Material.(*material.Dielectric); !ok {
			continue
		}
		if glass == nil {
			glass = sphere.Material
		} else if sphere.Material != glass {
			t.Fatal("Expected every glass sphere to share one material")
		}
	}
	if glass == nil {
		t.Fatal("Expected at least the large glass sphere")
	}
}

func TestCameraOverrides(t *testing.T) {
	override := renderer.CameraConfig{VFov: 15, Aperture: 0.5}
	for _, name := range Names() {
		build, _ := Lookup(name)
		s := build(BuildOptions{CameraOverride: override})
		if s.CameraConfig.VFov != 15 || s.CameraConfig.Aperture != 0.5 {
			t.Errorf("%s: override not applied, got %+v", name, s.CameraConfig)
		}
		if s.CameraConfig.Up == (core.Vec3{}) {
			t.Errorf("%s: override cleared fields it did not set", name)
		}
	}
}

func TestOklchToRGB_InRange(t *testing.T) {
	for hue := core.Scalar(0); hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		for _, channel := range []core.Scalar{c.R, c.G, c.B} {
			if channel < 0 || channel > 1 {
				t.Errorf("Hue %v produced out of range color %v", hue, c)
			}
		}
	}

	// Zero chroma is grey
	grey := oklchToRGB(0.5, 0, 0)
	if !grey.Equals(core.NewRGB(grey.R, grey.R, grey.R)) {
		t.Errorf("Expected grey, got %v", grey)
	}
}
