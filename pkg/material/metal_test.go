package material

import (
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestNewMetal_RoughnessClamp(t *testing.T) {
	tests := []struct {
		name              string
		inputRoughness    core.Scalar
		expectedRoughness core.Scalar
	}{
		{"Valid roughness 0.0", 0.0, 0.0},
		{"Valid roughness 0.5", 0.5, 0.5},
		{"Valid roughness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewRGB(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputRoughness)
			if metal.Roughness != tt.expectedRoughness {
				t.Errorf("Expected roughness %f, got %f", tt.expectedRoughness, metal.Roughness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewRGB(0.9, 0.8, 0.7)
	metal := NewMetal(albedo, 0.0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	// A perfect mirror never consumes random numbers
	scatter, didScatter := metal.Scatter(rayIn, hit, sequenceSampler(t))
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if !scatter.Scattered.Direction.Equals(expected) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo exactly: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_PerturbedBelowSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewRGB(0.8, 0.8, 0.8), 1.0)

	// Grazing ray reflects to (0.995, 0.0995, 0); a perturbation of
	// (0, -0.9, 0) pushes it below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.1, 0), core.NewVec3(1, -0.1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	_, didScatter := metal.Scatter(rayIn, hit, sequenceSampler(t, 0.5, 0.05, 0.5))
	if didScatter {
		t.Error("Reflection perturbed below the surface should be absorbed")
	}
}

func TestMetal_ScatterMatchesPerturbedReflection(t *testing.T) {
	albedo := core.NewRGB(0.7, 0.6, 0.5)
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	rayIn := core.NewRay(core.NewVec3(-1, 0.3, 0), core.NewVec3(1, -0.3, 0.2))

	for _, roughness := range []core.Scalar{0.2, 0.6, 1.0} {
		metal := NewMetal(albedo, roughness)
		absorbed, scattered := 0, 0

		for seed := uint64(0); seed < 500; seed++ {
			// A twin sampler replays the same stream to predict the outcome
			expectedDir := reflect(rayIn.Direction, normal).
				Add(core.RandomInUnitSphere(core.NewSeededSampler(seed, 9)).Multiply(roughness))
			expectScatter := expectedDir.Dot(normal) > 0

			scatter, didScatter := metal.Scatter(rayIn, hit, core.NewSeededSampler(seed, 9))
			if didScatter != expectScatter {
				t.Fatalf("roughness %f seed %d: expected scatter=%t, got %t", roughness, seed, expectScatter, didScatter)
			}
			if !didScatter {
				absorbed++
				continue
			}
			scattered++
			if scatter.Attenuation != albedo {
				t.Fatalf("Attenuation should equal albedo exactly, got %v", scatter.Attenuation)
			}
			if !scatter.Scattered.Direction.Equals(expectedDir.Normalize()) {
				t.Fatalf("Expected direction %v, got %v", expectedDir.Normalize(), scatter.Scattered.Direction)
			}
			if scatter.Scattered.Direction.Dot(normal) <= 0 {
				t.Fatalf("Scattered ray points below the surface: %v", scatter.Scattered.Direction)
			}
		}
		t.Logf("roughness %.1f: %d scattered, %d absorbed", roughness, scattered, absorbed)
	}
}
