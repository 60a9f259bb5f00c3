package renderer

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
)

func pinholeConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   2,
		FocusDistance: 1,
	}
}

// noDraws fails the test if the camera asks for randomness
func noDraws(t *testing.T) core.Sampler {
	return core.SamplerFunc(func() core.Scalar {
		t.Fatal("pinhole camera should not sample the lens")
		return 0
	})
}

func TestCamera_CenterRay(t *testing.T) {
	camera := NewCamera(pinholeConfig())

	ray := camera.GetRay(0.5, 0.5, noDraws(t))
	if !ray.Origin.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("Expected origin at camera center, got %v", ray.Origin)
	}
	if !ray.Direction.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected direction (0,0,-1), got %v", ray.Direction)
	}
}

func TestCamera_ImagePlaneCorners(t *testing.T) {
	camera := NewCamera(pinholeConfig())

	// vfov 90 gives halfHeight 1 and aspect 2 gives halfWidth 2 at focus distance 1
	tests := []struct {
		name   string
		s, t   core.Scalar
		target core.Vec3
	}{
		{"Lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"Lower right", 1, 0, core.NewVec3(2, -1, -1)},
		{"Upper left", 0, 1, core.NewVec3(-2, 1, -1)},
		{"Upper right", 1, 1, core.NewVec3(2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, noDraws(t))
			expected := tt.target.Normalize()
			if !ray.Direction.Equals(expected) {
				t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
			}
		})
	}
}

func TestCamera_BasisIsOrthonormal(t *testing.T) {
	configs := map[string]CameraConfig{
		"Axis aligned": pinholeConfig(),
		"Oblique": {
			Center:      core.NewVec3(13, 2, 3),
			LookAt:      core.NewVec3(0, 0, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        20,
			AspectRatio: 1.5,
		},
	}

	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			u, v, w := NewCamera(config).Basis()

			for label, axis := range map[string]core.Vec3{"u": u, "v": v, "w": w} {
				if math32.Abs(axis.Length()-1) > 1e-5 {
					t.Errorf("Expected %s to be unit length, got %f", label, axis.Length())
				}
			}
			if math32.Abs(u.Dot(v)) > 1e-5 || math32.Abs(u.Dot(w)) > 1e-5 || math32.Abs(v.Dot(w)) > 1e-5 {
				t.Errorf("Basis is not orthogonal: u=%v v=%v w=%v", u, v, w)
			}

			expectedW := config.Center.Subtract(config.LookAt).Normalize()
			if !w.Equals(expectedW) {
				t.Errorf("Expected w %v, got %v", expectedW, w)
			}
			if !u.Cross(v).Equals(w) {
				t.Errorf("Expected a right-handed basis, u x v = %v", u.Cross(v))
			}
		})
	}
}

func TestCamera_FocusPlaneIsSharp(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 2
	config.FocusDistance = 3
	camera := NewCamera(config)

	sampler := core.NewSeededSampler(11, 0)
	focusPoint := core.NewVec3(0, 0, -3)

	sawOffset := false
	for i := 0; i < 64; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if !ray.Origin.NearZero() {
			sawOffset = true
		}
		if ray.Origin.Length() > 1+1e-5 {
			t.Fatalf("Ray origin %v lies outside the lens radius", ray.Origin)
		}

		// Every centre ray must pass through the point on the focal plane
		tFocus := (focusPoint.Z - ray.Origin.Z) / ray.Direction.Z
		if p := ray.At(tFocus); !p.Equals(focusPoint) {
			t.Fatalf("Ray from %v misses the focus point, reaches %v", ray.Origin, p)
		}
	}
	if !sawOffset {
		t.Error("Expected lens sampling to move the ray origin")
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	config := pinholeConfig()
	config.LookAt = core.NewVec3(0, 0, -4)
	config.FocusDistance = 0
	camera := NewCamera(config)

	// Focus plane defaults to the look-at point, four units away
	expected := core.NewVec3(-8, -4, -4)
	if !camera.lowerLeftCorner.Equals(expected) {
		t.Errorf("Expected lower left corner %v, got %v", expected, camera.lowerLeftCorner)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*CameraConfig)
		expectErr bool
	}{
		{"Valid", func(*CameraConfig) {}, false},
		{"Look at self", func(c *CameraConfig) { c.LookAt = c.Center }, true},
		{"Up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }, true},
		{"Zero fov", func(c *CameraConfig) { c.VFov = 0 }, true},
		{"Straight angle fov", func(c *CameraConfig) { c.VFov = 180 }, true},
		{"NaN fov", func(c *CameraConfig) { c.VFov = math32.NaN() }, true},
		{"Negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }, true},
		{"Unset aspect", func(c *CameraConfig) { c.AspectRatio = 0 }, false},
		{"Negative aperture", func(c *CameraConfig) { c.Aperture = -0.1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := pinholeConfig()
			tt.modify(&config)
			err := config.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Expected error=%t, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := pinholeConfig()

	merged := MergeCameraConfig(base, CameraConfig{})
	if merged != base {
		t.Errorf("Empty override should keep base, got %+v", merged)
	}

	merged = MergeCameraConfig(base, CameraConfig{
		Center:   core.NewVec3(1, 2, 3),
		VFov:     30,
		Aperture: 0.5,
	})
	expected := base
	expected.Center = core.NewVec3(1, 2, 3)
	expected.VFov = 30
	expected.Aperture = 0.5
	if merged != expected {
		t.Errorf("Expected %+v, got %+v", expected, merged)
	}
}
