package renderer

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to build a camera
type CameraConfig struct {
	Center        core.Point3 // Eye position
	LookAt        core.Point3 // Point the camera aims at
	Up            core.Vec3   // Up direction
	VFov          core.Scalar // Vertical field of view in degrees
	AspectRatio   core.Scalar // Width / height (0 = derive from image size)
	Aperture      core.Scalar // Lens diameter (0 = pinhole)
	FocusDistance core.Scalar // Distance to the focal plane (0 = distance to LookAt)
}

// Validate rejects camera parameters that would produce a degenerate basis
func (c CameraConfig) Validate() error {
	view := c.Center.Subtract(c.LookAt)
	if view.NearZero() {
		return errors.New("camera center and look-at point coincide")
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("camera up vector %v is parallel to the view direction", c.Up)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("vertical field of view %v must be in (0, 180) degrees", c.VFov)
	}
	if c.AspectRatio < 0 {
		return fmt.Errorf("aspect ratio %v must not be negative", c.AspectRatio)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("aperture %v must not be negative", c.Aperture)
	}
	return nil
}

// MergeCameraConfig returns base with every non-zero field of override
// applied on top. A zero vector or scalar in override leaves base unchanged.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering. It is immutable after construction
// and safe to share between goroutines.
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      core.Scalar
}

// NewCamera derives the camera basis and image plane from config.
// AspectRatio must already be resolved to a positive value.
func NewCamera(config CameraConfig) *Camera {
	theta := mgl32.DegToRad(config.VFov)
	halfHeight := math32.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	// The rows of a look-at view matrix are the camera's u, v and w axes
	view := mgl32.LookAtV(toMgl(config.Center), toMgl(config.LookAt), toMgl(config.Up))
	u := fromMgl(view.Row(0).Vec3())
	v := fromMgl(view.Row(1).Vec3())
	w := fromMgl(view.Row(2).Vec3())

	origin := config.Center
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focusDistance),
		vertical:        v.Multiply(2 * halfHeight * focusDistance),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for image plane coordinates (s, t) where 0 <= s,t <= 1
// and t = 0 is the bottom edge. With a non-zero aperture the origin is
// jittered over the lens and the ray re-aimed so the focal plane stays sharp.
func (c *Camera) GetRay(s, t core.Scalar, sampler core.Sampler) core.Ray {
	var offset core.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// Basis returns the camera's orthonormal u (right), v (up) and w (backward) axes
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

func toMgl(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
