package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations are immutable once built and are shared by every shape
// that references them and by every rendering goroutine.
type Material interface {
	// Scatter returns the attenuated, redirected ray, or false when the
	// material absorbs the incoming ray.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// Normal has unit length but is not guaranteed to face the incoming ray.
type HitRecord struct {
	T        core.Scalar // Parameter t along the ray
	Point    core.Point3 // Point of intersection
	Normal   core.Vec3   // Surface normal at intersection
	Material Material    // Material of the hit object
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
