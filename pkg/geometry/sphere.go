package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Sphere represents a sphere shape. A negative radius is allowed and turns
// the normals inward, which models a hollow bubble inside a glass sphere.
type Sphere struct {
	Center   core.Point3
	Radius   core.Scalar
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius core.Scalar, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Validate rejects spheres the intersection code cannot handle
func (s *Sphere) Validate() error {
	if s.Radius == 0 || math32.IsNaN(s.Radius) || math32.IsInf(s.Radius, 0) {
		return fmt.Errorf("sphere at %v: invalid radius %v", s.Center, s.Radius)
	}
	if s.Material == nil {
		return errors.New("sphere has no material")
	}
	return nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax core.Scalar) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	// Tangent rays count as misses; NaN input also lands here
	discriminant := b*b - 4*a*c
	if !(discriminant > 0) {
		return nil, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if !(root > tMin && root < tMax) {
		// The ray may start inside the sphere; try the farther point
		root = (-b + sqrtD) / (2 * a)
		if !(root > tMin && root < tMax) {
			return nil, false
		}
	}

	point := ray.At(root)
	return &material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   point.Subtract(s.Center).Divide(s.Radius),
		Material: s.Material,
	}, true
}
