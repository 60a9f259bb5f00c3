package core

// Ray represents a ray with an origin and a unit-length direction
type Ray struct {
	Origin    Point3
	Direction Vec3
}

// NewRay creates a new ray. The direction is normalized so every consumer
// may treat it as unit length; a zero direction is the caller's bug.
func NewRay(origin Point3, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t Scalar) Point3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
