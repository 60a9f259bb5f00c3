package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Color  // Tint applied on every bounce, usually white
	RefractiveIndex core.Scalar // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex core.Scalar) *Dielectric {
	return &Dielectric{Albedo: core.White, RefractiveIndex: refractiveIndex}
}

// NewTintedDielectric creates a dielectric that tints the light passing through it
func NewTintedDielectric(albedo core.Color, refractiveIndex core.Scalar) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Refraction is attempted first; total internal reflection or a failed
// Schlick draw falls back to reflection.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	ior := d.RefractiveIndex
	direction := rayIn.Direction
	dot := direction.Dot(hit.Normal)

	// Determine if we're entering or exiting the material and flip the
	// normal so it always opposes the incoming ray
	var outwardNormal core.Vec3
	var refractionRatio, cosine core.Scalar
	if dot > 0 {
		outwardNormal = hit.Normal.Negate()
		refractionRatio = ior
		cosine = math32.Sqrt(1 - ior*ior*(1-dot*dot))
	} else {
		outwardNormal = hit.Normal
		refractionRatio = 1 / ior
		cosine = -dot
	}

	scattered := reflect(direction, hit.Normal)
	if refracted, ok := refract(direction, outwardNormal, refractionRatio); ok {
		if sampler.Get1D() >= Reflectance(cosine, ior) {
			scattered = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scattered),
		Attenuation: d.Albedo,
	}, true
}

// refract bends the unit vector v through a surface with normal n using
// Snell's law. It reports false on total internal reflection.
func refract(v, n core.Vec3, niOverNt core.Scalar) (core.Vec3, bool) {
	dt := v.Dot(n)
	discriminant := 1 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return v.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math32.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// Matched media (ior == 1) have no interface and never reflect.
func Reflectance(cosine, ior core.Scalar) core.Scalar {
	r0 := (1 - ior) / (1 + ior)
	r0 = r0 * r0
	if r0 == 0 {
		return 0
	}
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
