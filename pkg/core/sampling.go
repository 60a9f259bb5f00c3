package core

import (
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() Scalar
	Get2D() (Scalar, Scalar)
	Get3D() Vec3
}

// RandomSampler wraps a Go random generator. It is not safe for concurrent
// use; each rendering goroutine owns its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler from a PCG stream. Distinct streams
// with the same seed are independent, so callers can hand one stream to
// each unit of work and stay reproducible regardless of scheduling.
func NewSeededSampler(seed, stream uint64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(seed, stream)))
}

// Get1D returns a random value in [0, 1)
func (r *RandomSampler) Get1D() Scalar {
	return r.random.Float32()
}

// Get2D returns two random values in [0, 1)
func (r *RandomSampler) Get2D() (Scalar, Scalar) {
	return r.random.Float32(), r.random.Float32()
}

// Get3D returns three random values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float32(), r.random.Float32(), r.random.Float32())
}

// RandomInUnitSphere generates a random point inside the unit sphere by
// rejection from the [-1,1]³ cube
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := sampler.Get3D().Multiply(2).Subtract(NewVec3(1, 1, 1))
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a random point in the unit disk on the z=0
// plane (for depth of field) by rejection from the [-1,1]² square
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		x, y := sampler.Get2D()
		p := NewVec3(2*x-1, 2*y-1, 0)
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}
