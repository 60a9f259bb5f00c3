package core

// SamplerFunc adapts a function returning values in [0,1) to a Sampler.
// Mostly useful in tests that need to pin the random stream.
type SamplerFunc func() Scalar

func (f SamplerFunc) Get1D() Scalar { return f() }

func (f SamplerFunc) Get2D() (Scalar, Scalar) { return f(), f() }

func (f SamplerFunc) Get3D() Vec3 { return NewVec3(f(), f(), f()) }
