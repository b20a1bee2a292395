package core

import (
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms.
// A Sampler is an explicitly owned random stream and is not safe for concurrent use;
// every goroutine (or every pixel, in the parallel renderer) gets its own.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a deterministic sampler backed by a PCG generator
func NewSeededSampler(seed uint64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(seed, splitMix64(seed))))
}

// NewPixelSampler creates the independent stream for one pixel of a parallel render.
// The stream depends only on the global seed and the pixel's linear index.
func NewPixelSampler(seed uint64, pixelIndex int) *RandomSampler {
	hi := splitMix64(seed ^ splitMix64(uint64(pixelIndex)))
	lo := splitMix64(hi + uint64(pixelIndex))
	return NewRandomSampler(rand.New(rand.NewPCG(hi, lo)))
}

// splitMix64 scrambles x so that neighbouring inputs give unrelated outputs
func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomRange returns a random float64 in [min, max)
func RandomRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3Range returns a vector with each component drawn from [min, max)
func RandomVec3Range(sampler Sampler, min, max float64) Vec3 {
	s := sampler.Get3D()
	return NewVec3(min+(max-min)*s.X, min+(max-min)*s.Y, min+(max-min)*s.Z)
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection sampling
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3Range(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitDisk returns a point strictly inside the unit disk in the z=0 plane by rejection sampling
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
