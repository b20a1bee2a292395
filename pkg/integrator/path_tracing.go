package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance; it keeps scattered rays from re-hitting their own surface
const ShadowAcneEpsilon = 0.001

var (
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator follows a single scattering chain per camera ray.
// The chain is an explicit loop bounded by MaxDepth, never native recursion.
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single ray.
// Each iteration either escapes to the sky, is absorbed (black) or scatters and continues;
// running out of bounces counts as light starvation and returns black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	currentRay := ray
	throughput := core.NewVec3(1, 1, 1)
	hitRange := core.NewInterval(ShadowAcneEpsilon, math.Inf(1))

	for depth := pt.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(currentRay, hitRange)
		if !isHit {
			return throughput.MultiplyVec(SkyColor(currentRay.Direction))
		}

		scatter, didScatter := hit.Material.Scatter(currentRay, *hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		currentRay = scatter.Scattered
	}

	return core.Vec3{}
}

// SkyColor is the vertical white-to-blue gradient that lights every scene
func SkyColor(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyBottom.Lerp(skyTop, a)
}
