package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	scatterFn func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool)
}

func (m MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return m.scatterFn(rayIn, hit, sampler)
}

// MockHittable implements geometry.Hittable for testing
type MockHittable struct {
	hitFn func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	calls int
}

func (m *MockHittable) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	m.calls++
	return m.hitFn(ray, rayT)
}

func TestSkyColor_Gradient(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"Straight up is blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"Straight down is white", core.NewVec3(0, -5, 0), core.NewVec3(1, 1, 1)},
		{"Horizon is halfway", core.NewVec3(3, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkyColor(tt.direction)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracing_MissReturnsSkyExactly(t *testing.T) {
	integrator := NewPathTracingIntegrator(10)
	world := geometry.NewHittableList()
	sampler := core.NewSeededSampler(1)

	for i := 0; i < 100; i++ {
		dir := core.RandomVec3Range(sampler, -1, 1)
		if dir.NearZero() {
			continue
		}
		ray := core.NewRay(core.NewVec3(0, 0, 0), dir)
		if got, want := integrator.RayColor(ray, world, sampler), SkyColor(dir); got != want {
			t.Fatalf("Expected sky %v for empty world, got %v", want, got)
		}
	}
}

func TestPathTracing_DepthTermination(t *testing.T) {
	// A material that always scatters back into the same mock surface
	bounce := MockMaterial{
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
			return material.ScatterResult{
				Scattered:   core.NewRay(hit.Point, rayIn.Direction),
				Attenuation: core.NewVec3(0.9, 0.9, 0.9),
			}, true
		},
	}
	world := &MockHittable{
		hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
			return &material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 1, 0), Material: bounce}, true
		},
	}

	for _, depth := range []int{0, 1, 5, 50} {
		world.calls = 0
		color := NewPathTracingIntegrator(depth).RayColor(
			core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
		if color != (core.Vec3{}) {
			t.Errorf("depth %d: expected black after exhausting bounces, got %v", depth, color)
		}
		if world.calls != depth {
			t.Errorf("depth %d: expected %d intersection tests, got %d", depth, depth, world.calls)
		}
	}
}

func TestPathTracing_AbsorptionIsBlack(t *testing.T) {
	absorb := MockMaterial{
		scatterFn: func(core.Ray, material.HitRecord, core.Sampler) (material.ScatterResult, bool) {
			return material.ScatterResult{}, false
		},
	}
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, absorb))

	color := NewPathTracingIntegrator(10).RayColor(
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
	if color != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed ray, got %v", color)
	}
}

func TestPathTracing_AttenuationAccumulates(t *testing.T) {
	// First bounce scatters straight up into open sky
	attenuation := core.NewVec3(0.5, 0.25, 1.0)
	up := MockMaterial{
		scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
			return material.ScatterResult{
				Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
				Attenuation: attenuation,
			}, true
		},
	}
	world := &MockHittable{
		hitFn: func(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
			if ray.Direction.Y > 0 {
				return nil, false
			}
			if rayT.Min != ShadowAcneEpsilon || !math.IsInf(rayT.Max, 1) {
				t.Errorf("Expected hit range (%f, +Inf), got %v", ShadowAcneEpsilon, rayT)
			}
			return &material.HitRecord{T: 1, Point: ray.At(1), Normal: core.NewVec3(0, 1, 0), Material: up}, true
		},
	}

	color := NewPathTracingIntegrator(2).RayColor(
		core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), world, core.NewSeededSampler(1))
	expected := attenuation.MultiplyVec(SkyColor(core.NewVec3(0, 1, 0)))
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, color)
	}

	// With a single bounce the sky is never reached
	color = NewPathTracingIntegrator(1).RayColor(
		core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), world, core.NewSeededSampler(1))
	if color != (core.Vec3{}) {
		t.Errorf("Expected black with depth 1, got %v", color)
	}
}
