package material

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(0, 1, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false

	for seed := uint64(0); seed < 2000 && (!hasReflection || !hasRefraction); seed++ {
		result, scattered := glass.Scatter(ray, hit, core.NewSeededSampler(seed))
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
		if result.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at hit point, got %v", result.Scattered.Origin)
		}

		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	// At 45 degrees air->glass reflectance is ~5%, so both branches show up
	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected to see Schlick reflection in at least some cases")
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Shallow ray from inside the glass
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if !CannotRefract(1.5, sinTheta) {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	for i := uint64(0); i < 50; i++ {
		result, scattered := glass.Scatter(ray, hit, core.NewSeededSampler(i))
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}

		expected := core.Reflect(rayDirection, hit.Normal)
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Errorf("Expected forced reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestCannotRefract_Threshold(t *testing.T) {
	tests := []struct {
		name     string
		eta      float64
		sinTheta float64
		expected bool
	}{
		{"Entering glass never reflects totally", 1.0 / 1.5, 1.0, false},
		{"Exiting below critical angle", 1.5, 0.6, false},
		{"Exiting exactly at critical angle", 1.5, 1.0 / 1.5 * 0.999999, false},
		{"Exiting beyond critical angle", 1.5, 0.7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CannotRefract(tt.eta, tt.sinTheta); got != tt.expected {
				t.Errorf("CannotRefract(%f, %f) = %t, expected %t", tt.eta, tt.sinTheta, got, tt.expected)
			}
		})
	}
}

func TestDielectric_SchlickDecidesReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)) // normal incidence
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	// r0 for air->glass is 0.04: a draw below it reflects, above it refracts
	reflected, _ := glass.Scatter(ray, hit, &SequenceSampler{values: []float64{0.01}})
	if reflected.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected reflection for draw below r0, got %v", reflected.Scattered.Direction)
	}

	refracted, _ := glass.Scatter(ray, hit, &SequenceSampler{values: []float64{0.5}})
	if refracted.Scattered.Direction.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Expected straight refraction for draw above r0, got %v", refracted.Scattered.Direction)
	}
}
