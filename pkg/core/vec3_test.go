package core

import (
	"image/color"
	"math"
	"testing"
)

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"Zero vector", NewVec3(0, 0, 0), true},
		{"Tiny components", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"One component at epsilon", NewVec3(1e-8, 0, 0), false},
		{"Unit vector", NewVec3(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestVec3_CrossAndNormalize(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	if z := x.Cross(y); z != NewVec3(0, 0, 1) {
		t.Errorf("Expected x cross y = (0,0,1), got %v", z)
	}

	n := NewVec3(3, 4, 0).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	if zero := NewVec3(0, 0, 0).Normalize(); zero != NewVec3(0, 0, 0) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_Lerp(t *testing.T) {
	white := NewVec3(1, 1, 1)
	blue := NewVec3(0.5, 0.7, 1.0)

	if got := white.Lerp(blue, 0); got != white {
		t.Errorf("Expected t=0 to return start, got %v", got)
	}
	if got := white.Lerp(blue, 1); got != blue {
		t.Errorf("Expected t=1 to return end, got %v", got)
	}
	mid := white.Lerp(blue, 0.5)
	expected := NewVec3(0.75, 0.85, 1.0)
	if mid.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, mid)
	}
}

func TestColorFromRGBA(t *testing.T) {
	c := ColorFromRGBA(color.RGBA{R: 255, G: 0, B: 51, A: 7})
	expected := NewVec3(1, 0, 0.2)
	if c.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, c)
	}
}

func TestReflect_PreservesNormalComponentMagnitude(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 1, 0).Normalize(),
		NewVec3(-0.3, 0.2, 0.9).Normalize(),
	}
	sampler := NewSeededSampler(7)

	for _, n := range normals {
		for i := 0; i < 100; i++ {
			v := RandomVec3Range(sampler, -1, 1)
			r := Reflect(v, n)
			if math.Abs(r.Dot(n)+v.Dot(n)) > 1e-12 {
				t.Fatalf("dot(reflect(v,n),n) = %f, expected %f", r.Dot(n), -v.Dot(n))
			}
			if math.Abs(r.Length()-v.Length()) > 1e-12 {
				t.Fatalf("Reflection changed length: %f vs %f", r.Length(), v.Length())
			}
		}
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	n := NewVec3(0, 1, 0)
	// 45 degrees incidence, air into glass
	uv := NewVec3(1, -1, 0).Normalize()
	eta := 1.0 / 1.5

	out := Refract(uv, n, eta)
	if math.Abs(out.Length()-1) > 1e-12 {
		t.Errorf("Expected unit refracted direction, got length %f", out.Length())
	}

	sinIn := math.Sqrt(1 - math.Pow(uv.Negate().Dot(n), 2))
	sinOut := math.Sqrt(1 - math.Pow(out.Negate().Dot(n), 2))
	if math.Abs(sinIn*eta-sinOut) > 1e-12 {
		t.Errorf("Snell's law violated: eta*sinIn=%f, sinOut=%f", sinIn*eta, sinOut)
	}

	// Straight-on rays pass through unbent
	straight := Refract(NewVec3(0, -1, 0), n, eta)
	if straight.Subtract(NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Expected no bending at normal incidence, got %v", straight)
	}
}

func TestSchlickReflectance(t *testing.T) {
	for _, eta := range []float64{1.0 / 1.5, 1.5, 1.33, 2.4} {
		r0 := math.Pow((1-eta)/(1+eta), 2)
		if got := SchlickReflectance(1, eta); math.Abs(got-r0) > 1e-15 {
			t.Errorf("SchlickReflectance(1, %f) = %f, expected r0 = %f", eta, got, r0)
		}
		if got := SchlickReflectance(0, eta); math.Abs(got-1) > 1e-15 {
			t.Errorf("SchlickReflectance(0, %f) = %f, expected 1 at grazing incidence", eta, got)
		}
	}
}
