package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_AlwaysScattersWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection, hasRefraction := false, false
	for seed := int64(0); seed < 2000; seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		result, scattered := glass.Scatter(ray, hit, sampler)

		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if !result.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}

		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	// Reflection probability at 45° air to glass is ~5%, so both branches show up in 2000 draws
	if !hasRefraction || !hasReflection {
		t.Errorf("Expected both branches: reflection=%t refraction=%t", hasReflection, hasRefraction)
	}
}

func TestDielectric_RefractionBendsTowardNormal(t *testing.T) {
	glass := NewDielectric(1.5)
	incoming := core.NewVec3(math.Sin(math.Pi/6), -math.Cos(math.Pi/6), 0)
	ray := core.NewRay(core.NewVec3(0, 1, 0), incoming)
	hit := core.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	// A draw of 0.99 exceeds the Schlick reflectance, forcing refraction
	result, _ := glass.Scatter(ray, hit, &fixedSampler{values: []float64{0.99}})

	dir := result.Scattered.Direction
	if dir.Y >= 0 {
		t.Fatalf("Expected refracted ray to continue downward, got %v", dir)
	}
	sinOut := dir.X / dir.Length()
	expected := incoming.X / 1.5
	if math.Abs(sinOut-expected) > 1e-9 {
		t.Errorf("Expected sin(out) %f, got %f", expected, sinOut)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Shallow ray exiting glass into air
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
		Material:  glass,
	}

	for i := 0; i < 10; i++ {
		sampler := core.NewSeededSampler(int64(i))
		result, scattered := glass.Scatter(ray, hit, sampler)

		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Y <= 0 {
			t.Errorf("Expected total internal reflection (ray going up), got %v", result.Scattered.Direction)
		}
		if math.Abs(result.Scattered.Direction.X-rayDirection.X) > 1e-10 {
			t.Errorf("Expected X component %.6f, got %.6f", rayDirection.X, result.Scattered.Direction.X)
		}
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched index normal incidence", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Reflectance(%f, %f) = %f, expected %f", tt.cosine, tt.ratio, got, tt.expected)
			}
		})
	}

	// Reflectance grows as the angle becomes more grazing
	prev := Reflectance(1.0, 1.0/1.5)
	for cos := 0.9; cos >= 0; cos -= 0.1 {
		r := Reflectance(cos, 1.0/1.5)
		if r < prev {
			t.Errorf("Reflectance decreased from %f to %f at cos=%f", prev, r, cos)
		}
		prev = r
	}
}
