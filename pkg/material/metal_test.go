package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.3", 0.3, 0.3},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting surface at 45 degrees; direction is deliberately not unit length
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -3, -3))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// Incident (0, -1, -1) normalized reflects to (0, -1, 1) normalized
	expected := core.NewVec3(0, -1, 1).Normalize()
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzyReflectionVaries(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	first, _ := metal.Scatter(rayIn, hit, sampler)
	for i := 0; i < 10; i++ {
		next, didScatter := metal.Scatter(rayIn, hit, sampler)
		// Fuzz 0.5 around a head-on mirror direction never dips below the surface
		if !didScatter {
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		if !next.Scattered.Direction.Equals(first.Scattered.Direction) {
			return
		}
	}
	t.Error("Fuzzy reflection should vary between samples")
}

func TestMetal_AbsorbedIffBelowSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(123)))

	// Grazing angle with maximum fuzz scatters some rays below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	absorbed, scattered := 0, 0
	for i := 0; i < 1000; i++ {
		result, didScatter := metal.Scatter(rayIn, hit, sampler)

		aboveSurface := result.Scattered.Direction.Dot(hit.Normal) > 0
		if didScatter != aboveSurface {
			t.Fatalf("Scatter=%t but dot(direction, normal)=%f", didScatter, result.Scattered.Direction.Dot(hit.Normal))
		}

		if didScatter {
			scattered++
		} else {
			absorbed++
		}
	}

	if absorbed == 0 {
		t.Error("Expected some rays to be absorbed with high fuzziness at grazing angle")
	}
	if scattered == 0 {
		t.Error("Expected some rays to be scattered")
	}
}

func TestMetal_MirrorIntoSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0.0)
	sampler := core.NewSeededSampler(1)

	// A normal facing the same way as the ray reflects the ray backwards through the surface
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, -1)}

	if _, didScatter := metal.Scatter(rayIn, hit, sampler); didScatter {
		t.Error("Expected absorption when the reflection points into the surface")
	}
}
