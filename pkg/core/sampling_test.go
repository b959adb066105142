package core

import (
	"math"
	"math/rand"
	"testing"
)

// sequenceSampler replays a fixed list of values
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get3D() Vec3 {
	return NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)

	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with equal seeds diverged at draw %d", i)
		}
	}
}

func TestRandomVec3_Range(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		v := RandomVec3(sampler, -2, 3)
		for c, x := range []float64{v.X, v.Y, v.Z} {
			if x < -2 || x >= 3 {
				t.Fatalf("Component %d out of range: %v", c, v)
			}
		}
		if r := RandomRange(sampler, 5, 6); r < 5 || r >= 6 {
			t.Fatalf("RandomRange out of range: %f", r)
		}
	}
}

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)

	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() >= 1 {
			t.Fatalf("Sample outside unit sphere: %v (length² %f)", p, p.LengthSquared())
		}
	}
}

func TestRandomInUnitSphere_Rejection(t *testing.T) {
	// First triple maps to (1,1,1)*0.98 which is outside; second maps to the origin
	sampler := &sequenceSampler{values: []float64{0.99, 0.99, 0.99, 0.5, 0.5, 0.5}}

	p := RandomInUnitSphere(sampler)
	if !p.Equals(NewVec3(0, 0, 0)) {
		t.Errorf("Expected the first accepted sample at origin, got %v", p)
	}
	if sampler.next != 6 {
		t.Errorf("Expected 6 draws, got %d", sampler.next)
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewSeededSampler(3)

	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > tolerance {
			t.Fatalf("Expected unit length, got %f", v.Length())
		}
	}
}

func TestRandomInHemisphere(t *testing.T) {
	sampler := NewSeededSampler(11)
	normal := NewVec3(0.3, -0.8, 0.2).Normalize()

	for i := 0; i < 1000; i++ {
		v := RandomInHemisphere(normal, sampler)
		if v.Dot(normal) < 0 {
			t.Fatalf("Sample %v points away from normal %v", v, normal)
		}
		if v.LengthSquared() >= 1 {
			t.Fatalf("Sample outside unit sphere: %v", v)
		}
	}
}
