package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockMaterial implements core.Material for testing
type MockMaterial struct {
	scatterFn func(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool)
}

func (m MockMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return m.scatterFn(rayIn, hit, sampler)
}

// MockShape implements core.Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

func expectColor(t *testing.T, got, expected core.Vec3, tol float64) {
	t.Helper()
	if got.Subtract(expected).Length() > tol {
		t.Errorf("Expected color %v, got %v", expected, got)
	}
}

// createTestWorld creates a world with a single lambertian sphere in front of the origin
func createTestWorld() core.Shape {
	lambertian := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	return geometry.NewList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertian))
}

func TestPathTracing_DepthZeroIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator()
	sampler := core.NewSeededSampler(42)
	world := createTestWorld()

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // hits
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // misses
	}

	for _, ray := range rays {
		for _, depth := range []int{0, -1} {
			if c := pt.RayColor(ray, world, sampler, depth); c != (core.Vec3{}) {
				t.Errorf("Expected black for depth %d, got %v", depth, c)
			}
		}
	}
}

func TestPathTracing_DepthZeroDoesNoWork(t *testing.T) {
	pt := NewPathTracingIntegrator()
	world := MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		t.Fatal("Hit should not be called at depth 0")
		return nil, false
	}}

	pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1), 0)
}

func TestPathTracing_BackgroundGradient(t *testing.T) {
	pt := NewPathTracingIntegrator()
	world := geometry.NewList()
	sampler := core.NewSeededSampler(42)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -5, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
		{"45 degrees up", core.NewVec3(0, 1, -1), func() core.Vec3 {
			tt := 0.5 * (1/math.Sqrt2 + 1)
			return core.NewVec3(1, 1, 1).Multiply(1 - tt).Add(core.NewVec3(0.5, 0.7, 1.0).Multiply(tt))
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			expectColor(t, pt.RayColor(ray, world, sampler, 1), tt.expected, 1e-12)
		})
	}
}

func TestPathTracing_HitWindow(t *testing.T) {
	pt := NewPathTracingIntegrator()

	var gotMin, gotMax float64
	world := MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		gotMin, gotMax = tMin, tMax
		return nil, false
	}}

	pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1), 5)

	if gotMin != 0.001 {
		t.Errorf("Expected tMin 0.001, got %f", gotMin)
	}
	if !math.IsInf(gotMax, 1) {
		t.Errorf("Expected tMax +Inf, got %f", gotMax)
	}
}

func TestPathTracing_AbsorptionIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator()
	absorber := MockMaterial{scatterFn: func(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
		return core.ScatterResult{}, false
	}}
	world := geometry.NewList(geometry.NewSphere(core.NewVec3(0, 0, -2), 1, absorber))

	c := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1), 10)
	if c != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed ray, got %v", c)
	}
}

func TestPathTracing_AttenuationMultipliesRecursion(t *testing.T) {
	pt := NewPathTracingIntegrator()
	attenuation := core.NewVec3(0.5, 0.25, 1.0)

	// Scatter straight up into the sky from the hit point
	mirror := MockMaterial{scatterFn: func(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
		return core.ScatterResult{
			Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
			Attenuation: attenuation,
		}, true
	}}

	hits := 0
	world := MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		if ray.Direction.Y > 0 {
			return nil, false
		}
		hits++
		return &core.HitRecord{
			Point:     ray.At(1),
			Normal:    core.NewVec3(0, 1, 0),
			T:         1,
			FrontFace: true,
			Material:  mirror,
		}, true
	}}

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// Sky straight up is the top color
	expected := attenuation.MultiplyVec(DefaultTopColor)
	expectColor(t, pt.RayColor(ray, world, core.NewSeededSampler(1), 2), expected, 1e-12)

	// With a single bounce left the scattered ray is cut off at depth 0
	expectColor(t, pt.RayColor(ray, world, core.NewSeededSampler(1), 1), core.Vec3{}, 0)

	if hits != 2 {
		t.Errorf("Expected 2 primary hits, got %d", hits)
	}
}

func TestPathTracing_ClosedGeometryTerminates(t *testing.T) {
	pt := NewPathTracingIntegrator()

	// A perfect mirror sphere seen from inside never lets light escape
	inside := geometry.NewList(geometry.NewSphere(core.NewVec3(0, 0, 0), 10, material.NewMetal(core.NewVec3(1, 1, 1), 0)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.3, 0.2, -1))

	c := pt.RayColor(ray, inside, core.NewSeededSampler(7), 50)
	if c != (core.Vec3{}) {
		t.Errorf("Expected black after exhausting depth inside closed mirror, got %v", c)
	}
}

func TestPathTracing_CustomBackground(t *testing.T) {
	pt := &PathTracingIntegrator{TopColor: core.NewVec3(0, 0, 1), BottomColor: core.NewVec3(1, 0, 0)}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	expectColor(t, pt.RayColor(ray, geometry.NewList(), core.NewSeededSampler(1), 1), core.NewVec3(0.5, 0, 0.5), 1e-12)
}
