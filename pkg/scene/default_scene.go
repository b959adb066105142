package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates the four sphere scene: a huge ground sphere, a diffuse
// center sphere and two metal spheres with different fuzz.
func NewDefaultScene() *Scene {
	s := newScene("default")

	ground := s.AddMaterial("ground", material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.AddMaterial("center", material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	left := s.AddMaterial("left", material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3))
	right := s.AddMaterial("right", material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, left),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, right),
	)
	return s
}

// NewGlassScene swaps the left sphere for a hollow glass bubble
func NewGlassScene() *Scene {
	s := newScene("glass")

	ground := s.AddMaterial("ground", material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.AddMaterial("center", material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	glass := s.AddMaterial("glass", material.NewDielectric(1.5))
	gold := s.AddMaterial("gold", material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))

	// Both glass spheres share one material. The negative radius flips the
	// inner normals, leaving a thin shell
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.4, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)
	return s
}

// NewGroundScene creates a single diffuse ground sphere under open sky
func NewGroundScene() *Scene {
	s := newScene("ground")

	gray := s.AddMaterial("gray", material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray))
	return s
}

// NewPlaneScene rests a sphere on an infinite plane in front of a quad mirror
func NewPlaneScene() *Scene {
	s := newScene("plane")

	floor := s.AddMaterial("floor", material.NewLambertian(core.NewVec3(0.4, 0.6, 0.4)))
	red := s.AddMaterial("red", material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	mirror := s.AddMaterial("mirror", material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.02))

	s.Add(
		geometry.NewPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, red),
		geometry.NewQuad(core.NewVec3(-1.5, -0.5, -2.2), core.NewVec3(3, 0, 0), core.NewVec3(0, 1.5, 0), mirror),
	)
	return s
}
