package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	World          *geometry.List // Objects in the scene
	Materials      map[string]core.Material
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
	SamplingConfig renderer.SamplingConfig
	CameraConfig   renderer.CameraConfig
}

// newScene creates an empty scene with the default camera, sky and sampling settings
func newScene(name string) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	return &Scene{
		Name:           name,
		Camera:         renderer.NewCamera(cameraConfig),
		World:          geometry.NewList(),
		Materials:      make(map[string]core.Material),
		TopColor:       integrator.DefaultTopColor,
		BottomColor:    integrator.DefaultBottomColor,
		SamplingConfig: renderer.DefaultSamplingConfig(),
		CameraConfig:   cameraConfig,
	}
}

// AddMaterial registers a material under name so several shapes can share it
func (s *Scene) AddMaterial(name string, m core.Material) core.Material {
	s.Materials[name] = m
	return m
}

// Add appends shapes to the world
func (s *Scene) Add(shapes ...core.Shape) {
	for _, shape := range shapes {
		s.World.Add(shape)
	}
}

// SetCameraConfig replaces the camera
func (s *Scene) SetCameraConfig(config renderer.CameraConfig) {
	s.CameraConfig = config
	s.Camera = renderer.NewCamera(config)
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the aggregate of every shape in the scene
func (s *Scene) GetWorld() core.Shape {
	return s.World
}

// GetBackgroundColors returns the sky gradient endpoints
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the number of shapes in the world
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
