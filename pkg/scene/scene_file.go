package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewFileScene loads a YAML or TOML scene file
func NewFileScene(path string) (*Scene, error) {
	desc, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	return FromDescription(desc)
}

// FromDescription instantiates a decoded scene file. Each named material is
// built once and shared by every object that refers to it.
func FromDescription(desc *loaders.SceneDescription) (*Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	s := newScene(desc.Name)

	if desc.Camera != nil {
		config := s.CameraConfig
		if desc.Camera.Origin != nil {
			config.Origin = toVec3(desc.Camera.Origin)
		}
		if desc.Camera.AspectRatio > 0 {
			config.AspectRatio = desc.Camera.AspectRatio
		}
		if desc.Camera.ViewportHeight > 0 {
			config.ViewportHeight = desc.Camera.ViewportHeight
		}
		if desc.Camera.FocalLength > 0 {
			config.FocalLength = desc.Camera.FocalLength
		}
		s.SetCameraConfig(config)
	}

	if desc.Background != nil {
		if desc.Background.Top != nil {
			s.TopColor = toVec3(desc.Background.Top)
		}
		if desc.Background.Bottom != nil {
			s.BottomColor = toVec3(desc.Background.Bottom)
		}
	}

	if desc.Render != nil {
		s.SamplingConfig = s.SamplingConfig.Merge(renderer.SamplingConfig{
			Width:           desc.Render.Width,
			Height:          desc.Render.Height,
			SamplesPerPixel: desc.Render.Samples,
			MaxDepth:        desc.Render.Depth,
		})
	}

	// Without an explicit height the image follows the camera shape
	widthSet := desc.Render != nil && desc.Render.Width > 0
	aspectSet := desc.Camera != nil && desc.Camera.AspectRatio > 0
	if (widthSet || aspectSet) && (desc.Render == nil || desc.Render.Height == 0) {
		s.SamplingConfig.Height = renderer.HeightForWidth(s.SamplingConfig.Width, s.CameraConfig.AspectRatio)
	}

	for _, m := range desc.Materials {
		s.AddMaterial(m.Name, newMaterial(m))
	}

	for i, o := range desc.Objects {
		shape, err := newShape(o, s.Materials[o.Material])
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape)
	}

	return s, nil
}

func newMaterial(m loaders.MaterialDescription) core.Material {
	switch m.Type {
	case "metal":
		return material.NewMetal(toVec3(m.Albedo), m.Fuzz)
	case "dielectric":
		return material.NewDielectric(m.RefractionIndex)
	default:
		return material.NewLambertian(toVec3(m.Albedo))
	}
}

func newShape(o loaders.ObjectDescription, mat core.Material) (core.Shape, error) {
	switch o.Type {
	case "sphere":
		return geometry.NewSphere(toVec3(o.Center), o.Radius, mat), nil
	case "plane":
		normal, err := toVec3(o.Normal).TryNormalize()
		if err != nil {
			return nil, fmt.Errorf("plane normal: %w", err)
		}
		return geometry.NewPlane(toVec3(o.Point), normal, mat), nil
	case "quad":
		u, v := toVec3(o.U), toVec3(o.V)
		if u.Cross(v).NearZero() {
			return nil, fmt.Errorf("quad edges are parallel: %w", core.ErrZeroVector)
		}
		return geometry.NewQuad(toVec3(o.Corner), u, v, mat), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", o.Type)
	}
}

func toVec3(v []float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
