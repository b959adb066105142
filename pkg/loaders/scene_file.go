package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for scene files that are neither YAML nor TOML
var ErrUnsupportedFormat = errors.New("unsupported scene file format")

// Format identifies the encoding of a scene file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// SceneDescription is the decoded, not yet instantiated, content of a scene file.
// Vectors are three-element lists.
type SceneDescription struct {
	Name        string                 `yaml:"name" toml:"name"`
	Description string                 `yaml:"description" toml:"description"`
	Camera      *CameraDescription     `yaml:"camera" toml:"camera"`
	Background  *BackgroundDescription `yaml:"background" toml:"background"`
	Render      *RenderDescription     `yaml:"render" toml:"render"`
	Materials   []MaterialDescription  `yaml:"materials" toml:"materials"`
	Objects     []ObjectDescription    `yaml:"objects" toml:"objects"`
}

// CameraDescription overrides the fixed pinhole camera
type CameraDescription struct {
	Origin         []float64 `yaml:"origin" toml:"origin"`
	AspectRatio    float64   `yaml:"aspect_ratio" toml:"aspect_ratio"`
	ViewportHeight float64   `yaml:"viewport_height" toml:"viewport_height"`
	FocalLength    float64   `yaml:"focal_length" toml:"focal_length"`
}

// BackgroundDescription overrides the sky gradient
type BackgroundDescription struct {
	Top    []float64 `yaml:"top" toml:"top"`
	Bottom []float64 `yaml:"bottom" toml:"bottom"`
}

// RenderDescription overrides sampling defaults
type RenderDescription struct {
	Width   int `yaml:"width" toml:"width"`
	Height  int `yaml:"height" toml:"height"`
	Samples int `yaml:"samples" toml:"samples"`
	Depth   int `yaml:"depth" toml:"depth"`
}

// MaterialDescription is a named material; objects refer to it by name
type MaterialDescription struct {
	Name            string    `yaml:"name" toml:"name"`
	Type            string    `yaml:"type" toml:"type"` // lambertian, metal or dielectric
	Albedo          []float64 `yaml:"albedo" toml:"albedo"`
	Fuzz            float64   `yaml:"fuzz" toml:"fuzz"`
	RefractionIndex float64   `yaml:"refraction_index" toml:"refraction_index"`
}

// ObjectDescription is a sphere, plane or quad
type ObjectDescription struct {
	Type     string    `yaml:"type" toml:"type"`
	Material string    `yaml:"material" toml:"material"`
	Center   []float64 `yaml:"center" toml:"center"`
	Radius   float64   `yaml:"radius" toml:"radius"`
	Point    []float64 `yaml:"point" toml:"point"`
	Normal   []float64 `yaml:"normal" toml:"normal"`
	Corner   []float64 `yaml:"corner" toml:"corner"`
	U        []float64 `yaml:"u" toml:"u"`
	V        []float64 `yaml:"v" toml:"v"`
}

// FormatFromPath picks the decoder from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// IsSceneFile reports whether path has a scene file extension
func IsSceneFile(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// LoadSceneFile reads and validates a scene file
func LoadSceneFile(path string) (*SceneDescription, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	desc, err := ParseScene(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Fall back to the file name so every scene has one
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

// ParseScene decodes scene data in the given format and validates it
func ParseScene(data []byte, format Format) (*SceneDescription, error) {
	var desc SceneDescription

	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		// An empty document decodes to an empty scene
		if err := decoder.Decode(&desc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &desc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown TOML key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks references and required fields without building anything
func (d *SceneDescription) Validate() error {
	materials := make(map[string]bool, len(d.Materials))
	for i, m := range d.Materials {
		if m.Name == "" {
			return fmt.Errorf("material %d: missing name", i)
		}
		if materials[m.Name] {
			return fmt.Errorf("material %q: defined more than once", m.Name)
		}
		materials[m.Name] = true

		switch m.Type {
		case "lambertian", "metal":
			if err := checkVec(m.Albedo, "albedo"); err != nil {
				return fmt.Errorf("material %q: %w", m.Name, err)
			}
		case "dielectric":
			if m.RefractionIndex <= 0 {
				return fmt.Errorf("material %q: refraction_index must be positive", m.Name)
			}
		default:
			return fmt.Errorf("material %q: unknown type %q", m.Name, m.Type)
		}
	}

	for i, o := range d.Objects {
		if !materials[o.Material] {
			return fmt.Errorf("object %d: unknown material %q", i, o.Material)
		}

		var err error
		switch o.Type {
		case "sphere":
			err = checkVec(o.Center, "center")
			if err == nil && o.Radius <= 0 {
				err = fmt.Errorf("radius must be positive")
			}
		case "plane":
			err = errors.Join(checkVec(o.Point, "point"), checkVec(o.Normal, "normal"))
		case "quad":
			err = errors.Join(checkVec(o.Corner, "corner"), checkVec(o.U, "u"), checkVec(o.V, "v"))
		default:
			err = fmt.Errorf("unknown type %q", o.Type)
		}
		if err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}

	if d.Camera != nil && d.Camera.Origin != nil {
		if err := checkVec(d.Camera.Origin, "camera origin"); err != nil {
			return err
		}
	}
	if d.Background != nil {
		if err := errors.Join(checkOptionalVec(d.Background.Top, "background top"),
			checkOptionalVec(d.Background.Bottom, "background bottom")); err != nil {
			return err
		}
	}
	return nil
}

func checkVec(v []float64, field string) error {
	if len(v) != 3 {
		return fmt.Errorf("%s must have 3 components, got %d", field, len(v))
	}
	return nil
}

func checkOptionalVec(v []float64, field string) error {
	if v == nil {
		return nil
	}
	return checkVec(v, field)
}
