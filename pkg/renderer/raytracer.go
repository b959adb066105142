package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225, // 16:9
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}
}

// Merge returns c with every positive field of override applied on top
func (c SamplingConfig) Merge(override SamplingConfig) SamplingConfig {
	if override.Width > 0 {
		c.Width = override.Width
	}
	if override.Height > 0 {
		c.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		c.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		c.MaxDepth = override.MaxDepth
	}
	return c
}

// Validate checks that the config describes a renderable image
func (c SamplingConfig) Validate() error {
	// Jitter divides by (dimension - 1), so each side needs at least two pixels
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("image must be at least 2x2, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() core.Shape
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Raytracer drives the pixel loop: it owns the sampler and accumulates samples per pixel.
// A Raytracer is not safe for concurrent use.
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	sampler    core.Sampler
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config SamplingConfig, sampler core.Sampler) *Raytracer {
	top, bottom := scene.GetBackgroundColors()
	return &Raytracer{
		scene:      scene,
		config:     config,
		sampler:    sampler,
		integrator: &integrator.PathTracingIntegrator{TopColor: top, BottomColor: bottom},
	}
}

// SetLogger enables per-scanline progress reporting
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Render traces every pixel from the top scanline down.
// Cancellation is checked once per scanline.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}

	startTime := time.Now()
	width, height := rt.config.Width, rt.config.Height
	frame := NewFrame(width, height)
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()

	for j := height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			return nil, RenderStats{}, fmt.Errorf("render cancelled: %w", err)
		}
		rt.logf("Scanlines remaining: %d", j)

		row := height - 1 - j
		for i := 0; i < width; i++ {
			pixel := frame.Pixel(i, row)

			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				// Jitter inside the pixel for anti-aliasing
				u := (float64(i) + rt.sampler.Get1D()) / float64(width-1)
				v := (float64(j) + rt.sampler.Get1D()) / float64(height-1)

				ray := camera.GetRay(u, v)
				pixel.AddSample(rt.integrator.RayColor(ray, world, rt.sampler, rt.config.MaxDepth))
			}
		}
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Duration:        time.Since(startTime),
	}
	rt.logf("Done in %v", stats.Duration)

	return frame, stats, nil
}

func (rt *Raytracer) logf(format string, args ...interface{}) {
	if rt.logger != nil {
		rt.logger.Printf(format, args...)
	}
}
