package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame holds the accumulated samples of a render, row 0 at the top
type Frame struct {
	Width  int
	Height int
	Pixels []PixelStats
}

// NewFrame allocates an empty frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]PixelStats, width*height),
	}
}

// Pixel returns the accumulator for column x of row y
func (f *Frame) Pixel(x, y int) *PixelStats {
	return &f.Pixels[y*f.Width+x]
}

// Image converts the frame to 8-bit RGBA through WriteColor
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			pixel := f.Pixel(x, y)
			r, g, b := WriteColor(pixel.ColorAccum, pixel.SampleCount)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// WriteColor maps a sum of samples to 8-bit channels: average, square-root gamma,
// clamp to [0, 0.999], then scale by 256 and truncate.
func WriteColor(sum core.Vec3, samples int) (r, g, b uint8) {
	if samples <= 0 {
		return 0, 0, 0
	}
	scale := 1.0 / float64(samples)
	return toByte(sum.X, scale), toByte(sum.Y, scale), toByte(sum.Z, scale)
}

func toByte(c, scale float64) uint8 {
	c = math.Sqrt(c * scale)
	// Negative sums produce NaN here; treat them as black
	if math.IsNaN(c) {
		return 0
	}
	c = max(0.0, min(0.999, c))
	return uint8(256 * c)
}
