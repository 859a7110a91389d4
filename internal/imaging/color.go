package imaging

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// PixelSample describes one raster pixel in the forms a client needs to
// reason about binarization.
type PixelSample struct {
	X    int         `json:"x"`
	Y    int         `json:"y"`
	RGBA morph.Pixel `json:"rgba"`
	Hex  string      `json:"hex"` // "#rrggbb", alpha excluded
	HSL  HSLColor    `json:"hsl"`

	// Luma is the weighted brightness binarization compares against the
	// threshold.
	Luma float64 `json:"luma"`

	// Foreground reports whether the pixel is exactly White, which is what
	// hit-or-miss Foreground cells require.
	Foreground bool `json:"foreground"`
}

// SamplePixel reads the pixel at (x, y).
//
// Returns an error if the coordinate is outside the raster.
func SamplePixel(r *morph.Raster, x, y int) (*PixelSample, error) {
	if !r.Contains(x, y) {
		return nil, errors.Errorf("coordinates (%d,%d) outside %dx%d raster", x, y, r.Width(), r.Height())
	}

	p := r.At(x, y)
	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
	h, s, l := c.Hsl()

	return &PixelSample{
		X:    x,
		Y:    y,
		RGBA: p,
		Hex:  c.Hex(),
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Luma:       math.Round(morph.Luma(p)*100) / 100,
		Foreground: p == morph.White,
	}, nil
}
