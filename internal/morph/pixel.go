package morph

import "fmt"

// Pixel is an 8-bit RGBA value.
//
// Min and Max are componentwise: they form a lattice over the four channels
// rather than a total order over whole pixels.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	// White is the foreground value produced by Binarize.
	White = Pixel{255, 255, 255, 255}

	// Black is the background value produced by Binarize.
	Black = Pixel{0, 0, 0, 255}
)

// Min returns the componentwise minimum of p and o.
func (p Pixel) Min(o Pixel) Pixel {
	return Pixel{
		R: min(p.R, o.R),
		G: min(p.G, o.G),
		B: min(p.B, o.B),
		A: min(p.A, o.A),
	}
}

// Max returns the componentwise maximum of p and o.
func (p Pixel) Max(o Pixel) Pixel {
	return Pixel{
		R: max(p.R, o.R),
		G: max(p.G, o.G),
		B: max(p.B, o.B),
		A: max(p.A, o.A),
	}
}

func (p Pixel) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", p.R, p.G, p.B, p.A)
}
