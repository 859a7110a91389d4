package morph

import "github.com/pkg/errors"

// The square-window family predates Kernel. It samples every pixel of a
// (2*radius+1)^2 window and clamps coordinates to the nearest edge pixel.
// This is NOT the replicate-border-via-center rule used by Dilate and Erode.

// DilateSquare returns the componentwise maximum over a square window.
func DilateSquare(r *Raster, radius int) (*Raster, error) { return Engine{}.DilateSquare(r, radius) }

// ErodeSquare returns the componentwise minimum over a square window.
func ErodeSquare(r *Raster, radius int) (*Raster, error) { return Engine{}.ErodeSquare(r, radius) }

// OpenSquare is ErodeSquare followed by DilateSquare with the same radius.
func OpenSquare(r *Raster, radius int) (*Raster, error) { return Engine{}.OpenSquare(r, radius) }

// CloseSquare is DilateSquare followed by ErodeSquare with the same radius.
func CloseSquare(r *Raster, radius int) (*Raster, error) { return Engine{}.CloseSquare(r, radius) }

// DilateSquare is the Engine form of the package-level DilateSquare.
func (e Engine) DilateSquare(r *Raster, radius int) (*Raster, error) {
	return e.squareExtremum(r, radius, Pixel.Max)
}

// ErodeSquare is the Engine form of the package-level ErodeSquare.
func (e Engine) ErodeSquare(r *Raster, radius int) (*Raster, error) {
	return e.squareExtremum(r, radius, Pixel.Min)
}

// OpenSquare is the Engine form of the package-level OpenSquare.
func (e Engine) OpenSquare(r *Raster, radius int) (*Raster, error) {
	eroded, err := e.ErodeSquare(r, radius)
	if err != nil {
		return nil, err
	}
	return e.DilateSquare(eroded, radius)
}

// CloseSquare is the Engine form of the package-level CloseSquare.
func (e Engine) CloseSquare(r *Raster, radius int) (*Raster, error) {
	dilated, err := e.DilateSquare(r, radius)
	if err != nil {
		return nil, err
	}
	return e.ErodeSquare(dilated, radius)
}

func (e Engine) squareExtremum(r *Raster, radius int, fold func(Pixel, Pixel) Pixel) (*Raster, error) {
	if radius < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "square radius %d must not be negative", radius)
	}
	return e.mapPixels(r, func(x, y int) Pixel {
		// The window always holds (x, y), so it seeds the fold.
		acc := r.at(x, y)
		for dy := -radius; dy <= radius; dy++ {
			sy := clamp(y+dy, 0, r.height-1)
			for dx := -radius; dx <= radius; dx++ {
				acc = fold(acc, r.at(clamp(x+dx, 0, r.width-1), sy))
			}
		}
		return acc
	}), nil
}

// clamp constrains val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
