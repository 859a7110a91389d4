package morph

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

// Raster is an RGBA8 image: width*height pixels, 4 bytes each, row-major,
// origin at the top-left corner.
//
// A Raster is immutable once returned to a caller. Every operation in this
// package allocates a fresh Raster for its result.
type Raster struct {
	width  int
	height int
	pix    []byte
}

// NewRaster creates a Raster from a decoded RGBA8 buffer. The buffer is copied.
//
// Returns ErrInvalidArgument if either dimension is negative or
// len(pix) != width*height*4.
func NewRaster(width, height int, pix []byte) (*Raster, error) {
	size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) != size {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"raster buffer is %d bytes, want %d for %dx%d", len(pix), size, width, height)
	}
	buf := make([]byte, len(pix))
	copy(buf, pix)
	return &Raster{width: width, height: height, pix: buf}, nil
}

// NewUniformRaster creates a width x height Raster filled with p.
func NewUniformRaster(width, height int, p Pixel) (*Raster, error) {
	if _, err := bufferSize(width, height); err != nil {
		return nil, err
	}
	r := newBlankRaster(width, height)
	for i := 0; i < len(r.pix); i += 4 {
		r.pix[i] = p.R
		r.pix[i+1] = p.G
		r.pix[i+2] = p.B
		r.pix[i+3] = p.A
	}
	return r, nil
}

// bufferSize returns width*height*4, rejecting negative dimensions and
// products that do not fit in an int.
func bufferSize(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "raster dimensions %dx%d", width, height)
	}
	if width != 0 && height > math.MaxInt/4/width {
		return 0, errors.Wrapf(ErrInvalidArgument, "raster dimensions %dx%d too large", width, height)
	}
	return width * height * 4, nil
}

func newBlankRaster(width, height int) *Raster {
	return &Raster{width: width, height: height, pix: make([]byte, width*height*4)}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Contains reports whether (x, y) is a valid pixel coordinate.
func (r *Raster) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.width && y < r.height
}

// At returns the pixel at (x, y). It panics if the coordinate is outside the raster.
func (r *Raster) At(x, y int) Pixel {
	if !r.Contains(x, y) {
		preconditionViolation("pixel (%d,%d) outside %dx%d raster", x, y, r.width, r.height)
	}
	return r.at(x, y)
}

// at is At without the bounds check, for loops that already iterate in range.
func (r *Raster) at(x, y int) Pixel {
	i := (y*r.width + x) * 4
	return Pixel{r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3]}
}

// set writes a pixel into a raster that has not yet been handed to a caller.
func (r *Raster) set(x, y int, p Pixel) {
	i := (y*r.width + x) * 4
	r.pix[i] = p.R
	r.pix[i+1] = p.G
	r.pix[i+2] = p.B
	r.pix[i+3] = p.A
}

// Bytes returns a copy of the RGBA8 buffer.
func (r *Raster) Bytes() []byte {
	buf := make([]byte, len(r.pix))
	copy(buf, r.pix)
	return buf
}

// Equal reports whether both rasters have the same dimensions and bytes.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.width == o.width && r.height == o.height && bytes.Equal(r.pix, o.pix)
}

type rasterJSON struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pix    []byte `json:"pix"`
}

// MarshalJSON encodes the raster as {"width","height","pix"} with pix in base64.
func (r *Raster) MarshalJSON() ([]byte, error) {
	return json.Marshal(rasterJSON{Width: r.width, Height: r.height, Pix: r.pix})
}

// UnmarshalJSON decodes the form written by MarshalJSON, enforcing the
// buffer length invariant.
func (r *Raster) UnmarshalJSON(data []byte) error {
	var v rasterJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Pix == nil {
		v.Pix = []byte{}
	}
	decoded, err := NewRaster(v.Width, v.Height, v.Pix)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}
