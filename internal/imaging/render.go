package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// RenderResult contains an encoded raster ready to hand to an MCP client.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ToImage converts a raster to an *image.NRGBA sharing no memory with it.
func ToImage(r *morph.Raster) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width(), r.Height()))
	copy(img.Pix, r.Bytes())
	return img
}

// Render encodes a raster as a base64 PNG, optionally scaled.
//
// Scaling uses nearest-neighbor sampling so a binary raster stays binary;
// any other filter would introduce gray edges. Scale must be positive. The
// scaled dimensions are rounded and never drop below one pixel.
func Render(r *morph.Raster, scale float64) (*RenderResult, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, errors.Errorf("invalid scale %v: must be a positive number", scale)
	}
	if r.Width() == 0 || r.Height() == 0 {
		return nil, errors.Errorf("cannot render empty %dx%d raster", r.Width(), r.Height())
	}

	var img image.Image = ToImage(r)
	if scale != 1.0 {
		w := max(1, int(math.Round(float64(r.Width())*scale)))
		h := max(1, int(math.Round(float64(r.Height())*scale)))
		img = imaging.Resize(img, w, h, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "failed to encode raster")
	}

	return &RenderResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes a raster to path. The format is chosen from the file extension.
func Save(r *morph.Raster, path string) error {
	if err := imaging.Save(ToImage(r), path); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}
