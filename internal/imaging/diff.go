package imaging

import (
	"bytes"
	"encoding/base64"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// DiffResult summarizes how two rasters of the same size differ.
type DiffResult struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Changed      int     `json:"changed_pixels"`
	ChangedRatio float64 `json:"changed_ratio"`

	// Became counts pixels that changed, keyed by what they became
	// ("white", "black" or "other").
	Became map[string]int `json:"became"`

	// ImageBase64 is a PNG of the per-channel absolute difference; changed
	// binary pixels show as white on black.
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Diff compares before and after pixel by pixel. Both rasters must have the
// same dimensions.
func Diff(before, after *morph.Raster) (*DiffResult, error) {
	if before.Width() != after.Width() || before.Height() != after.Height() {
		return nil, errors.Errorf("cannot diff %dx%d raster against %dx%d raster",
			before.Width(), before.Height(), after.Width(), after.Height())
	}

	res := &DiffResult{
		Width:    before.Width(),
		Height:   before.Height(),
		Became:   map[string]int{},
		MimeType: "image/png",
	}
	for y := 0; y < before.Height(); y++ {
		for x := 0; x < before.Width(); x++ {
			p := after.At(x, y)
			if before.At(x, y) == p {
				continue
			}
			res.Changed++
			res.Became[pixelClass(p)]++
		}
	}
	if total := res.Width * res.Height; total > 0 {
		res.ChangedRatio = float64(res.Changed) / float64(total)
	} else {
		return res, nil
	}

	delta := blend.Difference(ToImage(before), ToImage(after))
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, delta, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "failed to encode difference image")
	}
	res.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())

	return res, nil
}

func pixelClass(p morph.Pixel) string {
	switch p {
	case morph.White:
		return "white"
	case morph.Black:
		return "black"
	default:
		return "other"
	}
}
