package ocr

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"

	rasterimg "github.com/ironsheep/image-morph-mcp/internal/imaging"
	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// DefaultLanguage is used when no language is given.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion represents a word with its location and OCR confidence.
type TextRegion struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the raster.
	Bounds Bounds `json:"bounds"`
}

// Result contains the text recognized in a raster.
type Result struct {
	// FullText is all recognized text with Tesseract's spacing and newlines.
	FullText string `json:"full_text"`

	// Regions contains individual words with their bounding boxes and
	// confidence scores.
	Regions []TextRegion `json:"regions"`

	// Language is the Tesseract language the text was recognized with.
	Language string `json:"language"`
}

// Recognize runs OCR over an entire raster.
//
// Parameters:
//   - r: Raster to read. Works best on a binarized, cleaned raster.
//   - language: Tesseract language code; empty means DefaultLanguage.
func Recognize(r *morph.Raster, language string) (*Result, error) {
	return recognize(rasterimg.ToImage(r), language)
}

// RecognizeRegion runs OCR over the rectangle (x1,y1)-(x2,y2) of a raster.
// The top-left corner is inclusive and the bottom-right exclusive. Word
// bounds in the result are relative to the full raster.
func RecognizeRegion(r *morph.Raster, x1, y1, x2, y2 int, language string) (*Result, error) {
	if x1 < 0 || y1 < 0 || x2 > r.Width() || y2 > r.Height() {
		return nil, errors.Errorf("region (%d,%d)-(%d,%d) outside %dx%d raster",
			x1, y1, x2, y2, r.Width(), r.Height())
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, errors.New("invalid region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(rasterimg.ToImage(r), image.Rect(x1, y1, x2, y2))
	result, err := recognize(cropped, language)
	if err != nil {
		return nil, err
	}

	for i := range result.Regions {
		result.Regions[i].Bounds.X1 += x1
		result.Regions[i].Bounds.Y1 += y1
		result.Regions[i].Bounds.X2 += x1
		result.Regions[i].Bounds.Y2 += y1
	}
	return result, nil
}

// Version returns the version of the linked Tesseract library.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

func recognize(img image.Image, language string) (*Result, error) {
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(err, "failed to encode raster for OCR")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, errors.Wrap(err, "failed to set language")
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, errors.Wrap(err, "failed to set image")
	}

	text, err := client.Text()
	if err != nil {
		return nil, errors.Wrap(err, "OCR failed")
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return &Result{FullText: text, Regions: []TextRegion{}, Language: language}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{FullText: text, Regions: regions, Language: language}, nil
}
