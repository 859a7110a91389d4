package imaging

import (
	"math"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// StatsResult counts raster pixels by class.
type StatsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	White  int `json:"white"`
	Black  int `json:"black"`
	Other  int `json:"other"`

	// WhitePercent is White as a percentage of all pixels, rounded to one
	// decimal place.
	WhitePercent float64 `json:"white_percent"`

	// Binary reports whether every pixel is exactly White or Black.
	Binary bool `json:"binary"`
}

// Stats counts the White, Black and other pixels of a raster.
func Stats(r *morph.Raster) *StatsResult {
	res := &StatsResult{Width: r.Width(), Height: r.Height()}
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			switch r.At(x, y) {
			case morph.White:
				res.White++
			case morph.Black:
				res.Black++
			default:
				res.Other++
			}
		}
	}

	if total := r.Width() * r.Height(); total > 0 {
		res.WhitePercent = math.Round(float64(res.White)/float64(total)*1000) / 10
	}
	res.Binary = res.Other == 0
	return res
}
