package morph

// DefaultThreshold is the luma threshold applied when an image is loaded.
const DefaultThreshold = 128.0

// Luma returns the weighted brightness 0.2126R + 0.7152G + 0.0722B of the raw
// channel values. No gamma correction is applied.
func Luma(p Pixel) float64 {
	return 0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B)
}

// Binarize maps every pixel to Black when its luma is below threshold and to
// White otherwise. Alpha is always forced opaque.
func Binarize(r *Raster, threshold float64) *Raster {
	return Engine{}.Binarize(r, threshold)
}

// Binarize is the Engine form of the package-level Binarize.
func (e Engine) Binarize(r *Raster, threshold float64) *Raster {
	return e.mapPixels(r, func(x, y int) Pixel {
		if Luma(r.at(x, y)) < threshold {
			return Black
		}
		return White
	})
}
