package morph

// matches reports whether the neighborhood of (x, y) satisfies every
// Foreground (White) and Background (Black) cell of k. It stops at the
// first failing cell.
func matches(r *Raster, k *Kernel, x, y int) bool {
	center := k.Center()
	for ky := 0; ky < k.dimension; ky++ {
		for kx := 0; kx < k.dimension; kx++ {
			var want Pixel
			switch k.cells[ky*k.dimension+kx] {
			case Foreground:
				want = White
			case Background:
				want = Black
			default:
				continue
			}
			if neighbor(r, x, y, kx, ky, center) != want {
				return false
			}
		}
	}
	return true
}

// HitOrMiss marks as White every pixel whose neighborhood exactly matches k,
// and every other pixel Black. A kernel made only of DontCare cells matches
// everywhere.
func HitOrMiss(r *Raster, k *Kernel) *Raster { return Engine{}.HitOrMiss(r, k) }

// Thinning forces pixels where HitOrMiss matches to Black and copies the rest.
func Thinning(r *Raster, k *Kernel) *Raster { return Engine{}.Thinning(r, k) }

// Thickening forces pixels where HitOrMiss matches to White and copies the rest.
func Thickening(r *Raster, k *Kernel) *Raster { return Engine{}.Thickening(r, k) }

// HitOrMiss is the Engine form of the package-level HitOrMiss.
func (e Engine) HitOrMiss(r *Raster, k *Kernel) *Raster {
	return e.mapPixels(r, func(x, y int) Pixel {
		if matches(r, k, x, y) {
			return White
		}
		return Black
	})
}

// Thinning is the Engine form of the package-level Thinning.
func (e Engine) Thinning(r *Raster, k *Kernel) *Raster {
	return e.replaceMatches(r, k, Black)
}

// Thickening is the Engine form of the package-level Thickening.
func (e Engine) Thickening(r *Raster, k *Kernel) *Raster {
	return e.replaceMatches(r, k, White)
}

func (e Engine) replaceMatches(r *Raster, k *Kernel, with Pixel) *Raster {
	return e.mapPixels(r, func(x, y int) Pixel {
		if matches(r, k, x, y) {
			return with
		}
		return r.at(x, y)
	})
}
