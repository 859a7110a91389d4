package morph

// neighbor returns the pixel sampled by kernel cell (kx, ky) when the kernel
// is centered on (x, y). Off-raster cells read the center pixel itself.
func neighbor(r *Raster, x, y, kx, ky, center int) Pixel {
	nx := x + kx - center
	ny := y + ky - center
	if !r.Contains(nx, ny) {
		return r.at(x, y)
	}
	return r.at(nx, ny)
}

// extremum folds the Foreground neighborhood of (x, y) with fold, starting
// from seed. Background and DontCare cells contribute nothing, so a kernel
// without Foreground cells returns seed.
func extremum(r *Raster, k *Kernel, x, y int, seed Pixel, fold func(Pixel, Pixel) Pixel) Pixel {
	acc := seed
	center := k.Center()
	for ky := 0; ky < k.dimension; ky++ {
		for kx := 0; kx < k.dimension; kx++ {
			if k.cells[ky*k.dimension+kx] != Foreground {
				continue
			}
			acc = fold(acc, neighbor(r, x, y, kx, ky, center))
		}
	}
	return acc
}

// Dilate returns the componentwise maximum over the Foreground cells of k at
// every pixel of r.
func Dilate(r *Raster, k *Kernel) *Raster { return Engine{}.Dilate(r, k) }

// Erode returns the componentwise minimum over the Foreground cells of k at
// every pixel of r.
func Erode(r *Raster, k *Kernel) *Raster { return Engine{}.Erode(r, k) }

// Open is Erode followed by Dilate with a full kernel of k's dimension.
func Open(r *Raster, k *Kernel) *Raster { return Engine{}.Open(r, k) }

// Close is Dilate followed by Erode with a full kernel of k's dimension.
func Close(r *Raster, k *Kernel) *Raster { return Engine{}.Close(r, k) }

// Dilate is the Engine form of the package-level Dilate.
func (e Engine) Dilate(r *Raster, k *Kernel) *Raster {
	return e.mapPixels(r, func(x, y int) Pixel {
		return extremum(r, k, x, y, Black, Pixel.Max)
	})
}

// Erode is the Engine form of the package-level Erode.
func (e Engine) Erode(r *Raster, k *Kernel) *Raster {
	return e.mapPixels(r, func(x, y int) Pixel {
		return extremum(r, k, x, y, White, Pixel.Min)
	})
}

// Open only honors k's dimension: Background and DontCare cells are ignored.
func (e Engine) Open(r *Raster, k *Kernel) *Raster {
	full := &Kernel{dimension: k.dimension, cells: fullCells(k.dimension)}
	return e.Dilate(e.Erode(r, full), full)
}

// Close only honors k's dimension: Background and DontCare cells are ignored.
func (e Engine) Close(r *Raster, k *Kernel) *Raster {
	full := &Kernel{dimension: k.dimension, cells: fullCells(k.dimension)}
	return e.Erode(e.Dilate(r, full), full)
}
