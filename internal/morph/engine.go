package morph

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Engine runs morphology operations, sharding rows across goroutines.
//
// The zero value is ready to use and runs with runtime.GOMAXPROCS(0) workers.
type Engine struct {
	// Workers caps the number of goroutines used per operation. Values <= 0
	// mean runtime.GOMAXPROCS(0); 1 runs everything on the calling goroutine.
	Workers int
}

func (e Engine) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// mapPixels allocates a raster with src's dimensions and fills every pixel
// with fn(x, y). Rows are split into contiguous bands, one goroutine per band;
// bands write disjoint parts of the output buffer.
func (e Engine) mapPixels(src *Raster, fn func(x, y int) Pixel) *Raster {
	dst := newBlankRaster(src.width, src.height)
	e.parallelRows(src.height, func(start, stop int) {
		for y := start; y < stop; y++ {
			for x := 0; x < src.width; x++ {
				dst.set(x, y, fn(x, y))
			}
		}
	})
	return dst
}

func (e Engine) parallelRows(height int, fn func(start, stop int)) {
	workers := e.workers()
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	band := (height + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < height; start += band {
		stop := min(start+band, height)
		start := start
		g.Go(func() error {
			fn(start, stop)
			return nil
		})
	}
	// Bands never fail; Wait is only the join.
	_ = g.Wait()
}
