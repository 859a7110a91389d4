package morph

import (
	"math/rand"
	"strings"
	"testing"
)

// rasterFromRows builds a binary raster where '1' is White and '0' is Black.
func rasterFromRows(t *testing.T, rows ...string) *Raster {
	t.Helper()
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	pix := make([]byte, 0, width*height*4)
	for y, row := range rows {
		if len(row) != width {
			t.Fatalf("row %d has width %d, want %d", y, len(row), width)
		}
		for _, c := range row {
			p := Black
			if c == '1' {
				p = White
			}
			pix = append(pix, p.R, p.G, p.B, p.A)
		}
	}
	r, err := NewRaster(width, height, pix)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	return r
}

// rowsOf renders a raster back to '1'/'0' rows. Pixels that are neither
// White nor Black render as '?'.
func rowsOf(r *Raster) []string {
	rows := make([]string, r.Height())
	var sb strings.Builder
	for y := 0; y < r.Height(); y++ {
		sb.Reset()
		for x := 0; x < r.Width(); x++ {
			switch r.At(x, y) {
			case White:
				sb.WriteByte('1')
			case Black:
				sb.WriteByte('0')
			default:
				sb.WriteByte('?')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func mustKernel(t *testing.T, rows ...string) *Kernel {
	t.Helper()
	k, err := ParseKernel(rows)
	if err != nil {
		t.Fatalf("ParseKernel(%v) failed: %v", rows, err)
	}
	return k
}

func mustFullKernel(t *testing.T, dimension int) *Kernel {
	t.Helper()
	k, err := NewFullKernel(dimension)
	if err != nil {
		t.Fatalf("NewFullKernel(%d) failed: %v", dimension, err)
	}
	return k
}

// noiseRaster returns a deterministic raster of arbitrary RGBA bytes.
func noiseRaster(t *testing.T, width, height int, seed int64) *Raster {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pix := make([]byte, width*height*4)
	rng.Read(pix)
	r, err := NewRaster(width, height, pix)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	return r
}

// binaryNoise returns a deterministic binarized raster.
func binaryNoise(t *testing.T, width, height int, seed int64) *Raster {
	t.Helper()
	return Binarize(noiseRaster(t, width, height, seed), DefaultThreshold)
}
