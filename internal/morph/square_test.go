package morph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestSquare_RadiusZeroIsIdentity(t *testing.T) {
	r := noiseRaster(t, 9, 5, 13)

	ops := map[string]func(*Raster, int) (*Raster, error){
		"DilateSquare": DilateSquare,
		"ErodeSquare":  ErodeSquare,
		"OpenSquare":   OpenSquare,
		"CloseSquare":  CloseSquare,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			got, err := op(r, 0)
			if err != nil {
				t.Fatalf("%s failed: %v", name, err)
			}
			if !got.Equal(r) {
				t.Errorf("%s with radius 0 changed the raster", name)
			}
		})
	}
}

func TestSquare_NegativeRadius(t *testing.T) {
	r := rasterFromRows(t, "101")
	if _, err := DilateSquare(r, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("DilateSquare(-1): got %v, want ErrInvalidArgument", err)
	}
	if _, err := OpenSquare(r, -2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("OpenSquare(-2): got %v, want ErrInvalidArgument", err)
	}
}

func TestSquare_AgreesWithFullKernel(t *testing.T) {
	// With every window cell active, the clamped pixel is always inside the
	// window already, so both border rules give the same extremum.
	r := noiseRaster(t, 14, 9, 31)

	for radius := 1; radius <= 3; radius++ {
		k := mustFullKernel(t, 2*radius+1)

		dilated, err := DilateSquare(r, radius)
		if err != nil {
			t.Fatalf("DilateSquare failed: %v", err)
		}
		if !dilated.Equal(Dilate(r, k)) {
			t.Errorf("radius %d: DilateSquare differs from Dilate", radius)
		}

		eroded, err := ErodeSquare(r, radius)
		if err != nil {
			t.Fatalf("ErodeSquare failed: %v", err)
		}
		if !eroded.Equal(Erode(r, k)) {
			t.Errorf("radius %d: ErodeSquare differs from Erode", radius)
		}
	}
}

func TestSquare_OpenClose(t *testing.T) {
	r := rasterFromRows(t,
		"00000",
		"01000",
		"00000",
		"00111",
		"00111",
	)

	opened, err := OpenSquare(r, 1)
	if err != nil {
		t.Fatalf("OpenSquare failed: %v", err)
	}
	want := []string{"00000", "00000", "00000", "00111", "00111"}
	if diff := cmp.Diff(want, rowsOf(opened)); diff != "" {
		t.Errorf("OpenSquare (-want +got):\n%s", diff)
	}

	closed, err := CloseSquare(rasterFromRows(t, "111", "101", "111"), 1)
	if err != nil {
		t.Fatalf("CloseSquare failed: %v", err)
	}
	if diff := cmp.Diff([]string{"111", "111", "111"}, rowsOf(closed)); diff != "" {
		t.Errorf("CloseSquare (-want +got):\n%s", diff)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, want int }{
		{-3, 0}, {0, 0}, {4, 4}, {9, 9}, {12, 9},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, 0, 9); got != tt.want {
			t.Errorf("clamp(%d, 0, 9) = %d, want %d", tt.val, got, tt.want)
		}
	}
}
