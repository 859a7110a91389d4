package morph

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestNewRaster(t *testing.T) {
	pix := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	r, err := NewRaster(2, 2, pix)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	if r.Width() != 2 || r.Height() != 2 {
		t.Errorf("dimensions: got %dx%d, want 2x2", r.Width(), r.Height())
	}
	if got, want := r.At(1, 0), (Pixel{5, 6, 7, 8}); got != want {
		t.Errorf("At(1,0): got %v, want %v", got, want)
	}
	if got, want := r.At(0, 1), (Pixel{9, 10, 11, 12}); got != want {
		t.Errorf("At(0,1): got %v, want %v", got, want)
	}

	// The buffer is copied in and out.
	pix[0] = 99
	if r.At(0, 0).R != 1 {
		t.Error("NewRaster did not copy the input buffer")
	}
	out := r.Bytes()
	out[0] = 99
	if r.At(0, 0).R != 1 {
		t.Error("Bytes did not return a copy")
	}
}

func TestNewRaster_InvalidArgument(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          int
	}{
		{"short buffer", 2, 2, 15},
		{"long buffer", 2, 2, 17},
		{"negative width", -1, 2, 0},
		{"negative height", 2, -1, 0},
		{"overflowing size", math.MaxInt / 2, 4, 0},
		{"overflowing size wide", math.MaxInt, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaster(tt.width, tt.height, make([]byte, tt.size))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewRaster_Empty(t *testing.T) {
	r, err := NewRaster(0, 0, nil)
	if err != nil {
		t.Fatalf("NewRaster(0,0) failed: %v", err)
	}
	if got := Dilate(r, NewKernel()); got.Width() != 0 || got.Height() != 0 {
		t.Errorf("Dilate of empty raster: got %dx%d", got.Width(), got.Height())
	}
}

func TestNewUniformRaster(t *testing.T) {
	r, err := NewUniformRaster(3, 2, White)
	if err != nil {
		t.Fatalf("NewUniformRaster failed: %v", err)
	}
	if diff := cmp.Diff([]string{"111", "111"}, rowsOf(r)); diff != "" {
		t.Errorf("uniform raster mismatch (-want +got):\n%s", diff)
	}
}

func TestRaster_AtOutOfRangePanics(t *testing.T) {
	r := rasterFromRows(t, "10", "01")

	coords := [][2]int{{2, 0}, {0, 2}, {-1, 0}, {0, -1}}
	for _, c := range coords {
		func() {
			defer func() {
				rec := recover()
				if rec == nil {
					t.Errorf("At(%d,%d) did not panic", c[0], c[1])
					return
				}
				if msg, _ := rec.(string); !strings.Contains(msg, "precondition violation") {
					t.Errorf("At(%d,%d) panic message: %v", c[0], c[1], rec)
				}
			}()
			r.At(c[0], c[1])
		}()
	}
}

func TestRaster_Equal(t *testing.T) {
	a := rasterFromRows(t, "10", "01")
	b := rasterFromRows(t, "10", "01")
	c := rasterFromRows(t, "10", "00")
	d := rasterFromRows(t, "1001")

	if !a.Equal(b) {
		t.Error("identical rasters should be equal")
	}
	if a.Equal(c) {
		t.Error("rasters with different pixels should not be equal")
	}
	if a.Equal(d) {
		t.Error("rasters with different dimensions should not be equal")
	}
	if a.Equal(nil) {
		t.Error("raster should not equal nil")
	}
}

func TestRaster_JSON(t *testing.T) {
	r := rasterFromRows(t, "101", "010")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Raster
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Equal(r) {
		t.Errorf("decoded raster differs: got %v", rowsOf(&decoded))
	}
}

func TestRaster_UnmarshalJSON_RejectsBadLength(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"short buffer", `{"width":2,"height":2,"pix":"AAAA"}`},
		{"size overflows to zero", `{"width":4611686018427387904,"height":4,"pix":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Raster
			err := json.Unmarshal([]byte(tt.json), &r)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewUniformRaster_Overflow(t *testing.T) {
	if _, err := NewUniformRaster(math.MaxInt, 2, White); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}
