package morph

import "testing"

func TestBinarize(t *testing.T) {
	tests := []struct {
		name string
		in   Pixel
		want Pixel
	}{
		{"black", Pixel{0, 0, 0, 255}, Black},
		{"white", Pixel{255, 255, 255, 255}, White},
		{"red is dark", Pixel{200, 10, 10, 255}, Black},    // luma 50.4
		{"green is bright", Pixel{10, 200, 10, 255}, White}, // luma 145.9
		{"blue is dark", Pixel{10, 10, 250, 255}, Black},    // luma 27.3
		{"light gray", Pixel{130, 130, 130, 255}, White},
		{"dark gray", Pixel{120, 120, 120, 255}, Black},
		{"transparent white forced opaque", Pixel{255, 255, 255, 0}, White},
		{"transparent black forced opaque", Pixel{0, 0, 0, 0}, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewUniformRaster(1, 1, tt.in)
			if err != nil {
				t.Fatalf("NewUniformRaster failed: %v", err)
			}
			if got := Binarize(r, DefaultThreshold).At(0, 0); got != tt.want {
				t.Errorf("Binarize(%v): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBinarize_ChannelsAreZeroOr255(t *testing.T) {
	r := Binarize(noiseRaster(t, 31, 17, 7), DefaultThreshold)
	for i, b := range r.Bytes() {
		if b != 0 && b != 255 {
			t.Fatalf("byte %d = %d, want 0 or 255", i, b)
		}
	}
}

func TestBinarize_Idempotent(t *testing.T) {
	once := Binarize(noiseRaster(t, 20, 20, 3), DefaultThreshold)
	twice := Binarize(once, DefaultThreshold)
	if !once.Equal(twice) {
		t.Error("re-binarizing changed the raster")
	}
}

func TestBinarize_DoesNotModifyInput(t *testing.T) {
	in := noiseRaster(t, 8, 8, 11)
	before := in.Bytes()
	Binarize(in, DefaultThreshold)
	if !in.Equal(mustRasterFromBytes(t, 8, 8, before)) {
		t.Error("Binarize modified its input")
	}
}

func TestLuma(t *testing.T) {
	if got := Luma(Black); got != 0 {
		t.Errorf("Luma(Black) = %v", got)
	}
	if got := Luma(Pixel{0, 100, 0, 255}); got < 71.5 || got > 71.53 {
		t.Errorf("Luma(green 100) = %v, want 71.52", got)
	}
}

func mustRasterFromBytes(t *testing.T, width, height int, pix []byte) *Raster {
	t.Helper()
	r, err := NewRaster(width, height, pix)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	return r
}
