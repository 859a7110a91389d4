package morph

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestNewKernel(t *testing.T) {
	k := NewKernel()
	if k.Dimension() != 1 {
		t.Errorf("Dimension: got %d, want 1", k.Dimension())
	}
	if k.Center() != 0 {
		t.Errorf("Center: got %d, want 0", k.Center())
	}
	if k.Get(0, 0) != Foreground {
		t.Errorf("cell: got %v, want Foreground", k.Get(0, 0))
	}
}

func TestKernel_Resize(t *testing.T) {
	k := NewKernel()
	if err := k.Resize(5); err != nil {
		t.Fatalf("Resize(5) failed: %v", err)
	}
	if k.Dimension() != 5 || k.Center() != 2 {
		t.Errorf("got dimension %d center %d, want 5 and 2", k.Dimension(), k.Center())
	}

	// Edits are discarded by the next resize.
	k.Set(1, 1, Background)
	k.Set(2, 3, DontCare)
	if err := k.Resize(3); err != nil {
		t.Fatalf("Resize(3) failed: %v", err)
	}
	if diff := cmp.Diff([]string{"111", "111", "111"}, k.Rows()); diff != "" {
		t.Errorf("Resize did not reset cells (-want +got):\n%s", diff)
	}
}

func TestKernel_ResizeInvalidLeavesKernelUnchanged(t *testing.T) {
	k := mustKernel(t, "1x1", "010", "1x1")
	before := k.Clone()

	for _, dim := range []int{0, 2, 4, -1, -3} {
		t.Run("", func(t *testing.T) {
			err := k.Resize(dim)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Resize(%d): got %v, want ErrInvalidArgument", dim, err)
			}
			if !k.Equal(before) {
				t.Errorf("Resize(%d) mutated kernel: got %v, want %v", dim, k.Rows(), before.Rows())
			}
		})
	}
}

func TestNewFullKernel(t *testing.T) {
	k, err := NewFullKernel(3)
	if err != nil {
		t.Fatalf("NewFullKernel failed: %v", err)
	}
	if diff := cmp.Diff([]string{"111", "111", "111"}, k.Rows()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := NewFullKernel(2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewFullKernel(2): got %v, want ErrInvalidArgument", err)
	}
}

func TestKernel_GetSetRowMajor(t *testing.T) {
	k := mustFullKernel(t, 3)
	k.Set(2, 0, Background) // column 2, row 0
	k.Set(0, 1, DontCare)   // column 0, row 1

	want := []string{"110", "x11", "111"}
	if diff := cmp.Diff(want, k.Rows()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestKernel_Toggle(t *testing.T) {
	k := mustFullKernel(t, 3)

	if got := k.Toggle(1, 1); got != Background {
		t.Errorf("first toggle: got %v, want Background", got)
	}
	if got := k.Toggle(1, 1); got != Foreground {
		t.Errorf("second toggle: got %v, want Foreground", got)
	}

	k.Set(0, 0, DontCare)
	if got := k.Toggle(0, 0); got != Foreground {
		t.Errorf("toggle from DontCare: got %v, want Foreground", got)
	}
}

func TestKernel_OutOfRangePanics(t *testing.T) {
	k := mustFullKernel(t, 3)

	tests := []struct {
		name string
		fn   func()
	}{
		{"get column", func() { k.Get(3, 0) }},
		{"get row", func() { k.Get(0, 3) }},
		{"set negative", func() { k.Set(-1, 0, Background) }},
		{"toggle", func() { k.Toggle(0, 5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}

	if k.Contains(3, 0) || !k.Contains(2, 2) {
		t.Error("Contains disagrees with kernel bounds")
	}
}

func TestKernel_CloneIsIndependent(t *testing.T) {
	k := mustFullKernel(t, 3)
	c := k.Clone()
	c.Set(1, 1, Background)
	if k.Get(1, 1) != Foreground {
		t.Error("Clone shares cells with the original")
	}
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr bool
	}{
		{"identity", []string{"1"}, false},
		{"mixed", []string{"1x0", "010", "X*1"}, false},
		{"even", []string{"11", "11"}, true},
		{"empty", nil, true},
		{"ragged", []string{"111", "11", "111"}, true},
		{"bad cell", []string{"1a1", "111", "111"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ParseKernel(tt.rows)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("got %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKernel failed: %v", err)
			}
			if k.Dimension() != len(tt.rows) {
				t.Errorf("Dimension: got %d, want %d", k.Dimension(), len(tt.rows))
			}
		})
	}

	k := mustKernel(t, "1x0", "010", "X*1")
	if diff := cmp.Diff([]string{"1x0", "010", "xx1"}, k.Rows()); diff != "" {
		t.Errorf("Rows (-want +got):\n%s", diff)
	}
}

func TestKernel_JSON(t *testing.T) {
	k := mustKernel(t, "1x0", "010", "0x1")

	data, err := json.Marshal(k)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"dimension":3,"rows":["1x0","010","0x1"]}` {
		t.Errorf("Marshal: got %s", data)
	}

	var decoded Kernel
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Equal(k) {
		t.Errorf("decoded kernel differs: got %v", decoded.Rows())
	}

	err = json.Unmarshal([]byte(`{"dimension":5,"rows":["111","111","111"]}`), &decoded)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("mismatched dimension: got %v, want ErrInvalidArgument", err)
	}
}

func TestCell_String(t *testing.T) {
	want := map[Cell]string{Foreground: "1", Background: "0", DontCare: "x"}
	for c, s := range want {
		if c.String() != s {
			t.Errorf("%d.String(): got %s, want %s", c, c.String(), s)
		}
	}
}
