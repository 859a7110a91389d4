package morph

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Cell is one entry of a structuring element.
type Cell uint8

const (
	// Foreground cells take part in dilation and erosion and must be White
	// for a hit-or-miss match.
	Foreground Cell = iota
	// Background cells are skipped by dilation and erosion and must be Black
	// for a hit-or-miss match.
	Background
	// DontCare cells are skipped by every operation.
	DontCare
)

// String returns the single-character text form: "1", "0" or "x".
func (c Cell) String() string {
	switch c {
	case Foreground:
		return "1"
	case Background:
		return "0"
	case DontCare:
		return "x"
	default:
		return "?"
	}
}

// MarshalText encodes the cell in its text form.
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func parseCell(r rune) (Cell, bool) {
	switch r {
	case '1':
		return Foreground, true
	case '0':
		return Background, true
	case 'x', 'X', '*':
		return DontCare, true
	}
	return 0, false
}

// Kernel is a square structuring element with an odd dimension, so that the
// center (dimension-1)/2 is a whole cell.
type Kernel struct {
	dimension int
	cells     []Cell
}

// NewKernel returns the 1x1 Foreground kernel, the identity for Dilate and Erode.
func NewKernel() *Kernel {
	return &Kernel{dimension: 1, cells: []Cell{Foreground}}
}

// NewFullKernel returns a dimension x dimension kernel with every cell set to
// Foreground.
func NewFullKernel(dimension int) (*Kernel, error) {
	if err := validateDimension(dimension); err != nil {
		return nil, err
	}
	return &Kernel{dimension: dimension, cells: fullCells(dimension)}, nil
}

func validateDimension(dimension int) error {
	if dimension <= 0 || dimension%2 == 0 {
		return errors.Wrapf(ErrInvalidArgument, "kernel dimension %d must be odd and positive", dimension)
	}
	return nil
}

func fullCells(dimension int) []Cell {
	// Foreground is the zero value.
	return make([]Cell, dimension*dimension)
}

// Resize replaces the kernel with a fresh all-Foreground matrix of the given
// dimension, discarding any cell edits. An even or non-positive dimension
// returns ErrInvalidArgument and leaves the kernel untouched.
func (k *Kernel) Resize(dimension int) error {
	if err := validateDimension(dimension); err != nil {
		return err
	}
	k.dimension = dimension
	k.cells = fullCells(dimension)
	return nil
}

// Dimension returns the side length of the kernel.
func (k *Kernel) Dimension() int { return k.dimension }

// Center returns the index of the center cell along either axis.
func (k *Kernel) Center() int { return (k.dimension - 1) / 2 }

// Contains reports whether (x, y) addresses a cell of this kernel.
func (k *Kernel) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < k.dimension && y < k.dimension
}

// Get returns the cell at column x, row y. It panics on out-of-range coordinates.
func (k *Kernel) Get(x, y int) Cell {
	if !k.Contains(x, y) {
		preconditionViolation("kernel cell (%d,%d) outside %dx%d kernel", x, y, k.dimension, k.dimension)
	}
	return k.cells[y*k.dimension+x]
}

// Set stores c at column x, row y. It panics on out-of-range coordinates.
func (k *Kernel) Set(x, y int, c Cell) {
	if !k.Contains(x, y) {
		preconditionViolation("kernel cell (%d,%d) outside %dx%d kernel", x, y, k.dimension, k.dimension)
	}
	k.cells[y*k.dimension+x] = c
}

// Toggle flips a cell between Foreground and Background. A DontCare cell
// becomes Foreground.
func (k *Kernel) Toggle(x, y int) Cell {
	next := Background
	if k.Get(x, y) != Foreground {
		next = Foreground
	}
	k.Set(x, y, next)
	return next
}

// Clone returns an independent copy of k.
func (k *Kernel) Clone() *Kernel {
	cells := make([]Cell, len(k.cells))
	copy(cells, k.cells)
	return &Kernel{dimension: k.dimension, cells: cells}
}

// Equal reports whether both kernels have the same dimension and cells.
func (k *Kernel) Equal(o *Kernel) bool {
	if k == nil || o == nil {
		return k == o
	}
	if k.dimension != o.dimension {
		return false
	}
	for i := range k.cells {
		if k.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rows renders the kernel one string per row using the Cell text form.
func (k *Kernel) Rows() []string {
	rows := make([]string, k.dimension)
	var sb strings.Builder
	for y := 0; y < k.dimension; y++ {
		sb.Reset()
		for x := 0; x < k.dimension; x++ {
			sb.WriteString(k.cells[y*k.dimension+x].String())
		}
		rows[y] = sb.String()
	}
	return rows
}

// ParseKernel builds a kernel from rows of '1' (Foreground), '0' (Background)
// and 'x' (DontCare). The rows must form an odd-sized square.
func ParseKernel(rows []string) (*Kernel, error) {
	dimension := len(rows)
	if err := validateDimension(dimension); err != nil {
		return nil, err
	}
	cells := make([]Cell, 0, dimension*dimension)
	for y, row := range rows {
		row = strings.TrimSpace(row)
		if len([]rune(row)) != dimension {
			return nil, errors.Wrapf(ErrInvalidArgument, "kernel row %d has %d cells, want %d", y, len([]rune(row)), dimension)
		}
		for _, r := range row {
			c, ok := parseCell(r)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidArgument, "kernel row %d: unknown cell %q", y, r)
			}
			cells = append(cells, c)
		}
	}
	return &Kernel{dimension: dimension, cells: cells}, nil
}

type kernelJSON struct {
	Dimension int      `json:"dimension"`
	Rows      []string `json:"rows"`
}

// MarshalJSON encodes the kernel as {"dimension":N,"rows":[...]}.
func (k *Kernel) MarshalJSON() ([]byte, error) {
	return json.Marshal(kernelJSON{Dimension: k.dimension, Rows: k.Rows()})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (k *Kernel) UnmarshalJSON(data []byte) error {
	var v kernelJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseKernel(v.Rows)
	if err != nil {
		return err
	}
	if parsed.dimension != v.Dimension {
		return errors.Wrapf(ErrInvalidArgument, "kernel dimension %d does not match %d rows", v.Dimension, len(v.Rows))
	}
	*k = *parsed
	return nil
}
