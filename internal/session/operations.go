package session

import (
	"sort"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// Operation is a named raster transformation driven by the session kernel.
type Operation struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Sparse reports whether the operation honors Background and DontCare
	// cells. Operations that only look at the kernel dimension ignore cell
	// edits.
	Sparse bool `json:"uses_cells"`

	apply func(e morph.Engine, r *morph.Raster, k *morph.Kernel) (*morph.Raster, error)
}

// Apply runs the operation.
func (op Operation) Apply(e morph.Engine, r *morph.Raster, k *morph.Kernel) (*morph.Raster, error) {
	return op.apply(e, r, k)
}

var operations = make(map[string]Operation)

func register(op Operation) {
	operations[op.Name] = op
}

// Lookup returns the operation registered under name.
func Lookup(name string) (Operation, bool) {
	op, ok := operations[name]
	return op, ok
}

// Operations returns every registered operation sorted by name.
func Operations() []Operation {
	result := make([]Operation, 0, len(operations))
	for _, op := range operations {
		result = append(result, op)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// OperationNames returns the registered names sorted alphabetically.
func OperationNames() []string {
	ops := Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

// kernelOp adapts an infallible engine method.
func kernelOp(fn func(e morph.Engine, r *morph.Raster, k *morph.Kernel) *morph.Raster) func(morph.Engine, *morph.Raster, *morph.Kernel) (*morph.Raster, error) {
	return func(e morph.Engine, r *morph.Raster, k *morph.Kernel) (*morph.Raster, error) {
		return fn(e, r, k), nil
	}
}

// squareOp runs a square-window operation with the radius implied by the
// kernel dimension.
func squareOp(fn func(e morph.Engine, r *morph.Raster, radius int) (*morph.Raster, error)) func(morph.Engine, *morph.Raster, *morph.Kernel) (*morph.Raster, error) {
	return func(e morph.Engine, r *morph.Raster, k *morph.Kernel) (*morph.Raster, error) {
		return fn(e, r, k.Center())
	}
}

func init() {
	register(Operation{
		Name:        "dilate",
		Description: "Componentwise maximum over the Foreground cells of the kernel",
		Sparse:      true,
		apply:       kernelOp(morph.Engine.Dilate),
	})
	register(Operation{
		Name:        "erode",
		Description: "Componentwise minimum over the Foreground cells of the kernel",
		Sparse:      true,
		apply:       kernelOp(morph.Engine.Erode),
	})
	register(Operation{
		Name:        "open",
		Description: "Erode then dilate with a full kernel of the current dimension",
		apply:       kernelOp(morph.Engine.Open),
	})
	register(Operation{
		Name:        "close",
		Description: "Dilate then erode with a full kernel of the current dimension",
		apply:       kernelOp(morph.Engine.Close),
	})
	register(Operation{
		Name:        "hit_or_miss",
		Description: "White where Foreground cells see White and Background cells see Black",
		Sparse:      true,
		apply:       kernelOp(morph.Engine.HitOrMiss),
	})
	register(Operation{
		Name:        "thinning",
		Description: "Turn hit-or-miss matches Black",
		Sparse:      true,
		apply:       kernelOp(morph.Engine.Thinning),
	})
	register(Operation{
		Name:        "thickening",
		Description: "Turn hit-or-miss matches White",
		Sparse:      true,
		apply:       kernelOp(morph.Engine.Thickening),
	})

	register(Operation{
		Name:        "dilate_square",
		Description: "Square-window dilation with clamp-to-edge borders, radius (dimension-1)/2",
		apply:       squareOp(morph.Engine.DilateSquare),
	})
	register(Operation{
		Name:        "erode_square",
		Description: "Square-window erosion with clamp-to-edge borders, radius (dimension-1)/2",
		apply:       squareOp(morph.Engine.ErodeSquare),
	})
	register(Operation{
		Name:        "open_square",
		Description: "Square-window opening with clamp-to-edge borders, radius (dimension-1)/2",
		apply:       squareOp(morph.Engine.OpenSquare),
	})
	register(Operation{
		Name:        "close_square",
		Description: "Square-window closing with clamp-to-edge borders, radius (dimension-1)/2",
		apply:       squareOp(morph.Engine.CloseSquare),
	})
}
