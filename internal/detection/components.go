package detection

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-morph-mcp/internal/morph"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive), so Width = X2 - X1.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Centroid is the mean position of a component's pixels.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Component is one 8-connected region of White pixels.
type Component struct {
	// Bounds is the bounding box enclosing the component.
	Bounds Bounds `json:"bounds"`

	// Width is the horizontal extent in pixels (X2 - X1).
	Width int `json:"width"`

	// Height is the vertical extent in pixels (Y2 - Y1).
	Height int `json:"height"`

	// Area is the number of pixels in the component.
	Area int `json:"area"`

	// Centroid is rounded to two decimal places.
	Centroid Centroid `json:"centroid"`

	// Fill is Area divided by the bounding box area: 1.0 for a solid
	// rectangle, lower for thin or diagonal shapes.
	Fill float64 `json:"fill"`
}

// ComponentsResult contains the components found in a raster.
type ComponentsResult struct {
	// Components is sorted by area (largest first), then top-to-bottom and
	// left-to-right.
	Components []Component `json:"components"`

	// Count is the number of components returned.
	Count int `json:"count"`

	// Discarded is the number of components smaller than the minimum area.
	Discarded int `json:"discarded"`
}

// Components labels the 8-connected regions of exactly-White pixels.
//
// Parameters:
//   - r: Raster to analyze. Pixels that are not exactly White are background,
//     so the raster should be binarized first.
//   - minArea: Components with fewer pixels are counted in Discarded and left
//     out of the result. Must not be negative.
//
// Comparing the result before and after an opening shows what the opening
// removed.
func Components(r *morph.Raster, minArea int) (*ComponentsResult, error) {
	if minArea < 0 {
		return nil, errors.Errorf("invalid min_area %d: must not be negative", minArea)
	}

	width, height := r.Width(), r.Height()
	foreground := make([][]bool, height)
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		foreground[y] = make([]bool, width)
		visited[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			foreground[y][x] = r.At(x, y) == morph.White
		}
	}

	result := &ComponentsResult{Components: make([]Component, 0)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !foreground[y][x] || visited[y][x] {
				continue
			}
			pixels := floodFill(foreground, visited, x, y, width, height)
			if len(pixels) < minArea {
				result.Discarded++
				continue
			}
			result.Components = append(result.Components, describe(pixels))
		}
	}

	sort.SliceStable(result.Components, func(i, j int) bool {
		a, b := result.Components[i], result.Components[j]
		if a.Area != b.Area {
			return a.Area > b.Area
		}
		if a.Bounds.Y1 != b.Bounds.Y1 {
			return a.Bounds.Y1 < b.Bounds.Y1
		}
		return a.Bounds.X1 < b.Bounds.X1
	})
	result.Count = len(result.Components)

	return result, nil
}

func describe(pixels []Point) Component {
	minX, minY := pixels[0].X, pixels[0].Y
	maxX, maxY := minX, minY
	sumX, sumY := 0, 0
	for _, p := range pixels {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
		sumX += p.X
		sumY += p.Y
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	n := float64(len(pixels))
	return Component{
		Bounds: Bounds{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1},
		Width:  w,
		Height: h,
		Area:   len(pixels),
		Centroid: Centroid{
			X: math.Round(float64(sumX)/n*100) / 100,
			Y: math.Round(float64(sumY)/n*100) / 100,
		},
		Fill: math.Round(n/float64(w*h)*1000) / 1000,
	}
}

// floodFill collects the 8-connected region containing (startX, startY).
//
// Uses an explicit stack rather than recursion so large regions cannot
// overflow the goroutine stack.
func floodFill(mask, visited [][]bool, startX, startY, width, height int) []Point {
	var region []Point
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !mask[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		region = append(region, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return region
}
