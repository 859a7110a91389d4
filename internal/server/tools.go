package server

import (
	"strings"

	"github.com/ironsheep/image-morph-mcp/internal/session"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sourceProperty describes the optional "source" argument shared by the
// read-only tools.
func sourceProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{sourceCurrent, sourceOriginal},
		"description": "Which raster to read: the result of the applied operations (current) or the binarized image as loaded (original). Default current",
		"default":     sourceCurrent,
	}
}

func cellProperties() map[string]interface{} {
	return map[string]interface{}{
		"x": map[string]interface{}{
			"type":        "integer",
			"description": "Kernel column (0-based, left to right)",
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"description": "Kernel row (0-based, top to bottom)",
		},
	}
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "morph_load",
			Description: "Load an image file, binarize it to black and white and make it the working image. Clears the operation history; the kernel is kept.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "morph_save",
			Description: "Write the working image to a file. The format follows the file extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the file to write (.png, .jpg, .gif, .tif, .bmp)",
					},
					"source": sourceProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "morph_render",
			Description: "Render the working image as a base64-encoded PNG. Scaling uses nearest-neighbor so pixels stay black or white.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor (e.g., 4.0 to inspect small features). Default 1.0",
						"default":     1.0,
					},
				},
			},
		},

		// Kernel
		{
			Name:        "morph_kernel",
			Description: "Show the structuring element as rows of '1' (foreground), '0' (background) and 'x' (don't care).",
			InputSchema: emptySchema(),
		},
		{
			Name:        "morph_kernel_resize",
			Description: "Resize the kernel to an odd dimension. Every cell becomes foreground.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dimension": map[string]interface{}{
						"type":        "integer",
						"description": "New kernel width and height. Must be odd and at least 1",
					},
				},
				"required": []string{"dimension"},
			},
		},
		{
			Name:        "morph_kernel_toggle",
			Description: "Flip one kernel cell between foreground and background. A don't-care cell becomes foreground.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cellProperties(),
				"required":   []string{"x", "y"},
			},
		},
		{
			Name:        "morph_kernel_dont_care",
			Description: "Mark one kernel cell as don't care. Hit-or-miss ignores it; dilate and erode skip it.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cellProperties(),
				"required":   []string{"x", "y"},
			},
		},

		// Operations
		{
			Name:        "morph_operations",
			Description: "List the operations morph_apply accepts and whether each one honors individual kernel cells.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "morph_apply",
			Description: "Apply a morphology operation to the working image with the current kernel. Available: " + strings.Join(session.OperationNames(), ", "),
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"operation": map[string]interface{}{
						"type":        "string",
						"enum":        session.OperationNames(),
						"description": "Operation name",
					},
					"repeat": map[string]interface{}{
						"type":        "integer",
						"description": "Number of times to apply the operation. Default 1",
						"default":     1,
					},
				},
				"required": []string{"operation"},
			},
		},
		{
			Name:        "morph_reset",
			Description: "Discard applied operations and return to the binarized original.",
			InputSchema: emptySchema(),
		},

		// Session
		{
			Name:        "morph_state",
			Description: "Describe the session: image size, kernel, and operation history. Optionally include both rasters so the state can be restored later.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"include_rasters": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the original and current rasters as base64 pixel data. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "morph_restore",
			Description: "Replace the session with a state previously returned by morph_state with include_rasters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"state": map[string]interface{}{
						"type":        "object",
						"description": "The \"state\" object from morph_state",
					},
				},
				"required": []string{"state"},
			},
		},

		// Analysis
		{
			Name:        "morph_sample_pixel",
			Description: "Get the color of a single pixel in RGBA, hex and HSL, with its luma and whether it is foreground.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate",
					},
					"source": sourceProperty(),
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "morph_stats",
			Description: "Count white, black and other pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
				},
			},
		},
		{
			Name:        "morph_diff",
			Description: "Compare the binarized original with the current result: changed pixel count, what they became, and a difference image.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "morph_components",
			Description: "Find connected white regions (8-connectivity) with their bounding boxes, areas and centroids, largest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Discard components with fewer pixels. Default 1",
						"default":     1,
					},
					"source": sourceProperty(),
				},
			},
		},
		{
			Name:        "morph_ocr",
			Description: "Read text from the working image with Tesseract. Cleaning the image with opening or closing first usually helps.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
						"default":     "eng",
					},
					"source": sourceProperty(),
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional rectangle to read; x2 and y2 are exclusive",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
			},
		},
	}
}
