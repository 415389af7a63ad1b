package server

import (
	"strings"

	"github.com/ironsheep/image-filters-mcp/internal/engine"
	"github.com/ironsheep/image-filters-mcp/internal/filters"
	"github.com/ironsheep/image-filters-mcp/internal/halftone"
	"github.com/ironsheep/image-filters-mcp/internal/point"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSchema builds an object schema with the path and output_path
// properties every filter tool shares, plus extra.
func imageSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"output_path": map[string]interface{}{
			"type":        "string",
			"description": "Optional file to save the result to. Relative paths resolve against IMAGE_MCP_OUTPUT_DIR. The format follows the extension.",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"path"},
	}
}

func enumProp(description string, def string, values []string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        values,
		"default":     def,
	}
}

func numberProp(description string, def float64) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
		"default":     def,
	}
}

func integerProp(description string, def int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"default":     def,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has transparency.",
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
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
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
			Name:        "image_list_operators",
			Description: "List every operator accepted by image_apply with its parameters, defaults and allowed values.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Neighborhood Filters
		{
			Name:        "image_edge_detect",
			Description: "Detect edges, isolated points or lines on the luminance of an image. Returns a grayscale PNG where brighter means a stronger response.",
			InputSchema: imageSchema(map[string]interface{}{
				"method": enumProp("Edge operator", "gradient", []string{
					"laplacian", "gradient", "kirsch", "robinson", "frey_chen", "point_detection", "line_detection",
				}),
				"variant":   enumProp("Laplacian mask (method=laplacian)", "h1", []string{"h1", "h2"}),
				"operator":  enumProp("Gradient pair (method=gradient)", filters.Sobel.Name, []string{"roberts", "roberts_cross", "prewitt", "sobel"}),
				"mode":      enumProp("Gradient output (method=gradient)", "magnitude", []string{"gx", "gy", "magnitude"}),
				"direction": enumProp("Line orientation (method=line_detection)", "horizontal", []string{"horizontal", "vertical", "45", "135"}),
				"threshold": numberProp("Response threshold for point and line detection", 30),
			}),
		},
		{
			Name:        "image_high_pass",
			Description: "Sharpen an image with a high-pass or high-boost mask applied to each color channel.",
			InputSchema: imageSchema(map[string]interface{}{
				"variant": enumProp("Mask variant; high_boost uses the boost factor", "h1", []string{"h1", "h2", "m1", "m2", "m3", "high_boost"}),
				"boost":   numberProp("High-boost amplification; setting it selects high_boost", filters.DefaultBoost),
			}),
		},
		{
			Name:        "image_spatial_filter",
			Description: "Smooth or denoise an image with an order-statistic filter applied to each color channel. Border pixels are copied unchanged.",
			InputSchema: imageSchema(map[string]interface{}{
				"method": enumProp("Filter", "median", []string{"mean", "median", "max", "min", "mode"}),
				"size":   integerProp("Kernel size for mean and median: 3 or 5", 3),
			}),
		},
		{
			Name:        "image_edge_preserving_filter",
			Description: "Smooth an image while keeping edges by averaging the least varying sub-region of each 5x5 neighborhood.",
			InputSchema: imageSchema(map[string]interface{}{
				"strategy": enumProp("Sub-region geometry", filters.Kawahara.Name, filters.StrategyNames()),
			}),
		},

		// Halftoning and Thresholding
		{
			Name:        "image_halftone",
			Description: "Convert an image to black and white dots by ordered dithering or error diffusion.",
			InputSchema: imageSchema(map[string]interface{}{
				"method": enumProp("Halftoning method", "error_diffusion", []string{"ordered", "error_diffusion"}),
				"matrix": map[string]interface{}{
					"type":        "string",
					"description": "Matrix name. Ordered: " + strings.Join(halftone.OrderedNames(), ", ") + " (default 2x2). Error diffusion: " + strings.Join(halftone.DiffusionNames(), ", ") + " (default floyd_steinberg).",
				},
			}),
		},
		{
			Name:        "image_threshold",
			Description: "Binarize an image by comparing luminance against a global level, a local window statistic, or a Niblack threshold.",
			InputSchema: imageSchema(map[string]interface{}{
				"method":    enumProp("Threshold method", "global", []string{"global", "local", "niblack"}),
				"threshold": numberProp("Global threshold 0-255", 128),
				"statistic": enumProp("Local statistic (method=local)", "mean", []string{"mean", "max", "min"}),
				"size":      integerProp("Odd window size for local and niblack", 3),
				"k":         numberProp("Niblack standard deviation weight", filters.DefaultNiblackK),
			}),
		},

		// Segmentation
		{
			Name:        "image_region_growing",
			Description: "Segment an image into 8-connected regions of similar intensity starting at a seed pixel. Each region is painted in its own color; the region count is returned.",
			InputSchema: imageSchema(map[string]interface{}{
				"seed_x":    integerProp("Seed X coordinate", 0),
				"seed_y":    integerProp("Seed Y coordinate", 0),
				"threshold": integerProp("Maximum intensity difference 0-255", 30),
			}),
		},
		{
			Name:        "image_watershed",
			Description: "Segment an image by watershed immersion of its Sobel gradient and paint the boundaries between basins.",
			InputSchema: imageSchema(map[string]interface{}{
				"threshold": integerProp("Marker gradient threshold 0-255", 30),
				"boundary_color": map[string]interface{}{
					"type":        "string",
					"description": "Boundary color as hex",
					"default":     "#FF0000",
				},
			}),
		},

		// Point Transforms
		{
			Name:        "image_point_transform",
			Description: "Remap every color channel through a lookup table: invert, gamma correction or a non-linear curve. Alpha is kept.",
			InputSchema: imageSchema(map[string]interface{}{
				"method": enumProp("Transform", "invert", []string{"invert", "gamma", "non_linear"}),
				"gamma":  numberProp("Gamma exponent (method=gamma); values below 1 brighten", 1.0),
				"curve":  enumProp("Curve (method=non_linear)", string(point.CurveLog), point.CurveNames()),
			}),
		},
		{
			Name:        "image_pseudocolor",
			Description: "Color an image by intensity as a blue to red heatmap, or highlight pixels whose green/blue ratio marks them as targets.",
			InputSchema: imageSchema(map[string]interface{}{
				"method":    enumProp("Mapping", "heatmap", []string{"heatmap", "false_color"}),
				"threshold": numberProp("Green/blue ratio above which a pixel is highlighted (method=false_color)", point.DefaultHighlightRatio),
				"strength":  numberProp("Blend weight of the highlight color, 0-1 (method=false_color)", point.DefaultHighlightStrength),
				"highlight_color": map[string]interface{}{
					"type":        "string",
					"description": "Highlight color as hex (method=false_color)",
					"default":     "#00FFFF",
				},
			}),
		},

		// Generic
		{
			Name:        "image_apply",
			Description: "Apply any operator by name with its parameters. Use image_list_operators to discover operators and parameters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to save the result to",
					},
					"operator": map[string]interface{}{
						"type":        "string",
						"description": "Operator kind, e.g. median or niblack",
						"enum":        operatorNames(),
					},
					"params": map[string]interface{}{
						"type":        "object",
						"description": "Operator parameters as listed by image_list_operators",
					},
				},
				"required": []string{"path", "operator"},
			},
		},
	}
}

func operatorNames() []string {
	kinds := engine.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
