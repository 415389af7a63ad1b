package engine

import (
	"sort"

	"github.com/ironsheep/image-filters-mcp/internal/filters"
	"github.com/ironsheep/image-filters-mcp/internal/halftone"
	"github.com/ironsheep/image-filters-mcp/internal/point"
)

// ParamInfo describes one parameter an operator reads.
type ParamInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
}

// OperatorInfo describes an operator kind for clients.
type OperatorInfo struct {
	Kind        Kind        `json:"kind"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Params      []ParamInfo `json:"params,omitempty"`
}

func gradientNames() []string {
	names := make([]string, 0, len(filters.GradientPairs))
	for name := range filters.GradientPairs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func highPassNames() []string {
	names := make([]string, 0, len(filters.HighPassKernels))
	for name := range filters.HighPassKernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	sizeParam = func(def int, enum []string, what string) ParamInfo {
		return ParamInfo{Name: "size", Type: "integer", Description: what, Default: def, Enum: enum}
	}
	thresholdParam = func(def interface{}, what string) ParamInfo {
		return ParamInfo{Name: "threshold", Type: "number", Description: what, Default: def}
	}
)

// Catalog lists every operator kind with its parameters, sorted by kind.
func Catalog() []OperatorInfo {
	ops := []OperatorInfo{
		{KindLaplacian, "edge", "Absolute Laplacian response on luminance", []ParamInfo{
			{Name: "variant", Type: "string", Description: "h1 (4-neighbor) or h2 (8-neighbor)", Default: "h1", Enum: []string{"h1", "h2"}},
		}},
		{KindGradient, "edge", "Gradient pair on luminance", []ParamInfo{
			{Name: "operator", Type: "string", Description: "Gradient kernel pair", Default: filters.Sobel.Name, Enum: gradientNames()},
			{Name: "mode", Type: "string", Description: "Horizontal, vertical or combined response", Default: string(filters.ModeMagnitude),
				Enum: []string{string(filters.ModeGx), string(filters.ModeGy), string(filters.ModeMagnitude)}},
		}},
		{KindKirsch, "edge", "Largest response of the eight Kirsch compass masks", nil},
		{KindRobinson, "edge", "Largest response of the eight Robinson compass masks", nil},
		{KindFreyChen, "edge", "Absolute response of the Frey-Chen mask", nil},
		{KindHighPass, "sharpen", "High-pass mask applied per color channel", []ParamInfo{
			{Name: "variant", Type: "string", Description: "Mask variant", Default: "h1", Enum: highPassNames()},
		}},
		{KindHighBoost, "sharpen", "High-boost mask with center boost+4, per color channel", []ParamInfo{
			{Name: "boost", Type: "number", Description: "Amplification factor", Default: filters.DefaultBoost},
		}},
		{KindPointDetection, "detection", "White where the absolute Laplacian exceeds the threshold", []ParamInfo{
			thresholdParam(30, "Response threshold"),
		}},
		{KindLineDetection, "detection", "White where the absolute line mask response exceeds the threshold", []ParamInfo{
			{Name: "direction", Type: "string", Description: "Line orientation", Default: "horizontal", Enum: []string{"horizontal", "vertical", "45", "135"}},
			thresholdParam(30, "Response threshold"),
		}},
		{KindMean, "smooth", "Arithmetic mean of the neighborhood per channel", []ParamInfo{
			sizeParam(3, []string{"3", "5"}, "Kernel size"),
		}},
		{KindMedian, "smooth", "Median of the neighborhood per channel", []ParamInfo{
			sizeParam(3, []string{"3", "5"}, "Kernel size"),
		}},
		{KindMax, "smooth", "Maximum of the 3x3 neighborhood per channel", nil},
		{KindMin, "smooth", "Minimum of the 3x3 neighborhood per channel", nil},
		{KindMode, "smooth", "Most frequent value of the 3x3 neighborhood per channel", nil},
		{KindEdgePreserving, "smooth", "Mean of the least varying 5x5 sub-region per channel", []ParamInfo{
			{Name: "strategy", Type: "string", Description: "Sub-region geometry", Default: filters.Kawahara.Name, Enum: filters.StrategyNames()},
		}},
		{KindOrderedDither, "halftone", "Ordered dithering with a tiled threshold matrix", []ParamInfo{
			{Name: "matrix", Type: "string", Description: "Threshold matrix", Default: "2x2", Enum: halftone.OrderedNames()},
		}},
		{KindErrorDiffusion, "halftone", "Error-diffusion dithering to black and white", []ParamInfo{
			{Name: "matrix", Type: "string", Description: "Diffusion matrix", Default: halftone.FloydSteinberg.Name, Enum: halftone.DiffusionNames()},
		}},
		{KindThresholdGlobal, "threshold", "White where luminance is at least the threshold", []ParamInfo{
			thresholdParam(128, "Luminance threshold 0-255"),
		}},
		{KindThresholdLocal, "threshold", "White where luminance is at least a local window statistic", []ParamInfo{
			{Name: "statistic", Type: "string", Description: "Window statistic", Default: string(filters.LocalMean),
				Enum: []string{string(filters.LocalMean), string(filters.LocalMax), string(filters.LocalMin)}},
			sizeParam(3, nil, "Odd window size"),
		}},
		{KindNiblack, "threshold", "White where luminance is at least mean + k*stddev of the window", []ParamInfo{
			sizeParam(3, nil, "Odd window size"),
			{Name: "k", Type: "number", Description: "Standard deviation weight", Default: filters.DefaultNiblackK},
		}},
		{KindRegionGrowing, "segment", "Label 8-connected regions of similar intensity and paint each in its own color", []ParamInfo{
			{Name: "seed_x", Type: "integer", Description: "Seed X coordinate", Default: 0},
			{Name: "seed_y", Type: "integer", Description: "Seed Y coordinate", Default: 0},
			thresholdParam(30, "Maximum intensity difference from the region's start pixel, 0-255"),
		}},
		{KindWatershed, "segment", "Paint watershed boundaries between gradient basins", []ParamInfo{
			thresholdParam(30, "Marker gradient threshold, 0-255"),
			{Name: "boundary_color", Type: "string", Description: "Hex boundary color", Default: "#FF0000"},
		}},
		{KindInvert, "point", "Replace every color channel v with 255-v", nil},
		{KindGamma, "point", "Gamma correction 255*(v/255)^gamma per channel", []ParamInfo{
			{Name: "gamma", Type: "number", Description: "Positive exponent; below 1 brightens, above 1 darkens", Default: 1.0},
		}},
		{KindNonLinear, "point", "Non-linear intensity curve per channel", []ParamInfo{
			{Name: "curve", Type: "string", Description: "Curve", Default: string(point.CurveLog), Enum: point.CurveNames()},
		}},
		{KindFalseColor, "pseudocolor", "Blend a highlight color into pixels whose G/B ratio exceeds the threshold and whose green is above 100", []ParamInfo{
			thresholdParam(point.DefaultHighlightRatio, "G/B ratio threshold"),
			{Name: "strength", Type: "number", Description: "Highlight blend weight 0-1", Default: point.DefaultHighlightStrength},
			{Name: "highlight_color", Type: "string", Description: "Hex highlight color", Default: "#00FFFF"},
		}},
		{KindHeatmap, "pseudocolor", "Map Rec. 709 luma onto a blue-to-red heat ramp", nil},
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Kind < ops[j].Kind })
	return ops
}

// Kinds returns every operator kind in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(handlers))
	for k := range handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
