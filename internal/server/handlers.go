package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/image-filters-mcp/internal/engine"
	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_threshold").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	fields := map[string]interface{}{
		"tool":        params.Name,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		s.log.Error("server", err, fields)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Info("server", "tool call completed", fields)

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each filter tool handler:
//  1. Unmarshals arguments from JSON
//  2. Maps its method argument to an engine operator kind
//  3. Hands the operator to runOperator, which loads, applies and encodes
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_list_operators":
		return engine.Catalog(), nil

	// Neighborhood Filters
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_high_pass":
		return s.handleImageHighPass(args)
	case "image_spatial_filter":
		return s.handleImageSpatialFilter(args)
	case "image_edge_preserving_filter":
		return s.handleImageEdgePreservingFilter(args)

	// Halftoning and Thresholding
	case "image_halftone":
		return s.handleImageHalftone(args)
	case "image_threshold":
		return s.handleImageThreshold(args)

	// Segmentation
	case "image_region_growing":
		return s.handleImageRegionGrowing(args)
	case "image_watershed":
		return s.handleImageWatershed(args)

	// Point Transforms
	case "image_point_transform":
		return s.handleImagePointTransform(args)
	case "image_pseudocolor":
		return s.handleImagePseudocolor(args)

	// Generic
	case "image_apply":
		return s.handleImageApply(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// FilterResult is returned by every tool that produces an image.
type FilterResult struct {
	raster.EncodedImage

	// Operator is the engine operator kind that produced the image.
	Operator engine.Kind `json:"operator"`

	// OutputPath is where the image was saved, when requested.
	OutputPath string `json:"output_path,omitempty"`

	// Segmentation statistics, present for the operators that report them.
	Regions    int `json:"regions,omitempty"`
	Markers    int `json:"markers,omitempty"`
	Boundaries int `json:"boundaries,omitempty"`
	Sweeps     int `json:"sweeps,omitempty"`
}

// runOperator loads path, applies op, optionally saves the result and
// returns it encoded.
func (s *Server) runOperator(path, outputPath string, op engine.Operator) (*FilterResult, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	src, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	res, err := engine.Apply(src, op)
	if err != nil {
		return nil, err
	}
	out := res.Image()

	encoded, err := raster.EncodePNG(out)
	if err != nil {
		return nil, err
	}
	result := &FilterResult{
		EncodedImage: *encoded,
		Operator:     op.Kind,
		Regions:      res.Regions,
		Markers:      res.Markers,
		Boundaries:   res.Boundaries,
		Sweeps:       res.Sweeps,
	}

	if outputPath != "" {
		dest := s.cfg.ResolveOutput(outputPath)
		if err := raster.Save(out, dest); err != nil {
			return nil, err
		}
		result.OutputPath = dest
	}

	s.log.Debug("engine", "operator applied", map[string]interface{}{
		"operator": string(op.Kind),
		"width":    out.Width,
		"height":   out.Height,
	})
	return result, nil
}

// methodKind maps a tool's method argument onto an operator kind. An empty
// method selects def.
func methodKind(tool, method string, def engine.Kind, allowed map[string]engine.Kind) (engine.Kind, error) {
	if method == "" {
		return def, nil
	}
	k, ok := allowed[method]
	if !ok {
		return "", fmt.Errorf("%s: unknown method %q", tool, method)
	}
	return k, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.GetDimensions(s.cache, a.Path)
}

// === Filter Handlers ===

// filterArgs is shared by the filter tools. Operator parameters are read from
// the same object as path and output_path.
type filterArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Method     string `json:"method"`
	engine.Params
}

func decodeFilterArgs(args json.RawMessage) (filterArgs, error) {
	var a filterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return a, err
	}
	return a, nil
}

var edgeMethods = map[string]engine.Kind{
	"laplacian":       engine.KindLaplacian,
	"gradient":        engine.KindGradient,
	"kirsch":          engine.KindKirsch,
	"robinson":        engine.KindRobinson,
	"frey_chen":       engine.KindFreyChen,
	"point_detection": engine.KindPointDetection,
	"line_detection":  engine.KindLineDetection,
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	kind, err := methodKind("image_edge_detect", a.Method, engine.KindGradient, edgeMethods)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}

func (s *Server) handleImageHighPass(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	kind := engine.KindHighPass
	if a.Variant == "high_boost" || a.Boost != nil {
		kind = engine.KindHighBoost
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}

var spatialMethods = map[string]engine.Kind{
	"mean":   engine.KindMean,
	"median": engine.KindMedian,
	"max":    engine.KindMax,
	"min":    engine.KindMin,
	"mode":   engine.KindMode,
}

func (s *Server) handleImageSpatialFilter(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	kind, err := methodKind("image_spatial_filter", a.Method, engine.KindMedian, spatialMethods)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}

func (s *Server) handleImageEdgePreservingFilter(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: engine.KindEdgePreserving, Params: a.Params})
}

var halftoneMethods = map[string]engine.Kind{
	"ordered":         engine.KindOrderedDither,
	"error_diffusion": engine.KindErrorDiffusion,
}

func (s *Server) handleImageHalftone(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	kind, err := methodKind("image_halftone", a.Method, engine.KindErrorDiffusion, halftoneMethods)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}

var thresholdMethods = map[string]engine.Kind{
	"global":  engine.KindThresholdGlobal,
	"local":   engine.KindThresholdLocal,
	"niblack": engine.KindNiblack,
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	kind, err := methodKind("image_threshold", a.Method, engine.KindThresholdGlobal, thresholdMethods)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}

// === Segmentation Handlers ===

func (s *Server) handleImageRegionGrowing(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: engine.KindRegionGrowing, Params: a.Params})
}

func (s *Server) handleImageWatershed(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: engine.KindWatershed, Params: a.Params})
}

// === Point Transform Handlers ===

var pointMethods = map[string]engine.Kind{
	"invert":     engine.KindInvert,
	"gamma":      engine.KindGamma,
	"non_linear": engine.KindNonLinear,
}

func (s *Server) handleImagePointTransform(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	kind, err := methodKind("image_point_transform", a.Method, engine.KindInvert, pointMethods)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}

var pseudocolorMethods = map[string]engine.Kind{
	"false_color": engine.KindFalseColor,
	"heatmap":     engine.KindHeatmap,
}

func (s *Server) handleImagePseudocolor(args json.RawMessage) (interface{}, error) {
	a, err := decodeFilterArgs(args)
	if err != nil {
		return nil, err
	}
	kind, err := methodKind("image_pseudocolor", a.Method, engine.KindHeatmap, pseudocolorMethods)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}

// === Generic Handler ===

type imageApplyArgs struct {
	Path       string        `json:"path"`
	OutputPath string        `json:"output_path"`
	Operator   string        `json:"operator"`
	Params     engine.Params `json:"params"`
}

func (s *Server) handleImageApply(args json.RawMessage) (interface{}, error) {
	var a imageApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := engine.ParseKind(a.Operator)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.Path, a.OutputPath, engine.Operator{Kind: kind, Params: a.Params})
}
