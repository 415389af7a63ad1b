// Package server implements the MCP (Model Context Protocol) server for the
// image filter toolkit.
//
// This package provides a JSON-RPC 2.0 server that exposes the operators of
// the engine package as MCP tools. Each tool loads an image from disk, runs
// one operator and returns the result as a base64 PNG.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_list_operators: Describe every engine operator
//
// Neighborhood Filters:
//   - image_edge_detect: Laplacian, gradient, compass, Frey-Chen, point and line detection
//   - image_high_pass: High-pass and high-boost sharpening
//   - image_spatial_filter: Mean, median, max, min and mode
//   - image_edge_preserving_filter: Least-variance sub-region smoothing
//
// Halftoning and Thresholding:
//   - image_halftone: Ordered dithering and error diffusion
//   - image_threshold: Global, local and Niblack binarization
//
// Segmentation:
//   - image_region_growing: Seeded region labeling
//   - image_watershed: Watershed boundaries
//
// Point Transforms:
//   - image_point_transform: Invert, gamma and non-linear curves
//   - image_pseudocolor: Heatmap and false-color highlighting
//
// Generic:
//   - image_apply: Any operator by name with its parameters
//
// Every image tool accepts an optional output_path. Relative output paths are
// resolved against the configured output directory.
//
// # Image Caching
//
// Decoded source images are cached by path and reused across tool calls
// unless the cache is disabled in the configuration.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, _ := config.Load()
//	srv := server.NewWithConfig(cfg, logger.New(cfg.LogFormat, cfg.LogLevel))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
