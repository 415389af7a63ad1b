// Package engine dispatches a named operator with its parameters to the
// filters, halftone and segment packages.
//
// Apply is the single entry point. Every operator takes one source image,
// leaves it untouched and returns a Result holding a new image of the same
// size. Catalog describes the operator kinds, their parameters and defaults
// for MCP clients.
package engine
