// Package raster defines the RGBA8 pixel buffer shared by every operator in
// this module, together with the codec adapter and decoded image cache used
// by the MCP host.
//
// # Pixel Layout
//
// An Image stores Width*Height pixels row-major, four bytes each, in R, G, B,
// A order without alpha premultiplication. Pixel (x, y) starts at byte
// (y*Width + x) * 4. (0,0) is the top-left corner.
//
// # Gray Conversions
//
// Two gray conversions exist and are not interchangeable:
//   - Luminance: 0.299R + 0.587G + 0.114B as float64, used by gradient,
//     edge, halftoning and threshold operators.
//   - Intensity: round((R+G+B)/3), used by region growing and watershed.
//
// # Storing Computed Values
//
// ClampByte is the single conversion from a computed float to a byte: NaN
// becomes 0, the value is clamped to [0, 255] and rounded half to even.
//
// # Codec
//
// Decoding and encoding are delegated to github.com/disintegration/imaging
// (PNG, JPEG, GIF, BMP, TIFF) with WebP decoding registered from
// golang.org/x/image. The algorithmic packages never touch files.
package raster
