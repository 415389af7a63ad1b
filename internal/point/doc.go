// Package point implements per-pixel operators: inversion, gamma correction,
// non-linear intensity curves and two pseudocoloring schemes.
//
// Channel mappings are precomputed into a 256-entry LUT whose entries are
// truncated, not rounded. Pseudocoloring works on the whole pixel. Every
// operator copies alpha and returns a new image.
package point
