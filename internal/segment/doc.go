// Package segment partitions an image into labeled regions by region growing
// and by watershed immersion.
//
// Both algorithms use intensity, the rounded mean of R, G and B, rather than
// the weighted luminance used by the filters. Labels are kept in a LabelGrid
// that belongs to a single call.
//
// # Region Growing
//
// RegionGrow floods 8-connected pixels whose intensity is within a threshold
// of the region's starting pixel, first from the caller's seed and then from
// every unvisited pixel in raster order, so every pixel is labeled. Regions
// are painted with golden-angle hues computed with go-colorful.
//
// # Watershed
//
// Watershed computes a byte Sobel gradient, seeds markers at flat local
// minima and grows them by repeatedly sweeping gradient levels until the
// labels stop changing. Pixels reached by two different labels become
// boundaries and are painted in the highlight color. The sweep is iterative
// and sequential; it is not a priority-queue flood.
package segment
