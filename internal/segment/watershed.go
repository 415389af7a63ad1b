package segment

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// DefaultWatershedThreshold is the marker gradient threshold used when none
// is given.
const DefaultWatershedThreshold = 30

// WatershedOptions configures Watershed.
type WatershedOptions struct {
	// Threshold is the gradient below which a local minimum becomes a marker.
	Threshold int

	// BoundaryColor paints boundary pixels. Nil selects
	// DefaultBoundaryColor; any other value, transparent black included, is
	// used as given.
	BoundaryColor *color.NRGBA
}

// WatershedResult is the outcome of a watershed segmentation.
type WatershedResult struct {
	// Image is the source with boundary pixels painted.
	Image *raster.Image

	// Labels holds marker ids, propagated ids and -1 for boundaries.
	Labels *LabelGrid

	// Gradient is the byte Sobel magnitude the immersion ran on.
	Gradient []uint8

	// Markers is the number of seed markers found.
	Markers int

	// Boundaries is the number of pixels labeled -1.
	Boundaries int

	// Sweeps is the number of full level sweeps until nothing changed.
	Sweeps int
}

// sobelBytes returns the Sobel magnitude of the intensity image, truncated to
// a byte. Border pixels have gradient 0.
func sobelBytes(src *raster.Image) []uint8 {
	w, h := src.Width, src.Height
	gray := make([]int, w*h)
	for p := range gray {
		gray[p] = src.Intensity(p * 4)
	}

	grad := make([]uint8, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p := y*w + x
			gx := gray[p-w-1] + 2*gray[p-1] + gray[p+w-1] -
				gray[p-w+1] - 2*gray[p+1] - gray[p+w+1]
			gy := gray[p-w-1] + 2*gray[p-w] + gray[p-w+1] -
				gray[p+w-1] - 2*gray[p+w] - gray[p+w+1]
			grad[p] = uint8(math.Min(255, math.Sqrt(float64(gx*gx+gy*gy))))
		}
	}
	return grad
}

// Watershed segments src by simulated immersion of its gradient surface.
//
// Parameters:
//   - src: the image to segment
//   - opts: the marker threshold and the boundary color
//
// Returns the painted image with the marker, boundary and sweep counts, or
// ErrInvalidParam when the threshold is outside 0 to 255.
//
// # Algorithm
//
// Markers are interior pixels whose gradient is below the threshold and not
// greater than any of their 8 neighbors; plateaus therefore produce one
// marker per pixel. Markers are numbered from 1 in raster order.
//
// Immersion sweeps gradient levels 0 to 255. At each level every unlabeled
// interior pixel of that gradient looks at the distinct positive labels
// around it: one label is adopted, two or more make the pixel a boundary.
// Labels are updated in place so later pixels of the same sweep see them.
// Sweeps repeat until one changes nothing.
//
// Boundary pixels are painted with the boundary color; all other pixels are
// copied from src. An image without markers passes through unchanged.
func Watershed(src *raster.Image, opts WatershedOptions) (*WatershedResult, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if opts.Threshold < 0 || opts.Threshold > 255 {
		return nil, fmt.Errorf("%w: threshold must be in [0, 255], got %d", ErrInvalidParam, opts.Threshold)
	}
	highlight := DefaultBoundaryColor
	if opts.BoundaryColor != nil {
		highlight = *opts.BoundaryColor
	}

	grad := sobelBytes(src)
	grid := NewLabelGrid(src.Width, src.Height)
	markers := placeMarkers(grid, grad, opts.Threshold)
	sweeps := immerse(grid, grad)
	labels := grid.Labels

	dst := src.Clone()
	boundaries := 0
	for p, l := range labels {
		if l == Boundary {
			dst.SetColor(p*4, highlight)
			boundaries++
		}
	}

	return &WatershedResult{
		Image:      dst,
		Labels:     grid,
		Gradient:   grad,
		Markers:    markers,
		Boundaries: boundaries,
		Sweeps:     sweeps,
	}, nil
}

// placeMarkers labels every interior local minimum below threshold and
// returns how many were placed.
func placeMarkers(grid *LabelGrid, grad []uint8, threshold int) int {
	w, h := grid.Width, grid.Height
	labels := grid.Labels
	next := int32(1)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p := y*w + x
			if int(grad[p]) >= threshold {
				continue
			}
			minimum := true
			for _, n := range neighbors8 {
				if grad[p] > grad[(y+n[1])*w+x+n[0]] {
					minimum = false
					break
				}
			}
			if minimum {
				labels[p] = next
				next++
			}
		}
	}
	return int(next - 1)
}

// immerse grows the marker labels over the interior level by level until a
// full sweep changes nothing, and returns the number of sweeps.
func immerse(grid *LabelGrid, grad []uint8) int {
	w, h := grid.Width, grid.Height
	labels := grid.Labels
	sweeps := 0
	var found [8]int32
	for changed := true; changed; {
		changed = false
		sweeps++
		for level := 0; level <= 255; level++ {
			for y := 1; y < h-1; y++ {
				for x := 1; x < w-1; x++ {
					p := y*w + x
					if int(grad[p]) != level || labels[p] != Unlabeled {
						continue
					}
					distinct := found[:0]
					for _, n := range neighbors8 {
						l := labels[(y+n[1])*w+x+n[0]]
						if l > 0 && !contains(distinct, l) {
							distinct = append(distinct, l)
						}
					}
					switch {
					case len(distinct) == 1:
						labels[p] = distinct[0]
						changed = true
					case len(distinct) > 1:
						labels[p] = Boundary
						changed = true
					}
				}
			}
		}
	}
	return sweeps
}

func contains(s []int32, v int32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
