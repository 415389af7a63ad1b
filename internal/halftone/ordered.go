package halftone

import (
	"errors"
	"fmt"
	"sort"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// ErrUnknownMatrix is returned for an unknown ordered or diffusion matrix name.
var ErrUnknownMatrix = errors.New("unknown halftone matrix")

// ThresholdMatrix is an ordered-dither threshold map holding the ranks
// 1..rows*cols.
type ThresholdMatrix [][]int

// Ordered dither matrices.
var OrderedMatrices = map[string]ThresholdMatrix{
	"2x2": {
		{1, 3},
		{4, 2},
	},
	"2x3": {
		{1, 4, 5},
		{3, 2, 6},
	},
	"3x3": {
		{3, 7, 4},
		{6, 1, 9},
		{2, 8, 5},
	},
}

// OrderedNames returns the ordered matrix names in sorted order.
func OrderedNames() []string {
	names := make([]string, 0, len(OrderedMatrices))
	for name := range OrderedMatrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Threshold returns the luminance a pixel at (x, y) must exceed to be white.
func (m ThresholdMatrix) Threshold(x, y int) float64 {
	rows, cols := len(m), len(m[0])
	return float64(m[y%rows][x%cols]*255) / float64(rows*cols+1)
}

// Ordered applies ordered dithering with the named threshold matrix.
//
// Each pixel is white when its luminance is strictly greater than the
// matrix threshold tiled over the image, black otherwise. Alpha is kept.
func Ordered(src *raster.Image, name string) (*raster.Image, error) {
	m, ok := OrderedMatrices[name]
	if !ok {
		return nil, fmt.Errorf("%w: ordered %q", ErrUnknownMatrix, name)
	}
	return OrderedWith(src, m)
}

// OrderedWith applies ordered dithering with a caller-supplied matrix.
func OrderedWith(src *raster.Image, m ThresholdMatrix) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, fmt.Errorf("%w: empty threshold matrix", ErrUnknownMatrix)
	}

	dst := src.Clone()
	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < src.Width; x++ {
				i := src.Offset(x, y)
				var v uint8
				if src.Luminance(i) > m.Threshold(x, y) {
					v = 255
				}
				dst.SetGray(i, v, src)
			}
		}
	})
	return dst, nil
}
