package filters

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// DefaultNiblackK is the Niblack weight used when none is given.
const DefaultNiblackK = -0.2

// LocalStat selects the window statistic a local threshold compares against.
type LocalStat string

// Local threshold statistics.
const (
	LocalMean LocalStat = "mean"
	LocalMax  LocalStat = "max"
	LocalMin  LocalStat = "min"
)

// binarize writes 255 or 0 for every pixel, keeping alpha. keep is called
// with the luminance plane and the pixel coordinates. Rows run in parallel.
func binarize(src *raster.Image, keep func(plane []float64, x, y int) bool) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	plane := src.LuminancePlane()
	dst := src.Clone()
	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < src.Width; x++ {
				var v uint8
				if keep(plane, x, y) {
					v = 255
				}
				dst.SetGray(src.Offset(x, y), v, src)
			}
		}
	})
	return dst, nil
}

// ThresholdGlobal marks pixels whose luminance is at least t as white.
func ThresholdGlobal(src *raster.Image, t float64) (*raster.Image, error) {
	if t < 0 || t > 255 {
		return nil, fmt.Errorf("%w: threshold must be in [0, 255], got %v", ErrInvalidParam, t)
	}
	return binarize(src, func(plane []float64, x, y int) bool {
		return plane[y*src.Width+x] >= t
	})
}

func validWindowSize(size int) error {
	if size <= 0 || size%2 == 0 {
		return fmt.Errorf("%w: window size must be a positive odd number, got %d", ErrInvalidParam, size)
	}
	return nil
}

// clipped visits the luminance samples of the size x size window around
// (x, y) that lie inside the image, row-major.
func clipped(plane []float64, width, height, x, y, half int, visit func(v float64)) {
	for dy := -half; dy <= half; dy++ {
		ny := y + dy
		if ny < 0 || ny >= height {
			continue
		}
		for dx := -half; dx <= half; dx++ {
			nx := x + dx
			if nx < 0 || nx >= width {
				continue
			}
			visit(plane[ny*width+nx])
		}
	}
}

// ThresholdLocal compares each pixel's luminance with a statistic of its
// size x size window, clipped at the image edge. The pixel becomes white when
// its luminance is at least the statistic.
//
// The max statistic starts from 0 and the min statistic from 255. The window
// always contains the center pixel, so LocalMin marks every pixel white.
func ThresholdLocal(src *raster.Image, size int, stat LocalStat) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := validWindowSize(size); err != nil {
		return nil, err
	}
	half := size / 2
	w, h := src.Width, src.Height

	var keep func(plane []float64, x, y int) bool
	switch stat {
	case LocalMean:
		keep = func(plane []float64, x, y int) bool {
			c := plane[y*w+x]
			var sumD float64
			count := 0
			clipped(plane, w, h, x, y, half, func(v float64) {
				sumD += v - c
				count++
			})
			return 0 >= sumD/float64(count)
		}
	case LocalMax:
		keep = func(plane []float64, x, y int) bool {
			var m float64
			clipped(plane, w, h, x, y, half, func(v float64) {
				if v > m {
					m = v
				}
			})
			return plane[y*w+x] >= m
		}
	case LocalMin:
		keep = func(plane []float64, x, y int) bool {
			m := 255.0
			clipped(plane, w, h, x, y, half, func(v float64) {
				if v < m {
					m = v
				}
			})
			return plane[y*w+x] >= m
		}
	default:
		return nil, fmt.Errorf("%w: unknown local statistic %q", ErrInvalidParam, stat)
	}
	return binarize(src, keep)
}

// Niblack thresholds each pixel against mean + k*stddev of its clipped
// size x size window. The standard deviation is the population one; a
// slightly negative variance from rounding is treated as zero.
//
// Statistics are accumulated as deviations from the center luminance, so a
// uniform window yields exactly zero mean and deviation and every pixel of a
// uniform image passes.
func Niblack(src *raster.Image, size int, k float64) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := validWindowSize(size); err != nil {
		return nil, err
	}
	half := size / 2
	w, h := src.Width, src.Height
	return binarize(src, func(plane []float64, x, y int) bool {
		c := plane[y*w+x]
		var sumD, sumD2 float64
		count := 0
		clipped(plane, w, h, x, y, half, func(v float64) {
			d := v - c
			sumD += d
			sumD2 += d * d
			count++
		})
		n := float64(count)
		meanD := sumD / n
		std := math.Sqrt(math.Max(0, sumD2/n-meanD*meanD))
		return 0 >= meanD+k*std
	})
}
