package filters

import (
	"fmt"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// validKernelSize accepts the 3x3 and 5x5 neighborhoods.
func validKernelSize(size int) error {
	if size != 3 && size != 5 {
		return fmt.Errorf("%w: kernel size must be 3 or 5, got %d", ErrInvalidParam, size)
	}
	return nil
}

// Mean replaces each channel with the arithmetic mean of its size x size
// neighborhood.
func Mean(src *raster.Image, size int) (*raster.Image, error) {
	if err := validKernelSize(size); err != nil {
		return nil, err
	}
	half := size / 2
	n := float64(size * size)
	return ApplyWindowed(src, Centered(half), Stateless(func(s *raster.Image, x, y int) [3]uint8 {
		var sum [3]float64
		for ky := -half; ky <= half; ky++ {
			for kx := -half; kx <= half; kx++ {
				i := s.Offset(x+kx, y+ky)
				sum[0] += float64(s.Pix[i])
				sum[1] += float64(s.Pix[i+1])
				sum[2] += float64(s.Pix[i+2])
			}
		}
		return [3]uint8{
			raster.ClampByte(sum[0] / n),
			raster.ClampByte(sum[1] / n),
			raster.ClampByte(sum[2] / n),
		}
	}))
}

// Median replaces each channel with the median of its size x size
// neighborhood, found with a 256-bucket histogram.
//
// The median is the first value whose cumulative count exceeds n/2, where n
// is the number of samples.
func Median(src *raster.Image, size int) (*raster.Image, error) {
	if err := validKernelSize(size); err != nil {
		return nil, err
	}
	half := size / 2
	position := size * size / 2
	return ApplyWindowed(src, Centered(half), func() PixelFunc {
		var hist [256]int
		return func(s *raster.Image, x, y int) [3]uint8 {
			var out [3]uint8
			for c := 0; c < 3; c++ {
				hist = [256]int{}
				for ky := -half; ky <= half; ky++ {
					for kx := -half; kx <= half; kx++ {
						hist[s.Pix[s.Offset(x+kx, y+ky)+c]]++
					}
				}
				count := 0
				for v := 0; v < 256; v++ {
					count += hist[v]
					if count > position {
						out[c] = uint8(v)
						break
					}
				}
			}
			return out
		}
	})
}

// Max replaces each channel with the largest value of its 3x3 neighborhood.
func Max(src *raster.Image) (*raster.Image, error) {
	return ApplyWindowed(src, Centered(1), Stateless(func(s *raster.Image, x, y int) [3]uint8 {
		var out [3]uint8
		for ky := -1; ky <= 1; ky++ {
			for kx := -1; kx <= 1; kx++ {
				i := s.Offset(x+kx, y+ky)
				for c := 0; c < 3; c++ {
					if v := s.Pix[i+c]; v > out[c] {
						out[c] = v
					}
				}
			}
		}
		return out
	}))
}

// Min replaces each channel with the smallest value of its 3x3 neighborhood.
func Min(src *raster.Image) (*raster.Image, error) {
	return ApplyWindowed(src, Centered(1), Stateless(func(s *raster.Image, x, y int) [3]uint8 {
		out := [3]uint8{255, 255, 255}
		for ky := -1; ky <= 1; ky++ {
			for kx := -1; kx <= 1; kx++ {
				i := s.Offset(x+kx, y+ky)
				for c := 0; c < 3; c++ {
					if v := s.Pix[i+c]; v < out[c] {
						out[c] = v
					}
				}
			}
		}
		return out
	}))
}

// Mode replaces each channel with the most frequent value of its 3x3
// neighborhood.
//
// Samples are visited row-major. A value becomes the mode only when its
// running count strictly exceeds the best count so far, so among equally
// frequent values the one that reached that count first wins.
func Mode(src *raster.Image) (*raster.Image, error) {
	return ApplyWindowed(src, Centered(1), func() PixelFunc {
		var freq [256]int
		return func(s *raster.Image, x, y int) [3]uint8 {
			var out [3]uint8
			for c := 0; c < 3; c++ {
				freq = [256]int{}
				best := 0
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						v := s.Pix[s.Offset(x+kx, y+ky)+c]
						freq[v]++
						if freq[v] > best {
							best = freq[v]
							out[c] = v
						}
					}
				}
			}
			return out
		}
	})
}
