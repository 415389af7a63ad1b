package filters

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// Offset is a (dy, dx) displacement from the pixel being computed.
type Offset struct {
	DY, DX int
}

// Region is a named set of offsets whose samples are summarized together.
type Region struct {
	Name    string
	Offsets []Offset
}

// Strategy is an edge-preserving smoothing scheme: a neighborhood radius plus
// the candidate regions compared at every pixel.
type Strategy struct {
	Name    string
	Radius  int
	Regions []Region
}

func block(name string, top, left int) Region {
	r := Region{Name: name}
	for dy := top; dy < top+3; dy++ {
		for dx := left; dx < left+3; dx++ {
			r.Offsets = append(r.Offsets, Offset{dy, dx})
		}
	}
	return r
}

func region(name string, offsets ...Offset) Region {
	return Region{Name: name, Offsets: offsets}
}

var (
	center = block("center", -1, -1)

	quadrants = []Region{
		block("upper-left", -2, -2),
		block("upper-right", -2, 0),
		block("lower-left", 0, -2),
		block("lower-right", 0, 0),
	}

	// Wedges fan out from the center to three pixels on an outer edge, or to
	// a 2x2 corner block.
	wedges = []Region{
		region("north", Offset{0, 0}, Offset{-1, 0}, Offset{-2, -1}, Offset{-2, 0}, Offset{-2, 1}),
		region("south", Offset{0, 0}, Offset{1, 0}, Offset{2, -1}, Offset{2, 0}, Offset{2, 1}),
		region("west", Offset{0, 0}, Offset{0, -1}, Offset{-1, -2}, Offset{0, -2}, Offset{1, -2}),
		region("east", Offset{0, 0}, Offset{0, 1}, Offset{-1, 2}, Offset{0, 2}, Offset{1, 2}),
		region("north-west", Offset{0, 0}, Offset{-1, -1}, Offset{-1, -2}, Offset{-2, -1}, Offset{-2, -2}),
		region("north-east", Offset{0, 0}, Offset{-1, 1}, Offset{-1, 2}, Offset{-2, 1}, Offset{-2, 2}),
		region("south-west", Offset{0, 0}, Offset{1, -1}, Offset{1, -2}, Offset{2, -1}, Offset{2, -2}),
		region("south-east", Offset{0, 0}, Offset{1, 1}, Offset{1, 2}, Offset{2, 1}, Offset{2, 2}),
	}

	// Arms run from the center to the edge along one axis with a crossbar on
	// the first ring.
	arms = []Region{
		region("north", Offset{0, 0}, Offset{-1, -1}, Offset{-1, 0}, Offset{-1, 1}, Offset{-2, 0}),
		region("south", Offset{0, 0}, Offset{1, -1}, Offset{1, 0}, Offset{1, 1}, Offset{2, 0}),
		region("west", Offset{0, 0}, Offset{-1, -1}, Offset{0, -1}, Offset{1, -1}, Offset{0, -2}),
		region("east", Offset{0, 0}, Offset{-1, 1}, Offset{0, 1}, Offset{1, 1}, Offset{0, 2}),
	}
)

func concat(groups ...[]Region) []Region {
	var out []Region
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Built-in strategies. All use a 5x5 neighborhood.
var (
	Kawahara = Strategy{
		Name:    "kawahara",
		Radius:  2,
		Regions: quadrants,
	}
	TomitaTsuji = Strategy{
		Name:    "tomita_tsuji",
		Radius:  2,
		Regions: concat([]Region{center}, quadrants),
	}
	NagaoMatsuyama = Strategy{
		Name:    "nagao_matsuyama",
		Radius:  2,
		Regions: concat([]Region{center}, wedges),
	}
	Somboonkaew = Strategy{
		Name:    "somboonkaew",
		Radius:  2,
		Regions: concat([]Region{center}, arms),
	}
)

// Strategies lists the built-in strategies by name.
var Strategies = map[string]Strategy{
	Kawahara.Name:       Kawahara,
	TomitaTsuji.Name:    TomitaTsuji,
	NagaoMatsuyama.Name: NagaoMatsuyama,
	Somboonkaew.Name:    Somboonkaew,
}

// StrategyNames returns the built-in strategy names in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(Strategies))
	for name := range Strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupStrategy returns the named built-in strategy.
func LookupStrategy(name string) (Strategy, error) {
	s, ok := Strategies[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: unknown edge-preserving strategy %q", ErrInvalidParam, name)
	}
	return s, nil
}

// stats returns the population mean and variance of values. An empty slice
// has mean 0 and infinite variance so it is never selected.
func stats(values []float64) (mean, variance float64) {
	if len(values) == 0 {
		return 0, math.Inf(1)
	}
	n := float64(len(values))
	for _, v := range values {
		mean += v
	}
	mean /= n
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, variance / n
}

// EdgePreserve smooths src with an edge-preserving strategy.
//
// Parameters:
//   - src: the image to smooth
//   - s: the sub-region geometry, e.g. Kawahara or NagaoMatsuyama
//
// Returns a new image of the same size; pixels within two of the border are
// copied from src.
//
// # Algorithm
//
// For every channel of every pixel whose full neighborhood fits in the image,
// each region's mean and population variance are computed and the mean of the
// region with the smallest variance is written. Ties keep the earliest region
// in the strategy's order.
func EdgePreserve(src *raster.Image, s Strategy) (*raster.Image, error) {
	if s.Radius < 0 || len(s.Regions) == 0 {
		return nil, fmt.Errorf("%w: strategy %q has no regions", ErrInvalidParam, s.Name)
	}
	for _, r := range s.Regions {
		for _, o := range r.Offsets {
			if abs(o.DY) > s.Radius || abs(o.DX) > s.Radius {
				return nil, fmt.Errorf("%w: region %q reaches outside radius %d", ErrInvalidParam, r.Name, s.Radius)
			}
		}
	}

	return ApplyWindowed(src, Centered(s.Radius), func() PixelFunc {
		values := make([]float64, 0, (2*s.Radius+1)*(2*s.Radius+1))
		return func(img *raster.Image, x, y int) [3]uint8 {
			var out [3]uint8
			for c := 0; c < 3; c++ {
				best := math.Inf(1)
				var result float64
				for _, r := range s.Regions {
					values = values[:0]
					for _, o := range r.Offsets {
						values = append(values, float64(img.Pix[img.Offset(x+o.DX, y+o.DY)+c]))
					}
					mean, variance := stats(values)
					if variance < best {
						best = variance
						result = mean
					}
				}
				out[c] = raster.ClampByte(result)
			}
			return out
		}
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
