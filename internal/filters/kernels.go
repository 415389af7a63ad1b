package filters

import "fmt"

// Kernel is a rectangular matrix of weights applied around an anchor cell.
//
// Weights[ky][kx] multiplies the sample at (x+kx-AnchorX, y+ky-AnchorY).
// 3x3 kernels are anchored at their center, the 2x2 Roberts kernels at the
// top-left cell.
type Kernel struct {
	Weights [][]float64
	AnchorX int
	AnchorY int
}

// Square3 returns a 3x3 kernel anchored at its center.
func Square3(w [3][3]float64) Kernel {
	rows := make([][]float64, 3)
	for i := range rows {
		rows[i] = []float64{w[i][0], w[i][1], w[i][2]}
	}
	return Kernel{Weights: rows, AnchorX: 1, AnchorY: 1}
}

func topLeft2(w [2][2]float64) Kernel {
	return Kernel{
		Weights: [][]float64{{w[0][0], w[0][1]}, {w[1][0], w[1][1]}},
	}
}

// Window returns the reach of the kernel around its anchor.
func (k Kernel) Window() Window {
	return Window{
		Left:   k.AnchorX,
		Top:    k.AnchorY,
		Right:  len(k.Weights[0]) - 1 - k.AnchorX,
		Bottom: len(k.Weights) - 1 - k.AnchorY,
	}
}

// sum evaluates the kernel over a row-major plane of width w centered on
// (x, y). The summation order is row-major over the kernel.
func (k Kernel) sum(plane []float64, w, x, y int) float64 {
	var s float64
	for ky, row := range k.Weights {
		base := (y+ky-k.AnchorY)*w + x - k.AnchorX
		for kx, weight := range row {
			s += plane[base+kx] * weight
		}
	}
	return s
}

// sumChannel evaluates the kernel over channel c of src at (x, y).
func (k Kernel) sumChannel(pix []uint8, w, x, y, c int) float64 {
	var s float64
	for ky, row := range k.Weights {
		base := ((y+ky-k.AnchorY)*w+x-k.AnchorX)*4 + c
		for kx, weight := range row {
			s += float64(pix[base+kx*4]) * weight
		}
	}
	return s
}

// Laplacian masks.
var (
	LaplacianH1 = Square3([3][3]float64{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	})
	LaplacianH2 = Square3([3][3]float64{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	})
)

// FreyChen is the single Frey-Chen edge mask.
var FreyChen = Square3([3][3]float64{
	{0, 0, -1},
	{0, 1, 0},
	{1, 0, 0},
})

// GradientPair holds the horizontal and vertical kernels of a gradient
// operator.
type GradientPair struct {
	Name string
	Gx   Kernel
	Gy   Kernel
}

// Gradient operators.
var (
	Roberts = GradientPair{
		Name: "roberts",
		Gx:   topLeft2([2][2]float64{{1, 0}, {0, -1}}),
		Gy:   topLeft2([2][2]float64{{0, 1}, {-1, 0}}),
	}
	RobertsCross = GradientPair{
		Name: "roberts_cross",
		Gx:   topLeft2([2][2]float64{{1, -1}, {1, -1}}),
		Gy:   topLeft2([2][2]float64{{-1, -1}, {1, 1}}),
	}
	Prewitt = GradientPair{
		Name: "prewitt",
		Gx: Square3([3][3]float64{
			{-1, 0, 1},
			{-1, 0, 1},
			{-1, 0, 1},
		}),
		Gy: Square3([3][3]float64{
			{1, 1, 1},
			{0, 0, 0},
			{-1, -1, -1},
		}),
	}
	Sobel = GradientPair{
		Name: "sobel",
		Gx: Square3([3][3]float64{
			{-1, 0, 1},
			{-2, 0, 2},
			{-1, 0, 1},
		}),
		Gy: Square3([3][3]float64{
			{1, 2, 1},
			{0, 0, 0},
			{-1, -2, -1},
		}),
	}
)

// Kirsch holds the eight compass rotations of the Kirsch mask.
var Kirsch = []Kernel{
	Square3([3][3]float64{{5, 5, 5}, {-3, 0, -3}, {-3, -3, -3}}),
	Square3([3][3]float64{{5, 5, -3}, {5, 0, -3}, {-3, -3, -3}}),
	Square3([3][3]float64{{5, -3, -3}, {5, 0, -3}, {5, -3, -3}}),
	Square3([3][3]float64{{-3, -3, -3}, {5, 0, -3}, {5, 5, -3}}),
	Square3([3][3]float64{{-3, -3, -3}, {-3, 0, -3}, {5, 5, 5}}),
	Square3([3][3]float64{{-3, -3, -3}, {-3, 0, 5}, {-3, 5, 5}}),
	Square3([3][3]float64{{-3, -3, 5}, {-3, 0, 5}, {-3, -3, 5}}),
	Square3([3][3]float64{{-3, 5, 5}, {-3, 0, 5}, {-3, -3, -3}}),
}

// Robinson holds the eight compass rotations of the Sobel-weighted Robinson
// mask.
var Robinson = []Kernel{
	Square3([3][3]float64{{1, 0, -1}, {2, 0, -2}, {1, 0, -1}}),
	Square3([3][3]float64{{0, -1, -2}, {1, 0, -1}, {2, 1, 0}}),
	Square3([3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}),
	Square3([3][3]float64{{-2, -1, 0}, {-1, 0, 1}, {0, 1, 2}}),
	Square3([3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}),
	Square3([3][3]float64{{0, 1, 2}, {-1, 0, 1}, {-2, -1, 0}}),
	Square3([3][3]float64{{1, 2, 1}, {0, 0, 0}, {-1, -2, -1}}),
	Square3([3][3]float64{{2, 1, 0}, {1, 0, -1}, {0, -1, -2}}),
}

// HighPassKernels maps each high-pass variant name to its mask.
var HighPassKernels = map[string]Kernel{
	"h1": LaplacianH1,
	"h2": LaplacianH2,
	"m1": Square3([3][3]float64{{1, -2, 1}, {-2, 5, -2}, {1, -2, 1}}),
	"m2": Square3([3][3]float64{{0, -1, 0}, {-1, 5, -1}, {0, -1, 0}}),
	"m3": Square3([3][3]float64{{-1, -1, -1}, {-1, 9, -1}, {-1, -1, -1}}),
}

// DefaultBoost is the high-boost amplification used when none is given.
const DefaultBoost = 1.5

// HighBoost returns the high-boost mask with center weight boost+4.
func HighBoost(boost float64) Kernel {
	return Square3([3][3]float64{
		{0, -1, 0},
		{-1, boost + 4, -1},
		{0, -1, 0},
	})
}

// LineMasks maps each line direction to its detection mask.
var LineMasks = map[string]Kernel{
	"horizontal": Square3([3][3]float64{{-1, -1, -1}, {2, 2, 2}, {-1, -1, -1}}),
	"vertical":   Square3([3][3]float64{{-1, 2, -1}, {-1, 2, -1}, {-1, 2, -1}}),
	"45":         Square3([3][3]float64{{-1, -1, 2}, {-1, 2, -1}, {2, -1, -1}}),
	"135":        Square3([3][3]float64{{2, -1, -1}, {-1, 2, -1}, {-1, -1, 2}}),
}

// GradientPairs lists the gradient operators by name.
var GradientPairs = map[string]GradientPair{
	Roberts.Name:      Roberts,
	RobertsCross.Name: RobertsCross,
	Prewitt.Name:      Prewitt,
	Sobel.Name:        Sobel,
}

// LookupHighPass returns the named high-pass mask.
func LookupHighPass(name string) (Kernel, error) {
	k, ok := HighPassKernels[name]
	if !ok {
		return Kernel{}, fmt.Errorf("%w: unknown high-pass variant %q", ErrInvalidParam, name)
	}
	return k, nil
}

// LookupLineMask returns the mask for a line direction.
func LookupLineMask(direction string) (Kernel, error) {
	k, ok := LineMasks[direction]
	if !ok {
		return Kernel{}, fmt.Errorf("%w: unknown line direction %q", ErrInvalidParam, direction)
	}
	return k, nil
}

// LookupGradient returns the named gradient pair.
func LookupGradient(name string) (GradientPair, error) {
	p, ok := GradientPairs[name]
	if !ok {
		return GradientPair{}, fmt.Errorf("%w: unknown gradient operator %q", ErrInvalidParam, name)
	}
	return p, nil
}
