package segment

import (
	"errors"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidParam is returned for a seed outside the image or a threshold
// outside [0, 255].
var ErrInvalidParam = errors.New("invalid segmentation parameter")

// Label values with a fixed meaning.
const (
	Unlabeled int32 = 0
	Boundary  int32 = -1
)

// LabelGrid holds one label per pixel, row-major, indexed by y*Width+x.
// Positive values are region ids, 0 is unlabeled and -1 marks a watershed
// boundary. A grid is scratch for a single call and is never shared.
type LabelGrid struct {
	Width  int
	Height int
	Labels []int32
}

// NewLabelGrid returns an all-unlabeled grid.
func NewLabelGrid(width, height int) *LabelGrid {
	return &LabelGrid{Width: width, Height: height, Labels: make([]int32, width*height)}
}

// At returns the label of pixel (x, y).
func (g *LabelGrid) At(x, y int) int32 {
	return g.Labels[y*g.Width+x]
}

// Distinct returns the number of distinct positive labels.
func (g *LabelGrid) Distinct() int {
	seen := make(map[int32]struct{})
	for _, l := range g.Labels {
		if l > 0 {
			seen[l] = struct{}{}
		}
	}
	return len(seen)
}

// Count returns how many pixels carry label l.
func (g *LabelGrid) Count(l int32) int {
	n := 0
	for _, v := range g.Labels {
		if v == l {
			n++
		}
	}
	return n
}

// goldenAngle spaces consecutive label hues apart.
const goldenAngle = 137.508

// LabelColor returns the display color of a positive region label: hue
// (label * 137.508) mod 360, saturation 0.7, value 0.95, fully opaque.
func LabelColor(label int32) color.NRGBA {
	hue := math.Mod(float64(label)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.7, 0.95).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// DefaultBoundaryColor paints watershed boundaries.
var DefaultBoundaryColor = color.NRGBA{R: 255, A: 255}
