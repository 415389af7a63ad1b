package point

import (
	"errors"
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// ErrInvalidParam is returned for an unknown curve or an out-of-range value.
var ErrInvalidParam = errors.New("invalid point operator parameter")

// LUT maps every channel value to its transformed value.
type LUT [256]uint8

// truncate stores v the way an unclamped byte array does for values inside
// [0, 256): the fraction is dropped. Values outside that range are clamped.
func truncate(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Apply maps the R, G and B bytes of every pixel through the table and keeps
// alpha. Rows run in parallel.
func (t *LUT) Apply(src *raster.Image) (*raster.Image, error) {
	return mapPixels(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		return t[r], t[g], t[b]
	})
}

// mapPixels builds a new image by applying fn to the color of every pixel.
func mapPixels(src *raster.Image, fn func(r, g, b uint8) (uint8, uint8, uint8)) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst := src.Clone()
	w := src.Width
	parallel.Line(src.Height, func(start, end int) {
		for i := start * w * 4; i < end*w*4; i += 4 {
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = fn(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		}
	})
	return dst, nil
}

// InvertLUT maps v to 255-v.
func InvertLUT() *LUT {
	var t LUT
	for i := range t {
		t[i] = uint8(255 - i)
	}
	return &t
}

// GammaLUT maps v to 255 * (v/255)^gamma, truncated. Gamma must be positive
// and finite.
func GammaLUT(gamma float64) (*LUT, error) {
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) || gamma <= 0 {
		return nil, fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidParam, gamma)
	}
	var t LUT
	for i := range t {
		t[i] = truncate(math.Pow(float64(i)/255, gamma) * 255)
	}
	return &t, nil
}

// Curve names a non-linear intensity mapping.
type Curve string

// Non-linear curves. Each maps 0 to 0 and is scaled so 255 maps to about 255.
const (
	CurveLog    Curve = "log"
	CurveSqrt   Curve = "sqrt"
	CurveExp    Curve = "exp"
	CurveSquare Curve = "square"
)

// Curves lists the supported curves.
var Curves = []Curve{CurveLog, CurveSqrt, CurveExp, CurveSquare}

// CurveNames returns the names of Curves in order.
func CurveNames() []string {
	names := make([]string, len(Curves))
	for i, c := range Curves {
		names[i] = string(c)
	}
	return names
}

// CurveLUT builds the table for a non-linear curve. Results are truncated.
func CurveLUT(c Curve) (*LUT, error) {
	var f func(v float64) float64
	switch c {
	case CurveLog:
		k := 255 / math.Log(256)
		f = func(v float64) float64 { return k * math.Log(1+v) }
	case CurveSqrt:
		k := 255 / math.Sqrt(255)
		f = func(v float64) float64 { return k * math.Sqrt(v) }
	case CurveExp:
		k := 255 / (math.E - 1)
		f = func(v float64) float64 { return k * (math.Exp(v/255) - 1) }
	case CurveSquare:
		k := 255.0 / (255 * 255)
		f = func(v float64) float64 { return k * v * v }
	default:
		return nil, fmt.Errorf("%w: unknown curve %q", ErrInvalidParam, c)
	}

	var t LUT
	for i := range t {
		t[i] = truncate(f(float64(i)))
	}
	return &t, nil
}

// Invert replaces every color channel v with 255-v.
func Invert(src *raster.Image) (*raster.Image, error) {
	return InvertLUT().Apply(src)
}

// Gamma applies gamma correction per channel.
func Gamma(src *raster.Image, gamma float64) (*raster.Image, error) {
	t, err := GammaLUT(gamma)
	if err != nil {
		return nil, err
	}
	return t.Apply(src)
}

// NonLinear applies a named curve per channel.
func NonLinear(src *raster.Image, c Curve) (*raster.Image, error) {
	t, err := CurveLUT(c)
	if err != nil {
		return nil, err
	}
	return t.Apply(src)
}
