package point

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// Default false-color highlight settings.
var (
	DefaultHighlight         = color.NRGBA{G: 255, B: 255, A: 255}
	DefaultHighlightRatio    = 0.3
	DefaultHighlightStrength = 0.8
)

// FalseColorOptions configures FalseColor.
type FalseColorOptions struct {
	// Highlight is blended into matching pixels. Alpha is ignored.
	Highlight color.NRGBA

	// Ratio is the G/B ratio a pixel must exceed.
	Ratio float64

	// Strength is the blend weight of the highlight, 0 to 1.
	Strength float64
}

// FalseColor blends the highlight color into every pixel whose G/B ratio
// exceeds opts.Ratio and whose green channel is above 100. A pixel with red 0
// always passes the ratio test. Other pixels and all alpha values are copied.
func FalseColor(src *raster.Image, opts FalseColorOptions) (*raster.Image, error) {
	if math.IsNaN(opts.Ratio) || math.IsNaN(opts.Strength) || opts.Strength < 0 || opts.Strength > 1 {
		return nil, fmt.Errorf("%w: strength must be in [0, 1] and ratio a number, got %v and %v",
			ErrInvalidParam, opts.Strength, opts.Ratio)
	}
	s := opts.Strength
	h := opts.Highlight
	blend := func(v, hv uint8) uint8 {
		return raster.ClampByte(float64(v)*(1-s) + float64(hv)*s)
	}

	return mapPixels(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		// Division by a zero blue channel gives +Inf, or NaN when green is
		// also zero; NaN never exceeds the ratio.
		ratio := 999.0
		if r != 0 {
			ratio = float64(g) / float64(b)
		}
		if ratio > opts.Ratio && g > 100 {
			return blend(r, h.R), blend(g, h.G), blend(b, h.B)
		}
		return r, g, b
	})
}

// Heatmap maps the Rec. 709 luma of every pixel onto a blue, cyan, green,
// yellow, red ramp. Alpha is copied.
func Heatmap(src *raster.Image) (*raster.Image, error) {
	return mapPixels(src, func(r, g, b uint8) (uint8, uint8, uint8) {
		gray := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
		return heat(gray)
	})
}

func heat(gray float64) (uint8, uint8, uint8) {
	t := math.Min(math.Max(gray/255, 0), 1)
	var r, g, b float64
	switch {
	case t <= 0.25:
		g, b = t*4*255, 255
	case t <= 0.5:
		g, b = 255, (1-(t-0.25)*4)*255
	case t <= 0.75:
		r, g = (t-0.5)*4*255, 255
	default:
		r, g = 255, (1-(t-0.75)*4)*255
	}
	return roundHalfUp(r), roundHalfUp(g), roundHalfUp(b)
}

func roundHalfUp(v float64) uint8 {
	return raster.ClampByte(math.Floor(v + 0.5))
}
