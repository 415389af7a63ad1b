package filters

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// GradientMode selects which response of a gradient pair is written.
type GradientMode string

// Gradient output modes.
const (
	ModeGx        GradientMode = "gx"
	ModeGy        GradientMode = "gy"
	ModeMagnitude GradientMode = "magnitude"
)

// ParseGradientMode validates a mode name. The empty string selects magnitude.
func ParseGradientMode(s string) (GradientMode, error) {
	switch GradientMode(s) {
	case "":
		return ModeMagnitude, nil
	case ModeGx, ModeGy, ModeMagnitude:
		return GradientMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown gradient mode %q", ErrInvalidParam, s)
}

// absResponse stores |v| capped at 255.
func absResponse(v float64) uint8 {
	return raster.ClampByte(math.Min(255, math.Abs(v)))
}

// ConvolveAbs applies k to the luminance of src and writes |response| as gray.
//
// Used for the Laplacian masks and Frey-Chen. Border pixels are copied.
func ConvolveAbs(src *raster.Image, k Kernel) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	plane := src.LuminancePlane()
	return ApplyWindowed(src, k.Window(), Stateless(func(_ *raster.Image, x, y int) [3]uint8 {
		return gray(absResponse(k.sum(plane, src.Width, x, y)))
	}))
}

// Gradient applies a gradient pair to the luminance of src.
//
// ModeGx and ModeGy write the absolute response of one kernel. ModeMagnitude
// writes sqrt(Gx^2 + Gy^2). All results are capped at 255.
func Gradient(src *raster.Image, pair GradientPair, mode GradientMode) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseGradientMode(string(mode)); err != nil {
		return nil, err
	}
	plane := src.LuminancePlane()
	w := src.Width
	return ApplyWindowed(src, pair.Gx.Window(), Stateless(func(_ *raster.Image, x, y int) [3]uint8 {
		switch mode {
		case ModeGx:
			return gray(absResponse(pair.Gx.sum(plane, w, x, y)))
		case ModeGy:
			return gray(absResponse(pair.Gy.sum(plane, w, x, y)))
		}
		gx := pair.Gx.sum(plane, w, x, y)
		gy := pair.Gy.sum(plane, w, x, y)
		return gray(absResponse(math.Sqrt(gx*gx + gy*gy)))
	}))
}

// Compass applies every kernel of a rotation set and writes the largest
// absolute response. Kirsch and Robinson are the two rotation sets.
func Compass(src *raster.Image, kernels []Kernel) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if len(kernels) == 0 {
		return nil, fmt.Errorf("%w: empty kernel set", ErrInvalidParam)
	}
	plane := src.LuminancePlane()
	return ApplyWindowed(src, kernels[0].Window(), Stateless(func(_ *raster.Image, x, y int) [3]uint8 {
		var best float64
		for _, k := range kernels {
			best = math.Max(best, math.Abs(k.sum(plane, src.Width, x, y)))
		}
		return gray(raster.ClampByte(math.Min(255, best)))
	}))
}

// ConvolveChannels applies k to each of R, G and B independently, clamping
// every response to [0, 255]. Alpha is preserved. Used by the high-pass and
// high-boost filters.
func ConvolveChannels(src *raster.Image, k Kernel) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return ApplyWindowed(src, k.Window(), Stateless(func(s *raster.Image, x, y int) [3]uint8 {
		var out [3]uint8
		for c := 0; c < 3; c++ {
			out[c] = raster.ClampByte(k.sumChannel(s.Pix, s.Width, x, y, c))
		}
		return out
	}))
}

// Detect applies k to the luminance of src and marks pixels whose absolute
// response is strictly greater than t as white, everything else black.
//
// Point detection uses LaplacianH1, line detection uses LineMasks.
func Detect(src *raster.Image, k Kernel, t float64) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	plane := src.LuminancePlane()
	return ApplyWindowed(src, k.Window(), Stateless(func(_ *raster.Image, x, y int) [3]uint8 {
		if math.Abs(k.sum(plane, src.Width, x, y)) > t {
			return gray(255)
		}
		return gray(0)
	}))
}
