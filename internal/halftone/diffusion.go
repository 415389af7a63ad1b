package halftone

import (
	"fmt"
	"math"
	"sort"

	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// Spread is one target of an error-diffusion matrix: the fraction of the
// quantization error added to the pixel at (x+DX, y+DY).
type Spread struct {
	DX, DY int
	Weight float64
}

// DiffusionMatrix is an error-diffusion kernel. Every offset points to a
// pixel that comes later in row-major order.
type DiffusionMatrix struct {
	Name    string
	Spreads []Spread
}

// Sum returns the total weight of the matrix.
func (d DiffusionMatrix) Sum() float64 {
	var s float64
	for _, sp := range d.Spreads {
		s += sp.Weight
	}
	return s
}

// fromDither converts a dither library table into offsets. The current pixel
// sits in the first row at the column reported by edm.CurrentPixel. The
// library stores weights as float32, so each one is snapped back to a
// multiple of 1/divisor.
func fromDither(name string, edm dither.ErrorDiffusionMatrix, divisor float64) DiffusionMatrix {
	cur := edm.CurrentPixel()
	d := DiffusionMatrix{Name: name}
	for dy, row := range edm {
		for col, w := range row {
			if w == 0 {
				continue
			}
			d.Spreads = append(d.Spreads, Spread{
				DX:     col - cur,
				DY:     dy,
				Weight: math.Round(float64(w)*divisor) / divisor,
			})
		}
	}
	return d
}

// Error-diffusion matrices.
var (
	FloydSteinberg = fromDither("floyd_steinberg", dither.FloydSteinberg, 16)

	Rogers = DiffusionMatrix{
		Name: "rogers",
		Spreads: []Spread{
			{1, 0, 3.0 / 8},
			{0, 1, 3.0 / 8},
			{1, 1, 2.0 / 8},
		},
	}

	JarvisJudiceNinke = fromDither("jarvis_judice_ninke", dither.JarvisJudiceNinke, 48)

	Stucki = fromDither("stucki", dither.Stucki, 42)

	StevensonArce = DiffusionMatrix{
		Name: "stevenson_arce",
		Spreads: []Spread{
			{2, 0, 32.0 / 200},
			{-3, 1, 12.0 / 200},
			{-1, 1, 26.0 / 200},
			{1, 1, 30.0 / 200},
			{3, 1, 16.0 / 200},
			{-2, 2, 12.0 / 200},
			{0, 2, 26.0 / 200},
			{2, 2, 12.0 / 200},
			{-3, 3, 5.0 / 200},
			{-1, 3, 12.0 / 200},
			{1, 3, 12.0 / 200},
			{3, 3, 5.0 / 200},
		},
	}
)

// DiffusionMatrices lists the error-diffusion matrices by name.
var DiffusionMatrices = map[string]DiffusionMatrix{
	FloydSteinberg.Name:    FloydSteinberg,
	Rogers.Name:            Rogers,
	JarvisJudiceNinke.Name: JarvisJudiceNinke,
	Stucki.Name:            Stucki,
	StevensonArce.Name:     StevensonArce,
}

// DiffusionNames returns the error-diffusion matrix names in sorted order.
func DiffusionNames() []string {
	names := make([]string, 0, len(DiffusionMatrices))
	for name := range DiffusionMatrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Diffuse applies error-diffusion dithering with the named matrix.
func Diffuse(src *raster.Image, name string) (*raster.Image, error) {
	d, ok := DiffusionMatrices[name]
	if !ok {
		return nil, fmt.Errorf("%w: diffusion %q", ErrUnknownMatrix, name)
	}
	return DiffuseWith(src, d)
}

// DiffuseWith dithers src to black and white by error diffusion.
//
// Parameters:
//   - src: the image to dither
//   - d: the error distribution matrix
//
// Returns an opaque black and white image of the same size.
//
// # Algorithm
//
// Luminance is held in a float32 working buffer. Pixels are visited strictly
// row-major; each is quantized to 255 when above 127 and to 0 otherwise, and
// the difference is added to the in-bounds targets of d. The scan order is a
// data dependency, so this never runs in parallel.
func DiffuseWith(src *raster.Image, d DiffusionMatrix) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	for _, sp := range d.Spreads {
		if sp.DY < 0 || (sp.DY == 0 && sp.DX <= 0) {
			return nil, fmt.Errorf("%w: %s spreads error to an already visited pixel (%d,%d)",
				ErrUnknownMatrix, d.Name, sp.DX, sp.DY)
		}
	}

	w, h := src.Width, src.Height
	buf := make([]float32, w*h)
	for p := range buf {
		buf[p] = float32(src.Luminance(p * 4))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := y*w + x
			old := float64(buf[p])
			quantized := 0.0
			if old > 127 {
				quantized = 255
			}
			qerr := old - quantized
			buf[p] = float32(quantized)
			for _, sp := range d.Spreads {
				nx, ny := x+sp.DX, y+sp.DY
				if nx < 0 || nx >= w || ny >= h {
					continue
				}
				q := ny*w + nx
				buf[q] = float32(float64(buf[q]) + qerr*sp.Weight)
			}
		}
	}

	dst := src.Clone()
	for p, v := range buf {
		var out uint8
		if v > 127 {
			out = 255
		}
		dst.SetGray(p*4, out, src)
	}
	return dst, nil
}
