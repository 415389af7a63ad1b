package filters

import (
	"errors"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

// ErrInvalidParam is returned when an operator parameter is out of range.
var ErrInvalidParam = errors.New("invalid filter parameter")

// Window describes how far a neighborhood reaches from the pixel it is
// computed for. A pixel (x, y) is computed only when x-Left, y-Top,
// x+Right and y+Bottom all lie inside the image.
type Window struct {
	Left, Top, Right, Bottom int
}

// Centered returns the window of a (2*half+1) square kernel anchored at its
// center.
func Centered(half int) Window {
	return Window{Left: half, Top: half, Right: half, Bottom: half}
}

// Fits reports whether the window around (x, y) stays inside a
// width x height image.
func (w Window) Fits(x, y, width, height int) bool {
	return x >= w.Left && y >= w.Top && x < width-w.Right && y < height-w.Bottom
}

// PixelFunc computes the RGB output of pixel (x, y). It is only invoked when
// the whole window fits inside src.
type PixelFunc func(src *raster.Image, x, y int) [3]uint8

// NewPixelFunc creates a PixelFunc. ApplyWindowed calls it once per worker so
// that any scratch state captured by the returned closure is never shared.
type NewPixelFunc func() PixelFunc

// ApplyWindowed runs a neighborhood operator over src and returns a new image.
//
// Parameters:
//   - src: the image to filter; it is never modified
//   - win: how far the neighborhood reaches on each side of the pixel
//   - newFn: builds one PixelFunc per worker
//
// Returns a new image of the same size, or an error when src is invalid. An
// image too small for any window comes back as an unchanged copy.
//
// # Algorithm
//
// Pixels whose window fits inside the image get the RGB computed by the pixel
// function and keep their source alpha. Every other pixel is copied unchanged,
// all four bytes. Rows are split across workers with bild's parallel.Line.
func ApplyWindowed(src *raster.Image, win Window, newFn NewPixelFunc) (*raster.Image, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	// Starting from a copy gives the border policy and the alpha channel.
	dst := src.Clone()
	if src.Width <= win.Left+win.Right || src.Height <= win.Top+win.Bottom {
		return dst, nil
	}

	parallel.Line(src.Height, func(start, end int) {
		fn := newFn()
		for y := start; y < end; y++ {
			if y < win.Top || y >= src.Height-win.Bottom {
				continue
			}
			for x := win.Left; x < src.Width-win.Right; x++ {
				rgb := fn(src, x, y)
				i := src.Offset(x, y)
				dst.Pix[i] = rgb[0]
				dst.Pix[i+1] = rgb[1]
				dst.Pix[i+2] = rgb[2]
			}
		}
	})

	return dst, nil
}

// Stateless adapts a PixelFunc without scratch state to a NewPixelFunc.
func Stateless(fn PixelFunc) NewPixelFunc {
	return func() PixelFunc { return fn }
}

// gray broadcasts a single byte to RGB.
func gray(v uint8) [3]uint8 {
	return [3]uint8{v, v, v}
}
