package raster

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned when a pixel buffer cannot describe an image.
var (
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrBufferSize        = errors.New("pixel buffer size does not match dimensions")
)

// Image is a decoded RGBA8 pixel buffer.
//
// Pix holds Width*Height pixels in row-major order, four bytes per pixel in
// R, G, B, A order. Colors are not premultiplied by alpha, which matches
// image.NRGBA and the layout produced by browser canvas decoders.
//
// Operators never modify an Image they receive; they always return a new one.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed image of the given size.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// FromBytes wraps a caller-supplied RGBA8 buffer after checking its size.
// The buffer is not copied.
func FromBytes(width, height int, pix []uint8) (*Image, error) {
	img := &Image{Width: width, Height: height, Pix: pix}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// Validate checks the dimension and buffer-length invariants.
func (m *Image) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, m.Width, m.Height)
	}
	if want := m.Width * m.Height * 4; len(m.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(m.Pix), want)
	}
	return nil
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Width: m.Width, Height: m.Height, Pix: pix}
}

// Offset returns the index of the R byte of pixel (x, y).
func (m *Image) Offset(x, y int) int {
	return (y*m.Width + x) * 4
}

// In reports whether (x, y) lies inside the image.
func (m *Image) In(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Luminance returns 0.299R + 0.587G + 0.114B for the pixel at offset i.
func (m *Image) Luminance(i int) float64 {
	return 0.299*float64(m.Pix[i]) + 0.587*float64(m.Pix[i+1]) + 0.114*float64(m.Pix[i+2])
}

// LuminancePlane computes the luminance of every pixel, row-major.
func (m *Image) LuminancePlane() []float64 {
	plane := make([]float64, m.Width*m.Height)
	for p := range plane {
		plane[p] = m.Luminance(p * 4)
	}
	return plane
}

// Intensity returns the unweighted RGB average rounded to the nearest integer.
//
// Segmentation uses this instead of Luminance.
func (m *Image) Intensity(i int) int {
	sum := int(m.Pix[i]) + int(m.Pix[i+1]) + int(m.Pix[i+2])
	// sum/3 never has a fractional part of exactly .5
	return int(math.Round(float64(sum) / 3))
}

// SetGray writes v to the R, G and B bytes at offset i and copies alpha from src.
func (m *Image) SetGray(i int, v uint8, src *Image) {
	m.Pix[i] = v
	m.Pix[i+1] = v
	m.Pix[i+2] = v
	m.Pix[i+3] = src.Pix[i+3]
}

// CopyPixel copies all four bytes at offset i from src.
func (m *Image) CopyPixel(i int, src *Image) {
	copy(m.Pix[i:i+4], src.Pix[i:i+4])
}

// ClampByte converts a computed value to a byte the way a clamped byte array
// stores a number: NaN becomes 0, values are clamped to [0, 255] and then
// rounded half to even.
func ClampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
