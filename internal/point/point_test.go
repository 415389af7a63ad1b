package point

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

func newPixels(t *testing.T, colors ...color.NRGBA) *raster.Image {
	t.Helper()
	img, err := raster.New(len(colors), 1)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	for x, c := range colors {
		img.SetColor(img.Offset(x, 0), c)
	}
	return img
}

func TestInvert(t *testing.T) {
	src := newPixels(t, color.NRGBA{0, 100, 255, 40}, color.NRGBA{12, 34, 56, 255})
	dst, err := Invert(src)
	if err != nil {
		t.Fatalf("Invert failed: %v", err)
	}

	want := []color.NRGBA{{255, 155, 0, 40}, {243, 221, 199, 255}}
	for x, w := range want {
		if got := dst.At(x, 0); got != w {
			t.Errorf("x=%d: got %v, want %v", x, got, w)
		}
	}
	if src.At(0, 0) != (color.NRGBA{0, 100, 255, 40}) {
		t.Error("source modified")
	}
}

func TestGammaLUT(t *testing.T) {
	tests := []struct {
		name  string
		gamma float64
		in    int
		want  uint8
	}{
		{"identity top", 1, 255, 255},
		{"zero stays zero", 2.2, 0, 0},
		{"square of a fifth", 2, 51, 10}, // 255 * 0.04 = 10.2
		{"root brightens", 0.5, 64, 127},  // 255 * sqrt(64/255) = 127.75
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lut, err := GammaLUT(tt.gamma)
			if err != nil {
				t.Fatalf("GammaLUT failed: %v", err)
			}
			if got := lut[tt.in]; got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGammaRejectsInvalid(t *testing.T) {
	for _, g := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := GammaLUT(g); !errors.Is(err, ErrInvalidParam) {
			t.Errorf("gamma %v: got %v, want ErrInvalidParam", g, err)
		}
	}
}

func TestCurveLUT(t *testing.T) {
	tests := []struct {
		curve Curve
		in    int
		want  uint8
	}{
		{CurveLog, 1, 31},      // 255 * ln2 / ln256 = 31.875
		{CurveSqrt, 64, 127},   // 8 * sqrt(255) = 127.75
		{CurveSquare, 128, 64}, // 128*128/255 = 64.25
		{CurveExp, 0, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.curve), func(t *testing.T) {
			lut, err := CurveLUT(tt.curve)
			if err != nil {
				t.Fatalf("CurveLUT failed: %v", err)
			}
			if got := lut[tt.in]; got != tt.want {
				t.Errorf("lut[%d]: got %d, want %d", tt.in, got, tt.want)
			}
			if lut[0] != 0 {
				t.Errorf("lut[0]: got %d, want 0", lut[0])
			}
			for i := 1; i < 256; i++ {
				if lut[i] < lut[i-1] {
					t.Fatalf("not monotonic at %d: %d < %d", i, lut[i], lut[i-1])
				}
			}
		})
	}

	if _, err := CurveLUT("cube"); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("got %v, want ErrInvalidParam", err)
	}
}

func TestNonLinearKeepsAlpha(t *testing.T) {
	src := newPixels(t, color.NRGBA{128, 64, 0, 9})
	dst, err := NonLinear(src, CurveSquare)
	if err != nil {
		t.Fatalf("NonLinear failed: %v", err)
	}
	if got, want := dst.At(0, 0), (color.NRGBA{64, 16, 0, 9}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFalseColor(t *testing.T) {
	src := newPixels(t,
		color.NRGBA{50, 200, 100, 255}, // ratio 2, green > 100: highlighted
		color.NRGBA{50, 90, 10, 255},   // green too low
		color.NRGBA{50, 200, 255, 77},  // ratio 0.78 passes
		color.NRGBA{50, 120, 0, 255},   // blue 0: ratio +Inf
		color.NRGBA{0, 20, 200, 255},   // red 0 passes ratio but green too low
		color.NRGBA{90, 150, 255, 255}, // ratio 0.59
	)
	dst, err := FalseColor(src, FalseColorOptions{
		Highlight: DefaultHighlight,
		Ratio:     0.6,
		Strength:  0.5,
	})
	if err != nil {
		t.Fatalf("FalseColor failed: %v", err)
	}

	want := []color.NRGBA{
		{25, 228, 178, 255}, // 227.5 rounds to even 228, 177.5 to 178
		{50, 90, 10, 255},
		{25, 228, 255, 77},
		{25, 188, 128, 255}, // 187.5 to 188, 127.5 to 128
		{0, 20, 200, 255},
		{90, 150, 255, 255},
	}
	for x, w := range want {
		if got := dst.At(x, 0); got != w {
			t.Errorf("x=%d: got %v, want %v", x, got, w)
		}
	}
}

func TestFalseColorRejectsStrength(t *testing.T) {
	src := newPixels(t, color.NRGBA{})
	_, err := FalseColor(src, FalseColorOptions{Ratio: 0.3, Strength: 1.5})
	if !errors.Is(err, ErrInvalidParam) {
		t.Errorf("got %v, want ErrInvalidParam", err)
	}
}

func TestHeatmap(t *testing.T) {
	src := newPixels(t,
		color.NRGBA{0, 0, 0, 255},
		color.NRGBA{255, 255, 255, 30},
		color.NRGBA{0, 0, 255, 255}, // luma 18.411: t 0.0722
	)
	dst, err := Heatmap(src)
	if err != nil {
		t.Fatalf("Heatmap failed: %v", err)
	}

	want := []color.NRGBA{
		{0, 0, 255, 255},
		{255, 0, 0, 30},
		{0, 74, 255, 255}, // 18.411 * 4 = 73.64
	}
	for x, w := range want {
		if got := dst.At(x, 0); got != w {
			t.Errorf("x=%d: got %v, want %v", x, got, w)
		}
	}
}

func TestPointOperatorsRejectInvalidImage(t *testing.T) {
	bad := &raster.Image{Width: 1, Height: 1}
	if _, err := Invert(bad); !errors.Is(err, raster.ErrBufferSize) {
		t.Errorf("got %v, want ErrBufferSize", err)
	}
	if _, err := Heatmap(nil); !errors.Is(err, raster.ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
}
