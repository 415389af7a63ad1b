package engine

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-filters-mcp/internal/raster"
)

func newGradientImage(t *testing.T, w, h int) *raster.Image {
	t.Helper()
	img, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.Offset(x, y)
			img.Pix[i] = uint8(x * 20)
			img.Pix[i+1] = uint8(y * 20)
			img.Pix[i+2] = uint8((x + y) * 10)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func newFlatImage(t *testing.T, w, h int, v uint8) *raster.Image {
	t.Helper()
	img, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	return img
}

func TestApplyEveryKindKeepsDimensions(t *testing.T) {
	src := newGradientImage(t, 9, 7)
	before := src.Clone()

	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			res, err := Apply(src, Operator{Kind: kind})
			if err != nil {
				t.Fatalf("Apply(%s) failed: %v", kind, err)
			}
			out := res.Image()
			if out == nil {
				t.Fatal("expected an output image")
			}
			if out.Width != src.Width || out.Height != src.Height {
				t.Errorf("got %dx%d, want %dx%d", out.Width, out.Height, src.Width, src.Height)
			}
			if len(out.Pix) != len(src.Pix) {
				t.Errorf("got %d bytes, want %d", len(out.Pix), len(src.Pix))
			}
			if &out.Pix[0] == &src.Pix[0] {
				t.Error("output shares the source buffer")
			}
		})
	}

	for i := range src.Pix {
		if src.Pix[i] != before.Pix[i] {
			t.Fatalf("source modified at byte %d", i)
		}
	}
}

func TestApplyUnknownOperator(t *testing.T) {
	src := newFlatImage(t, 3, 3, 10)
	_, err := Apply(src, Operator{Kind: "sharpen_more"})
	if !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("got %v, want ErrUnknownOperator", err)
	}
}

func TestApplyInvalidImage(t *testing.T) {
	bad := &raster.Image{Width: 2, Height: 2, Pix: make([]uint8, 3)}
	_, err := Apply(bad, Operator{Kind: KindMedian})
	if !errors.Is(err, raster.ErrBufferSize) {
		t.Errorf("got %v, want ErrBufferSize", err)
	}

	_, err = Apply(nil, Operator{Kind: KindMedian})
	if !errors.Is(err, raster.ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestApplyInvalidParams(t *testing.T) {
	src := newGradientImage(t, 6, 6)

	tests := []struct {
		name string
		op   Operator
	}{
		{"laplacian variant", Operator{Kind: KindLaplacian, Params: Params{Variant: "h3"}}},
		{"gradient operator", Operator{Kind: KindGradient, Params: Params{Operator: "canny"}}},
		{"gradient mode", Operator{Kind: KindGradient, Params: Params{Mode: "diagonal"}}},
		{"high pass variant", Operator{Kind: KindHighPass, Params: Params{Variant: "m9"}}},
		{"negative boost", Operator{Kind: KindHighBoost, Params: Params{Boost: Float(-1)}}},
		{"negative point threshold", Operator{Kind: KindPointDetection, Params: Params{Threshold: Float(-5)}}},
		{"line direction", Operator{Kind: KindLineDetection, Params: Params{Direction: "30"}}},
		{"mean size", Operator{Kind: KindMean, Params: Params{Size: 4}}},
		{"median size", Operator{Kind: KindMedian, Params: Params{Size: 7}}},
		{"edge strategy", Operator{Kind: KindEdgePreserving, Params: Params{Strategy: "bilateral"}}},
		{"ordered matrix", Operator{Kind: KindOrderedDither, Params: Params{Matrix: "4x4"}}},
		{"diffusion matrix", Operator{Kind: KindErrorDiffusion, Params: Params{Matrix: "atkinson"}}},
		{"global threshold", Operator{Kind: KindThresholdGlobal, Params: Params{Threshold: Float(256)}}},
		{"local statistic", Operator{Kind: KindThresholdLocal, Params: Params{Statistic: "median"}}},
		{"local size", Operator{Kind: KindThresholdLocal, Params: Params{Size: 4}}},
		{"niblack size", Operator{Kind: KindNiblack, Params: Params{Size: -3}}},
		{"region seed", Operator{Kind: KindRegionGrowing, Params: Params{SeedX: 6}}},
		{"region threshold", Operator{Kind: KindRegionGrowing, Params: Params{Threshold: Float(12.5)}}},
		{"watershed threshold", Operator{Kind: KindWatershed, Params: Params{Threshold: Float(300)}}},
		{"watershed color", Operator{Kind: KindWatershed, Params: Params{BoundaryColor: "#12"}}},
		{"zero gamma", Operator{Kind: KindGamma, Params: Params{Gamma: Float(0)}}},
		{"unknown curve", Operator{Kind: KindNonLinear, Params: Params{Curve: "cube"}}},
		{"false color strength", Operator{Kind: KindFalseColor, Params: Params{Strength: Float(2)}}},
		{"false color highlight", Operator{Kind: KindFalseColor, Params: Params{HighlightColor: "#1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(src, tt.op)
			if !errors.Is(err, ErrInvalidParam) {
				t.Errorf("got %v, want ErrInvalidParam", err)
			}
		})
	}
}

func TestApplyThresholdDefaults(t *testing.T) {
		res, err := Apply(newFlatImage(t, 2, 2, 130), Operator{Kind: KindThresholdGlobal})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := res.Image().Pix[0]; got != 255 {
		t.Errorf("got %d, want 255", got)
	}

	res, err = Apply(newFlatImage(t, 2, 2, 126), Operator{Kind: KindThresholdGlobal})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := res.Image().Pix[0]; got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestApplyRegionGrowingReportsRegions(t *testing.T) {
	res, err := Apply(newFlatImage(t, 4, 4, 90), Operator{Kind: KindRegionGrowing})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Regions != 1 {
		t.Errorf("got %d regions, want 1", res.Regions)
	}
}

func TestApplyWatershedReportsStats(t *testing.T) {
	src := newFlatImage(t, 6, 5, 40)
	res, err := Apply(src, Operator{Kind: KindWatershed, Params: Params{BoundaryColor: "#00FF00"}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Markers != 12 {
		t.Errorf("got %d markers, want 12", res.Markers)
	}
	if res.Boundaries != 0 {
		t.Errorf("got %d boundaries, want 0", res.Boundaries)
	}
	if res.Sweeps != 1 {
		t.Errorf("got %d sweeps, want 1", res.Sweeps)
	}
	for i := range src.Pix {
		if res.Image().Pix[i] != src.Pix[i] {
			t.Fatalf("flat image changed at byte %d", i)
		}
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("niblack")
	if err != nil {
		t.Fatalf("ParseKind failed: %v", err)
	}
	if k != KindNiblack {
		t.Errorf("got %q, want %q", k, KindNiblack)
	}

	if _, err := ParseKind("blur"); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("got %v, want ErrUnknownOperator", err)
	}
}

func TestCatalogCoversEveryKind(t *testing.T) {
	catalog := Catalog()
	kinds := Kinds()
	if len(catalog) != len(kinds) {
		t.Fatalf("got %d catalog entries, want %d", len(catalog), len(kinds))
	}
	for i, info := range catalog {
		if info.Kind != kinds[i] {
			t.Errorf("entry %d: got %q, want %q", i, info.Kind, kinds[i])
		}
		if info.Description == "" {
			t.Errorf("%s: empty description", info.Kind)
		}
	}
}

func TestResultImageNil(t *testing.T) {
	var r *Result
	if r.Image() != nil {
		t.Error("expected nil image from nil result")
	}
	if (&Result{}).Image() != nil {
		t.Error("expected nil image from empty result")
	}
}

func TestApplyWatershedTransparentBoundaryColor(t *testing.T) {
	src := newFlatImage(t, 9, 5, 0)
	for y := 0; y < 5; y++ {
		for x := 4; x < 9; x++ {
			i := src.Offset(x, y)
			src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 255, 255, 255
		}
	}

	res, err := Apply(src, Operator{Kind: KindWatershed, Params: Params{BoundaryColor: "#00000000"}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Boundaries == 0 {
		t.Fatal("expected boundaries on a step edge")
	}
	out := res.Image()
	transparent := 0
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] == 255 && out.Pix[i+1] == 0 && out.Pix[i+2] == 0 {
			t.Fatalf("pixel %d painted with the default red", i/4)
		}
		if out.Pix[i+3] == 0 {
			transparent++
		}
	}
	if transparent != res.Boundaries {
		t.Errorf("transparent pixels: got %d, want %d", transparent, res.Boundaries)
	}
}

func TestApplyPointOperators(t *testing.T) {
	src := newFlatImage(t, 3, 2, 200)

	tests := []struct {
		name string
		op   Operator
		want [3]uint8
	}{
		{"invert", Operator{Kind: KindInvert}, [3]uint8{55, 55, 55}},
		{"gamma 2", Operator{Kind: KindGamma, Params: Params{Gamma: Float(2)}}, [3]uint8{156, 156, 156}},
		{"square curve", Operator{Kind: KindNonLinear, Params: Params{Curve: "square"}}, [3]uint8{156, 156, 156}},
		// G/B ratio 1 exceeds 0.3 and green 200 exceeds 100.
		{"false color defaults", Operator{Kind: KindFalseColor}, [3]uint8{40, 244, 244}},
		{"heatmap of bright gray", Operator{Kind: KindHeatmap}, [3]uint8{255, 220, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(src, tt.op)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			out := res.Image()
			for i := 0; i < len(out.Pix); i += 4 {
				got := [3]uint8{out.Pix[i], out.Pix[i+1], out.Pix[i+2]}
				if got != tt.want {
					t.Fatalf("pixel %d: got %v, want %v", i/4, got, tt.want)
				}
				if out.Pix[i+3] != 255 {
					t.Fatalf("pixel %d: alpha got %d, want 255", i/4, out.Pix[i+3])
				}
			}
		})
	}
}
