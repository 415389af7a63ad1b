package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-filters-mcp/internal/filters"
	"github.com/ironsheep/image-filters-mcp/internal/halftone"
	"github.com/ironsheep/image-filters-mcp/internal/point"
	"github.com/ironsheep/image-filters-mcp/internal/raster"
	"github.com/ironsheep/image-filters-mcp/internal/segment"
)

// Result is the outcome of one operator application.
type Result struct {
	// Images holds the output images. Every current operator produces
	// exactly one.
	Images []*raster.Image

	// Regions is the number of regions found by region growing.
	Regions int

	// Markers, Boundaries and Sweeps report watershed statistics.
	Markers    int
	Boundaries int
	Sweeps     int
}

// Image returns the first output image.
func (r *Result) Image() *raster.Image {
	if r == nil || len(r.Images) == 0 {
		return nil
	}
	return r.Images[0]
}

type handler func(src *raster.Image, p Params) (*Result, error)

// handlers is the dispatch table from operator kind to implementation.
var handlers = map[Kind]handler{
	KindLaplacian:       applyLaplacian,
	KindGradient:        applyGradient,
	KindKirsch:          single(func(src *raster.Image, _ Params) (*raster.Image, error) { return filters.Compass(src, filters.Kirsch) }),
	KindRobinson:        single(func(src *raster.Image, _ Params) (*raster.Image, error) { return filters.Compass(src, filters.Robinson) }),
	KindFreyChen:        single(func(src *raster.Image, _ Params) (*raster.Image, error) { return filters.ConvolveAbs(src, filters.FreyChen) }),
	KindHighPass:        applyHighPass,
	KindHighBoost:       applyHighBoost,
	KindPointDetection:  applyPointDetection,
	KindLineDetection:   applyLineDetection,
	KindMean:            single(func(src *raster.Image, p Params) (*raster.Image, error) { return filters.Mean(src, p.size(3)) }),
	KindMedian:          single(func(src *raster.Image, p Params) (*raster.Image, error) { return filters.Median(src, p.size(3)) }),
	KindMax:             single(func(src *raster.Image, _ Params) (*raster.Image, error) { return filters.Max(src) }),
	KindMin:             single(func(src *raster.Image, _ Params) (*raster.Image, error) { return filters.Min(src) }),
	KindMode:            single(func(src *raster.Image, _ Params) (*raster.Image, error) { return filters.Mode(src) }),
	KindEdgePreserving:  applyEdgePreserving,
	KindOrderedDither:   single(func(src *raster.Image, p Params) (*raster.Image, error) { return halftone.Ordered(src, orDefault(p.Matrix, "2x2")) }),
	KindErrorDiffusion:  single(func(src *raster.Image, p Params) (*raster.Image, error) { return halftone.Diffuse(src, orDefault(p.Matrix, "floyd_steinberg")) }),
	KindThresholdGlobal: single(func(src *raster.Image, p Params) (*raster.Image, error) { return filters.ThresholdGlobal(src, p.threshold(128)) }),
	KindThresholdLocal:  applyThresholdLocal,
	KindNiblack:         applyNiblack,
	KindRegionGrowing:   applyRegionGrowing,
	KindWatershed:       applyWatershed,
	KindInvert:          single(func(src *raster.Image, _ Params) (*raster.Image, error) { return point.Invert(src) }),
	KindGamma:           single(func(src *raster.Image, p Params) (*raster.Image, error) { return point.Gamma(src, orFloat(p.Gamma, 1)) }),
	KindNonLinear:       single(func(src *raster.Image, p Params) (*raster.Image, error) { return point.NonLinear(src, point.Curve(orDefault(p.Curve, "log"))) }),
	KindFalseColor:      applyFalseColor,
	KindHeatmap:         single(func(src *raster.Image, _ Params) (*raster.Image, error) { return point.Heatmap(src) }),
}

// Apply runs one operator on src and returns a new image; src is not
// modified.
//
// Unknown kinds fail with ErrUnknownOperator. Out-of-range parameters fail
// with an error wrapping ErrInvalidParam. An invalid source image fails with
// the raster package's dimension or buffer errors.
func Apply(src *raster.Image, op Operator) (*Result, error) {
	h, ok := handlers[op.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op.Kind)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	res, err := h(src, op.Params)
	if err != nil {
		return nil, classify(op.Kind, err)
	}
	return res, nil
}

// classify marks parameter errors of the operator packages with
// ErrInvalidParam.
func classify(kind Kind, err error) error {
	if errors.Is(err, ErrInvalidParam) {
		return fmt.Errorf("%s: %w", kind, err)
	}
	if errors.Is(err, filters.ErrInvalidParam) ||
		errors.Is(err, halftone.ErrUnknownMatrix) ||
		errors.Is(err, segment.ErrInvalidParam) ||
		errors.Is(err, point.ErrInvalidParam) {
		return fmt.Errorf("%s: %w: %w", kind, ErrInvalidParam, err)
	}
	return fmt.Errorf("%s: %w", kind, err)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParam, fmt.Sprintf(format, args...))
}

func single(fn func(src *raster.Image, p Params) (*raster.Image, error)) handler {
	return func(src *raster.Image, p Params) (*Result, error) {
		img, err := fn(src, p)
		if err != nil {
			return nil, err
		}
		return &Result{Images: []*raster.Image{img}}, nil
	}
}

func applyLaplacian(src *raster.Image, p Params) (*Result, error) {
	var k filters.Kernel
	switch orDefault(p.Variant, "h1") {
	case "h1":
		k = filters.LaplacianH1
	case "h2":
		k = filters.LaplacianH2
	default:
		return nil, invalid("unknown laplacian variant %q", p.Variant)
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.ConvolveAbs(src, k)
	})(src, p)
}

func applyGradient(src *raster.Image, p Params) (*Result, error) {
	pair, err := filters.LookupGradient(orDefault(p.Operator, filters.Sobel.Name))
	if err != nil {
		return nil, err
	}
	mode, err := filters.ParseGradientMode(p.Mode)
	if err != nil {
		return nil, err
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.Gradient(src, pair, mode)
	})(src, p)
}

func applyHighPass(src *raster.Image, p Params) (*Result, error) {
	k, err := filters.LookupHighPass(orDefault(p.Variant, "h1"))
	if err != nil {
		return nil, err
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.ConvolveChannels(src, k)
	})(src, p)
}

func applyHighBoost(src *raster.Image, p Params) (*Result, error) {
	boost := filters.DefaultBoost
	if p.Boost != nil {
		boost = *p.Boost
	}
	if math.IsNaN(boost) || math.IsInf(boost, 0) || boost < 0 {
		return nil, invalid("boost must be a finite non-negative number, got %v", boost)
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.ConvolveChannels(src, filters.HighBoost(boost))
	})(src, p)
}

func detectionThreshold(p Params, def float64) (float64, error) {
	t := p.threshold(def)
	if math.IsNaN(t) || t < 0 {
		return 0, invalid("detection threshold must be non-negative, got %v", t)
	}
	return t, nil
}

func applyPointDetection(src *raster.Image, p Params) (*Result, error) {
	t, err := detectionThreshold(p, 30)
	if err != nil {
		return nil, err
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.Detect(src, filters.LaplacianH1, t)
	})(src, p)
}

func applyLineDetection(src *raster.Image, p Params) (*Result, error) {
	k, err := filters.LookupLineMask(orDefault(p.Direction, "horizontal"))
	if err != nil {
		return nil, err
	}
	t, err := detectionThreshold(p, 30)
	if err != nil {
		return nil, err
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.Detect(src, k, t)
	})(src, p)
}

func applyEdgePreserving(src *raster.Image, p Params) (*Result, error) {
	s, err := filters.LookupStrategy(orDefault(p.Strategy, filters.Kawahara.Name))
	if err != nil {
		return nil, err
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.EdgePreserve(src, s)
	})(src, p)
}

func applyThresholdLocal(src *raster.Image, p Params) (*Result, error) {
	stat := filters.LocalStat(orDefault(p.Statistic, string(filters.LocalMean)))
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.ThresholdLocal(src, p.size(3), stat)
	})(src, p)
}

func applyNiblack(src *raster.Image, p Params) (*Result, error) {
	k := filters.DefaultNiblackK
	if p.K != nil {
		k = *p.K
	}
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return nil, invalid("k must be finite, got %v", k)
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return filters.Niblack(src, p.size(3), k)
	})(src, p)
}

// byteThreshold reads an integral threshold in [0, 255].
func byteThreshold(p Params, def int) (int, error) {
	t := p.threshold(float64(def))
	if t != math.Trunc(t) || t < 0 || t > 255 {
		return 0, invalid("threshold must be an integer in [0, 255], got %v", t)
	}
	return int(t), nil
}

func applyRegionGrowing(src *raster.Image, p Params) (*Result, error) {
	t, err := byteThreshold(p, 30)
	if err != nil {
		return nil, err
	}
	res, err := segment.RegionGrow(src, p.SeedX, p.SeedY, t)
	if err != nil {
		return nil, err
	}
	return &Result{Images: []*raster.Image{res.Image}, Regions: res.Regions}, nil
}

func applyWatershed(src *raster.Image, p Params) (*Result, error) {
	t, err := byteThreshold(p, segment.DefaultWatershedThreshold)
	if err != nil {
		return nil, err
	}
	opts := segment.WatershedOptions{Threshold: t}
	if p.BoundaryColor != "" {
		c, err := raster.ParseHexColor(p.BoundaryColor)
		if err != nil {
			return nil, invalid("boundary color: %v", err)
		}
		opts.BoundaryColor = &c
	}
	res, err := segment.Watershed(src, opts)
	if err != nil {
		return nil, err
	}
	return &Result{
		Images:     []*raster.Image{res.Image},
		Markers:    res.Markers,
		Boundaries: res.Boundaries,
		Sweeps:     res.Sweeps,
	}, nil
}

func applyFalseColor(src *raster.Image, p Params) (*Result, error) {
	opts := point.FalseColorOptions{
		Highlight: point.DefaultHighlight,
		Ratio:     p.threshold(point.DefaultHighlightRatio),
		Strength:  orFloat(p.Strength, point.DefaultHighlightStrength),
	}
	if p.HighlightColor != "" {
		c, err := raster.ParseHexColor(p.HighlightColor)
		if err != nil {
			return nil, invalid("highlight color: %v", err)
		}
		opts.Highlight = c
	}
	return single(func(src *raster.Image, _ Params) (*raster.Image, error) {
		return point.FalseColor(src, opts)
	})(src, p)
}
