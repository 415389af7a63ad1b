package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Apply.
var (
	ErrUnknownOperator = errors.New("unknown operator")
	ErrInvalidParam    = errors.New("invalid operator parameter")
)

// Kind names an operator.
type Kind string

// Operator kinds.
const (
	KindLaplacian       Kind = "laplacian"
	KindGradient        Kind = "gradient"
	KindKirsch          Kind = "kirsch"
	KindRobinson        Kind = "robinson"
	KindFreyChen        Kind = "frey_chen"
	KindHighPass        Kind = "high_pass"
	KindHighBoost       Kind = "high_boost"
	KindPointDetection  Kind = "point_detection"
	KindLineDetection   Kind = "line_detection"
	KindMean            Kind = "mean"
	KindMedian          Kind = "median"
	KindMax             Kind = "max"
	KindMin             Kind = "min"
	KindMode            Kind = "mode"
	KindEdgePreserving  Kind = "edge_preserving"
	KindOrderedDither   Kind = "ordered_dither"
	KindErrorDiffusion  Kind = "error_diffusion"
	KindThresholdGlobal Kind = "threshold_global"
	KindThresholdLocal  Kind = "threshold_local"
	KindNiblack         Kind = "niblack"
	KindRegionGrowing   Kind = "region_growing"
	KindWatershed       Kind = "watershed"
	KindInvert          Kind = "invert"
	KindGamma           Kind = "gamma"
	KindNonLinear       Kind = "non_linear"
	KindFalseColor      Kind = "false_color"
	KindHeatmap         Kind = "heatmap"
)

// Params carries the parameters of every operator kind. Each kind reads only
// the fields it documents in Catalog; the rest are ignored. Nil pointers and
// empty strings select the documented defaults.
type Params struct {
	// Variant selects the mask of laplacian (h1, h2) and high_pass
	// (h1, h2, m1, m2, m3).
	Variant string `json:"variant,omitempty"`

	// Operator selects the gradient pair: roberts, roberts_cross, prewitt,
	// sobel.
	Operator string `json:"operator,omitempty"`

	// Mode selects the gradient output: gx, gy or magnitude.
	Mode string `json:"mode,omitempty"`

	// Strategy selects the edge-preserving region geometry.
	Strategy string `json:"strategy,omitempty"`

	// Matrix names the ordered or error-diffusion matrix.
	Matrix string `json:"matrix,omitempty"`

	// Direction selects the line mask: horizontal, vertical, 45, 135.
	Direction string `json:"direction,omitempty"`

	// Statistic selects the local threshold statistic: mean, max, min.
	Statistic string `json:"statistic,omitempty"`

	// Size is the kernel size (mean, median) or window size (local
	// thresholds, niblack).
	Size int `json:"size,omitempty"`

	// Threshold is the decision level of detection, thresholding and
	// segmentation operators.
	Threshold *float64 `json:"threshold,omitempty"`

	// Boost is the high-boost amplification.
	Boost *float64 `json:"boost,omitempty"`

	// K is the Niblack standard deviation weight.
	K *float64 `json:"k,omitempty"`

	// SeedX and SeedY locate the region growing seed.
	SeedX int `json:"seed_x,omitempty"`
	SeedY int `json:"seed_y,omitempty"`

	// BoundaryColor is the watershed highlight as hex, e.g. "#FF0000".
	BoundaryColor string `json:"boundary_color,omitempty"`

	// Gamma is the gamma correction exponent.
	Gamma *float64 `json:"gamma,omitempty"`

	// Curve selects the non_linear mapping: log, sqrt, exp, square.
	Curve string `json:"curve,omitempty"`

	// HighlightColor and Strength configure false_color, which reads its
	// G/B ratio from Threshold.
	HighlightColor string   `json:"highlight_color,omitempty"`
	Strength       *float64 `json:"strength,omitempty"`
}

// Operator selects an operator and its parameters.
type Operator struct {
	Kind   Kind   `json:"kind"`
	Params Params `json:"params"`
}

// Float returns a pointer to v, for filling optional Params fields.
func Float(v float64) *float64 {
	return &v
}

// ParseKind validates an operator name.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if _, ok := handlers[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return k, nil
}

func (p Params) threshold(def float64) float64 {
	if p.Threshold == nil {
		return def
	}
	return *p.Threshold
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func (p Params) size(def int) int {
	if p.Size == 0 {
		return def
	}
	return p.Size
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
