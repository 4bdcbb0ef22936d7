// Package nlt implements the JPEG 2000 Part 2 Non-Linear Point Transform
// engine: gamma, logarithmic, exponential, PQ (ST 2084), HLG (BT.2100),
// lookup-table and piecewise-linear forward/inverse transforms, each
// operating in the normalised [0,1] domain derived from a component's bit
// depth and signedness.
package nlt

import (
	"math"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// Kind identifies which non-linear point transform a Transform applies.
type Kind int

const (
	Identity Kind = iota
	Gamma
	Logarithmic
	Logarithmic10
	Exponential
	PerceptualQuantizer
	HybridLogGamma
	LookupTable
	PiecewiseLinear
	Custom
)

// String returns the name of the transform kind.
func (k Kind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Gamma:
		return "gamma"
	case Logarithmic:
		return "logarithmic"
	case Logarithmic10:
		return "logarithmic10"
	case Exponential:
		return "exponential"
	case PerceptualQuantizer:
		return "perceptualQuantizer"
	case HybridLogGamma:
		return "hybridLogGamma"
	case LookupTable:
		return "lookupTable"
	case PiecewiseLinear:
		return "piecewiseLinear"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Transform is a per-component non-linear point transform. Only the fields
// relevant to Kind need to be populated:
//
//   - Gamma uses GammaValue (must be > 0).
//   - LookupTable uses Forward, Inverse and Interpolate.
//   - PiecewiseLinear uses Breakpoints and Values.
//   - Custom uses Params and Tag, but is unimplemented by this engine; the
//     caller must pre-expand custom transforms to LookupTable or
//     PiecewiseLinear form.
type Transform struct {
	ComponentIndex int
	Kind           Kind

	GammaValue float64

	Forward     []float64
	Inverse     []float64
	Interpolate bool

	Breakpoints []float64
	Values      []float64

	Params []float64
	Tag    string
}

// Statistics describes one Forward or Inverse call: the raw (pre-transform)
// input range, the rounded output range, whether any sample's pre-clamp
// output deviated from its clamped counterpart by more than 1e-3, and the
// number of samples processed. Statistics compares equal field-by-field.
type Statistics struct {
	InputMin, InputMax   float64
	OutputMin, OutputMax float64
	Clipped              bool
	SampleCount          int
}

func validateBitDepth(bitDepth int) error {
	if bitDepth < 1 || bitDepth > 32 {
		return j2k.NewError(j2k.InvalidParameter, "NLT bit depth %d out of range [1,32]", bitDepth)
	}
	return nil
}

// pointFunc maps one normalised sample to its transformed normalised
// value, in either the forward or inverse direction.
type pointFunc func(n float64) float64

func pointFuncFor(t Transform, forward bool) (pointFunc, error) {
	switch t.Kind {
	case Identity:
		return func(n float64) float64 { return n }, nil

	case Gamma:
		if t.GammaValue <= 0 {
			return nil, j2k.NewError(j2k.InvalidParameter, "gamma must be > 0, got %v", t.GammaValue)
		}
		if forward {
			return func(n float64) float64 { return math.Pow(n, t.GammaValue) }, nil
		}
		return func(n float64) float64 { return math.Pow(n, 1/t.GammaValue) }, nil

	case Logarithmic:
		// Forward is log(n+1)/log 2 (a base-2 log of n+1, mapping [0,1] onto
		// [0,1]), not a plain natural log.
		if forward {
			return func(n float64) float64 { return math.Log(n+1) / math.Ln2 }, nil
		}
		return func(n float64) float64 { return math.Exp(n*math.Ln2) - 1 }, nil

	case Logarithmic10:
		log10_2 := math.Log10(2)
		if forward {
			return func(n float64) float64 { return math.Log10(n+1) / log10_2 }, nil
		}
		return func(n float64) float64 { return math.Pow(10, n*log10_2) - 1 }, nil

	case Exponential:
		const e = math.E
		if forward {
			return func(n float64) float64 { return (math.Exp(n) - 1) / (e - 1) }, nil
		}
		return func(n float64) float64 { return math.Log(n*(e-1) + 1) }, nil

	case PerceptualQuantizer:
		if forward {
			return pqForward, nil
		}
		return pqInverse, nil

	case HybridLogGamma:
		if forward {
			return hlgForward, nil
		}
		return hlgInverse, nil

	case LookupTable:
		return lutFunc(t, forward)

	case PiecewiseLinear:
		return piecewiseFunc(t, forward)

	case Custom:
		return nil, j2k.NewError(j2k.InvalidParameter,
			"custom NLT transform %q is unimplemented; pre-expand to lookupTable or piecewiseLinear", t.Tag)

	default:
		return nil, j2k.NewError(j2k.InvalidParameter, "unknown NLT kind %d", t.Kind)
	}
}

func apply(data []int32, bitDepth int, signed bool, t Transform, forward bool) ([]int32, Statistics, error) {
	if len(data) == 0 {
		return nil, Statistics{}, j2k.NewError(j2k.InvalidParameter, "NLT input must not be empty")
	}
	if err := validateBitDepth(bitDepth); err != nil {
		return nil, Statistics{}, err
	}
	f, err := pointFuncFor(t, forward)
	if err != nil {
		return nil, Statistics{}, err
	}

	lo, hi := j2k.SampleRange(bitDepth, signed)
	lof, hif := float64(lo), float64(hi)
	span := hif - lof

	out := make([]int32, len(data))
	stats := Statistics{
		SampleCount: len(data),
		InputMin:    math.Inf(1),
		InputMax:    math.Inf(-1),
		OutputMin:   math.Inf(1),
		OutputMax:   math.Inf(-1),
	}

	for i, v := range data {
		fv := float64(v)
		stats.InputMin = math.Min(stats.InputMin, fv)
		stats.InputMax = math.Max(stats.InputMax, fv)

		n := (fv - lof) / span
		raw := lof + span*f(n)
		clamped := j2k.Clamp(raw, lof, hif)
		if math.Abs(raw-clamped) > 1e-3 {
			stats.Clipped = true
		}

		rounded := int32(j2k.RoundHalfAwayFromZero(clamped))
		out[i] = rounded
		rf := float64(rounded)
		stats.OutputMin = math.Min(stats.OutputMin, rf)
		stats.OutputMax = math.Max(stats.OutputMax, rf)
	}
	return out, stats, nil
}

// Forward applies t's forward non-linear point transform to data, a
// component's raw samples at the given bit depth and signedness.
func Forward(data []int32, bitDepth int, signed bool, t Transform) ([]int32, Statistics, error) {
	return apply(data, bitDepth, signed, t, true)
}

// Inverse applies t's inverse non-linear point transform to data.
func Inverse(data []int32, bitDepth int, signed bool, t Transform) ([]int32, Statistics, error) {
	return apply(data, bitDepth, signed, t, false)
}
