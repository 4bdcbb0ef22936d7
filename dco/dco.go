// Package dco implements the JPEG 2000 Part 2 DC Offset Engine (computing
// and applying per-component DC offsets) and the DCO marker segment codec
// that serialises those offsets into a codestream header.
package dco

import (
	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// Method selects how a component's DC offset value is derived from its
// statistics.
type Method int

const (
	// MethodMean derives the offset from the arithmetic mean of the
	// component's samples.
	MethodMean Method = iota
	// MethodMidrange derives the offset from (min+max)/2.
	MethodMidrange
	// MethodCustom leaves the offset at zero; the caller supplies a value
	// through a different path (e.g. directly constructing a Value).
	MethodCustom
)

// Config controls how ComputeAndRemove derives an offset.
type Config struct {
	// Enabled gates the whole stage: when false, data passes through
	// byte-identical regardless of Method.
	Enabled bool
	Method  Method
	// OptimizeForNaturalImages, when Method is MethodMean, rounds the mean
	// to the nearest integer before using it as the offset value instead of
	// keeping the exact (generally fractional) mean.
	OptimizeForNaturalImages bool
}

// Statistics holds the single-pass statistics of a component's sample
// buffer: mean, minimum, maximum and the sample count they were computed
// over. Midrange() is undefined (returns 0) for an empty buffer.
type Statistics struct {
	Mean             float64
	Minimum, Maximum int32
	Count            int
}

// Midrange returns (Minimum+Maximum)/2.
func (s Statistics) Midrange() float64 {
	return (float64(s.Minimum) + float64(s.Maximum)) / 2
}

// ComputeStatistics scans data once, accumulating the sum in a 64-bit
// float accumulator so bit depths up to 38 and buffer lengths up to 2^31
// cannot overflow the running total. An empty buffer yields the zero
// Statistics.
func ComputeStatistics(data []int32) Statistics {
	if len(data) == 0 {
		return Statistics{}
	}
	var sum float64
	minV, maxV := data[0], data[0]
	for _, v := range data {
		sum += float64(v)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return Statistics{
		Mean:    sum / float64(len(data)),
		Minimum: minV,
		Maximum: maxV,
		Count:   len(data),
	}
}

// Value is a per-component DC offset: the component it applies to and a
// floating-point value. IntegerValue rounds it half-away-from-zero, the
// quantity actually added to or subtracted from samples. A zero-valued
// offset (IntegerValue() == 0) is the identity offset.
type Value struct {
	ComponentIndex int
	Value          float64
}

// IntegerValue returns the offset rounded to the nearest integer,
// half-away-from-zero.
func (v Value) IntegerValue() int32 {
	return int32(j2k.RoundHalfAwayFromZero(v.Value))
}

// Result is the output of ComputeAndRemove: the offset-adjusted sample
// data, the offset that was derived and removed, and the statistics it was
// derived from.
type Result struct {
	AdjustedData []int32
	Offset       Value
	Statistics   Statistics
}

func validateBitDepth(componentIndex, bitDepth int) error {
	if bitDepth < 1 || bitDepth > 38 {
		return j2k.NewComponentError(j2k.InvalidParameter, componentIndex, float64(bitDepth),
			"bit depth %d out of range [1,38]", bitDepth)
	}
	return nil
}

// deriveOffset computes the offset value for data under cfg, without
// touching the samples.
func deriveOffset(stats Statistics, componentIndex int, cfg Config) Value {
	if !cfg.Enabled {
		return Value{ComponentIndex: componentIndex, Value: 0}
	}
	switch cfg.Method {
	case MethodMidrange:
		return Value{ComponentIndex: componentIndex, Value: stats.Midrange()}
	case MethodCustom:
		return Value{ComponentIndex: componentIndex, Value: 0}
	case MethodMean:
		fallthrough
	default:
		if cfg.OptimizeForNaturalImages {
			return Value{ComponentIndex: componentIndex, Value: float64(j2k.RoundHalfAwayFromZero(stats.Mean))}
		}
		return Value{ComponentIndex: componentIndex, Value: stats.Mean}
	}
}

// ComputeAndRemove computes statistics for data, derives an offset under
// cfg, and subtracts the offset's rounded integer value from every sample.
// When cfg.Enabled is false or the derived offset rounds to zero, the
// returned AdjustedData is byte-identical to data (a fresh copy, inputs are
// never mutated).
func ComputeAndRemove(data []int32, componentIndex, bitDepth int, cfg Config) (Result, error) {
	if err := validateBitDepth(componentIndex, bitDepth); err != nil {
		return Result{}, err
	}
	stats := ComputeStatistics(data)
	offset := deriveOffset(stats, componentIndex, cfg)

	adjusted := make([]int32, len(data))
	shift := offset.IntegerValue()
	if !cfg.Enabled || shift == 0 {
		copy(adjusted, data)
	} else {
		for i, v := range data {
			adjusted[i] = v - shift
		}
	}
	return Result{AdjustedData: adjusted, Offset: offset, Statistics: stats}, nil
}

// Apply adds offset's rounded integer value back onto every sample,
// reversing Remove/ComputeAndRemove. It never mutates data.
func Apply(offset Value, data []int32) []int32 {
	shift := offset.IntegerValue()
	out := make([]int32, len(data))
	if shift == 0 {
		copy(out, data)
		return out
	}
	for i, v := range data {
		out[i] = v + shift
	}
	return out
}

// Remove subtracts offset's rounded integer value from every sample. It
// never mutates data.
func Remove(offset Value, data []int32) []int32 {
	shift := offset.IntegerValue()
	out := make([]int32, len(data))
	if shift == 0 {
		copy(out, data)
		return out
	}
	for i, v := range data {
		out[i] = v - shift
	}
	return out
}

// ComputeAndRemoveAll runs ComputeAndRemove across a batch of components,
// one Config per component, in component order. It fails with
// InvalidParameter when the component and config counts do not match.
func ComputeAndRemoveAll(components []j2k.Component, cfgs []Config) ([]Result, error) {
	if len(components) != len(cfgs) {
		return nil, j2k.NewError(j2k.InvalidParameter,
			"component count %d does not match config count %d", len(components), len(cfgs))
	}
	results := make([]Result, len(components))
	for i, c := range components {
		r, err := ComputeAndRemove(c.Data, c.Index, c.BitDepth, cfgs[i])
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}
