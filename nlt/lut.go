package nlt

import (
	"math"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// lutFunc builds the point function for the LookupTable kind. Forward
// indexes Forward by n*(L-1); Inverse indexes Inverse the same way
// ("symmetric on the inverse LUT"). Without interpolation the nearest
// index is used; with interpolation, a linear blend between the floor and
// ceiling indices (both clamped to [0, L-1]) is used.
func lutFunc(t Transform, forward bool) (pointFunc, error) {
	table := t.Forward
	if !forward {
		table = t.Inverse
	}
	if len(table) == 0 {
		return nil, j2k.NewError(j2k.InvalidParameter, "lookupTable requires a non-empty table")
	}

	last := len(table) - 1
	return func(n float64) float64 {
		idx := n * float64(last)
		if !t.Interpolate {
			i := int(j2k.Clamp(j2k.RoundHalfAwayFromZero(idx), 0, int64(last)))
			return table[i]
		}
		i0 := int(j2k.Clamp(int64(math.Floor(idx)), 0, int64(last)))
		i1 := int(j2k.Clamp(int64(i0+1), 0, int64(last)))
		frac := idx - float64(i0)
		if i0 == i1 {
			return table[i0]
		}
		return table[i0]*(1-frac) + table[i1]*frac
	}, nil
}

// piecewiseFunc builds the point function for the PiecewiseLinear kind.
// Forward runs through (Breakpoints, Values); Inverse runs through
// (Values, Breakpoints). Breakpoints must be non-empty with strictly
// increasing x and the same length as the paired values.
func piecewiseFunc(t Transform, forward bool) (pointFunc, error) {
	xs, ys := t.Breakpoints, t.Values
	if !forward {
		xs, ys = t.Values, t.Breakpoints
	}
	if len(xs) == 0 {
		return nil, j2k.NewError(j2k.InvalidParameter, "piecewiseLinear requires non-empty breakpoints")
	}
	if len(xs) != len(ys) {
		return nil, j2k.NewError(j2k.InvalidParameter, "piecewiseLinear breakpoints/values length mismatch: %d vs %d", len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, j2k.NewError(j2k.InvalidParameter, "piecewiseLinear breakpoints must be strictly increasing at index %d", i)
		}
	}

	last := len(xs) - 1
	return func(n float64) float64 {
		if n <= xs[0] {
			return ys[0]
		}
		if n > xs[last] {
			return ys[last]
		}
		for i := 0; i < last; i++ {
			if n > xs[i] && n <= xs[i+1] {
				frac := (n - xs[i]) / (xs[i+1] - xs[i])
				return ys[i] + frac*(ys[i+1]-ys[i])
			}
		}
		return ys[last]
	}, nil
}
