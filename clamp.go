package jpeg2000part2

import "golang.org/x/exp/constraints"

// Number is any ordered numeric type clamp and the sample-domain transforms
// operate over: the integer sample domain and the float64 normalised
// transform domain.
type Number interface {
	constraints.Integer | constraints.Float
}

// Clamp restricts x to the closed interval [lo, hi]. Callers must ensure
// lo <= hi; when they do, lo <= Clamp(x, lo, hi) <= hi always holds.
func Clamp[T Number](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// RoundHalfAwayFromZero rounds a float64 to the nearest integer, rounding
// halfway values away from zero. This is the rounding rule used wherever
// this module converts a continuous offset or transform output back to an
// integer sample.
func RoundHalfAwayFromZero(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}
