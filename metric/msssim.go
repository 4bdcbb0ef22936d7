package metric

import (
	"math"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// msssimWeights are the Wang 2003 MS-SSIM scale weights.
var msssimWeights = [5]float64{0.0448, 0.2856, 0.3001, 0.2363, 0.1333}

// downsample2x2 averages non-overlapping 2x2 blocks of a w-by-h buffer
// into a newW-by-newH buffer, where newW = w/2 and newH = h/2 (integer
// floor division).
func downsample2x2(data []int32, w, newW, newH int) []int32 {
	out := make([]int32, newW*newH)
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			var sum int64
			for dy := 0; dy < 2; dy++ {
				row := (y*2 + dy) * w
				for dx := 0; dx < 2; dx++ {
					sum += int64(data[row+x*2+dx])
				}
			}
			out[y*newW+x] = int32(j2k.RoundHalfAwayFromZero(float64(sum) / 4))
		}
	}
	return out
}

// MSSSIMComponent computes MS-SSIM over a single component pair across
// `scales` dyadic decomposition levels (1<=scales<=5). Every intermediate
// scale's full SSIM value is used as that scale's contrast-structure term;
// the final scale's SSIM value is used as the luminance term. They combine
// as MSSSIM = L^w[last] * product(CS_i^w[i]) for i < last.
func MSSSIMComponent(a, b []int32, w, h, bitDepth, scales int) (float64, error) {
	if scales < 1 || scales > 5 {
		return 0, j2k.NewError(j2k.InvalidParameter, "scales %d out of range [1,5]", scales)
	}

	curA, curB := a, b
	curW, curH := w, h
	product := 1.0

	for i := 0; i < scales; i++ {
		ssimVal, err := SSIMComponent(curA, curB, curW, curH, bitDepth)
		if err != nil {
			return 0, err
		}
		product *= ssimPow(ssimVal, msssimWeights[i])

		if i < scales-1 {
			newW, newH := curW/2, curH/2
			if newW <= 0 || newH <= 0 {
				return 0, j2k.NewError(j2k.InvalidParameter, "downsampling at scale %d yields non-positive dimensions %dx%d", i+1, newW, newH)
			}
			curA = downsample2x2(curA, curW, newW, newH)
			curB = downsample2x2(curB, curW, newW, newH)
			curW, curH = newW, newH
		}
	}
	return product, nil
}

// MSSSIMImage computes the image-level MS-SSIM as the arithmetic mean of
// per-component MS-SSIM values.
func MSSSIMImage(a, b *j2k.Image, scales int) (float64, error) {
	if err := validateImagePair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a.Components {
		ca, cb := &a.Components[i], &b.Components[i]
		v, err := MSSSIMComponent(ca.Data, cb.Data, ca.Width, ca.Height, ca.BitDepth, scales)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(len(a.Components)), nil
}

// ssimPow raises a per-scale SSIM value to its weight, treating a
// non-positive SSIM (possible on pathological noise) as contributing zero
// rather than a complex or NaN result from math.Pow.
func ssimPow(base, exp float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Pow(base, exp)
}
