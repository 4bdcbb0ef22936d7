package metric

import (
	"math"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// windowStats computes the population mean, variance and covariance of an
// 8x8 window at (x0, y0) within a w-wide row-major buffer.
func windowStats(a, b []int32, w, x0, y0 int) (mx, my, vx, vy, cov float64) {
	const n = 64.0
	var sx, sy, sxx, syy, sxy float64
	for dy := 0; dy < 8; dy++ {
		row := (y0 + dy) * w
		for dx := 0; dx < 8; dx++ {
			av := float64(a[row+x0+dx])
			bv := float64(b[row+x0+dx])
			sx += av
			sy += bv
			sxx += av * av
			syy += bv * bv
			sxy += av * bv
		}
	}
	mx, my = sx/n, sy/n
	vx = sxx/n - mx*mx
	if vx < 0 {
		vx = 0
	}
	vy = syy/n - my*my
	if vy < 0 {
		vy = 0
	}
	cov = sxy/n - mx*my
	return
}

func windowSSIM(mx, my, vx, vy, cov, c1, c2 float64) float64 {
	l := (2*mx*my + c1) / (mx*mx + my*my + c1)
	c := (2*math.Sqrt(vx*vy) + c2) / (vx + vy + c2)
	s := (cov + c2/2) / (math.Sqrt(vx*vy) + c2/2)
	return l * c * s
}

// SSIMComponent computes SSIM over a single component pair using a fixed
// 8x8 window, stride-4 scan: the arithmetic mean of the per-window SSIM
// over every window whose top-left (x,y) satisfies x+8<=w and y+8<=h,
// starting from (0,0) and stepping by 4 in both axes.
func SSIMComponent(a, b []int32, w, h, bitDepth int) (float64, error) {
	if len(a) != w*h || len(b) != w*h {
		return 0, j2k.NewError(j2k.MetricError, "buffer length does not match %dx%d", w, h)
	}
	if w < 8 || h < 8 {
		return 0, j2k.NewError(j2k.MetricError, "dimensions %dx%d too small for an 8x8 SSIM window", w, h)
	}

	maxVal := maxValue(bitDepth)
	c1 := math.Pow(0.01*maxVal, 2)
	c2 := math.Pow(0.03*maxVal, 2)

	var sum float64
	var count int
	for y := 0; y+8 <= h; y += 4 {
		for x := 0; x+8 <= w; x += 4 {
			if (y+7)*w+x+7 >= len(a) {
				return 0, j2k.NewError(j2k.MetricError, "window at (%d,%d) overruns buffer of length %d", x, y, len(a))
			}
			mx, my, vx, vy, cov := windowStats(a, b, w, x, y)
			sum += windowSSIM(mx, my, vx, vy, cov, c1, c2)
			count++
		}
	}
	if count == 0 {
		return 0, j2k.NewError(j2k.MetricError, "no 8x8 windows fit in %dx%d", w, h)
	}
	return sum / float64(count), nil
}

// SSIMImage computes the image SSIM as the arithmetic mean of per-component
// SSIM values.
func SSIMImage(a, b *j2k.Image) (float64, error) {
	if err := validateImagePair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a.Components {
		ca, cb := &a.Components[i], &b.Components[i]
		v, err := SSIMComponent(ca.Data, cb.Data, ca.Width, ca.Height, ca.BitDepth)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(len(a.Components)), nil
}
