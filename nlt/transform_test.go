package nlt

import (
	"math"
	"testing"
)

func absDiffI32(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}

// TestGammaInvertibilityScenario checks that an 8-bit unsigned ramp
// through gamma=2.2 forward then inverse reproduces the input within +-1.
func TestGammaInvertibilityScenario(t *testing.T) {
	data := []int32{0, 64, 128, 192, 255}
	tr := Transform{Kind: Gamma, GammaValue: 2.2}

	fwd, _, err := Forward(data, 8, false, tr)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	inv, _, err := Inverse(fwd, 8, false, tr)
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	for i, v := range inv {
		if absDiffI32(v, data[i]) > 1 {
			t.Errorf("inv[%d] = %d, want within 1 of %d", i, v, data[i])
		}
	}
}

// TestInvertibilityProperty checks forward/inverse round-trip accuracy
// across several transform kinds and bit depths.
func TestInvertibilityProperty(t *testing.T) {
	ramps := map[int][]int32{
		8:  {0, 16, 32, 64, 96, 128, 160, 192, 224, 255},
		10: {0, 64, 128, 256, 512, 768, 1023},
		12: {0, 256, 1024, 2048, 3072, 4095},
	}
	tolerances := map[int]int32{8: 1, 10: 2, 12: 4}

	transforms := []Transform{
		{Kind: Identity},
		{Kind: Gamma, GammaValue: 1.0},
		{Kind: Gamma, GammaValue: 2.2},
		{Kind: Gamma, GammaValue: 0.5},
		{Kind: Logarithmic},
		{Kind: Logarithmic10},
		{Kind: Exponential},
		{Kind: PerceptualQuantizer},
		{Kind: HybridLogGamma},
	}

	for bitDepth, data := range ramps {
		tol := tolerances[bitDepth]
		for _, tr := range transforms {
			fwd, _, err := Forward(data, bitDepth, false, tr)
			if err != nil {
				t.Fatalf("Forward(%v, bitDepth=%d) error = %v", tr.Kind, bitDepth, err)
			}
			inv, _, err := Inverse(fwd, bitDepth, false, tr)
			if err != nil {
				t.Fatalf("Inverse(%v, bitDepth=%d) error = %v", tr.Kind, bitDepth, err)
			}
			for i, v := range inv {
				if absDiffI32(v, data[i]) > tol {
					t.Errorf("%v bitDepth=%d: inv[%d] = %d, want within %d of %d", tr.Kind, bitDepth, i, v, tol, data[i])
				}
			}
		}
	}
}

func TestPiecewiseLinearInvertibility(t *testing.T) {
	tr := Transform{
		Kind:        PiecewiseLinear,
		Breakpoints: []float64{0, 0.25, 0.5, 0.75, 1.0},
		Values:      []float64{0, 0.1, 0.5, 0.9, 1.0},
	}
	data := []int32{0, 32, 64, 96, 128, 160, 192, 224, 255}
	fwd, _, err := Forward(data, 8, false, tr)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	inv, _, err := Inverse(fwd, 8, false, tr)
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	for i, v := range inv {
		if absDiffI32(v, data[i]) > 1 {
			t.Errorf("inv[%d] = %d, want within 1 of %d", i, v, data[i])
		}
	}
}

// TestPQScenario checks that normalised n=0.5 through PQ forward then PQ
// inverse equals 0.5 within 1e-6.
func TestPQScenario(t *testing.T) {
	l := pqForward(0.5)
	back := pqInverse(l)
	if math.Abs(back-0.5) > 1e-6 {
		t.Errorf("pqInverse(pqForward(0.5)) = %v, want within 1e-6 of 0.5", back)
	}
}

func TestHLGRoundTrip(t *testing.T) {
	for _, n := range []float64{0.05, 0.25, 0.5, 0.75, 0.95} {
		l := hlgForward(n)
		back := hlgInverse(l)
		if math.Abs(back-n) > 1e-6 {
			t.Errorf("hlgInverse(hlgForward(%v)) = %v, want within 1e-6", n, back)
		}
	}
}

func TestLookupTableNearestAndInterpolated(t *testing.T) {
	tr := Transform{
		Kind:    LookupTable,
		Forward: []float64{0.0, 0.25, 0.75, 1.0},
		Inverse: []float64{0.0, 0.25, 0.75, 1.0},
	}
	data := []int32{0, 85, 170, 255}
	fwd, _, err := Forward(data, 8, false, tr)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if fwd[0] != 0 || fwd[3] != 255 {
		t.Errorf("endpoints not preserved: %v", fwd)
	}

	trInterp := tr
	trInterp.Interpolate = true
	fwdInterp, _, err := Forward(data, 8, false, trInterp)
	if err != nil {
		t.Fatalf("Forward() interpolated error = %v", err)
	}
	if fwdInterp[0] != 0 || fwdInterp[3] != 255 {
		t.Errorf("interpolated endpoints not preserved: %v", fwdInterp)
	}
}

func TestGammaRejectsNonPositive(t *testing.T) {
	_, _, err := Forward([]int32{1, 2, 3}, 8, false, Transform{Kind: Gamma, GammaValue: 0})
	if err == nil {
		t.Fatal("expected error for gamma=0")
	}
	_, _, err = Forward([]int32{1, 2, 3}, 8, false, Transform{Kind: Gamma, GammaValue: -1})
	if err == nil {
		t.Fatal("expected error for gamma<0")
	}
}

func TestCustomTransformUnimplemented(t *testing.T) {
	_, _, err := Forward([]int32{1, 2, 3}, 8, false, Transform{Kind: Custom, Tag: "my-custom"})
	if err == nil {
		t.Fatal("expected error for custom transform")
	}
}

func TestEmptyInputRejected(t *testing.T) {
	_, _, err := Forward(nil, 8, false, Transform{Kind: Identity})
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestBitDepthValidation(t *testing.T) {
	for _, bd := range []int{0, 33, -1} {
		_, _, err := Forward([]int32{1}, bd, false, Transform{Kind: Identity})
		if err == nil {
			t.Errorf("bitDepth=%d: expected error", bd)
		}
	}
}

func TestPiecewiseLinearValidation(t *testing.T) {
	cases := []Transform{
		{Kind: PiecewiseLinear},
		{Kind: PiecewiseLinear, Breakpoints: []float64{0, 1}, Values: []float64{0}},
		{Kind: PiecewiseLinear, Breakpoints: []float64{0.5, 0.5}, Values: []float64{0, 1}},
	}
	for i, tr := range cases {
		_, _, err := Forward([]int32{1, 2}, 8, false, tr)
		if err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{Identity, "identity"},
		{Gamma, "gamma"},
		{PerceptualQuantizer, "perceptualQuantizer"},
		{HybridLogGamma, "hybridLogGamma"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestClippedFlag(t *testing.T) {
	// piecewise that maps everything to a value well outside [0,1] would
	// trigger clamping; use values outside range to force clipping.
	tr := Transform{
		Kind:        PiecewiseLinear,
		Breakpoints: []float64{0, 1},
		Values:      []float64{-0.5, 1.5},
	}
	_, stats, err := Forward([]int32{0, 255}, 8, false, tr)
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if !stats.Clipped {
		t.Error("Clipped = false, want true")
	}
}
