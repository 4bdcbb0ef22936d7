package nlt

import "math"

// HLG constants from ITU-R BT.2100.
const (
	hlgA = 0.17883277
	hlgB = 0.28466892
	hlgC = 0.55991073
)

// hlgForward linearises an HLG-encoded normalised value.
func hlgForward(n float64) float64 {
	if n <= 0.5 {
		return n * n / 3
	}
	return (math.Exp((n-hlgC)/hlgA) + hlgB) / 12
}

// hlgInverse is the HLG OETF: linear light n to encoded normalised value.
func hlgInverse(n float64) float64 {
	if n <= 1.0/12.0 {
		return math.Sqrt(3 * n)
	}
	return hlgA*math.Log(12*n-hlgB) + hlgC
}
