package nlt

import "math"

// PQ constants from SMPTE ST 2084.
const (
	pqM1 = 2610.0 / 16384.0
	pqM2 = 2523.0 * 128.0 / 4096.0
	pqC1 = 3424.0 / 4096.0
	pqC2 = 2413.0 * 32.0 / 4096.0
	pqC3 = 2392.0 * 32.0 / 4096.0
)

// pqForward is the PQ EOTF: encoded normalised n to linear light L.
func pqForward(n float64) float64 {
	np := math.Pow(n, 1/pqM2)
	num := math.Max(np-pqC1, 0)
	den := pqC2 - pqC3*np
	return math.Pow(num/den, 1/pqM1)
}

// pqInverse is the PQ OETF: linear light L to encoded normalised value.
func pqInverse(l float64) float64 {
	lm1 := math.Pow(l, pqM1)
	return math.Pow((pqC1+pqC2*lm1)/(1+pqC3*lm1), pqM2)
}
