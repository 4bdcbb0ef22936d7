// Package perceptual implements the JPEG 2000 Part 2 perceptual encoding
// controller: per-subband and per-codeblock quantisation step derivation,
// and a closed-loop rate/quality targeting iteration.
package perceptual

import j2k "github.com/mrjoshuak/jpeg2000part2"

// Band is a wavelet subband type.
type Band int

const (
	// BandLL is the low-low subband, present only at the coarsest
	// decomposition level.
	BandLL Band = iota
	// BandLH is the low-high (horizontal detail) subband.
	BandLH
	// BandHL is the high-low (vertical detail) subband.
	BandHL
	// BandHH is the high-high (diagonal detail) subband.
	BandHH
)

// String returns the canonical subband name.
func (b Band) String() string {
	switch b {
	case BandLL:
		return "LL"
	case BandLH:
		return "LH"
	case BandHL:
		return "HL"
	case BandHH:
		return "HH"
	default:
		return "Unknown"
	}
}

// Vector is a 2D motion vector passed to masking collaborators when a
// motion-compensated masking estimate is available; nil motion fields are
// the common, still-image case.
type Vector struct {
	X, Y float64
}

// VisualMasking supplies luminance/variance- (and optionally motion-)
// dependent masking factors the controller multiplies into quantisation
// steps. Implementations are caller-supplied; this package only invokes
// them through this interface.
type VisualMasking interface {
	// CalculateMaskingFactor returns a multiplicative masking factor for a
	// single (luminance, localVariance) pair. motion is nil when no
	// motion estimate is available.
	CalculateMaskingFactor(luminance, localVariance float64, motion *Vector) float64

	// CalculateRegionMaskingFactors returns w*h masking factors, one per
	// sample of a w-by-h codeblock region. motionField is nil or has
	// length w*h.
	CalculateRegionMaskingFactors(samples []int32, w, h, bitDepth int, motionField []Vector) ([]float64, error)
}

// VisualWeighting supplies a frequency-weighting factor for a given
// subband/level/image-size combination.
type VisualWeighting interface {
	Weight(band Band, level, totalLevels, imageWidth, imageHeight int) float64
}

// QualityMetrics exposes the full-reference metrics the quality-targeting
// loop selects between according to a QualityTarget's kind.
type QualityMetrics interface {
	PSNR(a, b *j2k.Image) (float64, error)
	SSIM(a, b *j2k.Image) (float64, error)
	MSSSIM(a, b *j2k.Image, scales int) (float64, error)
}

// Encoder is the external (out-of-scope) codec entry point the controller
// drives with successive baseQuantization values.
type Encoder interface {
	Encode(img *j2k.Image, baseQuantization float64) ([]byte, error)
}

// Decoder is the external (out-of-scope) codec entry point the controller
// uses to reconstruct an image for quality evaluation.
type Decoder interface {
	Decode(data []byte) (*j2k.Image, error)
}

// SubbandStep is one (band, level) entry of a SubbandPlan, carrying the
// intermediate weighting/masking factors that produced its final step so a
// caller can inspect why a given step was chosen.
type SubbandStep struct {
	Band    Band
	Step    float64
	Weight  float64
	Masking float64
}

// SubbandPlan is the per-subband quantisation map at a single
// decomposition level.
type SubbandPlan struct {
	Level int
	Steps []SubbandStep
}

// StepFor returns the step for the given band within the plan, and false
// if the band is not present at this level (e.g. BandLL above the
// coarsest level).
func (p SubbandPlan) StepFor(band Band) (float64, bool) {
	for _, s := range p.Steps {
		if s.Band == band {
			return s.Step, true
		}
	}
	return 0, false
}
