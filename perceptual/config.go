package perceptual

import (
	"github.com/mrjoshuak/jpeg2000part2/progression"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// placeholderLuminance and placeholderVariance feed the per-subband masking
// path until per-codeblock statistics are wired in by a caller; this
// surface is subject to replacement and exists so a masking collaborator
// can be exercised (and mocked in tests) ahead of that wiring.
const (
	placeholderLuminance = 128.0
	placeholderVariance  = 100.0
)

// PerceptualConfig configures both the per-subband/per-region quantisation
// derivation and the quality-targeting iteration loop.
type PerceptualConfig struct {
	TargetQuality            progression.QualityTarget
	EnableVisualMasking      bool
	EnableFrequencyWeighting bool
	BaseQuantization         float64
	MaxIterations            int
	QualityTolerance         float64
	MSSSIMScales             int
}

// DefaultPerceptualConfig returns a config with both masking and weighting
// enabled, a mid-range base quantisation step, and bounds matching the
// accepted ranges below.
func DefaultPerceptualConfig() PerceptualConfig {
	return PerceptualConfig{
		TargetQuality:            progression.PSNRTarget(40),
		EnableVisualMasking:      true,
		EnableFrequencyWeighting: true,
		BaseQuantization:         0.1,
		MaxIterations:            10,
		QualityTolerance:         0.5,
		MSSSIMScales:             5,
	}
}

// Validate checks the bounds the quality-targeting loop depends on.
func (c PerceptualConfig) Validate() error {
	if c.MaxIterations < 1 {
		return j2k.NewError(j2k.InvalidParameter, "maxIterations %d must be >= 1", c.MaxIterations)
	}
	if c.QualityTolerance < 0 {
		return j2k.NewError(j2k.InvalidParameter, "qualityTolerance %v must be >= 0", c.QualityTolerance)
	}
	if c.BaseQuantization <= 0 {
		return j2k.NewError(j2k.InvalidParameter, "baseQuantization %v must be > 0", c.BaseQuantization)
	}
	if c.MSSSIMScales < 1 || c.MSSSIMScales > 5 {
		return j2k.NewError(j2k.InvalidParameter, "msssimScales %d out of range [1,5]", c.MSSSIMScales)
	}
	return nil
}
