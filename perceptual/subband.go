package perceptual

import j2k "github.com/mrjoshuak/jpeg2000part2"

// bandsAtLevel returns the subbands present at decomposition level level
// out of totalLevels: {LH, HL, HH} below the coarsest level, and all four
// bands including LL at the coarsest level.
func bandsAtLevel(level, totalLevels int) []Band {
	if level == totalLevels-1 {
		return []Band{BandLL, BandLH, BandHL, BandHH}
	}
	return []Band{BandLH, BandHL, BandHH}
}

// ComputeSubbandQuantisation derives the per-subband quantisation map
// across all totalLevels decomposition levels, applying frequency
// weighting and visual masking (via the placeholder luminance/variance
// estimate) when enabled in config.
func ComputeSubbandQuantisation(config PerceptualConfig, weighting VisualWeighting, masking VisualMasking, totalLevels, imageWidth, imageHeight int) ([]SubbandPlan, error) {
	if totalLevels < 1 {
		return nil, j2k.NewError(j2k.InvalidParameter, "totalLevels %d must be >= 1", totalLevels)
	}
	if config.EnableFrequencyWeighting && weighting == nil {
		return nil, j2k.NewError(j2k.InvalidParameter, "frequency weighting enabled but no VisualWeighting supplied")
	}
	if config.EnableVisualMasking && masking == nil {
		return nil, j2k.NewError(j2k.InvalidParameter, "visual masking enabled but no VisualMasking supplied")
	}

	plans := make([]SubbandPlan, totalLevels)
	for level := 0; level < totalLevels; level++ {
		bands := bandsAtLevel(level, totalLevels)
		steps := make([]SubbandStep, 0, len(bands))
		for _, band := range bands {
			step := config.BaseQuantization
			weight := 1.0
			if config.EnableFrequencyWeighting {
				weight = weighting.Weight(band, level, totalLevels, imageWidth, imageHeight)
				step *= weight
			}
			maskFactor := 1.0
			if config.EnableVisualMasking {
				maskFactor = masking.CalculateMaskingFactor(placeholderLuminance, placeholderVariance, nil)
				step *= maskFactor
			}
			steps = append(steps, SubbandStep{Band: band, Step: step, Weight: weight, Masking: maskFactor})
		}
		plans[level] = SubbandPlan{Level: level, Steps: steps}
	}
	return plans, nil
}

// ComputeRegionQuantisation derives w*h spatially-varying quantisation
// steps for a single codeblock region in the given (band, level) subband:
// a uniform frequency-weighted base, multiplied pointwise by the region's
// masking factors.
func ComputeRegionQuantisation(config PerceptualConfig, weighting VisualWeighting, masking VisualMasking, band Band, level, totalLevels, imageWidth, imageHeight int, samples []int32, w, h, bitDepth int, motionField []Vector) ([]float64, error) {
	if w <= 0 || h <= 0 {
		return nil, j2k.NewError(j2k.InvalidParameter, "region dimensions %dx%d must be positive", w, h)
	}
	if len(samples) != w*h {
		return nil, j2k.NewError(j2k.InvalidParameter, "region sample count %d does not match %dx%d", len(samples), w, h)
	}
	if motionField != nil && len(motionField) != w*h {
		return nil, j2k.NewError(j2k.InvalidParameter, "motionField length %d does not match %dx%d", len(motionField), w, h)
	}

	base := config.BaseQuantization
	if config.EnableFrequencyWeighting {
		if weighting == nil {
			return nil, j2k.NewError(j2k.InvalidParameter, "frequency weighting enabled but no VisualWeighting supplied")
		}
		base *= weighting.Weight(band, level, totalLevels, imageWidth, imageHeight)
	}

	factors := make([]float64, w*h)
	if config.EnableVisualMasking {
		if masking == nil {
			return nil, j2k.NewError(j2k.InvalidParameter, "visual masking enabled but no VisualMasking supplied")
		}
		regionFactors, err := masking.CalculateRegionMaskingFactors(samples, w, h, bitDepth, motionField)
		if err != nil {
			return nil, err
		}
		if len(regionFactors) != w*h {
			return nil, j2k.NewError(j2k.InvalidParameter, "region masking factors length %d does not match %dx%d", len(regionFactors), w, h)
		}
		copy(factors, regionFactors)
	} else {
		for i := range factors {
			factors[i] = 1.0
		}
	}

	steps := make([]float64, w*h)
	for i, f := range factors {
		steps[i] = base * f
	}
	return steps, nil
}
