package perceptual

import (
	"context"

	"github.com/mrjoshuak/jpeg2000part2/progression"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// IterationResult records the outcome of one quality-targeting iteration.
type IterationResult struct {
	Iteration        int
	BaseQuantization float64
	Achieved         float64
	Met              bool
	Encoded          []byte
}

// estimateBaseQuantization maps a bitrate (bits per pixel) to a starting
// base quantisation step using the stepwise table: coarser rate bands get
// a larger (lossier) starting step.
func estimateBaseQuantization(bitrate float64) float64 {
	switch {
	case bitrate >= 4:
		return 0.01
	case bitrate >= 2:
		return 0.05
	case bitrate >= 1:
		return 0.1
	case bitrate >= 0.5:
		return 0.2
	default:
		return 0.5
	}
}

// EstimateBaseQuantization exposes estimateBaseQuantization's stepwise
// bitrate-to-quantisation-step table to callers seeding a PerceptualConfig.
func EstimateBaseQuantization(bitrate float64) float64 {
	return estimateBaseQuantization(bitrate)
}

// EstimateQualityTargetFromBitrate bridges a raw bitrate to a
// progression.QualityTarget so the controller's iteration entry points are
// uniform whether a caller starts from a bitrate or a quality score. Pair
// it with EstimateBaseQuantization(bitrate) to seed PerceptualConfig's
// BaseQuantization.
func EstimateQualityTargetFromBitrate(bitrate float64) progression.QualityTarget {
	return progression.BitrateTarget(bitrate)
}

func evaluateQuality(metrics QualityMetrics, target progression.QualityTarget, original, encoded *j2k.Image, scales int) (float64, error) {
	switch target.Kind {
	case progression.TargetPSNR:
		return metrics.PSNR(original, encoded)
	case progression.TargetSSIM:
		return metrics.SSIM(original, encoded)
	case progression.TargetMSSSIM:
		return metrics.MSSSIM(original, encoded, scales)
	case progression.TargetBitrate:
		return target.Value, nil
	default:
		return 0, j2k.NewError(j2k.InvalidParameter, "unknown quality target kind %d", target.Kind)
	}
}

func meetsQualityTarget(target progression.QualityTarget, achieved, tolerance float64) bool {
	if target.Kind == progression.TargetBitrate {
		return true
	}
	return achieved >= target.Value-tolerance
}

func adjustBaseQuantization(base, target, achieved float64) float64 {
	adjusted := base * (1 - 0.3*(target-achieved))
	return j2k.Clamp(adjusted, 0.001, 1.0)
}

// RunQualityTargetingLoop drives encoder/decoder/metrics through up to
// config.MaxIterations rounds, adjusting the base quantisation step after
// each round that misses the target. It checks ctx before each iteration
// and again between the encode and evaluate steps, returning the
// best-so-far IterationResult (possibly nil, if cancelled before the first
// encode) alongside ctx.Err() on cancellation.
func RunQualityTargetingLoop(ctx context.Context, config PerceptualConfig, original *j2k.Image, encoder Encoder, decoder Decoder, metrics QualityMetrics) (*IterationResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	base := config.BaseQuantization
	var best *IterationResult

	for i := 0; i < config.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}

		encoded, err := encoder.Encode(original, base)
		if err != nil {
			return best, err
		}

		if err := ctx.Err(); err != nil {
			return best, err
		}

		decoded, err := decoder.Decode(encoded)
		if err != nil {
			return best, err
		}

		achieved, err := evaluateQuality(metrics, config.TargetQuality, original, decoded, config.MSSSIMScales)
		if err != nil {
			return best, err
		}

		met := meetsQualityTarget(config.TargetQuality, achieved, config.QualityTolerance)
		best = &IterationResult{
			Iteration:        i,
			BaseQuantization: base,
			Achieved:         achieved,
			Met:              met,
			Encoded:          encoded,
		}
		if met {
			return best, nil
		}
		base = adjustBaseQuantization(base, config.TargetQuality.Value, achieved)
	}
	return best, nil
}
