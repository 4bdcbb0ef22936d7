// Package progression implements the JPEG 2000 Part 2 progressive-encoding
// configuration: progressive mode validation, quality targets, and the
// recommended packet progression order for a given mode.
package progression

import (
	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// Order is a codestream packet progression order (Layer/Resolution/
// Component/Position, in varying orders).
type Order int

const (
	// LRCP is Layer-Resolution-Component-Position order.
	LRCP Order = iota
	// RLCP is Resolution-Layer-Component-Position order.
	RLCP
	// RPCL is Resolution-Position-Component-Layer order.
	RPCL
	// PCRL is Position-Component-Resolution-Layer order.
	PCRL
	// CPRL is Component-Position-Resolution-Layer order.
	CPRL
)

// String returns the canonical name of the progression order.
func (o Order) String() string {
	switch o {
	case LRCP:
		return "LRCP"
	case RLCP:
		return "RLCP"
	case RPCL:
		return "RPCL"
	case PCRL:
		return "PCRL"
	case CPRL:
		return "CPRL"
	default:
		return "Unknown"
	}
}

const (
	minLayers = 1
	maxLayers = 20
	minLevels = 0
	maxLevels = 10
)

// Kind distinguishes the variant carried by a Mode value.
type Kind int

const (
	// KindSNR is quality-layer (SNR) progression.
	KindSNR Kind = iota
	// KindSpatial is resolution-level progression.
	KindSpatial
	// KindLayerProgressive combines quality layers with an explicit
	// resolution-vs-layer precedence choice.
	KindLayerProgressive
	// KindCombined combines quality layers and resolution levels.
	KindCombined
	// KindNone disables progressive encoding.
	KindNone
)

// Mode describes one of the five progressive-encoding variants. Only the
// fields relevant to Kind are meaningful; the rest are zero.
type Mode struct {
	Kind Kind

	// Layers is the quality-layer count for snr, layerProgressive and
	// combined. Must be in [1,20] when the kind uses it.
	Layers int

	// MaxLevel is the decomposition level count for spatial. Must be in
	// [0,10].
	MaxLevel int

	// Levels is the decomposition level count for combined. Must be in
	// [0,10].
	Levels int

	// ResolutionFirst selects RPCL over LRCP for layerProgressive.
	ResolutionFirst bool

	// LayerBitrates, if non-nil, must have length Layers and hold
	// strictly increasing positive bits-per-pixel values.
	LayerBitrates []float64
}

// SNR returns a quality-layer progressive mode.
func SNR(layers int) Mode { return Mode{Kind: KindSNR, Layers: layers} }

// Spatial returns a resolution-level progressive mode.
func Spatial(maxLevel int) Mode { return Mode{Kind: KindSpatial, MaxLevel: maxLevel} }

// LayerProgressive returns a combined layer/resolution mode with an
// explicit precedence choice.
func LayerProgressive(layers int, resolutionFirst bool) Mode {
	return Mode{Kind: KindLayerProgressive, Layers: layers, ResolutionFirst: resolutionFirst}
}

// Combined returns a mode carrying both layer and level counts.
func Combined(layers, levels int) Mode {
	return Mode{Kind: KindCombined, Layers: layers, Levels: levels}
}

// None returns the non-progressive mode.
func None() Mode { return Mode{Kind: KindNone} }

func validateLayers(layers int) error {
	if layers < minLayers || layers > maxLayers {
		return j2k.NewError(j2k.InvalidParameter, "layers %d out of range [%d,%d]", layers, minLayers, maxLayers)
	}
	return nil
}

func validateLevels(levels int) error {
	if levels < minLevels || levels > maxLevels {
		return j2k.NewError(j2k.InvalidParameter, "levels %d out of range [%d,%d]", levels, minLevels, maxLevels)
	}
	return nil
}

func validateLayerBitrates(layers int, rates []float64) error {
	if rates == nil {
		return nil
	}
	if len(rates) != layers {
		return j2k.NewError(j2k.InvalidParameter, "layerBitrates length %d does not match layers %d", len(rates), layers)
	}
	prev := 0.0
	for i, r := range rates {
		if r <= 0 {
			return j2k.NewError(j2k.InvalidParameter, "layerBitrates[%d] = %v must be positive", i, r)
		}
		if i > 0 && r <= prev {
			return j2k.NewError(j2k.InvalidParameter, "layerBitrates must be strictly increasing: [%d]=%v <= [%d]=%v", i, r, i-1, prev)
		}
		prev = r
	}
	return nil
}

// Validate enforces the bounds on Mode's fields per its Kind.
func (m Mode) Validate() error {
	switch m.Kind {
	case KindSNR:
		if err := validateLayers(m.Layers); err != nil {
			return err
		}
		return validateLayerBitrates(m.Layers, m.LayerBitrates)
	case KindSpatial:
		return validateLevels(m.MaxLevel)
	case KindLayerProgressive:
		if err := validateLayers(m.Layers); err != nil {
			return err
		}
		return validateLayerBitrates(m.Layers, m.LayerBitrates)
	case KindCombined:
		if err := validateLayers(m.Layers); err != nil {
			return err
		}
		if err := validateLevels(m.Levels); err != nil {
			return err
		}
		return validateLayerBitrates(m.Layers, m.LayerBitrates)
	case KindNone:
		return nil
	default:
		return j2k.NewError(j2k.InvalidParameter, "unknown progression kind %d", m.Kind)
	}
}

// RecommendedProgressionOrder returns the packet order conventionally
// paired with m's kind.
func (m Mode) RecommendedProgressionOrder() Order {
	switch m.Kind {
	case KindSNR:
		return LRCP
	case KindSpatial:
		return RLCP
	case KindLayerProgressive:
		if m.ResolutionFirst {
			return RPCL
		}
		return LRCP
	case KindCombined:
		return RPCL
	case KindNone:
		return LRCP
	default:
		return LRCP
	}
}

// DecompositionLevels returns the carried decomposition level count for
// spatial and combined modes, and false otherwise.
func (m Mode) DecompositionLevels() (int, bool) {
	switch m.Kind {
	case KindSpatial:
		return m.MaxLevel, true
	case KindCombined:
		return m.Levels, true
	default:
		return 0, false
	}
}

// TargetKind distinguishes the variant carried by a QualityTarget value.
type TargetKind int

const (
	// TargetPSNR targets a PSNR value in dB.
	TargetPSNR TargetKind = iota
	// TargetSSIM targets an SSIM value in [0,1].
	TargetSSIM
	// TargetMSSSIM targets an MS-SSIM value in [0,1].
	TargetMSSSIM
	// TargetBitrate targets a bitrate in bits per pixel.
	TargetBitrate
)

// QualityTarget is the value a perceptual controller iterates toward.
type QualityTarget struct {
	Kind  TargetKind
	Value float64
}

// PSNRTarget returns a PSNR-dB quality target.
func PSNRTarget(dB float64) QualityTarget { return QualityTarget{Kind: TargetPSNR, Value: dB} }

// SSIMTarget returns an SSIM quality target.
func SSIMTarget(v float64) QualityTarget { return QualityTarget{Kind: TargetSSIM, Value: v} }

// MSSSIMTarget returns an MS-SSIM quality target.
func MSSSIMTarget(v float64) QualityTarget { return QualityTarget{Kind: TargetMSSSIM, Value: v} }

// BitrateTarget returns a bits-per-pixel target; the quality-targeting loop
// always considers a bitrate target met, without measuring the encoded rate.
func BitrateTarget(bpp float64) QualityTarget { return QualityTarget{Kind: TargetBitrate, Value: bpp} }
