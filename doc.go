// Package jpeg2000part2 implements the sample-domain transform pipeline and
// perceptual controller from the JPEG 2000 Part 2 (ISO/IEC 15444-2) codec:
// per-component DC offset removal/restoration with its DCO marker segment
// (package dco), non-linear point transforms including HDR transfer
// functions (package nlt), full-reference quality metrics (package metric),
// a perceptual rate/quality controller (package perceptual), and progressive
// encoding configuration (package progression).
//
// This module does not implement the wavelet transform, the entropy coder,
// codestream packetisation, or any image file I/O — those are external
// collaborators that a caller supplies or wraps around this pipeline.
//
// Basic usage for the DC offset stage:
//
//	cfg := dco.Config{Enabled: true, Method: dco.MethodMean}
//	result, err := dco.ComputeAndRemove(samples, componentIndex, bitDepth, cfg)
//	restored := dco.Apply(result.Offset, result.AdjustedData)
package jpeg2000part2
