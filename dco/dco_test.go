package dco

import (
	"testing"

	j2k "github.com/mrjoshuak/jpeg2000part2"
)

// TestComputeAndRemoveMeanScenario checks [100, 110, 120, 130] at
// bitDepth=8 unsigned, mean method, optimize=false against its known
// statistics and adjusted output.
func TestComputeAndRemoveMeanScenario(t *testing.T) {
	data := []int32{100, 110, 120, 130}
	cfg := Config{Enabled: true, Method: MethodMean}

	result, err := ComputeAndRemove(data, 0, 8, cfg)
	if err != nil {
		t.Fatalf("ComputeAndRemove() error = %v", err)
	}

	if result.Statistics.Mean != 115.0 {
		t.Errorf("Mean = %v, want 115.0", result.Statistics.Mean)
	}
	if result.Offset.Value != 115.0 {
		t.Errorf("Offset.Value = %v, want 115.0", result.Offset.Value)
	}
	if result.Offset.IntegerValue() != 115 {
		t.Errorf("IntegerValue() = %d, want 115", result.Offset.IntegerValue())
	}

	want := []int32{-15, -5, 5, 15}
	for i, v := range result.AdjustedData {
		if v != want[i] {
			t.Errorf("AdjustedData[%d] = %d, want %d", i, v, want[i])
		}
	}

	restored := Apply(result.Offset, result.AdjustedData)
	for i, v := range restored {
		if v != data[i] {
			t.Errorf("restored[%d] = %d, want %d", i, v, data[i])
		}
	}
}

func TestComputeAndRemoveMidrange(t *testing.T) {
	data := []int32{10, 20, 30, 100}
	cfg := Config{Enabled: true, Method: MethodMidrange}

	result, err := ComputeAndRemove(data, 0, 8, cfg)
	if err != nil {
		t.Fatalf("ComputeAndRemove() error = %v", err)
	}
	wantMidrange := (10.0 + 100.0) / 2
	if result.Offset.Value != wantMidrange {
		t.Errorf("Offset.Value = %v, want %v", result.Offset.Value, wantMidrange)
	}
}

func TestComputeAndRemoveCustomMethodIsZero(t *testing.T) {
	data := []int32{1, 2, 3}
	result, err := ComputeAndRemove(data, 0, 8, Config{Enabled: true, Method: MethodCustom})
	if err != nil {
		t.Fatalf("ComputeAndRemove() error = %v", err)
	}
	if result.Offset.Value != 0 {
		t.Errorf("Offset.Value = %v, want 0", result.Offset.Value)
	}
	for i, v := range result.AdjustedData {
		if v != data[i] {
			t.Errorf("AdjustedData[%d] = %d, want passthrough %d", i, v, data[i])
		}
	}
}

func TestComputeAndRemoveDisabledPassesThrough(t *testing.T) {
	data := []int32{5, 10, 15}
	result, err := ComputeAndRemove(data, 0, 8, Config{Enabled: false, Method: MethodMean})
	if err != nil {
		t.Fatalf("ComputeAndRemove() error = %v", err)
	}
	for i, v := range result.AdjustedData {
		if v != data[i] {
			t.Errorf("AdjustedData[%d] = %d, want passthrough %d", i, v, data[i])
		}
	}
}

func TestComputeAndRemoveInvalidBitDepth(t *testing.T) {
	_, err := ComputeAndRemove([]int32{1, 2}, 3, 0, Config{Enabled: true})
	if err == nil {
		t.Fatal("expected error for bitDepth=0")
	}
	var ce *j2k.ComponentError
	if !asComponentError(err, &ce) || ce.Kind != j2k.InvalidParameter {
		t.Errorf("want InvalidParameter ComponentError, got %v", err)
	}
	if ce.ComponentIndex != 3 {
		t.Errorf("ComponentIndex = %d, want 3", ce.ComponentIndex)
	}
	if ce.Value != 0 {
		t.Errorf("Value = %v, want 0 (the offending bit depth)", ce.Value)
	}

	_, err = ComputeAndRemove([]int32{1, 2}, 0, 39, Config{Enabled: true})
	if err == nil {
		t.Fatal("expected error for bitDepth=39")
	}
}

func asComponentError(err error, target **j2k.ComponentError) bool {
	if e, ok := err.(*j2k.ComponentError); ok {
		*target = e
		return true
	}
	return false
}

// TestRoundTripProperty checks that for integer sample arrays and mean
// (both optimize flags) / midrange configurations,
// Apply(ComputeAndRemove(x).Offset, ComputeAndRemove(x).AdjustedData)
// restores every sample of x to within 1.
func TestRoundTripProperty(t *testing.T) {
	arrays := [][]int32{
		{0, 0, 0, 0},
		{1, 2, 3, 4, 5, 6, 7, 8},
		{-50, 0, 50, 100},
		{255, 254, 253, 252},
	}
	configs := []Config{
		{Enabled: true, Method: MethodMean, OptimizeForNaturalImages: false},
		{Enabled: true, Method: MethodMean, OptimizeForNaturalImages: true},
		{Enabled: true, Method: MethodMidrange},
	}

	for _, data := range arrays {
		for _, cfg := range configs {
			result, err := ComputeAndRemove(data, 0, 8, cfg)
			if err != nil {
				t.Fatalf("ComputeAndRemove() error = %v", err)
			}
			restored := Apply(result.Offset, result.AdjustedData)
			for i := range data {
				diff := restored[i] - data[i]
				if diff < 0 {
					diff = -diff
				}
				if diff > 1 {
					t.Errorf("restored[%d] = %d, want within 1 of %d (offset=%v)", i, restored[i], data[i], result.Offset.Value)
				}
			}
		}
	}
}

func TestComputeAndRemoveAllMismatchedCounts(t *testing.T) {
	components := []j2k.Component{
		{Index: 0, Width: 1, Height: 2, BitDepth: 8, Data: []int32{1, 2}},
	}
	_, err := ComputeAndRemoveAll(components, nil)
	if err == nil {
		t.Fatal("expected error for mismatched component/config counts")
	}
}

func TestComputeAndRemoveAll(t *testing.T) {
	components := []j2k.Component{
		{Index: 0, Width: 1, Height: 4, BitDepth: 8, Data: []int32{100, 110, 120, 130}},
		{Index: 1, Width: 1, Height: 4, BitDepth: 8, Data: []int32{10, 20, 30, 100}},
	}
	cfgs := []Config{
		{Enabled: true, Method: MethodMean},
		{Enabled: true, Method: MethodMidrange},
	}
	results, err := ComputeAndRemoveAll(components, cfgs)
	if err != nil {
		t.Fatalf("ComputeAndRemoveAll() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Statistics.Mean != 115.0 {
		t.Errorf("component 0 mean = %v, want 115.0", results[0].Statistics.Mean)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil)
	if stats != (Statistics{}) {
		t.Errorf("ComputeStatistics(nil) = %+v, want zero value", stats)
	}
}
