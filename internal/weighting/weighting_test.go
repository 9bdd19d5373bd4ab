package weighting

import (
	"reflect"
	"testing"
)

func TestGenerateAllocationSumsTo100(t *testing.T) {
	for _, preset := range Presets {
		for count := 1; count <= 20; count++ {
			allocations, err := GenerateAllocation(count, preset)
			if err != nil {
				t.Fatalf("GenerateAllocation(%d, %s) error: %v", count, preset, err)
			}
			if len(allocations) != count {
				t.Fatalf("GenerateAllocation(%d, %s) returned %d entries", count, preset, len(allocations))
			}

			sum := 0
			for _, a := range allocations {
				if a < 0 {
					t.Errorf("GenerateAllocation(%d, %s) has negative entry: %v", count, preset, allocations)
				}
				sum += a
			}
			if sum != 100 {
				t.Errorf("GenerateAllocation(%d, %s) sums to %d, want 100: %v", count, preset, sum, allocations)
			}
		}
	}
}

func TestGenerateAllocationBalancedMonotonic(t *testing.T) {
	for count := 2; count <= 20; count++ {
		allocations, err := GenerateAllocation(count, Balanced)
		if err != nil {
			t.Fatalf("GenerateAllocation(%d, balanced) error: %v", count, err)
		}
		for i := 0; i < len(allocations)-1; i++ {
			if allocations[i] < allocations[i+1] {
				t.Errorf("balanced allocation for count %d not monotonic at %d: %v", count, i, allocations)
			}
		}
	}
}

func TestGenerateAllocationDistributions(t *testing.T) {
	tests := []struct {
		count  int
		preset Preset
		want   []int
	}{
		{1, Balanced, []int{100}},
		{1, OneFavorite, []int{100}},
		{1, TopHeavy, []int{100}},
		{3, Balanced, []int{50, 33, 17}},
		{4, Balanced, []int{40, 30, 20, 10}},
		{3, OneFavorite, []int{50, 25, 25}},
		{4, OneFavorite, []int{50, 16, 16, 18}},
		{2, TopHeavy, []int{35, 65}},
		{5, TopHeavy, []int{23, 23, 23, 15, 16}},
	}

	for _, test := range tests {
		got, err := GenerateAllocation(test.count, test.preset)
		if err != nil {
			t.Fatalf("GenerateAllocation(%d, %s) error: %v", test.count, test.preset, err)
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("GenerateAllocation(%d, %s) = %v, want %v", test.count, test.preset, got, test.want)
		}
	}
}

func TestGenerateAllocationRejectsBadInput(t *testing.T) {
	if _, err := GenerateAllocation(0, Balanced); err == nil {
		t.Error("expected error for count 0")
	}
	if _, err := GenerateAllocation(-3, OneFavorite); err == nil {
		t.Error("expected error for negative count")
	}
	if _, err := GenerateAllocation(3, Preset("exponential")); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := GenerateAllocation(1, Preset("exponential")); err == nil {
		t.Error("expected error for unknown preset with count 1")
	}
}

func TestAllocateToItems(t *testing.T) {
	ids := []string{"album-a", "album-b", "album-c"}
	weights, err := AllocateToItems(ids, Balanced)
	if err != nil {
		t.Fatalf("AllocateToItems error: %v", err)
	}

	want := map[string]int{"album-a": 50, "album-b": 33, "album-c": 17}
	if !reflect.DeepEqual(weights, want) {
		t.Errorf("AllocateToItems = %v, want %v", weights, want)
	}
	if err := ValidateWeights(weights, ids); err != nil {
		t.Errorf("allocated weights invalid: %v", err)
	}
}

func TestAdjustWeightProportionalRebalance(t *testing.T) {
	ids := []string{"a", "b", "c"}
	weights := map[string]int{"a": 50, "b": 30, "c": 20}

	got := AdjustWeight(weights, ids, "a", 60)

	want := map[string]int{"a": 60, "b": 24, "c": 16}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AdjustWeight = %v, want %v", got, want)
	}
	if err := ValidateWeights(got, ids); err != nil {
		t.Errorf("adjusted weights invalid: %v", err)
	}
	// Input map untouched.
	if weights["a"] != 50 {
		t.Errorf("AdjustWeight mutated its input: %v", weights)
	}
}

func TestAdjustWeightPreservesTotal(t *testing.T) {
	ids := []string{"a", "b", "c"}
	starts := []map[string]int{
		{"a": 34, "b": 33, "c": 33},
		{"a": 80, "b": 15, "c": 5},
		{"a": 98, "b": 1, "c": 1},
	}

	for _, start := range starts {
		for _, target := range []int{1, 25, 50, 75, 99} {
			got := AdjustWeight(start, ids, "b", target)
			sum := 0
			for _, id := range ids {
				sum += got[id]
			}
			if sum != 100 {
				t.Errorf("AdjustWeight(%v, b, %d) sums to %d: %v", start, target, sum, got)
			}
		}
	}
}

func TestAdjustWeightFloorsOtherItemsAtOne(t *testing.T) {
	ids := []string{"a", "b", "c"}
	got := AdjustWeight(map[string]int{"a": 98, "b": 1, "c": 1}, ids, "a", 99)

	for _, id := range []string{"b", "c"} {
		if got[id] < 1 {
			t.Errorf("item %q starved to %d: %v", id, got[id], got)
		}
	}
}

func TestAdjustWeightNoOpWhenNothingToTake(t *testing.T) {
	// A temporarily invalid map mid-drag: the others hold nothing, so an
	// increase cannot be granted and the input comes back unchanged.
	ids := []string{"a", "b", "c"}
	weights := map[string]int{"a": 40, "b": 0, "c": 0}

	got := AdjustWeight(weights, ids, "a", 60)
	if !reflect.DeepEqual(got, weights) {
		t.Errorf("AdjustWeight = %v, want unchanged %v", got, weights)
	}
}

func TestAdjustWeightUnknownID(t *testing.T) {
	ids := []string{"a", "b"}
	weights := map[string]int{"a": 50, "b": 50}

	got := AdjustWeight(weights, ids, "z", 10)
	if !reflect.DeepEqual(got, weights) {
		t.Errorf("AdjustWeight with unknown id = %v, want unchanged", got)
	}
}

func TestNormalizeWeightsRestoresExactTotal(t *testing.T) {
	ids := []string{"a", "b", "c"}
	tests := []map[string]int{
		{"a": 50, "b": 30, "c": 21}, // sums to 101
		{"a": 48, "b": 30, "c": 20}, // sums to 98
		{"a": 60, "b": 25, "c": 16},
	}

	for _, weights := range tests {
		got := NormalizeWeights(weights, ids)
		sum := 0
		for _, id := range ids {
			sum += got[id]
		}
		if sum != 100 {
			t.Errorf("NormalizeWeights(%v) sums to %d: %v", weights, sum, got)
		}
	}
}

func TestNormalizeWeightsIdempotentOnValidMap(t *testing.T) {
	ids := []string{"a", "b", "c"}
	weights := map[string]int{"a": 50, "b": 33, "c": 17}

	got := NormalizeWeights(weights, ids)
	if !reflect.DeepEqual(got, weights) {
		t.Errorf("NormalizeWeights changed a valid map: %v -> %v", weights, got)
	}
}

func TestValidateWeights(t *testing.T) {
	ids := []string{"a", "b"}

	tests := []struct {
		name    string
		weights map[string]int
		wantErr bool
	}{
		{"valid", map[string]int{"a": 60, "b": 40}, false},
		{"bad sum", map[string]int{"a": 60, "b": 41}, true},
		{"missing id", map[string]int{"a": 100}, true},
		{"extra id", map[string]int{"a": 50, "b": 40, "c": 10}, true},
		{"negative", map[string]int{"a": 110, "b": -10}, true},
	}

	for _, test := range tests {
		err := ValidateWeights(test.weights, ids)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: ValidateWeights(%v) error = %v, wantErr %v", test.name, test.weights, err, test.wantErr)
		}
	}
}
