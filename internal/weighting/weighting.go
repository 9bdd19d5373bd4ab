// Package weighting converts ranked item lists into 0-100 point
// distributions and rebalances them when a single item is adjusted.
package weighting

import (
	"fmt"
	"math"
)

// Preset names a curve for converting rank position into points.
type Preset string

const (
	// Balanced decays linearly with rank.
	Balanced Preset = "balanced"
	// OneFavorite gives rank 1 half the points.
	OneFavorite Preset = "one-favorite"
	// TopHeavy splits 70 points across the top three ranks.
	TopHeavy Preset = "top-heavy"
)

// Presets lists the recognized preset names, for CLI help and validation.
var Presets = []Preset{Balanced, OneFavorite, TopHeavy}

// GenerateAllocation returns count non-negative integers summing to exactly
// 100, index 0 corresponding to rank 1. Unknown presets and non-positive
// counts are programmer errors and fail loudly.
func GenerateAllocation(count int, preset Preset) ([]int, error) {
	if count <= 0 {
		return nil, fmt.Errorf("allocation count must be positive, got %d", count)
	}
	if count == 1 {
		// Every preset gives a single item everything.
		switch preset {
		case Balanced, OneFavorite, TopHeavy:
			return []int{100}, nil
		default:
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	}

	switch preset {
	case Balanced:
		return balancedAllocation(count), nil
	case OneFavorite:
		return oneFavoriteAllocation(count), nil
	case TopHeavy:
		return topHeavyAllocation(count), nil
	default:
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
}

// balancedAllocation gives rank r the share (count+1-r)/T(count) where T is
// the triangular sum, rounding each share and correcting the drift on rank 1.
func balancedAllocation(count int) []int {
	triangular := count * (count + 1) / 2

	allocations := make([]int, count)
	sum := 0
	for r := 1; r <= count; r++ {
		share := float64(count+1-r) / float64(triangular)
		allocations[r-1] = int(math.Round(share * 100))
		sum += allocations[r-1]
	}
	allocations[0] += 100 - sum
	return allocations
}

// oneFavoriteAllocation gives rank 1 exactly 50 and splits the rest evenly,
// with the floor-division remainder going to the last item.
func oneFavoriteAllocation(count int) []int {
	allocations := make([]int, count)
	allocations[0] = 50

	each := 50 / (count - 1)
	for i := 1; i < count; i++ {
		allocations[i] = each
	}
	allocations[count-1] += 50 - each*(count-1)
	return allocations
}

// topHeavyAllocation splits 70 across the top min(3, count) ranks and the
// remaining pool across the rest, remainder to the last item.
func topHeavyAllocation(count int) []int {
	topCount := 3
	if count < topCount {
		topCount = count
	}
	topShare := 70 / topCount

	allocations := make([]int, count)
	for i := 0; i < topCount; i++ {
		allocations[i] = topShare
	}

	rest := count - topCount
	pool := 100 - topShare*topCount
	if rest > 0 {
		restShare := pool / rest
		for i := topCount; i < count; i++ {
			allocations[i] = restShare
		}
		allocations[count-1] += pool - restShare*rest
	} else {
		allocations[count-1] += pool
	}
	return allocations
}

// AllocateToItems runs GenerateAllocation for the given preset and zips the
// result against rankedIDs in order.
func AllocateToItems(rankedIDs []string, preset Preset) (map[string]int, error) {
	allocations, err := GenerateAllocation(len(rankedIDs), preset)
	if err != nil {
		return nil, err
	}

	weights := make(map[string]int, len(rankedIDs))
	for i, id := range rankedIDs {
		weights[id] = allocations[i]
	}
	return weights, nil
}

// AdjustWeight sets one item's weight to newValue and absorbs the difference
// proportionally across the other items, never starving any of them below 1
// point. The result is normalized back to an exact 100 total.
//
// When the other items hold zero points and the adjustment asks for more, the
// increase cannot be granted: the input map is returned unchanged.
func AdjustWeight(weights map[string]int, rankedIDs []string, id string, newValue int) map[string]int {
	oldValue, ok := weights[id]
	if !ok {
		return weights
	}
	delta := newValue - oldValue

	otherTotal := 0
	for _, other := range rankedIDs {
		if other != id {
			otherTotal += weights[other]
		}
	}
	if otherTotal == 0 && delta > 0 {
		return weights
	}

	adjusted := make(map[string]int, len(weights))
	for _, other := range rankedIDs {
		if other == id {
			continue
		}
		adjusted[other] = weights[other]
		if otherTotal > 0 {
			adjustment := int(math.Round(float64(delta) * float64(weights[other]) / float64(otherTotal)))
			next := weights[other] - adjustment
			if next < 1 {
				next = 1
			}
			adjusted[other] = next
		}
	}
	adjusted[id] = newValue

	return NormalizeWeights(adjusted, rankedIDs)
}

// NormalizeWeights corrects rounding drift back to an exact 100 total. Every
// id but the last (in rank order) is recomputed as its rounded share of the
// current total; the last id receives whatever keeps the sum at 100.
func NormalizeWeights(weights map[string]int, rankedIDs []string) map[string]int {
	total := 0
	for _, id := range rankedIDs {
		total += weights[id]
	}
	if total == 0 || len(rankedIDs) == 0 {
		return weights
	}

	normalized := make(map[string]int, len(rankedIDs))
	running := 0
	for i, id := range rankedIDs {
		if i == len(rankedIDs)-1 {
			normalized[id] = 100 - running
			break
		}
		normalized[id] = int(math.Round(float64(weights[id]) / float64(total) * 100))
		running += normalized[id]
	}
	return normalized
}

// ValidateWeights checks the WeightMap invariant: an entry for every ranked
// id, no extras, all values non-negative, and an exact 100 total.
func ValidateWeights(weights map[string]int, rankedIDs []string) error {
	if len(weights) != len(rankedIDs) {
		return fmt.Errorf("weight map has %d entries for %d ranked items", len(weights), len(rankedIDs))
	}

	sum := 0
	for _, id := range rankedIDs {
		value, ok := weights[id]
		if !ok {
			return fmt.Errorf("missing weight for %q", id)
		}
		if value < 0 {
			return fmt.Errorf("negative weight %d for %q", value, id)
		}
		sum += value
	}
	if sum != 100 {
		return fmt.Errorf("weights sum to %d, must sum to 100", sum)
	}
	return nil
}
