package service

import (
	"math"
	"sort"
)

// Percentiles assigns each user a percentile in [0, 100] within one pass:
//
//	percentile = round(count(scores strictly less) / total * 100)
//
// Equal scores receive identical percentiles by construction. The strictly-less
// definition is the only one used anywhere in the engine.
func Percentiles(scores map[string]float64) map[string]int {
	total := len(scores)
	out := make(map[string]int, total)
	if total == 0 {
		return out
	}

	sorted := make([]float64, 0, total)
	for _, s := range scores {
		sorted = append(sorted, s)
	}
	sort.Float64s(sorted)

	for userID, s := range scores {
		// First index with a score >= s equals the count of strictly
		// smaller scores, since sorted is ascending.
		below := sort.SearchFloat64s(sorted, s)
		p := int(math.Round(float64(below) / float64(total) * 100))
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		out[userID] = p
	}
	return out
}
