package genetic

import (
	"math/rand"
	"sort"
)

// weightEpsilon keeps 1/(f+ε) finite for zero-length tours.
const weightEpsilon = 1e-10

// selectionWeight maps a fitness (tour length, lower is better) to a
// fitness-proportionate weight: shorter tours get strictly larger weights.
func selectionWeight(fitness float64) float64 {
	return 1.0 / (fitness + weightEpsilon)
}

// weightsFor returns the weights parallel to fitness.
func weightsFor(fitness []float64) []float64 {
	w := make([]float64, len(fitness))
	for i, f := range fitness {
		w[i] = selectionWeight(f)
	}

	return w
}

// rouletteWheel samples indices with probability proportional to their
// (unnormalized, positive) weights.
type rouletteWheel struct {
	cum   []float64 // cum[i] = w[0] + … + w[i]
	total float64
}

// newRouletteWheel prefix-sums the weights once per generation.
//
// Complexity: O(P).
func newRouletteWheel(weights []float64) rouletteWheel {
	var (
		cum = make([]float64, len(weights))
		s   float64
	)
	for i, w := range weights {
		s += w
		cum[i] = s
	}

	return rouletteWheel{cum: cum, total: s}
}

// pick draws one index. One Float64 is consumed per call.
//
// Complexity: O(log P).
func (w rouletteWheel) pick(rng *rand.Rand) int {
	r := rng.Float64() * w.total
	i := sort.Search(len(w.cum), func(k int) bool { return w.cum[k] > r })
	if i == len(w.cum) {
		// r can only reach total through rounding; fall back to the last slot.
		i = len(w.cum) - 1
	}

	return i
}

// argmin returns the index of the smallest value; ties resolve to the lowest index.
func argmin(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[best] {
			best = i
		}
	}

	return best
}

// rankByFitness returns population indices ordered by ascending fitness.
// The sort is stable so equal-fitness tours keep population order, which
// keeps elitism deterministic.
//
// Complexity: O(P log P).
func rankByFitness(fitness []float64) []int {
	idx := make([]int, len(fitness))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return fitness[idx[a]] < fitness[idx[b]]
	})

	return idx
}
