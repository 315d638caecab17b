package genetic

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/gatsp/tsp"
)

// Crossover produces one OX1 child of p1 and p2.
//
// The cut c is drawn uniformly from [1, n-1] (the only random input); the
// child is p1[0:c] followed by the cities of p2, in p2's order, that are not
// yet placed. With fewer than two cities no cut exists: the child is a copy of
// p1 and nothing is drawn.
//
// Both parents must be permutations of the same n cities; only the lengths
// are checked here (ErrInvalidPopulation on mismatch).
//
// Complexity: O(n).
func Crossover(rng *rand.Rand, p1, p2 tsp.Tour) (tsp.Tour, error) {
	if len(p1) != len(p2) {
		return nil, fmt.Errorf("%w: parents of length %d and %d", ErrInvalidPopulation, len(p1), len(p2))
	}
	var n = len(p1)
	if n < 2 {
		return p1.Clone(), nil
	}
	if rng == nil {
		return nil, fmt.Errorf("Crossover: %w", tsp.ErrNilRand)
	}
	child, err := tsp.OrderCrossover(p1, p2, 1+rng.Intn(n-1))
	if err != nil {
		return nil, fmt.Errorf("Crossover: %w", err)
	}

	return child, nil
}

// Mutate applies segment-inversion mutation: with probability p it reverses
// t[i..j] for two distinct positions i < j drawn uniformly; otherwise the tour
// is returned unchanged. The result is always a fresh tour; t is never written.
//
// With fewer than two positions the mutation is a no-op and nothing is drawn.
// p outside [0,1] behaves like the nearest bound.
//
// Complexity: O(n).
func Mutate(rng *rand.Rand, t tsp.Tour, p float64) (tsp.Tour, error) {
	out := t.Clone()
	if len(out) < 2 {
		return out, nil
	}
	if rng == nil {
		return nil, fmt.Errorf("Mutate: %w", tsp.ErrNilRand)
	}
	mutateInPlace(rng, out, p)

	return out, nil
}

// mutateInPlace is Mutate on a tour the caller owns. It draws one Float64 and,
// when mutating, two Intn values. len(t) ≥ 2 is the caller's duty.
func mutateInPlace(rng *rand.Rand, t tsp.Tour, p float64) {
	if rng.Float64() >= p {
		return
	}
	i, j, ok := tsp.DistinctPair(rng, len(t))
	if !ok {
		return
	}
	// Bounds hold by construction of DistinctPair.
	_ = tsp.ReverseSegmentInPlace(t, i, j)
}
