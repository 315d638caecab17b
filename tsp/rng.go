// Package tsp - RNG utilities shared by heuristic solvers.
//
// This file centralizes deterministic random generation for tour search.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws (math/rand's source is stable).
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - No panics or logging; sentinel errors from types.go when needed.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
package tsp

import "math/rand"

// DefaultSeed is the fixed seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use DefaultSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a using rng.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	var (
		n = len(a)
		i int
		j int
	)
	for i = n - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// RandomTour returns a uniformly random permutation of 0..n-1 drawn from rng.
// Errors: ErrDimensionMismatch for n ≤ 0, ErrNilRand for rng == nil.
//
// Complexity: O(n) time, O(n) space.
func RandomTour(n int, rng *rand.Rand) (Tour, error) {
	if n <= 0 {
		return nil, ErrDimensionMismatch
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	t := Identity(n)
	shuffleIntsInPlace(t, rng)

	return t, nil
}

// DistinctPair draws two distinct positions uniformly without replacement
// from [0, n) and returns them ordered (i < j). ok is false, and nothing is
// drawn, when n < 2.
//
// Complexity: O(1); exactly two draws from rng when ok.
func DistinctPair(rng *rand.Rand, n int) (i, j int, ok bool) {
	if n < 2 {
		return 0, 0, false
	}
	i = rng.Intn(n)
	j = rng.Intn(n - 1)
	if j >= i {
		j++ // skip i: uniform over the remaining n-1 positions
	}
	if j < i {
		i, j = j, i
	}

	return i, j, true
}
