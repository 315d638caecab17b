package tsp

import "errors"

// Sentinel errors. Every function in this package returns one of these
// (possibly wrapped with %w for context); callers branch with errors.Is.
var (
	// ErrDimensionMismatch is returned when a tour's length does not match the
	// number of cities, or a size argument is non-positive.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrNotPermutation is returned when a tour holds an out-of-range city or
	// visits a city twice.
	ErrNotPermutation = errors.New("tsp: tour is not a permutation")

	// ErrCutOutOfRange is returned when an order-crossover cut lies outside [1, n-1].
	ErrCutOutOfRange = errors.New("tsp: crossover cut out of range")

	// ErrSegmentOutOfRange is returned when an inversion segment is not 0 ≤ i < j < n.
	ErrSegmentOutOfRange = errors.New("tsp: segment out of range")

	// ErrNilRand is returned when a helper that draws randomness receives a nil source.
	ErrNilRand = errors.New("tsp: nil random source")
)

// Tour is a visiting order over cities [0, n): a permutation in which every
// index appears exactly once. The edge from the last city back to the first
// is implicit; a Tour never repeats its start at the end.
//
// Tours have value semantics in this module: operators return fresh slices
// and never write into their inputs.
type Tour []int
