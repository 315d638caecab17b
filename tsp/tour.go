// Package tsp: tour utilities shared by tour-search heuristics.
//
// This file contains compact utilities that operate purely on tour structure
// (index sequences), without depending on distance matrices:
//   - ValidatePermutation: verify a permutation over {0..n-1}.
//   - Identity / Clone / Equal: construction and comparison helpers.
//   - OrderCrossover: OX1 child from a prefix of one parent and the ordered
//     remainder of the other.
//   - ReverseSegment: inversion of an inclusive segment.
//
// Design:
//   - No logging, no panics on user input; only sentinel errors from types.go.
//   - Operators never write into their inputs; they return fresh tours.
package tsp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidatePermutation checks that perm is a permutation of {0..n-1} of length n.
// It allocates a single O(n) marker slice.
//
// Errors:
//   - ErrDimensionMismatch if n ≤ 0 or len(perm) != n,
//   - ErrNotPermutation on an out-of-range or repeated city (wrapped with its position).
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 {
		return ErrDimensionMismatch
	}
	if len(perm) != n {
		return fmt.Errorf("length %d, want %d: %w", len(perm), n, ErrDimensionMismatch)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		if v < 0 || v >= n {
			return fmt.Errorf("position %d holds city %d outside [0,%d): %w", i, v, n, ErrNotPermutation)
		}
		if seen[v] {
			return fmt.Errorf("position %d repeats city %d: %w", i, v, ErrNotPermutation)
		}
		seen[v] = true
	}

	return nil
}

// Identity returns the tour [0, 1, …, n-1]. n ≤ 0 yields an empty tour.
func Identity(n int) Tour {
	if n <= 0 {
		return Tour{}
	}
	t := make(Tour, n)
	for i := range t {
		t[i] = i
	}

	return t
}

// Validate is ValidatePermutation(t, n).
func (t Tour) Validate(n int) error { return ValidatePermutation(t, n) }

// Clone returns an independent copy of t. A nil tour clones to nil.
func (t Tour) Clone() Tour {
	if t == nil {
		return nil
	}
	out := make(Tour, len(t))
	copy(out, t)

	return out
}

// Equal reports whether a and b visit the same cities in the same positions.
// Rotations and reversals of the same cycle are NOT considered equal.
func (t Tour) Equal(other Tour) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}

	return true
}

// String renders the tour as "0→3→1→2→0" (closing edge shown).
func (t Tour) String() string {
	if len(t) == 0 {
		return "∅"
	}
	var sb strings.Builder
	for _, v := range t {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteString("→")
	}
	sb.WriteString(strconv.Itoa(t[0]))

	return sb.String()
}

// OrderCrossover builds one OX1 child from parents p1 and p2 at cut c.
//
// Steps:
//  1. The child's prefix is p1[0:c] verbatim.
//  2. p2 is scanned from the start; each city not yet in the child is appended
//     until the child holds n cities.
//
// Because p2 is itself a permutation of the same cities, the scan visits all
// n cities and skips exactly the c already placed, so the child is always a
// permutation.
//
// Contract:
//   - p1 and p2 are permutations of {0..n-1} of equal length n ≥ 2 (not re-checked
//     beyond length; use ValidatePermutation upstream),
//   - 1 ≤ c ≤ n-1, otherwise ErrCutOutOfRange.
//
// Complexity: O(n) time, O(n) space.
func OrderCrossover(p1, p2 Tour, c int) (Tour, error) {
	var n = len(p1)
	if len(p2) != n {
		return nil, fmt.Errorf("parents of length %d and %d: %w", n, len(p2), ErrDimensionMismatch)
	}
	if c < 1 || c > n-1 {
		return nil, fmt.Errorf("cut %d outside [1,%d]: %w", c, n-1, ErrCutOutOfRange)
	}

	var (
		child  = make(Tour, 0, n)
		placed = make([]bool, n)
		i      int
		v      int
	)
	// Stage 1: prefix of the first parent.
	for i = 0; i < c; i++ {
		v = p1[i]
		child = append(child, v)
		placed[v] = true
	}
	// Stage 2: ordered remainder from the second parent.
	for i = 0; i < n && len(child) < n; i++ {
		v = p2[i]
		if placed[v] {
			continue
		}
		child = append(child, v)
		placed[v] = true
	}

	return child, nil
}

// ReverseSegment returns a copy of t with the inclusive segment t[i..j]
// reversed. Requires 0 ≤ i < j < len(t), otherwise ErrSegmentOutOfRange.
//
// Complexity: O(n) time (copy) + O(j-i) swaps.
func ReverseSegment(t Tour, i, j int) (Tour, error) {
	if i < 0 || j >= len(t) || i >= j {
		return nil, fmt.Errorf("segment [%d,%d] in tour of length %d: %w", i, j, len(t), ErrSegmentOutOfRange)
	}
	out := t.Clone()
	reverseInPlace(out, i, j)

	return out, nil
}

// ReverseSegmentInPlace is ReverseSegment without the copy. Only for tours the
// caller exclusively owns (e.g. a freshly bred child).
func ReverseSegmentInPlace(t Tour, i, j int) error {
	if i < 0 || j >= len(t) || i >= j {
		return fmt.Errorf("segment [%d,%d] in tour of length %d: %w", i, j, len(t), ErrSegmentOutOfRange)
	}
	reverseInPlace(t, i, j)

	return nil
}

// reverseInPlace reverses a[i..j] inclusive. Bounds are the caller's duty.
func reverseInPlace(a []int, i, j int) {
	for i < j {
		a[i], a[j] = a[j], a[i]
		i++
		j--
	}
}
