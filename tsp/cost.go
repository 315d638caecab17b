// Package tsp: cost utilities shared by tour-search heuristics.
//
// This file provides the closed-tour length of a Tour:
//
//	cost(t) = Σ d[t[i], t[i+1]]  for i in [0, n-2]  +  d[t[n-1], t[0]]
//
// Two paths exist:
//   - TourCost reads through matrix.Matrix with full checks (safe, slower).
//   - CostTable snapshots a validated matrix into a flat slice so the hot
//     loop of a search performs no interface calls and no error checks.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/gatsp/matrix"
)

// TourCost returns the closed-tour length of t over dist.
//
// Contract:
//   - dist is square with n == len(t) ≥ 1,
//   - t is a permutation of {0..n-1} (checked),
//   - entries are read with At; negative or non-finite values are NOT re-checked
//     here (see matrix.ValidateDistances).
//
// Errors: matrix.ErrNilMatrix / matrix.ErrNonSquare, ErrDimensionMismatch,
// ErrNotPermutation.
//
// Complexity: O(n).
func TourCost(dist matrix.Matrix, t Tour) (float64, error) {
	if err := matrix.ValidateSquareNonNil(dist); err != nil {
		return 0, fmt.Errorf("TourCost: %w", err)
	}
	var n = dist.Rows()
	if err := ValidatePermutation(t, n); err != nil {
		return 0, fmt.Errorf("TourCost: %w", err)
	}

	var (
		sum float64
		w   float64
		err error
		i   int
	)
	for i = 0; i < n-1; i++ {
		if w, err = dist.At(t[i], t[i+1]); err != nil {
			return 0, fmt.Errorf("TourCost: %w", err)
		}
		sum += w
	}
	// Closing edge back to the first city.
	if w, err = dist.At(t[n-1], t[0]); err != nil {
		return 0, fmt.Errorf("TourCost: %w", err)
	}

	return sum + w, nil
}

// CostTable is an immutable row-major copy of a validated distance matrix.
// It is safe for concurrent readers.
type CostTable struct {
	n int
	d []float64
}

// NewCostTable validates dist with matrix.ValidateDistances and copies it.
// Later writes to dist do not affect the table.
//
// Complexity: O(n²) time and memory.
func NewCostTable(dist matrix.Matrix) (*CostTable, error) {
	n, err := matrix.ValidateDistances(dist)
	if err != nil {
		return nil, err
	}

	var (
		d    = make([]float64, n*n)
		i, j int
		w    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			// Errors were ruled out by ValidateDistances.
			w, _ = dist.At(i, j)
			d[i*n+j] = w
		}
	}

	return &CostTable{n: n, d: d}, nil
}

// N returns the number of cities.
func (c *CostTable) N() int { return c.n }

// At returns d[i,j] without bounds checks beyond the slice's own.
func (c *CostTable) At(i, j int) float64 { return c.d[i*c.n+j] }

// Cost returns the closed-tour length of t. The caller guarantees that t is a
// permutation of {0..N()-1}; no validation is performed.
//
// The summation order is fixed (forward edges, then the closing edge), so the
// result is bit-identical regardless of which goroutine evaluates it.
//
// Complexity: O(n).
func (c *CostTable) Cost(t Tour) float64 {
	var (
		n   = len(t)
		sum float64
		i   int
	)
	if n == 0 {
		return 0
	}
	for i = 0; i < n-1; i++ {
		sum += c.d[t[i]*c.n+t[i+1]]
	}

	return sum + c.d[t[n-1]*c.n+t[0]]
}
