// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for shape and value checks.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly and callers can branch with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Value scans are O(n²) and stop at the first violation in row-major order.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil (see ValidateSquareNonNil).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSquareNonNil is the composite NotNil → Square.
// Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on a
// non-finite tolerance and ErrAsymmetry on violation. A negative tol is
// treated as its absolute value.
// Complexity: O(n²) time, O(1) space.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // strict upper triangle only
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if aji, err = m.At(j, i); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.Abs(aij-aji) > tol {
				return validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateDistances enforces the distance-table contract used by tour search:
//   - non-nil and square (n ≥ 1 is implied by any Matrix built by NewDense),
//   - every entry finite (no NaN, no ±Inf),
//   - every entry non-negative.
//
// Symmetry is NOT required; callers that need it add ValidateSymmetric.
// Returns n on success.
// Complexity: O(n²).
func ValidateDistances(m Matrix) (int, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, validatorErrorf("ValidateDistances", err)
	}

	var (
		n    = m.Rows()
		i, j int
		v    float64
		err  error
	)
	if n <= 0 {
		return 0, validatorErrorf("ValidateDistances", ErrInvalidDimensions)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, validatorErrorf("ValidateDistances", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, validatorErrorf(fmt.Sprintf("ValidateDistances(%d,%d)", i, j), ErrNaNInf)
			}
			if v < 0 {
				return 0, validatorErrorf(fmt.Sprintf("ValidateDistances(%d,%d)", i, j), ErrNegativeValue)
			}
		}
	}

	return n, nil
}
