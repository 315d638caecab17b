// Package matrix provides the distance-oracle container used by the tour
// search: a small Matrix interface, a row-major Dense implementation and
// the validators that gate a matrix before it is used as a distance table.
//
// The package is deliberately narrow:
//
//   - Dense stores r*c float64 values in one flat slice (cache friendly).
//   - At/Set are bounds checked and return ErrOutOfRange instead of panicking.
//   - ValidateDistances enforces the distance contract: non-nil, square,
//     finite, non-negative.
//
// See the examples in this package for usage patterns.
package matrix
