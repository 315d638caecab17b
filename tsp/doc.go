// Package tsp provides the Travelling Salesman building blocks shared by
// tour-search heuristics:
//
//   - Tour: a permutation of city indices with an implicit closing edge.
//   - ValidatePermutation: the permutation invariant check.
//   - TourCost / CostTable: closed-tour length over a distance matrix.
//   - OrderCrossover (OX1, scan variant) and ReverseSegment (inversion):
//     deterministic operator cores; randomness is supplied by the caller.
//   - NewRand, RandomTour, DistinctPair: seeded, explicit randomness.
//
// Nothing here keeps global state, logs or panics on user input; failures
// are reported with the sentinels from types.go.
//
// Complexity of every helper is O(n) in the number of cities unless noted.
package tsp
