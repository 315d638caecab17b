// Package genetic searches for a short closed tour with a generational
// genetic algorithm.
//
// One type does the work: the Evolver. Per generation it
//
//  1. evaluates every tour (closed-tour length, lower is better),
//  2. derives selection weights 1/(fitness+1e-10),
//  3. tracks the best tour ever seen and appends its length to the history,
//  4. optionally records a snapshot,
//  5. carries the E fittest tours over unchanged (elitism),
//  6. fills the rest with children: two parents drawn by weight (with
//     replacement), order crossover (OX1), segment-inversion mutation.
//
// Determinism: all random draws come from one *rand.Rand, created per Run
// from the configured seed (or injected with WithRand). Two runs with the same
// configuration return identical results. Fitness evaluation may fan out over
// goroutines (WithWorkers); each tour's length is summed in the same order
// regardless, so the results do not change.
//
// Tours have value semantics: no member of generation g+1 shares storage with
// a member of generation g, and the returned best tour is an owned copy.
//
// This is a heuristic with a fixed generation budget, not an exact solver.
package genetic
