// Package gatsp searches short closed tours over a set of cities with a
// generational genetic algorithm.
//
// Layout:
//
//	matrix/     Matrix interface, row-major Dense, shape and distance validators
//	tsp/        Tour type, permutation checks, tour cost, OX1 and inversion primitives, seeded RNG
//	genetic/    Evolver: roulette selection, crossover, mutation, elitism, history, snapshots
//	cities/     random planar instances and their Euclidean distance matrix
//	config/     YAML run files and logger construction
//	report/     xlsx export of a finished run
//	store/      SQLite run history
//	cmd/gatsp/  command-line front end
//
// Quick start:
//
//	pts, _ := cities.Generate(20, 42, cities.DefaultWidth, cities.DefaultHeight)
//	dist, _ := cities.DistanceMatrix(pts)
//	ev, err := genetic.New(dist, genetic.WithGenerations(500), genetic.WithSeed(42))
//	if err != nil { ... }
//	res, err := ev.Run(nil)
//	fmt.Println(res.BestFitness, res.Best)
//
// A Run is deterministic for a fixed seed, including when fitness is
// evaluated by several workers.
package gatsp
