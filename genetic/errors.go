package genetic

import "errors"

// Sentinel errors. Returned values wrap these with context; match with errors.Is.
var (
	// ErrInvalidConfig reports a configuration value outside its domain
	// (population ≤ 0, generations ≤ 0, elite < 0, mutation rate ∉ [0,1],
	// negative workers, nil random source, snapshot index ∉ [0,G), unknown mode).
	ErrInvalidConfig = errors.New("genetic: invalid configuration")

	// ErrInvalidDistances reports a distance matrix rejected by
	// matrix.ValidateDistances; the matrix sentinel is wrapped as well.
	ErrInvalidDistances = errors.New("genetic: invalid distance matrix")

	// ErrInvalidPopulation reports a tour that is not a permutation of the
	// cities, or an empty supplied population; the tsp sentinel is wrapped as well.
	ErrInvalidPopulation = errors.New("genetic: invalid population")
)
