package genetic

import "github.com/katalvlaran/gatsp/tsp"

// Snapshot is a (tour, length) pair captured at a requested generation.
type Snapshot struct {
	Tour    tsp.Tour
	Fitness float64
}

// Params is the resolved configuration of an Evolver, as plain data for
// collaborators that record or display a run.
type Params struct {
	PopulationSize int
	MutationRate   float64
	Generations    int
	EliteSize      int
	Seed           int64 // 0 when an explicit source was injected with WithRand
	SnapshotMode   SnapshotMode
	Snapshots      []int // sorted, without duplicates
	Workers        int
}

// Result is the outcome of one Run. Every slice and map is owned by the
// Result; none shares storage with the Evolver or the supplied population.
type Result struct {
	// Best is the shortest tour seen in any evaluated generation.
	Best tsp.Tour

	// BestFitness is the closed-tour length of Best.
	BestFitness float64

	// BestGeneration is the first generation in which Best was seen.
	BestGeneration int

	// InitialFitness is the shortest length in generation 0.
	InitialFitness float64

	// History[g] is the best length seen up to and including generation g.
	// len(History) equals the generation budget; the sequence never increases.
	History []float64

	// Snapshots maps each requested generation to the captured pair.
	Snapshots map[int]Snapshot

	// PopulationSize is the size actually used (a supplied population
	// overrides the configured size).
	PopulationSize int
}

// Improvement returns the relative gain of BestFitness over InitialFitness in
// percent. It is 0 when the initial length is 0.
func (r Result) Improvement() float64 {
	if r.InitialFitness == 0 {
		return 0
	}

	return (r.InitialFitness - r.BestFitness) / r.InitialFitness * 100
}
