package genetic

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/gatsp/matrix"
	"github.com/katalvlaran/gatsp/tsp"
)

// Evolver runs the generational search over one distance matrix.
// It holds configuration only; every Run starts from scratch. An Evolver is
// safe for concurrent Runs unless WithRand or a non-reentrant Observer was given.
type Evolver struct {
	cfg        evolverConfig
	costs      *tsp.CostTable
	snapshotAt map[int]struct{}
	log        *zap.Logger
}

// New validates dist and the options and returns a ready Evolver.
//
// Stage 1 (Config): apply options over the defaults, validate (ErrInvalidConfig).
// Stage 2 (Distances): snapshot dist into a cost table (ErrInvalidDistances).
// Stage 3 (Finalize): index the requested snapshot generations.
//
// Complexity: O(n²) for the cost table.
func New(dist matrix.Matrix, opts ...Option) (*Evolver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	costs, err := tsp.NewCostTable(dist)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDistances, err)
	}

	at := make(map[int]struct{}, len(cfg.snapshots))
	for _, g := range cfg.snapshots {
		at[g] = struct{}{}
	}

	return &Evolver{cfg: cfg, costs: costs, snapshotAt: at, log: cfg.logger}, nil
}

// Cities returns the number of cities n.
func (e *Evolver) Cities() int { return e.costs.N() }

// Params returns a copy of the resolved configuration.
func (e *Evolver) Params() Params {
	snaps := make([]int, 0, len(e.snapshotAt))
	for g := range e.snapshotAt {
		snaps = append(snaps, g)
	}
	sort.Ints(snaps)

	var seed = e.cfg.seed
	if e.cfg.rng != nil {
		seed = 0
	} else if seed == 0 {
		seed = tsp.DefaultSeed
	}

	return Params{
		PopulationSize: e.cfg.populationSize,
		MutationRate:   e.cfg.mutationRate,
		Generations:    e.cfg.generations,
		EliteSize:      e.cfg.eliteSize,
		Seed:           seed,
		SnapshotMode:   e.cfg.snapshotMode,
		Snapshots:      snaps,
		Workers:        e.cfg.workers,
	}
}

// Fitness returns the closed-tour length of t after checking that t is a
// permutation of the cities (ErrInvalidPopulation otherwise).
//
// Complexity: O(n).
func (e *Evolver) Fitness(t tsp.Tour) (float64, error) {
	if err := t.Validate(e.costs.N()); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPopulation, err)
	}

	return e.costs.Cost(t), nil
}

// SelectionWeights returns, for each tour of pop, its selection weight
// 1/(fitness+1e-10) and its raw fitness, as parallel slices. Weights are not
// normalized. Every tour is validated first.
//
// Complexity: O(P·n).
func (e *Evolver) SelectionWeights(pop []tsp.Tour) (weights, fitness []float64, err error) {
	if err = e.validatePopulation(pop); err != nil {
		return nil, nil, err
	}
	fitness = make([]float64, len(pop))
	e.evaluate(pop, fitness)

	return weightsFor(fitness), fitness, nil
}

// Run executes exactly G generations and returns the best tour seen.
//
// initial may be nil, in which case P random permutations are drawn;
// otherwise its length overrides P and every member must be a permutation of
// the cities (ErrInvalidPopulation, reported before generation 0). Members
// are copied; the caller's slices are never modified.
//
// Per generation g:
//  1. evaluate fitness (optionally in parallel);
//  2. on strict improvement replace the best-ever tour with a copy;
//  3. append the best-ever length to History;
//  4. record a snapshot when g was requested;
//  5. copy the min(E,P) fittest tours into the next generation;
//  6. fill the remaining slots with mutated crossover children of parents
//     drawn by weight, with replacement;
//  7. replace the population.
//
// Steps 5–7 are skipped after the last generation, whose offspring would
// never be evaluated.
//
// Complexity: O(G·P·(n + log P)) time, O(P·n) space.
func (e *Evolver) Run(initial []tsp.Tour) (Result, error) {
	var rng = e.newRand()

	pop, err := e.initialPopulation(initial, rng)
	if err != nil {
		return Result{}, err
	}

	var (
		p       = len(pop)
		g       int
		bestIdx int
		fitness = make([]float64, p)
		res     = Result{
			BestFitness:    math.Inf(1),
			History:        make([]float64, 0, e.cfg.generations),
			Snapshots:      make(map[int]Snapshot, len(e.snapshotAt)),
			PopulationSize: p,
		}
	)

	e.log.Info("evolution started",
		zap.Int("cities", e.costs.N()),
		zap.Int("population", p),
		zap.Int("generations", e.cfg.generations),
		zap.Int("elite", e.cfg.eliteSize),
		zap.Float64("mutation_rate", e.cfg.mutationRate),
		zap.Int("workers", e.cfg.workers),
	)

	for g = 0; g < e.cfg.generations; g++ {
		e.evaluate(pop, fitness)
		if e.cfg.observer != nil {
			e.cfg.observer(g, pop, fitness)
		}

		bestIdx = argmin(fitness)
		if g == 0 {
			res.InitialFitness = fitness[bestIdx]
		}
		if fitness[bestIdx] < res.BestFitness {
			res.Best = pop[bestIdx].Clone()
			res.BestFitness = fitness[bestIdx]
			res.BestGeneration = g
			e.log.Debug("best tour improved",
				zap.Int("generation", g),
				zap.Float64("fitness", res.BestFitness),
			)
		}
		res.History = append(res.History, res.BestFitness)

		if _, ok := e.snapshotAt[g]; ok {
			res.Snapshots[g] = e.snapshot(res, pop[bestIdx], fitness[bestIdx])
		}

		if g == e.cfg.generations-1 {
			break
		}
		pop = e.breed(pop, fitness, rng)
	}

	e.log.Info("evolution finished",
		zap.Float64("best_fitness", res.BestFitness),
		zap.Int("best_generation", res.BestGeneration),
		zap.Float64("improvement_pct", res.Improvement()),
	)

	return res, nil
}

// newRand returns the injected source or a fresh stream from the seed.
func (e *Evolver) newRand() *rand.Rand {
	if e.cfg.rng != nil {
		return e.cfg.rng
	}

	return tsp.NewRand(e.cfg.seed)
}

// initialPopulation validates and copies initial, or draws P random tours.
func (e *Evolver) initialPopulation(initial []tsp.Tour, rng *rand.Rand) ([]tsp.Tour, error) {
	var n = e.costs.N()
	if initial == nil {
		pop := make([]tsp.Tour, e.cfg.populationSize)
		for i := range pop {
			t, err := tsp.RandomTour(n, rng)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidPopulation, err)
			}
			pop[i] = t
		}
		return pop, nil
	}

	if err := e.validatePopulation(initial); err != nil {
		return nil, err
	}
	pop := make([]tsp.Tour, len(initial))
	for i, t := range initial {
		pop[i] = t.Clone()
	}

	return pop, nil
}

// validatePopulation requires a non-empty population of permutations.
func (e *Evolver) validatePopulation(pop []tsp.Tour) error {
	if len(pop) == 0 {
		return fmt.Errorf("%w: empty population", ErrInvalidPopulation)
	}
	var n = e.costs.N()
	for i, t := range pop {
		if err := t.Validate(n); err != nil {
			return fmt.Errorf("%w: individual %d: %w", ErrInvalidPopulation, i, err)
		}
	}

	return nil
}

// evaluate writes the length of pop[i] into out[i]. With more than one worker
// the population is split into contiguous chunks; each goroutine writes only
// its own indices of out, and pop is only read.
func (e *Evolver) evaluate(pop []tsp.Tour, out []float64) {
	var (
		p       = len(pop)
		workers = e.cfg.workers
	)
	if workers > p {
		workers = p
	}
	if workers <= 1 {
		for i, t := range pop {
			out[i] = e.costs.Cost(t)
		}
		return
	}

	var (
		wg    sync.WaitGroup
		chunk = (p + workers - 1) / workers
	)
	for lo := 0; lo < p; lo += chunk {
		hi := min(lo+chunk, p)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = e.costs.Cost(pop[i])
			}
		}(lo, hi)
	}
	wg.Wait()
}

// snapshot builds the pair recorded for a requested generation.
func (e *Evolver) snapshot(res Result, genBest tsp.Tour, genBestFitness float64) Snapshot {
	if e.cfg.snapshotMode == SnapshotGenerationBest {
		return Snapshot{Tour: genBest.Clone(), Fitness: genBestFitness}
	}

	return Snapshot{Tour: res.Best.Clone(), Fitness: res.BestFitness}
}

// breed builds the next generation: elite copies first, then children.
//
// Degenerate sizes:
//   - E ≥ P: the next generation is a sorted copy of the current one;
//   - P == 1: the sole tour is cloned as the child (no parent sampling, no
//     crossover), then mutated;
//   - n < 2: children are copies and mutation is a no-op.
func (e *Evolver) breed(pop []tsp.Tour, fitness []float64, rng *rand.Rand) []tsp.Tour {
	var (
		p     = len(pop)
		n     = e.costs.N()
		elite = min(e.cfg.eliteSize, p)
		next  = make([]tsp.Tour, 0, p)
	)

	ranked := rankByFitness(fitness)
	for k := 0; k < elite; k++ {
		next = append(next, pop[ranked[k]].Clone())
	}
	if len(next) == p {
		return next
	}

	wheel := newRouletteWheel(weightsFor(fitness))
	for len(next) < p {
		var child tsp.Tour
		switch {
		case p == 1 || n < 2:
			child = pop[0].Clone()
		default:
			p1 := pop[wheel.pick(rng)]
			p2 := pop[wheel.pick(rng)]
			// Lengths match and rng is non-nil, so Crossover cannot fail here.
			child, _ = Crossover(rng, p1, p2)
		}
		if n >= 2 {
			mutateInPlace(rng, child, e.cfg.mutationRate)
		}
		next = append(next, child)
	}

	return next
}
