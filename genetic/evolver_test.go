package genetic_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/gatsp/genetic"
	"github.com/katalvlaran/gatsp/matrix"
	"github.com/katalvlaran/gatsp/tsp"
)

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []genetic.Option
	}{
		{"zero population", []genetic.Option{genetic.WithPopulationSize(0)}},
		{"negative population", []genetic.Option{genetic.WithPopulationSize(-3)}},
		{"zero generations", []genetic.Option{genetic.WithGenerations(0)}},
		{"negative elite", []genetic.Option{genetic.WithEliteSize(-1)}},
		{"mutation below 0", []genetic.Option{genetic.WithMutationRate(-0.01)}},
		{"mutation above 1", []genetic.Option{genetic.WithMutationRate(1.01)}},
		{"mutation NaN", []genetic.Option{genetic.WithMutationRate(math.NaN())}},
		{"negative workers", []genetic.Option{genetic.WithWorkers(-2)}},
		{"nil rand", []genetic.Option{genetic.WithRand(nil)}},
		{"snapshot past budget", []genetic.Option{genetic.WithGenerations(10), genetic.WithSnapshots(10)}},
		{"negative snapshot", []genetic.Option{genetic.WithSnapshots(-1)}},
		{"unknown snapshot mode", []genetic.Option{genetic.WithSnapshotMode(genetic.SnapshotMode(7))}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ev, err := genetic.New(triangle(t), tc.opts...)
			require.ErrorIs(t, err, genetic.ErrInvalidConfig)
			require.Nil(t, ev)
		})
	}
}

func TestNew_RejectsInvalidDistances(t *testing.T) {
	t.Parallel()

	_, err := genetic.New(nil)
	require.ErrorIs(t, err, genetic.ErrInvalidDistances)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = genetic.New(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	neg, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {-1, 0}})
	require.NoError(t, err)
	_, err = genetic.New(neg)
	require.ErrorIs(t, err, genetic.ErrInvalidDistances)
	require.ErrorIs(t, err, matrix.ErrNegativeValue)

	inf, err := matrix.NewDenseFromRows([][]float64{{0, math.Inf(1)}, {1, 0}})
	require.NoError(t, err)
	_, err = genetic.New(inf)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestRun_HistoryAndBest(t *testing.T) {
	t.Parallel()

	const gens = 60
	ev, err := genetic.New(circle(t, 14, 10),
		genetic.WithPopulationSize(40),
		genetic.WithGenerations(gens),
		genetic.WithEliteSize(2),
		genetic.WithMutationRate(0.2),
		genetic.WithSeed(99),
	)
	require.NoError(t, err)
	require.Equal(t, 14, ev.Cities())

	res, err := ev.Run(nil)
	require.NoError(t, err)

	require.Len(t, res.History, gens)
	for g := 1; g < gens; g++ {
		require.LessOrEqual(t, res.History[g], res.History[g-1], "history increased at generation %d", g)
	}
	require.NoError(t, res.Best.Validate(14))

	f, err := ev.Fitness(res.Best)
	require.NoError(t, err)
	assert.Equal(t, f, res.BestFitness)
	assert.Equal(t, res.BestFitness, res.History[gens-1])
	assert.Equal(t, res.InitialFitness, res.History[0])
	assert.Equal(t, res.BestFitness, res.History[res.BestGeneration])
	if res.BestGeneration > 0 {
		assert.Greater(t, res.History[res.BestGeneration-1], res.BestFitness)
	}
	assert.Equal(t, 40, res.PopulationSize)
	assert.GreaterOrEqual(t, res.Improvement(), 0.0)
}

func TestRun_FindsOptimumOnSmallCircle(t *testing.T) {
	t.Parallel()

	const n, r = 6, 5.0
	ev, err := genetic.New(circle(t, n, r),
		genetic.WithPopulationSize(60),
		genetic.WithGenerations(120),
		genetic.WithEliteSize(2),
		genetic.WithMutationRate(0.3),
		genetic.WithSeed(3),
	)
	require.NoError(t, err)

	res, err := ev.Run(nil)
	require.NoError(t, err)
	assert.InDelta(t, 2*n*r*math.Sin(math.Pi/n), res.BestFitness, 1e-9)
}

// TestRun_EveryIndividualIsPermutation checks the invariant on every member of
// every evaluated generation, for several elite sizes including the extremes.
func TestRun_EveryIndividualIsPermutation(t *testing.T) {
	t.Parallel()

	for _, elite := range []int{0, 1, 5, 20, 50} {
		elite := elite
		t.Run("elite", func(t *testing.T) {
			t.Parallel()

			var seen int
			ev, err := genetic.New(circle(t, 9, 1),
				genetic.WithPopulationSize(20),
				genetic.WithGenerations(25),
				genetic.WithEliteSize(elite),
				genetic.WithMutationRate(0.5),
				genetic.WithSeed(int64(elite)+1),
				genetic.WithObserver(func(g int, pop []tsp.Tour, fitness []float64) {
					seen++
					require.Len(t, pop, 20, "generation %d", g)
					require.Len(t, fitness, 20, "generation %d", g)
					for i, tour := range pop {
						require.NoError(t, tour.Validate(9), "generation %d individual %d", g, i)
					}
				}),
			)
			require.NoError(t, err)

			_, err = ev.Run(nil)
			require.NoError(t, err)
			assert.Equal(t, 25, seen)
		})
	}
}

// TestRun_Elitism verifies that the E fittest tours of generation g reappear
// unchanged at the front of generation g+1, and that no tour of g+1 shares
// storage with a tour of g.
func TestRun_Elitism(t *testing.T) {
	t.Parallel()

	const (
		elite = 3
		gens  = 15
	)
	var (
		pops  [][]tsp.Tour
		fits  [][]float64
		views [][]tsp.Tour // the Evolver's own slices, for aliasing checks
	)
	ev, err := genetic.New(circle(t, 10, 3),
		genetic.WithPopulationSize(12),
		genetic.WithGenerations(gens),
		genetic.WithEliteSize(elite),
		genetic.WithMutationRate(0.4),
		genetic.WithSeed(17),
		genetic.WithObserver(func(_ int, pop []tsp.Tour, fitness []float64) {
			pops = append(pops, clonePopulation(pop))
			fits = append(fits, append([]float64(nil), fitness...))
			views = append(views, append([]tsp.Tour(nil), pop...))
		}),
	)
	require.NoError(t, err)
	_, err = ev.Run(nil)
	require.NoError(t, err)
	require.Len(t, pops, gens)

	for g := 0; g+1 < gens; g++ {
		order := make([]int, len(fits[g]))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return fits[g][order[a]] < fits[g][order[b]] })

		for k := 0; k < elite; k++ {
			require.Equal(t, pops[g][order[k]], pops[g+1][k], "generation %d elite %d", g, k)
		}
		for _, cur := range views[g+1] {
			for _, prev := range views[g] {
				require.False(t, &cur[0] == &prev[0], "generation %d shares storage with %d", g+1, g)
			}
		}
	}
}

func TestRun_DeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	dist := circle(t, 12, 7)
	opts := []genetic.Option{
		genetic.WithPopulationSize(30),
		genetic.WithGenerations(40),
		genetic.WithEliteSize(2),
		genetic.WithMutationRate(0.1),
		genetic.WithSeed(1234),
		genetic.WithSnapshots(0, 10, 39),
	}

	a, err := genetic.New(dist, opts...)
	require.NoError(t, err)
	b, err := genetic.New(dist, append(opts, genetic.WithWorkers(4))...)
	require.NoError(t, err)

	r1, err := a.Run(nil)
	require.NoError(t, err)
	r2, err := a.Run(nil) // same Evolver, second run
	require.NoError(t, err)
	r3, err := b.Run(nil) // parallel evaluation
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, r1, r3)
}

func TestRun_InjectedRand(t *testing.T) {
	t.Parallel()

	dist := circle(t, 8, 2)
	opts := []genetic.Option{genetic.WithPopulationSize(10), genetic.WithGenerations(5)}

	shared := tsp.NewRand(5)
	ev, err := genetic.New(dist, append(opts, genetic.WithRand(shared))...)
	require.NoError(t, err)
	first, err := ev.Run(nil)
	require.NoError(t, err)

	fresh, err := genetic.New(dist, append(opts, genetic.WithRand(tsp.NewRand(5)))...)
	require.NoError(t, err)
	again, err := fresh.Run(nil)
	require.NoError(t, err)
	assert.Equal(t, first, again, "equal streams give equal runs")
}

func TestRun_Snapshots(t *testing.T) {
	t.Parallel()

	const gens = 30
	snaps := []int{0, 7, 7, 14, 29}
	dist := circle(t, 11, 4)

	t.Run("best so far", func(t *testing.T) {
		t.Parallel()

		ev, err := genetic.New(dist,
			genetic.WithPopulationSize(16),
			genetic.WithGenerations(gens),
			genetic.WithSnapshots(snaps...),
			genetic.WithSeed(8),
		)
		require.NoError(t, err)
		res, err := ev.Run(nil)
		require.NoError(t, err)

		require.Len(t, res.Snapshots, 4)
		for _, g := range snaps {
			s, ok := res.Snapshots[g]
			require.True(t, ok, "generation %d", g)
			require.NoError(t, s.Tour.Validate(11))
			assert.Equal(t, res.History[g], s.Fitness, "generation %d", g)
			f, err := ev.Fitness(s.Tour)
			require.NoError(t, err)
			assert.Equal(t, f, s.Fitness)
		}
		assert.Equal(t, res.Best, res.Snapshots[29].Tour)
	})

	t.Run("generation best", func(t *testing.T) {
		t.Parallel()

		genMin := make(map[int]float64)
		ev, err := genetic.New(dist,
			genetic.WithPopulationSize(16),
			genetic.WithGenerations(gens),
			genetic.WithEliteSize(0), // regressions are possible without elitism
			genetic.WithMutationRate(0.9),
			genetic.WithSnapshots(snaps...),
			genetic.WithSnapshotMode(genetic.SnapshotGenerationBest),
			genetic.WithSeed(8),
			genetic.WithObserver(func(g int, _ []tsp.Tour, fitness []float64) {
				m := fitness[0]
				for _, f := range fitness[1:] {
					m = math.Min(m, f)
				}
				genMin[g] = m
			}),
		)
		require.NoError(t, err)
		res, err := ev.Run(nil)
		require.NoError(t, err)

		for _, g := range snaps {
			s := res.Snapshots[g]
			assert.Equal(t, genMin[g], s.Fitness, "generation %d", g)
			assert.GreaterOrEqual(t, s.Fitness, res.History[g])
		}
	})
}

func TestRun_SuppliedPopulation(t *testing.T) {
	t.Parallel()

	ev, err := genetic.New(triangle(t),
		genetic.WithPopulationSize(100),
		genetic.WithGenerations(3),
		genetic.WithEliteSize(1),
	)
	require.NoError(t, err)

	initial := []tsp.Tour{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}}
	before := clonePopulation(initial)

	res, err := ev.Run(initial)
	require.NoError(t, err)
	assert.Equal(t, 3, res.PopulationSize, "supplied population overrides the configured size")
	assert.Equal(t, 6.0, res.BestFitness) // every 3-city cycle has length 6
	assert.Equal(t, before, initial, "supplied tours must not be modified")
}

func TestRun_RejectsInvalidPopulation(t *testing.T) {
	t.Parallel()

	ev, err := genetic.New(triangle(t), genetic.WithGenerations(2))
	require.NoError(t, err)

	tests := []struct {
		name string
		pop  []tsp.Tour
		want error
	}{
		{"empty", []tsp.Tour{}, genetic.ErrInvalidPopulation},
		{"short tour", []tsp.Tour{{0, 1, 2}, {0, 1}}, tsp.ErrDimensionMismatch},
		{"out of range", []tsp.Tour{{0, 1, 3}}, tsp.ErrNotPermutation},
		{"duplicate", []tsp.Tour{{2, 2, 0}}, tsp.ErrNotPermutation},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := ev.Run(tc.pop)
			require.ErrorIs(t, err, genetic.ErrInvalidPopulation)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRun_DegenerateSizes(t *testing.T) {
	t.Parallel()

	t.Run("single city", func(t *testing.T) {
		t.Parallel()
		one, err := matrix.NewDenseFromRows([][]float64{{0}})
		require.NoError(t, err)
		ev, err := genetic.New(one,
			genetic.WithPopulationSize(4),
			genetic.WithGenerations(5),
			genetic.WithMutationRate(1),
		)
		require.NoError(t, err)
		res, err := ev.Run(nil)
		require.NoError(t, err)
		assert.Equal(t, tsp.Tour{0}, res.Best)
		assert.Equal(t, []float64{0, 0, 0, 0, 0}, res.History)
	})

	t.Run("two cities", func(t *testing.T) {
		t.Parallel()
		two, err := matrix.NewDenseFromRows([][]float64{{0, 3}, {4, 0}})
		require.NoError(t, err)
		ev, err := genetic.New(two, genetic.WithPopulationSize(5), genetic.WithGenerations(5), genetic.WithMutationRate(1))
		require.NoError(t, err)
		res, err := ev.Run(nil)
		require.NoError(t, err)
		assert.Equal(t, 7.0, res.BestFitness)
	})

	t.Run("population of one", func(t *testing.T) {
		t.Parallel()
		ev, err := genetic.New(circle(t, 7, 1),
			genetic.WithPopulationSize(1),
			genetic.WithGenerations(20),
			genetic.WithEliteSize(0),
			genetic.WithMutationRate(1),
		)
		require.NoError(t, err)
		res, err := ev.Run(nil)
		require.NoError(t, err)
		require.NoError(t, res.Best.Validate(7))
		require.Len(t, res.History, 20)
	})

	t.Run("elite covers population", func(t *testing.T) {
		t.Parallel()
		var first []tsp.Tour
		var last []tsp.Tour
		ev, err := genetic.New(circle(t, 8, 1),
			genetic.WithPopulationSize(6),
			genetic.WithGenerations(10),
			genetic.WithEliteSize(50),
			genetic.WithMutationRate(1),
			genetic.WithObserver(func(g int, pop []tsp.Tour, _ []float64) {
				if g == 0 {
					first = clonePopulation(pop)
				}
				last = clonePopulation(pop)
			}),
		)
		require.NoError(t, err)
		res, err := ev.Run(nil)
		require.NoError(t, err)

		// No evolution: the same tours survive, only reordered by fitness.
		key := func(pop []tsp.Tour) []string {
			out := make([]string, len(pop))
			for i, tour := range pop {
				out[i] = tour.String()
			}
			sort.Strings(out)
			return out
		}
		assert.Equal(t, key(first), key(last))
		assert.Equal(t, res.InitialFitness, res.BestFitness)
	})
}

func TestRun_Logging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ev, err := genetic.New(circle(t, 9, 2),
		genetic.WithPopulationSize(20),
		genetic.WithGenerations(30),
		genetic.WithSeed(4),
		genetic.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)
	res, err := ev.Run(nil)
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("evolution started").Len())
	finished := logs.FilterMessage("evolution finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, res.BestFitness, finished[0].ContextMap()["best_fitness"])

	improved := logs.FilterMessage("best tour improved").All()
	require.NotEmpty(t, improved)
	assert.Equal(t, int64(0), improved[0].ContextMap()["generation"])
}

func TestParseSnapshotMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]genetic.SnapshotMode{
		"":                genetic.SnapshotBestSoFar,
		"best-so-far":     genetic.SnapshotBestSoFar,
		"Generation-Best": genetic.SnapshotGenerationBest,
	} {
		got, err := genetic.ParseSnapshotMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.NotEmpty(t, got.String())
	}

	_, err := genetic.ParseSnapshotMode("latest")
	require.ErrorIs(t, err, genetic.ErrInvalidConfig)
}

func TestResult_Improvement(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 25.0, genetic.Result{InitialFitness: 200, BestFitness: 150}.Improvement(), 1e-12)
	assert.Equal(t, 0.0, genetic.Result{}.Improvement())
}

func TestEvolver_Params(t *testing.T) {
	t.Parallel()

	ev, err := genetic.New(triangle(t),
		genetic.WithPopulationSize(12),
		genetic.WithMutationRate(0.3),
		genetic.WithGenerations(9),
		genetic.WithEliteSize(2),
		genetic.WithSnapshots(8, 0, 4, 4),
		genetic.WithSnapshotMode(genetic.SnapshotGenerationBest),
	)
	require.NoError(t, err)

	p := ev.Params()
	assert.Equal(t, genetic.Params{
		PopulationSize: 12,
		MutationRate:   0.3,
		Generations:    9,
		EliteSize:      2,
		Seed:           tsp.DefaultSeed,
		SnapshotMode:   genetic.SnapshotGenerationBest,
		Snapshots:      []int{0, 4, 8},
		Workers:        1,
	}, p)

	injected, err := genetic.New(triangle(t), genetic.WithRand(tsp.NewRand(3)), genetic.WithWorkers(0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), injected.Params().Seed)
	assert.GreaterOrEqual(t, injected.Params().Workers, 1)
	assert.Empty(t, injected.Params().Snapshots)
}
