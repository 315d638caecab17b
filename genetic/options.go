// Package: gatsp/genetic
//
// options.go: functional options for the Evolver.
//
// Contract:
//   • Options are functional (type Option func(*evolverConfig)).
//   • Option constructors never panic; New validates the resolved config and
//     returns ErrInvalidConfig with context on the first violation.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.
//   • No hidden globals; everything flows through evolverConfig.

package genetic

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/gatsp/tsp"
)

// Default search parameters.
const (
	DefaultPopulationSize = 150
	DefaultMutationRate   = 0.05
	DefaultGenerations    = 500
	DefaultEliteSize      = 4
)

// SnapshotMode selects what a snapshot records.
type SnapshotMode int

const (
	// SnapshotBestSoFar records the best tour seen up to and including the
	// snapshot generation. Its fitness equals History[g].
	SnapshotBestSoFar SnapshotMode = iota

	// SnapshotGenerationBest records the fittest tour of the snapshot
	// generation itself, which may be worse than the best seen earlier.
	SnapshotGenerationBest
)

// String returns the config spelling of m.
func (m SnapshotMode) String() string {
	switch m {
	case SnapshotBestSoFar:
		return "best-so-far"
	case SnapshotGenerationBest:
		return "generation-best"
	default:
		return fmt.Sprintf("SnapshotMode(%d)", int(m))
	}
}

// ParseSnapshotMode accepts "best-so-far" or "generation-best" (case-insensitive).
// The empty string maps to SnapshotBestSoFar.
func ParseSnapshotMode(s string) (SnapshotMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best-so-far":
		return SnapshotBestSoFar, nil
	case "generation-best":
		return SnapshotGenerationBest, nil
	default:
		return 0, fmt.Errorf("snapshot mode %q: %w", s, ErrInvalidConfig)
	}
}

// Observer is called once per generation, after evaluation and before
// breeding, with the current population and its fitness values (parallel
// slices). Both slices are owned by the Evolver and valid only during the
// call; observers must not modify them and must copy what they keep.
type Observer func(generation int, population []tsp.Tour, fitness []float64)

// evolverConfig is the resolved configuration of an Evolver.
type evolverConfig struct {
	populationSize int
	mutationRate   float64
	generations    int
	eliteSize      int
	snapshots      []int
	snapshotMode   SnapshotMode
	seed           int64
	rng            *rand.Rand
	rngSet         bool // WithRand was applied (possibly with nil)
	workers        int
	logger         *zap.Logger
	observer       Observer
}

// Option customizes an Evolver before validation.
type Option func(*evolverConfig)

// defaultConfig returns the baseline configuration.
func defaultConfig() evolverConfig {
	return evolverConfig{
		populationSize: DefaultPopulationSize,
		mutationRate:   DefaultMutationRate,
		generations:    DefaultGenerations,
		eliteSize:      DefaultEliteSize,
		snapshotMode:   SnapshotBestSoFar,
		workers:        1,
		logger:         zap.NewNop(),
	}
}

// WithPopulationSize sets P (> 0). A population passed to Run overrides it.
func WithPopulationSize(p int) Option {
	return func(c *evolverConfig) { c.populationSize = p }
}

// WithMutationRate sets the per-child mutation probability p_m ∈ [0,1].
func WithMutationRate(p float64) Option {
	return func(c *evolverConfig) { c.mutationRate = p }
}

// WithGenerations sets the generation budget G (> 0).
func WithGenerations(g int) Option {
	return func(c *evolverConfig) { c.generations = g }
}

// WithEliteSize sets E (≥ 0). E ≥ P is accepted: the next generation is then a
// pure copy of the current one.
func WithEliteSize(e int) Option {
	return func(c *evolverConfig) { c.eliteSize = e }
}

// WithSnapshots requests snapshots at the given generation indices (each in
// [0, G)). Duplicates are harmless. Repeated calls accumulate.
func WithSnapshots(generations ...int) Option {
	return func(c *evolverConfig) {
		c.snapshots = append(c.snapshots, generations...)
	}
}

// WithSnapshotMode selects what a snapshot records (default SnapshotBestSoFar).
func WithSnapshotMode(m SnapshotMode) Option {
	return func(c *evolverConfig) { c.snapshotMode = m }
}

// WithSeed seeds the per-run random stream. Seed 0 maps to tsp.DefaultSeed.
// Ignored when WithRand is also given.
func WithSeed(seed int64) Option {
	return func(c *evolverConfig) { c.seed = seed }
}

// WithRand injects an explicit random source. It is used as-is (not reseeded)
// by every Run, so consecutive runs continue the same stream. nil is rejected by New.
func WithRand(r *rand.Rand) Option {
	return func(c *evolverConfig) {
		c.rng = r
		c.rngSet = true
	}
}

// WithWorkers sets the number of goroutines used for fitness evaluation.
// 1 (default) evaluates inline; 0 means runtime.GOMAXPROCS(0).
func WithWorkers(w int) Option {
	return func(c *evolverConfig) { c.workers = w }
}

// WithLogger attaches a zap logger. nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *evolverConfig) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// WithObserver installs a per-generation callback. nil removes it.
func WithObserver(fn Observer) Option {
	return func(c *evolverConfig) { c.observer = fn }
}

// validate checks every field and resolves derived values (workers == 0).
//
// Complexity: O(len(snapshots)).
func (c *evolverConfig) validate() error {
	if c.populationSize <= 0 {
		return fmt.Errorf("population size %d must be > 0: %w", c.populationSize, ErrInvalidConfig)
	}
	if c.generations <= 0 {
		return fmt.Errorf("generations %d must be > 0: %w", c.generations, ErrInvalidConfig)
	}
	if c.eliteSize < 0 {
		return fmt.Errorf("elite size %d must be ≥ 0: %w", c.eliteSize, ErrInvalidConfig)
	}
	// NaN fails both comparisons, so test it explicitly.
	if math.IsNaN(c.mutationRate) || c.mutationRate < 0 || c.mutationRate > 1 {
		return fmt.Errorf("mutation rate %v must lie in [0,1]: %w", c.mutationRate, ErrInvalidConfig)
	}
	if c.workers < 0 {
		return fmt.Errorf("workers %d must be ≥ 0: %w", c.workers, ErrInvalidConfig)
	}
	if c.workers == 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	if c.rngSet && c.rng == nil {
		return fmt.Errorf("WithRand(nil): %w", ErrInvalidConfig)
	}
	if c.snapshotMode != SnapshotBestSoFar && c.snapshotMode != SnapshotGenerationBest {
		return fmt.Errorf("snapshot mode %v: %w", c.snapshotMode, ErrInvalidConfig)
	}
	for _, g := range c.snapshots {
		if g < 0 || g >= c.generations {
			return fmt.Errorf("snapshot generation %d outside [0,%d): %w", g, c.generations, ErrInvalidConfig)
		}
	}

	return nil
}
