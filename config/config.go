// Package config loads gatsp run files.
//
// A run file is YAML with four sections:
//
//	cities:   instance generation (count, seed, area)
//	evolver:  search parameters and snapshot selection
//	output:   optional workbook path and run-history database
//	log:      logger level and mode
//
// Missing keys keep the values of Default, so an empty file is a valid run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gatsp/genetic"
)

// DefaultSnapshotCount is the number of evenly spaced snapshots taken when
// the file lists none: the first generation, three in between, the last.
const DefaultSnapshotCount = 5

// ErrInvalid is returned for a run file whose values cannot drive a run.
var ErrInvalid = errors.New("config: invalid run file")

// File is a parsed run file.
type File struct {
	Cities  Cities  `yaml:"cities"`
	Evolver Evolver `yaml:"evolver"`
	Output  Output  `yaml:"output"`
	Log     Log     `yaml:"log"`
}

// Cities describes the random instance.
type Cities struct {
	Count  int     `yaml:"count"`
	Seed   int64   `yaml:"seed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Evolver carries the search parameters.
type Evolver struct {
	PopulationSize int     `yaml:"population_size"`
	MutationRate   float64 `yaml:"mutation_rate"`
	Generations    int     `yaml:"generations"`
	EliteSize      int     `yaml:"elite_size"`
	Seed           int64   `yaml:"seed"`
	Workers        int     `yaml:"workers"`
	SnapshotMode   string  `yaml:"snapshot_mode"`
	Snapshots      []int   `yaml:"snapshots"`      // explicit generations; wins over SnapshotCount
	SnapshotCount  int     `yaml:"snapshot_count"` // evenly spaced generations
}

// Output names where results go. Empty paths disable that output.
type Output struct {
	Workbook string `yaml:"workbook"`
	Database string `yaml:"database"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the defaults: 20 cities in a 100×100 square,
// P=150, pm=0.05, G=500, E=4, seed 42, five snapshots.
func Default() File {
	return File{
		Cities: Cities{
			Count:  20,
			Seed:   42,
			Width:  100,
			Height: 100,
		},
		Evolver: Evolver{
			PopulationSize: genetic.DefaultPopulationSize,
			MutationRate:   genetic.DefaultMutationRate,
			Generations:    genetic.DefaultGenerations,
			EliteSize:      genetic.DefaultEliteSize,
			Seed:           42,
			Workers:        1,
			SnapshotMode:   genetic.SnapshotBestSoFar.String(),
			SnapshotCount:  DefaultSnapshotCount,
		},
		Output: Output{
			Database: "gatsp.db",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads and parses the run file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes data over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (File, error) {
	f := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}

	return f, nil
}

// Validate checks the values that the evolver options do not cover.
// Search parameters are validated again by genetic.New.
func (f *File) Validate() error {
	c := f.Cities
	if c.Count < 1 {
		return fmt.Errorf("%w: cities.count %d must be ≥ 1", ErrInvalid, c.Count)
	}
	if !(c.Width > 0) || !(c.Height > 0) || math.IsInf(c.Width, 0) || math.IsInf(c.Height, 0) {
		return fmt.Errorf("%w: cities area %gx%g must be positive", ErrInvalid, c.Width, c.Height)
	}

	e := f.Evolver
	if e.Generations < 1 {
		return fmt.Errorf("%w: evolver.generations %d must be ≥ 1", ErrInvalid, e.Generations)
	}
	if _, err := genetic.ParseSnapshotMode(e.SnapshotMode); err != nil {
		return fmt.Errorf("%w: evolver.snapshot_mode: %w", ErrInvalid, err)
	}
	if e.SnapshotCount < 0 {
		return fmt.Errorf("%w: evolver.snapshot_count %d must be ≥ 0", ErrInvalid, e.SnapshotCount)
	}
	for _, g := range e.Snapshots {
		if g < 0 || g >= e.Generations {
			return fmt.Errorf("%w: evolver.snapshots: generation %d outside [0,%d)",
				ErrInvalid, g, e.Generations)
		}
	}
	if _, err := f.Log.level(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}

	return nil
}

// SnapshotGenerations returns the explicit snapshot list when one is given,
// otherwise SnapshotCount evenly spaced generations.
func (f *File) SnapshotGenerations() []int {
	if len(f.Evolver.Snapshots) > 0 {
		out := make([]int, len(f.Evolver.Snapshots))
		copy(out, f.Evolver.Snapshots)
		return out
	}

	return EvenlySpaced(f.Evolver.SnapshotCount, f.Evolver.Generations)
}

// EvenlySpaced returns count generation indices spread over [0, generations-1],
// always including both ends when count ≥ 2: index i is
// round(i·(generations-1)/(count-1)), halves rounded to even. Duplicates
// (count > generations) are dropped. count 1 yields the last generation.
//
// Example: EvenlySpaced(5, 500) = [0 125 250 374 499].
func EvenlySpaced(count, generations int) []int {
	if count <= 0 || generations <= 0 {
		return nil
	}
	last := generations - 1
	if count == 1 {
		return []int{last}
	}

	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		g := int(math.RoundToEven(float64(i) * float64(last) / float64(count-1)))
		if len(out) > 0 && out[len(out)-1] == g {
			continue
		}
		out = append(out, g)
	}

	return out
}

// EvolverOptions translates the evolver section into genetic options.
// logger may be nil.
func (f *File) EvolverOptions(logger *zap.Logger) ([]genetic.Option, error) {
	mode, err := genetic.ParseSnapshotMode(f.Evolver.SnapshotMode)
	if err != nil {
		return nil, fmt.Errorf("%w: evolver.snapshot_mode: %w", ErrInvalid, err)
	}
	e := f.Evolver

	return []genetic.Option{
		genetic.WithPopulationSize(e.PopulationSize),
		genetic.WithMutationRate(e.MutationRate),
		genetic.WithGenerations(e.Generations),
		genetic.WithEliteSize(e.EliteSize),
		genetic.WithSeed(e.Seed),
		genetic.WithWorkers(e.Workers),
		genetic.WithSnapshotMode(mode),
		genetic.WithSnapshots(f.SnapshotGenerations()...),
		genetic.WithLogger(logger),
	}, nil
}

// NewLogger builds a zap logger from the log section: the production JSON
// logger by default, the development console logger when Development is set.
func (l Log) NewLogger() (*zap.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}

	cfg := zap.NewProductionConfig()
	if l.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl

	return cfg.Build()
}

func (l Log) level() (zap.AtomicLevel, error) {
	if l.Level == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	}

	return zap.ParseAtomicLevel(l.Level)
}
