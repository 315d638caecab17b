package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gatsp/cities"
	"github.com/katalvlaran/gatsp/config"
	"github.com/katalvlaran/gatsp/genetic"
	"github.com/katalvlaran/gatsp/report"
	"github.com/katalvlaran/gatsp/store"
)

// runFlags override the run file. Only flags set on the command line apply.
type runFlags struct {
	cities       int
	citySeed     int64
	population   int
	mutation     float64
	generations  int
	elite        int
	seed         int64
	randomSeed   bool
	workers      int
	snapshotMode string
	snapshots    int
	workbook     string
	noStore      bool
	logLevel     string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate cities and evolve a tour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			if err = flags.apply(cmd, &file); err != nil {
				return err
			}

			return execRun(cmd, file)
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.cities, "cities", 0, "number of cities")
	f.Int64Var(&flags.citySeed, "city-seed", 0, "seed for city coordinates")
	f.IntVar(&flags.population, "population", 0, "population size P")
	f.Float64Var(&flags.mutation, "mutation", 0, "mutation probability pm")
	f.IntVar(&flags.generations, "generations", 0, "number of generations G")
	f.IntVar(&flags.elite, "elite", 0, "elite size E")
	f.Int64Var(&flags.seed, "seed", 0, "seed for the search")
	f.BoolVar(&flags.randomSeed, "random-seed", false, "draw both seeds from the clock")
	f.IntVar(&flags.workers, "workers", 0, "fitness goroutines (0 = GOMAXPROCS)")
	f.StringVar(&flags.snapshotMode, "snapshot-mode", "", "best-so-far or generation-best")
	f.IntVar(&flags.snapshots, "snapshots", 0, "number of evenly spaced snapshots")
	f.StringVar(&flags.workbook, "xlsx", "", "write an xlsx report to this path")
	f.BoolVar(&flags.noStore, "no-store", false, "do not record the run in the database")
	f.StringVar(&flags.logLevel, "log-level", "", "zap level (debug, info, warn, error)")

	return cmd
}

// apply copies the flags the user set into file and revalidates it.
func (rf *runFlags) apply(cmd *cobra.Command, file *config.File) error {
	set := cmd.Flags().Changed

	if set("cities") {
		file.Cities.Count = rf.cities
	}
	if set("city-seed") {
		file.Cities.Seed = rf.citySeed
	}
	if set("population") {
		file.Evolver.PopulationSize = rf.population
	}
	if set("mutation") {
		file.Evolver.MutationRate = rf.mutation
	}
	if set("generations") {
		file.Evolver.Generations = rf.generations
		if len(file.Evolver.Snapshots) > 0 && !set("snapshots") {
			// An explicit list may not fit the new budget; fall back to spacing.
			file.Evolver.Snapshots = nil
		}
	}
	if set("elite") {
		file.Evolver.EliteSize = rf.elite
	}
	if set("seed") {
		file.Evolver.Seed = rf.seed
	}
	if rf.randomSeed {
		now := time.Now().UnixNano()
		file.Cities.Seed = now
		file.Evolver.Seed = now + 1
	}
	if set("workers") {
		file.Evolver.Workers = rf.workers
	}
	if set("snapshot-mode") {
		file.Evolver.SnapshotMode = rf.snapshotMode
	}
	if set("snapshots") {
		file.Evolver.Snapshots = nil
		file.Evolver.SnapshotCount = rf.snapshots
	}
	if set("xlsx") {
		file.Output.Workbook = rf.workbook
	}
	if rf.noStore {
		file.Output.Database = ""
	}
	if set("log-level") {
		file.Log.Level = rf.logLevel
	}

	return file.Validate()
}

func execRun(cmd *cobra.Command, file config.File) error {
	logger, err := file.Log.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	c := file.Cities
	pts, err := cities.Generate(c.Count, c.Seed, c.Width, c.Height)
	if err != nil {
		return err
	}
	dist, err := cities.DistanceMatrix(pts)
	if err != nil {
		return err
	}

	opts, err := file.EvolverOptions(logger)
	if err != nil {
		return err
	}
	ev, err := genetic.New(dist, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := ev.Run(nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	rec := store.NewRecord(len(pts), pts, ev.Params(), res, elapsed)
	if file.Output.Database != "" {
		db, err := store.Open(cmd.Context(), file.Output.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if rec, err = db.Save(cmd.Context(), rec); err != nil {
			return err
		}
		logger.Info("run recorded", zap.String("id", rec.ID), zap.String("database", file.Output.Database))
	}

	out := cmd.OutOrStdout()
	printSummary(out, rec)
	printSnapshots(out, rec)

	if file.Output.Workbook != "" {
		err = report.WriteWorkbook(file.Output.Workbook, report.Run{
			ID:        rec.ID,
			Cities:    pts,
			Distances: dist,
			Params:    rec.Params,
			Result:    res,
			Elapsed:   elapsed,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "workbook: %s\n", file.Output.Workbook)
	}

	return nil
}
