package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gatsp/cities"
	"github.com/katalvlaran/gatsp/config"
	"github.com/katalvlaran/gatsp/genetic"
	"github.com/katalvlaran/gatsp/report"
	"github.com/katalvlaran/gatsp/store"
)

var errNoDatabase = errors.New("no run-history database configured")

func newRunsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded runs",
	}
	cmd.AddCommand(newRunsListCmd(root), newRunsShowCmd(root))

	return cmd
}

func newRunsListCmd(root *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openStore(cmd, root)
			if err != nil {
				return err
			}
			defer db.Close()

			recs, err := db.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printRunList(cmd.OutOrStdout(), recs)

			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs (0 = all)")

	return cmd
}

func newRunsShowCmd(root *rootFlags) *cobra.Command {
	var workbook string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(cmd, root)
			if err != nil {
				return err
			}
			defer db.Close()

			rec, err := db.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, rec)
			printSnapshots(out, rec)
			printHistory(out, rec)

			if workbook == "" {
				return nil
			}
			if err = exportRecord(workbook, rec); err != nil {
				return err
			}
			fmt.Fprintf(out, "workbook: %s\n", workbook)

			return nil
		},
	}
	cmd.Flags().StringVar(&workbook, "xlsx", "", "write an xlsx report of the run to this path")

	return cmd
}

// exportRecord rebuilds the distance matrix from the stored points and
// writes the workbook.
func exportRecord(path string, rec store.Record) error {
	if rec.Points == nil {
		return fmt.Errorf("run %s has no city points to export", rec.ID)
	}
	dist, err := cities.DistanceMatrix(rec.Points)
	if err != nil {
		return err
	}

	return report.WriteWorkbook(path, report.Run{
		ID:        rec.ID,
		Cities:    rec.Points,
		Distances: dist,
		Params:    rec.Params,
		Result: genetic.Result{
			Best:           rec.Best,
			BestFitness:    rec.BestFitness,
			BestGeneration: rec.BestGeneration,
			InitialFitness: rec.InitialFitness,
			History:        rec.History,
			Snapshots:      rec.Snapshots,
			PopulationSize: rec.Params.PopulationSize,
		},
		Elapsed: rec.Elapsed,
	})
}

// loadConfig reads the run file named by --config, or the defaults, and
// applies --db.
func loadConfig(cmd *cobra.Command, root *rootFlags) (config.File, error) {
	var (
		file = config.Default()
		err  error
	)
	if root.configPath != "" {
		if file, err = config.Load(root.configPath); err != nil {
			return config.File{}, err
		}
	}
	if cmd.Flags().Changed("db") {
		file.Output.Database = root.database
	}

	return file, nil
}

func openStore(cmd *cobra.Command, root *rootFlags) (*store.Store, error) {
	file, err := loadConfig(cmd, root)
	if err != nil {
		return nil, err
	}
	if file.Output.Database == "" {
		return nil, errNoDatabase
	}

	return store.Open(cmd.Context(), file.Output.Database)
}
