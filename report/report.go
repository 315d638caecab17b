// Package report exports a finished evolutionary run as an xlsx workbook.
//
// The workbook carries five sheets:
//
//	Summary    – parameters and KPIs (best, initial best, improvement, elapsed);
//	Route      – the best tour step by step with coordinates and leg lengths;
//	History    – best-so-far length per generation;
//	Snapshots  – the tours captured at the requested generations;
//	Distances  – the full distance matrix.
//
// Route coordinates are written only when the run carries city points.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/gatsp/cities"
	"github.com/katalvlaran/gatsp/genetic"
	"github.com/katalvlaran/gatsp/matrix"
)

// Sheet names, in workbook order.
const (
	SheetSummary   = "Summary"
	SheetRoute     = "Route"
	SheetHistory   = "History"
	SheetSnapshots = "Snapshots"
	SheetDistances = "Distances"
)

// defaultSheet is the sheet excelize.NewFile creates.
const defaultSheet = "Sheet1"

var (
	// ErrNoResult is returned when the run has no best tour to export.
	ErrNoResult = errors.New("report: run has no result")

	// ErrCityMismatch is returned when the city points do not match the matrix size.
	ErrCityMismatch = errors.New("report: city count does not match distances")
)

// Run is everything the workbook shows about one search.
type Run struct {
	ID        string
	Cities    []cities.Point // optional
	Distances matrix.Matrix
	Params    genetic.Params
	Result    genetic.Result
	Elapsed   time.Duration
}

// Workbook builds the workbook in memory. The caller owns the returned file
// and must Close it.
func Workbook(run Run) (*excelize.File, error) {
	if len(run.Result.Best) == 0 {
		return nil, ErrNoResult
	}
	if err := matrix.ValidateSquareNonNil(run.Distances); err != nil {
		return nil, fmt.Errorf("report: distances: %w", err)
	}
	if run.Cities != nil && len(run.Cities) != run.Distances.Rows() {
		return nil, fmt.Errorf("%w: %d points, %d rows",
			ErrCityMismatch, len(run.Cities), run.Distances.Rows())
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, SheetSummary); err != nil {
		_ = f.Close()
		return nil, err
	}

	for _, step := range []func(*excelize.File, Run) error{
		writeSummary,
		writeRoute,
		writeHistory,
		writeSnapshots,
		writeDistances,
	} {
		if err := step(f, run); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	return f, nil
}

// WriteWorkbook builds the workbook and saves it to path.
func WriteWorkbook(path string, run Run) error {
	f, err := Workbook(run)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}

	return nil
}

// writeRows writes rows starting at A1 of sheet, creating the sheet if needed.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("report: %s row %d: %w", sheet, i+1, err)
		}
	}

	return nil
}

func writeSummary(f *excelize.File, run Run) error {
	var (
		p   = run.Params
		res = run.Result
	)
	rows := [][]interface{}{
		{"Field", "Value"},
		{"Run", run.ID},
		{"Cities", run.Distances.Rows()},
		{"Population", res.PopulationSize},
		{"Mutation rate", p.MutationRate},
		{"Generations", p.Generations},
		{"Elite size", p.EliteSize},
		{"Seed", p.Seed},
		{"Snapshot mode", p.SnapshotMode.String()},
		{"Workers", p.Workers},
		{"Best distance", res.BestFitness},
		{"Best generation", res.BestGeneration},
		{"Initial best distance", res.InitialFitness},
		{"Improvement %", res.Improvement()},
		{"Elapsed seconds", run.Elapsed.Seconds()},
		{"Best tour", res.Best.String()},
	}

	return writeRows(f, SheetSummary, rows)
}

func writeRoute(f *excelize.File, run Run) error {
	var (
		tour = run.Result.Best
		n    = len(tour)
		rows = make([][]interface{}, 0, n+2)
	)
	rows = append(rows, []interface{}{"Step", "City", "X", "Y", "Leg"})
	for k := 0; k <= n; k++ {
		city := tour[k%n]
		leg := 0.0
		if k > 0 {
			d, err := run.Distances.At(tour[k-1], city)
			if err != nil {
				return fmt.Errorf("report: route leg %d: %w", k, err)
			}
			leg = d
		}
		row := []interface{}{k, city, nil, nil, leg}
		if run.Cities != nil {
			row[2], row[3] = run.Cities[city].X, run.Cities[city].Y
		}
		rows = append(rows, row)
	}

	return writeRows(f, SheetRoute, rows)
}

func writeHistory(f *excelize.File, run Run) error {
	rows := make([][]interface{}, 0, len(run.Result.History)+1)
	rows = append(rows, []interface{}{"Generation", "Best distance"})
	for g, v := range run.Result.History {
		rows = append(rows, []interface{}{g, v})
	}

	return writeRows(f, SheetHistory, rows)
}

func writeSnapshots(f *excelize.File, run Run) error {
	gens := make([]int, 0, len(run.Result.Snapshots))
	for g := range run.Result.Snapshots {
		gens = append(gens, g)
	}
	sort.Ints(gens)

	rows := make([][]interface{}, 0, len(gens)+1)
	rows = append(rows, []interface{}{"Generation", "Distance", "Tour"})
	for _, g := range gens {
		s := run.Result.Snapshots[g]
		rows = append(rows, []interface{}{g, s.Fitness, s.Tour.String()})
	}

	return writeRows(f, SheetSnapshots, rows)
}

func writeDistances(f *excelize.File, run Run) error {
	var (
		n    = run.Distances.Rows()
		rows = make([][]interface{}, 0, n+1)
	)
	header := make([]interface{}, n+1)
	header[0] = "From\\To"
	for j := 0; j < n; j++ {
		header[j+1] = j
	}
	rows = append(rows, header)

	for i := 0; i < n; i++ {
		row := make([]interface{}, n+1)
		row[0] = i
		for j := 0; j < n; j++ {
			d, err := run.Distances.At(i, j)
			if err != nil {
				return fmt.Errorf("report: distances: %w", err)
			}
			row[j+1] = d
		}
		rows = append(rows, row)
	}

	return writeRows(f, SheetDistances, rows)
}
