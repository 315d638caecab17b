package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gookit/color"

	"github.com/katalvlaran/gatsp/store"
)

// historyRows caps the convergence lines printed by "runs show".
const historyRows = 10

func printSummary(w io.Writer, rec store.Record) {
	p := rec.Params

	if rec.ID != "" {
		fmt.Fprintf(w, "%s %s\n", color.Bold.Sprint("run"), color.Cyan.Sprint(rec.ID))
	}
	fmt.Fprintf(w, "cities %d  population %d  mutation %.2f  generations %d  elite %d  seed %d\n",
		rec.Cities, p.PopulationSize, p.MutationRate, p.Generations, p.EliteSize, p.Seed)
	fmt.Fprintf(w, "best distance     %s  (generation %d)\n",
		color.Green.Sprintf("%.2f", rec.BestFitness), rec.BestGeneration)
	fmt.Fprintf(w, "initial distance  %.2f\n", rec.InitialFitness)
	fmt.Fprintf(w, "improvement       %s\n", color.Yellow.Sprintf("%.2f%%", rec.Improvement()))
	fmt.Fprintf(w, "elapsed           %s\n", rec.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "route             %s\n", rec.Best)
}

func printSnapshots(w io.Writer, rec store.Record) {
	if len(rec.Snapshots) == 0 {
		return
	}
	gens := make([]int, 0, len(rec.Snapshots))
	for g := range rec.Snapshots {
		gens = append(gens, g)
	}
	sort.Ints(gens)

	fmt.Fprintf(w, "%s (%s)\n", color.Bold.Sprint("snapshots"), rec.Params.SnapshotMode)
	for _, g := range gens {
		s := rec.Snapshots[g]
		fmt.Fprintf(w, "  gen %5d  %10.2f  %s\n", g, s.Fitness, s.Tour)
	}
}

// printHistory prints at most historyRows evenly picked points of the
// convergence curve, always including the last generation.
func printHistory(w io.Writer, rec store.Record) {
	n := len(rec.History)
	if n == 0 {
		return
	}
	step := (n + historyRows - 1) / historyRows

	fmt.Fprintln(w, color.Bold.Sprint("history"))
	for g := 0; g < n; g += step {
		fmt.Fprintf(w, "  gen %5d  %10.2f\n", g, rec.History[g])
	}
	if (n-1)%step != 0 {
		fmt.Fprintf(w, "  gen %5d  %10.2f\n", n-1, rec.History[n-1])
	}
}

func printRunList(w io.Writer, recs []store.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}

	fmt.Fprintln(w, color.Bold.Sprintf("%-36s  %-19s  %6s  %10s  %8s", "ID", "CREATED", "CITIES", "BEST", "IMPROVED"))
	for _, r := range recs {
		fmt.Fprintf(w, "%-36s  %-19s  %6d  %10.2f  %7.2f%%\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Cities, r.BestFitness, r.Improvement())
	}
}
