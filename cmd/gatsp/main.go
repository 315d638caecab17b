// Command gatsp searches short closed tours over random cities with a
// genetic algorithm and keeps a history of its runs.
//
//	gatsp run [-c run.yaml] [--cities 30 --generations 800 ...] [--xlsx out.xlsx]
//	gatsp runs list [--limit 20]
//	gatsp runs show <id> [--xlsx out.xlsx]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("gatsp: %v", err))
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	database   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "gatsp",
		Short:         "Genetic search for short closed tours",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML run file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&flags.database, "db", "", "run-history database (overrides output.database)")

	root.AddCommand(newRunCmd(&flags), newRunsCmd(&flags))

	return root
}
