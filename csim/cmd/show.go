package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/simulation"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <recording.sqlite3>",
	Short: "Print the runs stored in a recording.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		traceName, _ := cmd.Flags().GetString("trace")
		return showRuns(cmd.Context(), args[0], traceName, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().String("trace", "", "Only show the runs of this trace")
}

// showRuns prints the recorded runs, only those of traceName if it is set.
func showRuns(
	ctx context.Context,
	path string,
	traceName string,
	w io.Writer,
) error {
	info, err := os.Stat(path)
	if err != nil {
		return &trace.ResourceError{Path: path, Err: err}
	}

	if info.IsDir() {
		return &trace.ResourceError{Path: path, Err: errors.New("is a directory")}
	}

	reader := datarecording.NewReader(path)
	defer reader.Close()

	reader.MapTable(simulation.RunTableName, simulation.RunRecord{})

	filter := datarecording.Filter{OrderBy: "Trace"}
	if traceName != "" {
		filter.Where = "Trace = ?"
		filter.Args = []any{traceName}
	}

	runs, err := reader.Query(ctx, simulation.RunTableName, filter)
	if err != nil {
		return fmt.Errorf("reading runs from %s: %w", path, err)
	}

	for _, r := range runs {
		run := r.(*simulation.RunRecord)
		fmt.Fprintf(w, "%s s=%d E=%d b=%d hits:%d misses:%d evictions:%d\n",
			run.Trace, run.SetBits, run.Ways, run.BlockBits,
			run.Hits, run.Misses, run.Evictions)
	}

	return nil
}
