// Package cmd provides the command-line interface of csim.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csim -s <s> -E <E> -b <b> -t <tracefile>",
	Short: "csim replays memory traces on a set-associative LRU cache.",
	Long: `csim replays valgrind memory traces on a set-associative cache ` +
		`with LRU replacement and reports the number of hits, misses, and ` +
		`evictions. The cache may hold at most 2^24 lines (E * 2^s). ` +
		`Settings can also be given with CSIM_SET_BITS, ` +
		`CSIM_LINES, CSIM_BLOCK_BITS, and CSIM_TRACE, either in the ` +
		`environment or in a .env file.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := loadDotEnv()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		return run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	addFlags(rootCmd)
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
