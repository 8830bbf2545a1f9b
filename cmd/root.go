package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/aoc-runner/internal/config"
	"github.com/sells-group/aoc-runner/internal/selection"
)

var cfg *config.Config

var runFlags selection.Flags

var rootCmd = &cobra.Command{
	Use:   "aoc",
	Short: "Run Advent of Code solutions",
	Long: "Fetches puzzle input, runs the generator and solutions of each selected day, " +
		"and prints a timed report compared against previously accepted answers.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if err := c.Validate(); err != nil {
			return eris.Wrap(err, "validate config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return execute(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), runFlags)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&runFlags.Stdin, "stdin", "i", false, "read input from stdin")
	pf.StringVarP(&runFlags.File, "file", "f", "", "read input from a file")
	pf.StringSliceVarP(&runFlags.Days, "day", "d", nil, "day to execute, repeatable or comma separated")
	pf.BoolVarP(&runFlags.All, "all", "a", false, "run all implemented days")

	rootCmd.Flags().BoolVarP(&runFlags.Bench, "bench", "b", false, "benchmark solutions instead of running them once")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
