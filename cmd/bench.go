package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark solutions of the selected days",
	Long:  "Equivalent to --bench: runs each generator once, then measures every solution over many iterations.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f := runFlags
		f.Bench = true
		return execute(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), f)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
}
