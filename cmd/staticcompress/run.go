package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Compress the assets of a directory once",
	Long: `Run one compression pass over dir (default: current directory).

Every file with an allowed extension and at least the minimum size gets one
artifact per configured method. Artifacts that are not older than their
source are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

var dryRun bool

func init() {
	runCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report stale artifacts without writing")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.pass(ctx, dryRun)
}
