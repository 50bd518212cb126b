package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/absfs/staticcompress"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check that every artifact decompresses to its source",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	sources, err := staticcompress.Collect(a.base, ".")
	if err != nil {
		return err
	}
	mismatches, err := a.fs.Verify(cmd.Context(), sources)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		fmt.Fprintln(a.out, m)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d artifacts do not match their source", len(mismatches))
	}
	fmt.Fprintln(a.out, "all artifacts match")
	return nil
}
