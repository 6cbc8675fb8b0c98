package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/report"
	"github.com/jeffsharris/slidemaker/internal/state"
)

func newReportCmd(g *cli.GlobalFlags) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an HTML report of the approved slides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, layout, err := resolveRun(cmd, g, runID)
			if err != nil {
				return err
			}
			run, err := state.OpenRun(layout)
			if err != nil {
				return err
			}
			slides, idx := run.Snapshot()
			path, err := report.Write(layout, run.Spec, slides, idx)
			if err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("Report written to %s", path))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cli.BindRunFlag(cmd, &runID)
	return cmd
}
