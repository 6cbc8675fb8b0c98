package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/banner"
	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/state"
)

func newStatusCmd(g *cli.GlobalFlags) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-slide status, attempts and scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, layout, err := resolveRun(cmd, g, runID)
			if err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), layout)
		},
	}
	cli.BindRunFlag(cmd, &runID)
	return cmd
}

func printStatus(w io.Writer, layout state.Layout) error {
	run, err := state.OpenRun(layout)
	if err != nil {
		return err
	}
	slides, idx := run.Snapshot()
	banner.PrintStatusTable(w, layout.RunID, statusRows(slides, idx))
	return nil
}

// statusRows builds one table row per slide in generation order.
func statusRows(slides []state.Slide, idx *state.Index) []banner.StatusRow {
	ordered := state.OrderSlides(slides)
	rows := make([]banner.StatusRow, 0, len(ordered))
	for _, s := range ordered {
		status := s.Status
		if status == "" {
			status = state.StatusPending
		}
		row := banner.StatusRow{ID: s.ID, Title: s.Title, Status: status}
		if entry, ok := idx.Slides[s.ID]; ok && entry != nil {
			row.Attempts = len(entry.Attempts)
			if n := len(entry.Attempts); n > 0 {
				row.LastScore = entry.Attempts[n-1].Score
				row.HasScore = true
			}
			row.FinalImage = entry.FinalImage
		}
		rows = append(rows, row)
	}
	return rows
}
