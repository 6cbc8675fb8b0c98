package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/export"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/pipeline"
	"github.com/jeffsharris/slidemaker/internal/state"
)

func newExportCmd(g *cli.GlobalFlags) *cobra.Command {
	var runID, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the approved slides as a PDF deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, layout, err := resolveRun(cmd, g, runID)
			if err != nil {
				return err
			}
			path, err := exportRun(layout, output, time.Now())
			if err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("PDF written to %s", path))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cli.BindRunFlag(cmd, &runID)
	cmd.Flags().StringVarP(&output, "output", "o", "", "PDF path (default: <run>/exports/slides_<timestamp>.pdf)")
	return cmd
}

// exportRun writes the PDF and reports missing final images as a
// precondition failure.
func exportRun(layout state.Layout, output string, now time.Time) (string, error) {
	doc, err := state.LoadSlides(layout)
	if err != nil {
		return "", err
	}
	path, err := export.Export(layout, doc.Slides, output, now)
	if err != nil {
		var missing *export.MissingImagesError
		if errors.As(err, &missing) || errors.Is(err, export.ErrNoImages) {
			return "", &pipeline.PreconditionError{Reason: err.Error()}
		}
		return "", err
	}
	return path, nil
}
