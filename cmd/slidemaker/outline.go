package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/intake"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/pipeline"
	"github.com/jeffsharris/slidemaker/internal/state"
)

func newOutlineCmd(g *cli.GlobalFlags) *cobra.Command {
	var runID, notes string
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Extract slide concepts from the intake notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, layout, err := resolveRun(cmd, g, runID)
			if err != nil {
				return err
			}
			outline, err := outlineRun(layout, notes, time.Now())
			if err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("Outlined %d slides from %s", len(outline.Slides), outline.Source))
			for _, s := range outline.Slides {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.Title)
			}
			return nil
		},
	}
	cli.BindRunFlag(cmd, &runID)
	cmd.Flags().StringVar(&notes, "notes", "", "Notes file to outline (default: the run's intake.md)")
	return cmd
}

// outlineRun writes outline.json and replaces the slides in slides.json
// with the extracted concepts.
func outlineRun(layout state.Layout, notesFlag string, now time.Time) (*state.Outline, error) {
	spec, err := state.LoadSpec(layout)
	if err != nil {
		return nil, err
	}

	source, err := intake.DiscoverNotes(notesFlag, layout.IntakePath())
	if err != nil {
		return nil, &pipeline.PreconditionError{Reason: err.Error()}
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read intake notes: %w", err)
	}

	outline, err := intake.BuildOutline(source, data, now)
	if err != nil {
		if errors.Is(err, intake.ErrNoConcepts) {
			return nil, &pipeline.PreconditionError{Reason: fmt.Sprintf("%s: %v", source, err)}
		}
		return nil, err
	}

	if err := state.SaveOutline(layout, *outline); err != nil {
		return nil, err
	}
	if err := state.SaveSlides(layout, &state.SlidesDoc{Spec: spec, Slides: outline.Slides}); err != nil {
		return nil, err
	}
	return outline, nil
}
