package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/pipeline"
	"github.com/jeffsharris/slidemaker/internal/prompt"
	"github.com/jeffsharris/slidemaker/internal/state"
)

func newDraftCmd(g *cli.GlobalFlags) *cobra.Command {
	var runID string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Fill in the prompt and rubric of every slide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, layout, err := resolveRun(cmd, g, runID)
			if err != nil {
				return err
			}
			drafted, err := draftRun(layout, overwrite)
			if err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("Drafted %d slides", drafted))
			return nil
		},
	}
	cli.BindRunFlag(cmd, &runID)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace prompts and rubrics that are already set")
	return cmd
}

// draftRun builds the prompt and rubric of each slide from the spec and
// returns how many slides changed.
func draftRun(layout state.Layout, overwrite bool) (int, error) {
	spec, err := state.LoadSpec(layout)
	if err != nil {
		return 0, err
	}
	doc, err := state.LoadSlides(layout)
	if err != nil {
		return 0, err
	}
	if len(doc.Slides) == 0 {
		return 0, pipeline.ErrNoSlides
	}

	drafted := 0
	for i := range doc.Slides {
		slide := &doc.Slides[i]
		changed := false
		if overwrite || slide.Prompt == "" {
			slide.Prompt = prompt.BuildPrompt(spec, *slide)
			changed = true
		}
		if overwrite || len(slide.Rubric) == 0 {
			slide.Rubric = prompt.BuildRubric(spec, *slide)
			changed = true
		}
		if slide.Status == "" {
			slide.Status = state.StatusPending
		}
		if changed {
			drafted++
			logging.Debug(fmt.Sprintf("drafted %s", slide.ID))
		}
	}

	doc.Spec = spec
	if err := state.SaveSlides(layout, doc); err != nil {
		return 0, err
	}
	return drafted, nil
}
