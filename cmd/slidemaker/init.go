package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/model"
	"github.com/jeffsharris/slidemaker/internal/prompt"
	"github.com/jeffsharris/slidemaker/internal/state"
)

type initOptions struct {
	Topic       string
	AspectRatio string
	RunID       string
	SpecFile    string
}

func newInitCmd(g *cli.GlobalFlags) *cobra.Command {
	opts := &initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new run with its spec and intake template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.ResolveConfig(cmd, g)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			layout, err := initRun(cfg.RunsDir, *opts, time.Now())
			if err != nil {
				return err
			}
			logging.Success(fmt.Sprintf("Initialized run %s", layout.RunID))
			fmt.Fprintln(cmd.OutOrStdout(), layout.Root)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Topic, "topic", "", "Presentation topic")
	flags.StringVar(&opts.AspectRatio, "aspect-ratio", "", "Slide aspect ratio, e.g. 16:9, 4:3, portrait")
	flags.StringVar(&opts.RunID, "run", "", "Run id (default: <timestamp>_<topic>)")
	flags.StringVar(&opts.SpecFile, "spec-file", "", "YAML deck spec with style settings and slides")
	return cmd
}

// initRun creates runs/<id>/ with spec.json, slides.json and intake.md.
// Flags take precedence over values from the deck spec file.
func initRun(runsDir string, opts initOptions, now time.Time) (state.Layout, error) {
	var spec state.Spec
	var slides []state.Slide
	if opts.SpecFile != "" {
		deck, err := state.LoadDeckSpec(opts.SpecFile)
		if err != nil {
			return state.Layout{}, err
		}
		spec = deck.Spec
		slides = deck.Slides
	}
	if opts.Topic != "" {
		spec.Topic = strings.TrimSpace(opts.Topic)
	}
	if opts.AspectRatio != "" {
		spec.AspectRatio = strings.TrimSpace(opts.AspectRatio)
	}
	if spec.ImageSize == "" && spec.AspectRatio != "" {
		spec.ImageSize = model.SizeForAspect(spec.AspectRatio)
	}
	if err := state.ValidateSpec(spec); err != nil {
		return state.Layout{}, err
	}
	spec.CreatedAt = now.UTC().Format(time.RFC3339)

	runID := opts.RunID
	if runID == "" {
		runID = prompt.DefaultRunID(spec.Topic, now)
	}
	if err := cli.ValidateRunID(runID); err != nil {
		return state.Layout{}, err
	}

	layout := state.NewLayout(runsDir, runID)
	if layout.Exists() {
		return state.Layout{}, fmt.Errorf("run %s already has a %s", runID, state.SpecFile)
	}
	if err := layout.Ensure(); err != nil {
		return state.Layout{}, err
	}
	if err := state.SaveSpec(layout, spec); err != nil {
		return state.Layout{}, err
	}

	if !state.FileExists(layout.IntakePath()) {
		if err := os.WriteFile(layout.IntakePath(), []byte(prompt.BuildIntake(spec)), 0644); err != nil {
			return state.Layout{}, fmt.Errorf("write intake: %w", err)
		}
	}

	doc := &state.SlidesDoc{Spec: spec, Slides: deckSlides(slides)}
	if err := state.SaveSlides(layout, doc); err != nil {
		return state.Layout{}, err
	}
	return layout, nil
}

// deckSlides assigns ids and a pending status to slides read from a deck spec.
func deckSlides(slides []state.Slide) []state.Slide {
	out := make([]state.Slide, 0, len(slides))
	for i, s := range slides {
		if s.Title == "" {
			s.Title = s.Intent
		}
		if s.Intent == "" {
			s.Intent = s.Title
		}
		if s.ID == "" {
			s.ID = prompt.SlideID(i+1, s.Title)
		}
		if s.Rubric == nil {
			s.Rubric = []string{}
		}
		s.Status = state.StatusPending
		out = append(out, s)
	}
	return out
}
