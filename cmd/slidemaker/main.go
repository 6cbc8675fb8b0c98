package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/config"
	"github.com/jeffsharris/slidemaker/internal/exitcode"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/pipeline"
	"github.com/jeffsharris/slidemaker/internal/state"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logging.Error(err.Error())
		os.Exit(exitcode.FromError(err))
	}
}

func newRootCmd() *cobra.Command {
	g := &cli.GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:     "slidemaker",
		Short:   "Generate and grade slide images until every slide is approved",
		Long:    "slidemaker turns a topic and a set of notes into slide images, grading every attempt with a vision model and refining the prompt until it passes.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetVerbose(g.Verbose)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.BindGlobalFlags(rootCmd, g)

	rootCmd.AddCommand(
		newInitCmd(g),
		newOutlineCmd(g),
		newDraftCmd(g),
		newGenerateCmd(g),
		newStatusCmd(g),
		newReportCmd(g),
		newExportCmd(g),
	)

	cli.SetCustomHelp(rootCmd)
	return rootCmd
}

// resolveRun loads the effective config and the layout of an existing run.
func resolveRun(cmd *cobra.Command, g *cli.GlobalFlags, runID string) (*config.Config, state.Layout, error) {
	if err := cli.ValidateRunID(runID); err != nil {
		return nil, state.Layout{}, err
	}
	cfg, err := cli.ResolveConfig(cmd, g)
	if err != nil {
		return nil, state.Layout{}, fmt.Errorf("load config: %w", err)
	}
	layout := state.NewLayout(cfg.RunsDir, runID)
	if !layout.Exists() {
		return nil, state.Layout{}, &pipeline.PreconditionError{
			Reason: fmt.Sprintf("run %s not found under %s; run 'init' first", runID, cfg.RunsDir),
		}
	}
	return cfg, layout, nil
}
