package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jeffsharris/slidemaker/internal/ai"
	"github.com/jeffsharris/slidemaker/internal/banner"
	"github.com/jeffsharris/slidemaker/internal/cli"
	"github.com/jeffsharris/slidemaker/internal/config"
	"github.com/jeffsharris/slidemaker/internal/exitcode"
	"github.com/jeffsharris/slidemaker/internal/logging"
	"github.com/jeffsharris/slidemaker/internal/notification"
	"github.com/jeffsharris/slidemaker/internal/pipeline"
	sighandler "github.com/jeffsharris/slidemaker/internal/signal"
	"github.com/jeffsharris/slidemaker/internal/state"
)

func newGenerateCmd(g *cli.GlobalFlags) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and grade images until every slide is approved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, layout, err := resolveRun(cmd, g, runID)
			if err != nil {
				return err
			}
			run, err := state.OpenRun(layout)
			if err != nil {
				return &pipeline.PreconditionError{Reason: err.Error()}
			}

			clientOpts := ai.ClientOptions{BaseURL: cfg.OpenAIBaseURL, RequestTimeout: cfg.RequestTimeout}
			gen := ai.NewOpenAIImageGenerator(clientOpts)
			grader := ai.NewOpenAIGrader(clientOpts)

			return runGenerate(cmd.Context(), cfg, run, gen, grader)
		},
	}
	cli.BindRunFlag(cmd, &runID)
	cli.BindGenerateFlags(cmd)
	return cmd
}

// runGenerate drives one generate invocation against already-built
// remote clients, printing banners and sending the end-of-run event.
func runGenerate(parent context.Context, cfg *config.Config, run *state.RunState, gen ai.ImageGenerator, grader ai.Grader) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := sighandler.WithInterrupt(parent, func(sig os.Signal) {
		logging.Warn(interruptMessage(sig))
	})
	defer stop()

	retryCfg := retryConfig(cfg)
	session := uuid.NewString()
	opts := pipeline.Options{
		ImageModel:  cfg.ImageModel,
		GraderModel: cfg.GraderModel,
		Quality:     cfg.Quality,
		Background:  cfg.Background,
		MaxAttempts: cfg.MaxAttempts,
		Concurrency: cfg.Concurrency,
		Session:     session,
	}
	runner := pipeline.NewRunner(run,
		&ai.RetryImageGenerator{Inner: gen, RetryCfg: retryCfg},
		&ai.RetryGrader{Inner: grader, RetryCfg: retryCfg},
		opts,
	)

	banner.PrintStartupBanner(banner.StartupInfo{
		RunID:       run.Layout.RunID,
		Session:     session,
		ImageModel:  cfg.ImageModel,
		GraderModel: cfg.GraderModel,
		Slides:      len(run.Slides()),
		Concurrency: cfg.Concurrency,
		MaxAttempts: cfg.MaxAttempts,
	})

	summary, err := runner.RunAll(ctx)
	if ctx.Err() != nil && err == nil {
		err = context.Canceled
	}
	code := exitcode.FromError(err)

	switch {
	case err == nil:
		banner.PrintCompletionBanner(summary.Approved, summary.AlreadyApproved, summary.Attempts, int(summary.Duration.Seconds()))
	case code == exitcode.Interrupted:
		banner.PrintInterruptedBanner(run.Layout.RunID)
	case !errors.Is(err, pipeline.ErrNoSlides):
		banner.PrintFailureBanner(summary.Failed, code)
	}

	if cfg.NotifyWebhook != "" {
		approved := summary.Approved + summary.AlreadyApproved
		notification.NewSender(cfg.NotifyWebhook).Notify(
			notification.NewEvent(run.Layout.RunID, session, approved, summary.Total, code, time.Now()))
	}
	return err
}

// interruptMessage is logged on the first signal. Cancelling the context
// aborts in-flight remote calls; only completed attempts are on disk.
func interruptMessage(sig os.Signal) string {
	return fmt.Sprintf("Received %s, cancelling in-flight remote calls; completed attempts are kept (press again to exit now)", sig)
}

func retryConfig(cfg *config.Config) ai.RetryConfig {
	return ai.RetryConfig{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  cfg.RetryBaseDelay,
		MaxDelay:   cfg.RetryMaxDelay,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			logging.Warn(fmt.Sprintf("%v; retry %d/%d in %s", err, attempt+1, cfg.MaxRetries, delay))
		},
	}
}
