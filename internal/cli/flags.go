// Package cli provides flag binding, config resolution and help text for
// the slidemaker CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeffsharris/slidemaker/internal/config"
)

const (
	globalConfigRel  = ".config/slidemaker/config"
	projectConfigRel = ".slidemaker/config"
)

// GlobalFlags holds the persistent flags shared by every subcommand.
type GlobalFlags struct {
	ConfigFile string
	RunsDir    string
	Verbose    bool
}

// flagKeys maps flag names to the config keys they override. Only flags
// the user actually set are applied, so config files and the environment
// still win over built-in defaults.
var flagKeys = map[string]string{
	"runs-dir":         "RUNS_DIR",
	"verbose":          "VERBOSE",
	"image-model":      "IMAGE_MODEL",
	"grader-model":     "GRADER_MODEL",
	"quality":          "IMAGE_QUALITY",
	"background":       "IMAGE_BACKGROUND",
	"max-attempts":     "MAX_ATTEMPTS",
	"concurrency":      "CONCURRENCY",
	"max-retries":      "MAX_RETRIES",
	"retry-base-delay": "RETRY_BASE_DELAY",
	"retry-max-delay":  "RETRY_MAX_DELAY",
	"request-timeout":  "REQUEST_TIMEOUT",
	"notify-webhook":   "NOTIFY_WEBHOOK",
}

// BindGlobalFlags registers the persistent flags on the root command.
func BindGlobalFlags(cmd *cobra.Command, g *GlobalFlags) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&g.ConfigFile, "config", "", "Path to additional config file")
	flags.StringVar(&g.RunsDir, "runs-dir", "", "Directory holding run folders (default: runs)")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Print debug output")
}

// BindRunFlag registers the --run flag every run-scoped subcommand needs.
func BindRunFlag(cmd *cobra.Command, runID *string) {
	cmd.Flags().StringVar(runID, "run", "", "Run id (folder name under the runs directory)")
}

// BindGenerateFlags registers the generation flags. Their values are read
// back through Overrides, never from variables.
func BindGenerateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	// Models & image options
	flags.String("image-model", "", "Image generation model (default: gpt-image-1.5)")
	flags.String("grader-model", "", "Vision grading model (default: gpt-5.1)")
	flags.String("quality", "", "Image quality: auto, low, medium, high (default: auto)")
	flags.String("background", "", "Image background: opaque, transparent, auto (default: opaque)")

	// Limits
	flags.Int("max-attempts", 0, "Attempts per slide across the run, 0 for unlimited (default: 8)")
	flags.Int("concurrency", 0, "Maximum simultaneous remote calls (default: 4)")

	// Retry policy
	flags.Int("max-retries", 0, "Retries per remote call for transient failures (default: 6)")
	flags.String("retry-base-delay", "", "First backoff delay, e.g. 1s (default: 1s)")
	flags.String("retry-max-delay", "", "Backoff delay cap, e.g. 30s (default: 30s)")
	flags.String("request-timeout", "", "Per-request timeout, e.g. 2m (default: none)")

	// Notifications
	flags.String("notify-webhook", "", "POST a JSON event to this URL when generation ends")
}

// Overrides returns the config keys for every flag the user set on cmd,
// including inherited persistent flags.
func Overrides(cmd *cobra.Command) map[string]string {
	out := make(map[string]string)
	visit := func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	}
	cmd.Flags().Visit(visit)
	cmd.InheritedFlags().Visit(visit)
	return out
}

// ResolveConfig builds the effective configuration for cmd: defaults,
// ~/.config/slidemaker/config, .slidemaker/config, --config, the
// SLIDEMAKER_* environment and finally the flags that were set.
func ResolveConfig(cmd *cobra.Command, g *GlobalFlags) (*config.Config, error) {
	if g.ConfigFile != "" {
		if _, err := os.Stat(g.ConfigFile); err != nil {
			return nil, fmt.Errorf("--config: %w", err)
		}
	}

	var globalPath string
	if home, err := os.UserHomeDir(); err == nil {
		globalPath = filepath.Join(home, globalConfigRel)
	}

	cfg, err := config.LoadWithPrecedence(globalPath, projectConfigRel, g.ConfigFile, config.LoadEnv(os.Environ()), Overrides(cmd))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateRunID checks a --run value names a single folder.
func ValidateRunID(runID string) error {
	if strings.TrimSpace(runID) == "" {
		return errors.New("--run is required")
	}
	if runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return fmt.Errorf("--run %q must be a plain folder name", runID)
	}
	return nil
}
