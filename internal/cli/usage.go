package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `slidemaker - generate slide images and grade them until they pass a rubric

USAGE
  slidemaker <command> [flags]

COMMANDS
  init       Create a run folder with spec.json and an intake.md template
  outline    Extract slide concepts from intake notes into slides.json
  draft      Fill each slide's prompt and rubric from the spec
  generate   Generate, grade and refine every slide until approved
  status     Show per-slide status, attempts and scores
  report     Write report.html with the approved images
  export     Write a PDF with one page per approved slide

GLOBAL FLAGS
  --config <path>                  Path to additional config file
  --runs-dir <dir>                 Directory holding run folders (default: runs)
  -v, --verbose                    Print debug output
  -h, --help                       Show this help text
  --version                        Show version, commit, build date

GENERATE FLAGS
  --run <id>                       Run to generate (required)
  --image-model <model>            Image generation model (default: gpt-image-1.5)
  --grader-model <model>           Vision grading model (default: gpt-5.1)
  --quality <q>                    auto, low, medium, high (default: auto)
  --background <b>                 opaque, transparent, auto (default: opaque)
  --max-attempts <int>             Attempts per slide, 0 for unlimited (default: 8)
  --concurrency <int>              Maximum simultaneous remote calls (default: 4)
  --max-retries <int>              Retries per remote call (default: 6)
  --retry-base-delay <duration>    First backoff delay (default: 1s)
  --retry-max-delay <duration>     Backoff delay cap (default: 30s)
  --request-timeout <duration>     Per-request timeout (default: none)
  --notify-webhook <url>           POST a JSON event when generation ends

CONFIGURATION
  KEY=VALUE files are read from ~/.config/slidemaker/config, then
  .slidemaker/config, then --config. SLIDEMAKER_<KEY> environment
  variables override files and flags override everything. OPENAI_API_KEY
  is read from the environment or a .env file.

EXIT CODES
  0   Success              Every slide approved
  1   Error                Invalid arguments, file not found, misconfiguration
  2   AttemptsExhausted    A slide used its whole attempt budget
  3   RemoteFailure        A remote call failed fatally or ran out of retries
  4   Precondition         Run is not ready (no slides, missing rubric)
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Start a run and outline it from notes
  slidemaker init --topic "Ocean currents" --aspect-ratio 16:9
  slidemaker outline --run 20260101_120000_ocean_currents --notes notes.md

  # Draft prompts and rubrics, then generate with two concurrent calls
  slidemaker draft --run 20260101_120000_ocean_currents
  slidemaker generate --run 20260101_120000_ocean_currents --concurrency 2

  # Review and export
  slidemaker report --run 20260101_120000_ocean_currents
  slidemaker export --run 20260101_120000_ocean_currents
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
