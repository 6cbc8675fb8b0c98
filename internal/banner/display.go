// Package banner provides colored banner display functions for the slidemaker CLI.
//
// Banners share stderr with the log lines of concurrent slide tasks, so
// stdout stays reserved for command output such as the status table.
package banner

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/jeffsharris/slidemaker/internal/logging"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

// StartupInfo is what the generate command prints before it starts.
type StartupInfo struct {
	RunID       string
	Session     string
	ImageModel  string
	GraderModel string
	Slides      int
	Concurrency int
	MaxAttempts int
}

// PrintStartupBanner displays the startup banner with run settings.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  slidemaker - generate and grade slide images
//	═══════════════════════════════════════════════════
//	  Run:          20260130_153045_ocean_currents
//	  Session:      6f1c...
//	  Image model:  gpt-image-1.5
//	  Grader model: gpt-5.1
//	  Slides:       6
//	  Concurrency:  4
//	  Max attempts: 8
//	═══════════════════════════════════════════════════
func PrintStartupBanner(info StartupInfo) {
	w := os.Stderr
	sep := headerColor(rule)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, headerColor("  slidemaker - generate and grade slide images"))
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "  Run:          %s\n", info.RunID)
	fmt.Fprintf(w, "  Session:      %s\n", info.Session)
	fmt.Fprintf(w, "  Image model:  %s\n", info.ImageModel)
	fmt.Fprintf(w, "  Grader model: %s\n", info.GraderModel)
	fmt.Fprintf(w, "  Slides:       %d\n", info.Slides)
	fmt.Fprintf(w, "  Concurrency:  %d\n", info.Concurrency)
	fmt.Fprintf(w, "  Max attempts: %s\n", attemptsLabel(info.MaxAttempts))
	fmt.Fprintln(w, sep)
}

// PrintCompletionBanner displays the banner for a run whose slides are all approved.
func PrintCompletionBanner(approved, alreadyApproved, attempts, durationSecs int) {
	w := os.Stderr
	sep := successColor(rule)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, successColor("  ✓ All slides approved!"))
	fmt.Fprintf(w, "  Approved:   %d (%d already approved)\n", approved+alreadyApproved, alreadyApproved)
	fmt.Fprintf(w, "  Attempts:   %d\n", attempts)
	fmt.Fprintf(w, "  Duration:   %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	fmt.Fprintln(w, sep)
}

// PrintFailureBanner lists the slides that did not end approved.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✗ 2 slide(s) not approved (exit 2)
//	═══════════════════════════════════════════════════
//	  Failed slides:
//	    - 03_gyres
//	    - 05_summary
//	═══════════════════════════════════════════════════
func PrintFailureBanner(failed []string, exitCode int) {
	w := os.Stderr
	sep := errorColor(rule)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, errorColor(fmt.Sprintf("  ✗ %d slide(s) not approved (exit %d)", len(failed), exitCode)))
	fmt.Fprintln(w, sep)
	if len(failed) > 0 {
		fmt.Fprintln(w, "  Failed slides:")
		for _, id := range failed {
			fmt.Fprintf(w, "    - %s\n", id)
		}
	}
	fmt.Fprintln(w, sep)
}

// PrintInterruptedBanner displays when generation is interrupted.
func PrintInterruptedBanner(runID string) {
	w := os.Stderr
	sep := warnColor(rule)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, warnColor("  ⚠ Generation interrupted"))
	fmt.Fprintf(w, "  Run:  %s\n", runID)
	fmt.Fprintf(w, "  Saved attempts are kept; run 'slidemaker generate --run %s' to resume\n", runID)
	fmt.Fprintln(w, sep)
}

// StatusRow is one line of the status table.
type StatusRow struct {
	ID         string
	Title      string
	Status     string
	Attempts   int
	LastScore  float64
	HasScore   bool
	FinalImage string
}

// PrintStatusTable renders the per-slide status table to w.
func PrintStatusTable(w io.Writer, runID string, rows []StatusRow) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SLIDE", "TITLE", "STATUS", "ATTEMPTS", "LAST SCORE", "FINAL")

	approved := 0
	for _, r := range rows {
		score := "-"
		if r.HasScore {
			score = strconv.FormatFloat(r.LastScore, 'f', 2, 64)
		}
		final := r.FinalImage
		if final == "" {
			final = "-"
		}
		if r.Status == "approved" {
			approved++
		}
		t.Row(r.ID, r.Title, r.Status, strconv.Itoa(r.Attempts), score, final)
	}

	fmt.Fprintf(w, "Run %s: %d/%d slides approved\n", runID, approved, len(rows))
	fmt.Fprintln(w, t.Render())
}

func attemptsLabel(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return strconv.Itoa(n)
}
