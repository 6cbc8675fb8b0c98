package intake

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiscoverNotes locates the intake notes for a run. If notesFlag is
// provided it is used directly (must exist). Otherwise the run's own
// intake.md is used.
func DiscoverNotes(notesFlag, runIntakePath string) (string, error) {
	if notesFlag != "" {
		abs, err := filepath.Abs(notesFlag)
		if err != nil {
			return "", fmt.Errorf("resolving notes path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("missing intake notes: %s", notesFlag)
		}
		if info.IsDir() {
			return "", fmt.Errorf("intake notes %s is a directory", notesFlag)
		}
		return abs, nil
	}

	if _, err := os.Stat(runIntakePath); err != nil {
		return "", fmt.Errorf("missing intake notes: %s", runIntakePath)
	}
	return runIntakePath, nil
}
