package state

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var attemptFileRe = regexp.MustCompile(`^attempt_(\d+)\.(png|json)$`)

// LastAttemptNumber returns the highest attempt number already used by a
// slide, looking at both its index entry and the files in its attempt
// directory. A slide that was never attempted yields 0.
//
// Attempt files written before a crash but never indexed still count,
// so a resumed run never overwrites them.
func LastAttemptNumber(entry IndexEntry, attemptsDir string) (int, error) {
	last := 0
	for i, a := range entry.Attempts {
		n := a.Attempt
		if n == 0 {
			// entries written without a number are positional
			n = i + 1
		}
		if n > last {
			last = n
		}
	}

	files, err := os.ReadDir(attemptsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return last, nil
		}
		return 0, fmt.Errorf("scan attempts: %w", err)
	}
	for _, f := range files {
		m := attemptFileRe.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > last {
			last = n
		}
	}
	return last, nil
}
