// Package parser turns grader output into validated grades.
//
// Graders are asked for strict JSON, but model output is not always
// clean. ExtractObject recovers the span from the first '{' to the last
// '}' so prose around a single object is dropped.
package parser

import (
	"strings"
)

// ExtractObject returns the text from the first '{' to the last '}'.
// The second return is false when no such span exists.
func ExtractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}
