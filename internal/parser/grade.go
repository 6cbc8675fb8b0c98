package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jeffsharris/slidemaker/internal/state"
)

// GradeSchemaName is the name the grader's structured output is registered under.
const GradeSchemaName = "slide_grade"

// GradeSchema is the JSON Schema a grade must satisfy. The same document
// is sent to the grader as its response format.
const GradeSchema = `{
  "type": "object",
  "properties": {
    "pass": {"type": "boolean"},
    "score": {"type": "number"},
    "failures": {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": "string"}
  },
  "required": ["pass", "score", "failures", "improvements", "summary"],
  "additionalProperties": false
}`

// ErrMalformedGrade marks grader output that is not a valid grade.
var ErrMalformedGrade = errors.New("malformed grade")

var gradeSchemaLoader = gojsonschema.NewStringLoader(GradeSchema)

// GradeSchemaMap returns GradeSchema decoded into a generic map.
func GradeSchemaMap() map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(GradeSchema), &m); err != nil {
		panic(fmt.Sprintf("grade schema: %v", err))
	}
	return m
}

// ParseGrade decodes and validates grader output. The whole text is
// tried first; if that fails the embedded object found by ExtractObject
// is used. Every failure wraps ErrMalformedGrade.
func ParseGrade(text string) (state.Grade, error) {
	doc := strings.TrimSpace(text)
	if !json.Valid([]byte(doc)) {
		obj, ok := ExtractObject(doc)
		if !ok {
			return state.Grade{}, fmt.Errorf("%w: no JSON object in output", ErrMalformedGrade)
		}
		if !json.Valid([]byte(obj)) {
			return state.Grade{}, fmt.Errorf("%w: invalid JSON in output", ErrMalformedGrade)
		}
		doc = obj
	}

	if err := ValidateGrade(doc); err != nil {
		return state.Grade{}, err
	}

	var g state.Grade
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		return state.Grade{}, fmt.Errorf("%w: %v", ErrMalformedGrade, err)
	}
	if g.Failures == nil {
		g.Failures = []string{}
	}
	if g.Improvements == nil {
		g.Improvements = []string{}
	}
	return g, nil
}

// ValidateGrade checks a JSON document against GradeSchema.
func ValidateGrade(doc string) error {
	result, err := gojsonschema.Validate(gradeSchemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedGrade, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformedGrade, strings.Join(msgs, "; "))
}
