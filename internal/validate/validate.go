// Package validate holds the field-scoped violation type shared by the
// request validators. Violations are collected, not fail-fast: a response
// reports every problem with its field path at once.
package validate

import "strings"

type FieldViolation struct {
	Msg  string `json:"msg"`
	Path string `json:"path"`
}

type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Path+": "+v.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Collector accumulates violations during a validation pass.
type Collector struct {
	violations []FieldViolation
}

func (c *Collector) Add(path, msg string) {
	c.violations = append(c.violations, FieldViolation{Msg: msg, Path: path})
}

// Err returns the accumulated ValidationError, or nil when the pass was
// clean.
func (c *Collector) Err() *ValidationError {
	if len(c.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: c.violations}
}
