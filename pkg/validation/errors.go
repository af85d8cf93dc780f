package validation

import (
	"errors"
	"fmt"
)

// ErrCheckPanicked wraps the value recovered from a panicking check.
var ErrCheckPanicked = errors.New("validation: check panicked")

// ErrAdapterType is reported when a check adapter returns a value the
// check cannot accept.
var ErrAdapterType = errors.New("validation: check adapter returned an incompatible value")

// FieldError describes one failed check. It is a value reported alongside
// the field state; it is never thrown past the pipeline.
type FieldError struct {
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Check   string `json:"check"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Name == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Messages returns the messages of errs in order, skipping blanks and
// duplicates.
func Messages(errs []*FieldError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	seen := make(map[string]struct{}, len(errs))
	for _, err := range errs {
		if err == nil || err.Message == "" {
			continue
		}
		if _, ok := seen[err.Message]; ok {
			continue
		}
		seen[err.Message] = struct{}{}
		out = append(out, err.Message)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
