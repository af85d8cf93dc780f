package form

import (
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// State is the derived view of a form. The "all" predicates are vacuously
// true for a form without fields; check IsEmpty before gating on them.
type State struct {
	Name   string
	Fields []field.Status

	IsChanged   bool
	IsBlurred   bool
	IsDifferent bool

	IsAllChanged   bool
	IsAllBlurred   bool
	IsAllDifferent bool

	IsError    bool
	IsAllError bool
	IsAllValid bool
	IsEmpty    bool

	// Errors concatenates the field errors in field order; nil when valid.
	Errors []*validation.FieldError

	IsSubmitted bool
	Submissions []Submission
}

// Field returns the status of the named field.
func (s State) Field(name string) (field.Status, bool) {
	for _, status := range s.Fields {
		if status.Name == name {
			return status, true
		}
	}
	return field.Status{}, false
}

// Values maps field names to their current values.
func (s State) Values() map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, status := range s.Fields {
		out[status.Name] = status.Value
	}
	return out
}

func derive(name string, statuses []field.Status) State {
	state := State{
		Name:           name,
		Fields:         statuses,
		IsAllChanged:   true,
		IsAllBlurred:   true,
		IsAllDifferent: true,
		IsAllError:     true,
		IsAllValid:     true,
		IsEmpty:        len(statuses) == 0,
	}
	for _, status := range statuses {
		state.IsChanged = state.IsChanged || status.IsChanged
		state.IsBlurred = state.IsBlurred || status.IsBlurred
		state.IsDifferent = state.IsDifferent || status.IsDifferent
		state.IsAllChanged = state.IsAllChanged && status.IsChanged
		state.IsAllBlurred = state.IsAllBlurred && status.IsBlurred
		state.IsAllDifferent = state.IsAllDifferent && status.IsDifferent

		failed := len(status.Errors) > 0
		state.IsError = state.IsError || failed
		state.IsAllError = state.IsAllError && failed
		state.IsAllValid = state.IsAllValid && !failed
		state.Errors = append(state.Errors, status.Errors...)
	}
	return state
}
