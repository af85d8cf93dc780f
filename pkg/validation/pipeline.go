package validation

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/coerce"
)

// Options configures Run.
type Options struct {
	ErrorOn ErrorOn
	// Adapter, when set, transforms the value before every check. Its
	// result is converted back into the check's value type.
	Adapter func(any) any
	Logger  *zap.Logger
}

// Result is the per-check slot of a Report.
type Result struct {
	Check string
	// Value is the raw result the check returned; nil for failures raised
	// through an error.
	Value   any
	Outcome Outcome
	// Error is set when the outcome is a failure.
	Error *FieldError
}

// Report is the outcome of running every check against a value.
type Report struct {
	// Errors holds the failures in check declaration order.
	Errors []*FieldError
	// Results holds one slot per check in declaration order.
	Results []Result
}

// Valid reports whether no check failed.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Run applies checks to value in order. An empty ErrorOn set is treated as
// ErrorOnError.
func Run[T any](value T, name string, checks []Check[T], opts Options) Report {
	set := opts.ErrorOn
	if set.Validate() != nil {
		set = ErrorOnError
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	report := Report{Results: make([]Result, 0, len(checks))}
	for _, check := range checks {
		raw, err := invoke(check, value, opts.Adapter)
		outcome := Classify(raw, err, set, Subject{Name: name, Value: value})

		if outcome.Mismatch {
			logger.Warn("check result does not match errorOn",
				zap.String("field", name),
				zap.String("check", check.Name),
				zap.String("result_type", fmt.Sprintf("%T", raw)),
				zap.Stringer("error_on", set),
			)
		}

		result := Result{Check: check.Name, Outcome: outcome}
		if outcome.Kind != FailedWithError {
			result.Value = raw
		}
		if outcome.Failed() {
			fieldErr := &FieldError{
				Name:    name,
				Value:   value,
				Check:   check.Name,
				Message: outcome.Message,
				Cause:   outcome.Cause,
			}
			if fieldErr.Cause == nil {
				fieldErr.Cause = errors.New(outcome.Message)
			}
			result.Error = fieldErr
			report.Errors = append(report.Errors, fieldErr)
		}
		report.Results = append(report.Results, result)
	}
	return report
}

func invoke[T any](check Check[T], value T, adapter func(any) any) (raw any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			raw = nil
			if cause, ok := recovered.(error); ok {
				err = fmt.Errorf("%w: %w", ErrCheckPanicked, cause)
				return
			}
			err = fmt.Errorf("%w: %v", ErrCheckPanicked, recovered)
		}
	}()

	if check.Fn == nil {
		return nil, nil
	}

	input := value
	if adapter != nil {
		adapted, convErr := coerce.As[T](adapter(value))
		if convErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrAdapterType, convErr)
		}
		input = adapted
	}
	return check.Fn(input)
}
