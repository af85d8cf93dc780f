package validation

import "fmt"

// OutcomeKind tags an Outcome.
type OutcomeKind uint8

const (
	// Passed means the check accepted the value.
	Passed OutcomeKind = iota
	// FailedWithMessage means the check returned a failure string or false.
	FailedWithMessage
	// FailedWithError means the check returned an error or panicked.
	FailedWithError
)

func (k OutcomeKind) String() string {
	switch k {
	case Passed:
		return "passed"
	case FailedWithMessage:
		return "failed-with-message"
	case FailedWithError:
		return "failed-with-error"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
	}
}

// Outcome is the classified result of one check invocation.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Cause   error
	// Mismatch is set when the result shape matched no enabled mode and the
	// check was treated as passed.
	Mismatch bool
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Kind != Passed
}

// Subject identifies the value a check ran against, used to build the
// generated message for boolean failures.
type Subject struct {
	Name  string
	Value any
}

// Classify maps a raw check result onto an Outcome. Errors always fail.
// Otherwise the first enabled mode matching the result shape decides:
// strings (non-empty fails), then booleans (false fails); with ErrorOnError
// enabled every other result passes. A result no enabled mode accepts
// passes with Mismatch set.
func Classify(raw any, err error, set ErrorOn, subject Subject) Outcome {
	if err != nil {
		return Outcome{Kind: FailedWithError, Message: err.Error(), Cause: err}
	}

	if set.Has(ErrorOnString) {
		if message, ok := raw.(string); ok {
			if message == "" {
				return Outcome{Kind: Passed}
			}
			return Outcome{Kind: FailedWithMessage, Message: message}
		}
	}

	if set.Has(ErrorOnBoolean) {
		if valid, ok := raw.(bool); ok {
			if valid {
				return Outcome{Kind: Passed}
			}
			return Outcome{
				Kind:    FailedWithMessage,
				Message: fmt.Sprintf("%s is invalid with value: %v", subject.Name, subject.Value),
			}
		}
	}

	if set.Has(ErrorOnError) {
		return Outcome{Kind: Passed}
	}
	return Outcome{Kind: Passed, Mismatch: true}
}
