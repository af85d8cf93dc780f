package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorOn selects which check result shapes are treated as failures.
type ErrorOn uint8

const (
	// ErrorOnError treats returned errors and panics as failures.
	ErrorOnError ErrorOn = 1 << iota
	// ErrorOnString treats non-empty returned strings as failure messages.
	ErrorOnString
	// ErrorOnBoolean treats a returned false as a failure.
	ErrorOnBoolean
)

// ErrEmptyErrorOn is returned when an ErrorOn set has no modes enabled.
var ErrEmptyErrorOn = errors.New("validation: errorOn must not be empty")

// ErrUnknownErrorOn is returned by ParseErrorOn for unknown mode names.
var ErrUnknownErrorOn = errors.New("validation: unknown errorOn mode")

// Has reports whether every mode in mode is enabled.
func (e ErrorOn) Has(mode ErrorOn) bool {
	return mode != 0 && e&mode == mode
}

// Validate reports ErrEmptyErrorOn for the empty set.
func (e ErrorOn) Validate() error {
	if e&(ErrorOnError|ErrorOnString|ErrorOnBoolean) == 0 {
		return ErrEmptyErrorOn
	}
	return nil
}

// Modes returns the enabled mode names in canonical order.
func (e ErrorOn) Modes() []string {
	var modes []string
	if e.Has(ErrorOnError) {
		modes = append(modes, "error")
	}
	if e.Has(ErrorOnString) {
		modes = append(modes, "string")
	}
	if e.Has(ErrorOnBoolean) {
		modes = append(modes, "boolean")
	}
	return modes
}

func (e ErrorOn) String() string {
	modes := e.Modes()
	if len(modes) == 0 {
		return "none"
	}
	return strings.Join(modes, ",")
}

// ParseErrorOn builds a set from mode names ("error", "string", "boolean").
// Entries may themselves be comma separated.
func ParseErrorOn(values ...string) (ErrorOn, error) {
	var set ErrorOn
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			switch strings.ToLower(strings.TrimSpace(part)) {
			case "":
				continue
			case "error":
				set |= ErrorOnError
			case "string":
				set |= ErrorOnString
			case "boolean", "bool":
				set |= ErrorOnBoolean
			default:
				return 0, fmt.Errorf("%w %q", ErrUnknownErrorOn, part)
			}
		}
	}
	if err := set.Validate(); err != nil {
		return 0, err
	}
	return set, nil
}
