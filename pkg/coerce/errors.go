package coerce

import "errors"

var (
	// ErrUnsupportedType is returned for input types whose value cannot be
	// controlled (file, image, button, reset, hidden, submit).
	ErrUnsupportedType = errors.New("coerce: unsupported input type")
	// ErrDeprecatedType is returned for the obsolete datetime input type.
	ErrDeprecatedType = errors.New("coerce: deprecated input type")
	// ErrTypeMismatch is returned when a coerced value cannot be stored in
	// the field's value type.
	ErrTypeMismatch = errors.New("coerce: value type mismatch")
	// ErrUnknownNotification is returned for notifications outside the
	// known event kinds, such as structs embedding one of them.
	ErrUnknownNotification = errors.New("coerce: unknown notification")
)
