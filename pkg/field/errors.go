package field

import "errors"

var (
	// ErrNameRequired is returned when a field is defined without a name.
	ErrNameRequired = errors.New("field: name is required")
	// ErrNilField is returned by handlers called on a nil *Field.
	ErrNilField = errors.New("field: nil field")
)
