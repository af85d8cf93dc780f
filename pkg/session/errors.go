package session

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("session: aborted")
	// ErrCancelled is returned when the user declines to submit.
	ErrCancelled = errors.New("session: cancelled")
	// ErrTooManyAttempts is returned when a field is still invalid after
	// the configured number of prompts.
	ErrTooManyAttempts = errors.New("session: too many attempts")
	// ErrNotControllable is returned when a form field cannot accept
	// notifications.
	ErrNotControllable = errors.New("session: field does not accept input")
)
