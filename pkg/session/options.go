package session

import "go.uber.org/zap"

// DefaultMaxAttempts is how often an invalid field is prompted before the
// session gives up.
const DefaultMaxAttempts = 3

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts sets how often a field is prompted while it is invalid.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithLogger overrides the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfirm toggles the confirmation prompt before submitting.
func WithConfirm(enabled bool) Option {
	return func(s *Session) {
		s.confirm = enabled
	}
}
