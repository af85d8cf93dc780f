package form

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SubmitFunc is the external procedure invoked by Submit.
type SubmitFunc func(ctx context.Context, args ...any) (any, error)

// Option customises a Form.
type Option func(*Form)

// WithSubmit sets the procedure invoked by Submit.
func WithSubmit(fn SubmitFunc) Option {
	return func(f *Form) {
		f.submit = fn
	}
}

// WithLogger overrides the diagnostics logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}
