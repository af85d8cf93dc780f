package field

import (
	"github.com/goliatone/go-formstate/pkg/coerce"
	"github.com/goliatone/go-formstate/pkg/hints"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// State is an immutable snapshot of a field.
type State[T any] struct {
	Name  string
	Value T

	// Errors is nil when the field is valid.
	Errors []*validation.FieldError
	// Error is the first error, if any.
	Error   *validation.FieldError
	IsError bool

	IsChanged   bool
	IsBlurred   bool
	IsDifferent bool

	// CheckResults holds one slot per check in declaration order.
	CheckResults []validation.Result

	OnChange Handler
	OnBlur   Handler
	Props    Props
}

// Status is the untyped view of a field consumed by forms.
type Status struct {
	Name        string
	Value       any
	Errors      []*validation.FieldError
	IsError     bool
	IsChanged   bool
	IsBlurred   bool
	IsDifferent bool
}

// Source is anything a form can aggregate over.
type Source interface {
	Name() string
	Status() Status
	Clear()
}

var _ Source = (*Field[any])(nil)

// State returns a snapshot of the field. A nil field yields the zero State.
func (f *Field[T]) State() State[T] {
	if f == nil {
		return State[T]{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := cloneErrors(f.report.Errors)
	state := State[T]{
		Name:         f.name,
		Value:        f.value,
		Errors:       errs,
		IsError:      len(errs) > 0,
		IsChanged:    f.changed,
		IsBlurred:    f.blurred,
		IsDifferent:  f.different,
		CheckResults: append([]validation.Result(nil), f.report.Results...),
		OnChange:     f.onChange,
		OnBlur:       f.onBlur,
		Props:        f.props(),
	}
	if len(errs) > 0 {
		state.Error = errs[0]
	}
	return state
}

// Status returns the untyped view of the field.
func (f *Field[T]) Status() Status {
	if f == nil {
		return Status{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := cloneErrors(f.report.Errors)
	return Status{
		Name:        f.name,
		Value:       any(f.value),
		Errors:      errs,
		IsError:     len(errs) > 0,
		IsChanged:   f.changed,
		IsBlurred:   f.blurred,
		IsDifferent: f.different,
	}
}

// Value returns the current value.
func (f *Field[T]) Value() T {
	if f == nil {
		var zero T
		return zero
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Props returns the handler bindings merged with inferred UI hints.
func (f *Field[T]) Props() Props {
	if f == nil {
		return Props{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props()
}

func (f *Field[T]) props() Props {
	return Props{
		Name:     f.name,
		ValueKey: f.cfg.ValueKey,
		Value:    any(f.value),
		OnChange: f.onChange,
		OnBlur:   f.onBlur,
		Hints:    hints.Infer(f.name, any(f.value), f.cfg.HintOptions()),
	}
}

// cloneErrors copies the slice, collapsing empty to nil.
func cloneErrors(src []*validation.FieldError) []*validation.FieldError {
	if len(src) == 0 {
		return nil
	}
	return append([]*validation.FieldError(nil), src...)
}

// Control is a Source that also accepts notifications.
type Control interface {
	Source
	OnChange(coerce.Notification) error
	OnBlur(coerce.Notification) error
}

var _ Control = (*Field[any])(nil)
