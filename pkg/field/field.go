package field

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/coerce"
	"github.com/goliatone/go-formstate/pkg/compare"
	"github.com/goliatone/go-formstate/pkg/config"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Handler receives change notifications.
type Handler func(coerce.Notification) error

// Definition describes a field. Zero-valued overrides inherit from Config,
// which itself defaults to config.Default().
type Definition[T any] struct {
	Name  string
	Value T
	// ErrorOn overrides the configured set when non-zero.
	ErrorOn validation.ErrorOn
	// Checks run before any checks passed positionally to New.
	Checks []validation.Check[T]
	Config *config.Config

	Comparator   compare.Func
	Allow        func(T) bool
	CheckAdapter func(any) any
}

type transition int

const (
	transitionChange transition = iota
	transitionBlur
)

func (t transition) String() string {
	if t == transitionBlur {
		return "blur"
	}
	return "change"
}

// Field is a single validated input. Its handlers are serialized; check
// functions must not call back into the same field.
type Field[T any] struct {
	mu sync.Mutex

	name    string
	initial T
	value   T

	changed   bool
	blurred   bool
	different bool

	checks []validation.Check[T]
	report validation.Report

	cfg   config.Config
	allow func(T) bool

	onChange Handler
	onBlur   Handler
}

// New builds a field and runs its checks against the initial value.
func New[T any](def Definition[T], checks ...validation.Check[T]) (*Field[T], error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	cfg := config.Default()
	if def.Config != nil {
		cfg = def.Config.Normalized()
	}
	if def.ErrorOn != 0 {
		cfg.ErrorOn = def.ErrorOn
	}
	if def.Comparator != nil {
		cfg.Comparator = def.Comparator
	}
	if def.CheckAdapter != nil {
		cfg.CheckAdapter = def.CheckAdapter
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}

	all := make([]validation.Check[T], 0, len(def.Checks)+len(checks))
	all = append(all, def.Checks...)
	all = append(all, checks...)

	f := &Field[T]{
		name:    name,
		initial: def.Value,
		value:   def.Value,
		checks:  all,
		cfg:     cfg,
		allow:   def.Allow,
	}
	f.onChange = func(n coerce.Notification) error { return f.mutate(n, transitionChange) }
	f.onBlur = func(n coerce.Notification) error { return f.mutate(n, transitionBlur) }
	f.report = f.validate(f.value)
	return f, nil
}

// MustNew panics when New fails. Useful for package-level field tables.
func MustNew[T any](def Definition[T], checks ...validation.Check[T]) *Field[T] {
	f, err := New(def, checks...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field name.
func (f *Field[T]) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// OnChange applies a change notification.
func (f *Field[T]) OnChange(n coerce.Notification) error {
	if f == nil {
		return ErrNilField
	}
	return f.onChange(n)
}

// OnBlur applies a blur notification.
func (f *Field[T]) OnBlur(n coerce.Notification) error {
	if f == nil {
		return ErrNilField
	}
	return f.onBlur(n)
}

// Set assigns a value directly through the change transition.
func (f *Field[T]) Set(value T) error {
	if f == nil {
		return ErrNilField
	}
	return f.onChange(coerce.Value(value))
}

// Clear resets the value to the zero value of T and re-runs the checks.
// Interaction flags are left untouched.
func (f *Field[T]) Clear() {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var zero T
	f.value = zero
	f.report = f.validate(zero)
	f.different = !f.cfg.Comparator(any(f.initial), any(zero))
}

func (f *Field[T]) mutate(n coerce.Notification, t transition) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger := f.cfg.Logger.With(zap.String("field", f.name), zap.Stringer("transition", t))

	res, err := coerce.Coerce(n, f.value, coerce.Options{CoerceBack: !f.cfg.DisableCoerceBack})
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	if res.Ignored {
		logger.Debug("notification carried no value, keeping previous value")
		f.mark(t)
		return nil
	}

	if f.cfg.Comparator(any(f.value), any(res.Value)) {
		f.mark(t)
		return nil
	}

	if !f.allowed(res.Value) {
		logger.Debug("value rejected by allow gate")
		return nil
	}

	if !f.cfg.DisableTypeMismatchWarning && typeChanged(f.value, res.Value) {
		logger.Warn("value type changed, check the input binding",
			zap.String("previous_type", fmt.Sprintf("%T", f.value)),
			zap.String("next_type", fmt.Sprintf("%T", res.Value)),
		)
	}

	f.value = res.Value
	f.report = f.validate(res.Value)
	f.different = !f.cfg.Comparator(any(f.initial), any(res.Value))
	f.mark(t)
	return nil
}

func (f *Field[T]) mark(t transition) {
	switch t {
	case transitionChange:
		f.changed = true
	case transitionBlur:
		f.blurred = true
	}
}

func (f *Field[T]) allowed(value T) bool {
	if f.allow != nil {
		return f.allow(value)
	}
	if f.cfg.Allow != nil {
		return f.cfg.Allow(any(value))
	}
	return true
}

func (f *Field[T]) validate(value T) validation.Report {
	return validation.Run(value, f.name, f.checks, f.cfg.ValidationOptions())
}

// typeChanged compares dynamic types; it only fires for interface-typed
// fields and ignores an unset previous value.
func typeChanged[T any](prev, next T) bool {
	pt := reflect.TypeOf(any(prev))
	if pt == nil {
		return false
	}
	return pt != reflect.TypeOf(any(next))
}
