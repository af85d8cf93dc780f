package validation

import (
	"reflect"
	"runtime"
	"strings"
)

// Check is a named check function. Fn reports failure either through its
// error (always a failure) or through its raw result, which is classified
// against the active ErrorOn set.
type Check[T any] struct {
	Name string
	Fn   func(T) (any, error)
}

// Func wraps a check returning both a raw result and an error.
func Func[T any](name string, fn func(T) (any, error)) Check[T] {
	return Check[T]{Name: nameOf(name, fn), Fn: fn}
}

// Err wraps a check that only reports failure through an error.
func Err[T any](name string, fn func(T) error) Check[T] {
	return Check[T]{
		Name: nameOf(name, fn),
		Fn: func(value T) (any, error) {
			return nil, fn(value)
		},
	}
}

// String wraps a check returning a failure message, empty when valid.
func String[T any](name string, fn func(T) string) Check[T] {
	return Check[T]{
		Name: nameOf(name, fn),
		Fn: func(value T) (any, error) {
			return fn(value), nil
		},
	}
}

// Bool wraps a predicate check.
func Bool[T any](name string, fn func(T) bool) Check[T] {
	return Check[T]{
		Name: nameOf(name, fn),
		Fn: func(value T) (any, error) {
			return fn(value), nil
		},
	}
}

// nameOf returns name, or the symbol name of fn without its package path.
func nameOf(name string, fn any) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	if fn == nil {
		return "anonymous"
	}
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func || value.IsNil() {
		return "anonymous"
	}
	symbol := runtime.FuncForPC(value.Pointer())
	if symbol == nil {
		return "anonymous"
	}
	full := symbol.Name()
	if idx := strings.LastIndex(full, "/"); idx >= 0 {
		full = full[idx+1:]
	}
	if idx := strings.Index(full, "."); idx >= 0 {
		full = full[idx+1:]
	}
	if full == "" {
		return "anonymous"
	}
	return full
}
