package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Options tunes Extract.
type Options struct {
	// CoerceBack enables type-directed parsing of web input values. When
	// disabled only checkbox and radio inputs are coerced (to their checked
	// state); every other value stays a string.
	CoerceBack bool
}

// Outcome is the value a notification resolved to.
type Outcome struct {
	Value any
	// Ignored is set when the notification carried nothing usable and the
	// previous value was kept.
	Ignored bool
}

// Result is the typed counterpart of Outcome.
type Result[T any] struct {
	Value   T
	Ignored bool
}

const (
	dateLayout = "2006-01-02"
)

var localDateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// Extract resolves a notification into the value it carries. prev is
// returned unchanged (and the outcome marked Ignored) for inert events.
func Extract(n Notification, prev any, opts Options) (Outcome, error) {
	switch event := n.(type) {
	case nil:
		return Outcome{Value: prev, Ignored: true}, nil
	case WebEvent:
		return extractWeb(event, prev, opts)
	case *WebEvent:
		if event == nil {
			return Outcome{Value: prev, Ignored: true}, nil
		}
		return extractWeb(*event, prev, opts)
	case NativeEvent:
		return extractNative(event, prev), nil
	case *NativeEvent:
		if event == nil {
			return Outcome{Value: prev, Ignored: true}, nil
		}
		return extractNative(*event, prev), nil
	case EmptyEvent, *EmptyEvent:
		return Outcome{Value: prev, Ignored: true}, nil
	case rawValue:
		if rv := reflect.ValueOf(event); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Outcome{Value: prev, Ignored: true}, nil
		}
		return Outcome{Value: event.rawAny()}, nil
	default:
		return Outcome{}, fmt.Errorf("%w: %T", ErrUnknownNotification, n)
	}
}

func extractNative(event NativeEvent, prev any) Outcome {
	if event.Native == nil {
		return Outcome{Value: prev, Ignored: true}
	}
	return Outcome{Value: event.Native.Text}
}

func extractWeb(event WebEvent, prev any, opts Options) (Outcome, error) {
	target := event.Target
	if target == nil || (target.Value == nil && target.Checked == nil) {
		return Outcome{Value: prev, Ignored: true}, nil
	}

	var (
		value   string
		checked bool
	)
	if target.Value != nil {
		value = *target.Value
	}
	if target.Checked != nil {
		checked = *target.Checked
	}

	if !opts.CoerceBack {
		out, err := passThrough(value, checked, target.Type)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Value: out}, nil
	}

	out, err := ConvertBack(value, checked, target.Type)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Value: out}, nil
}

// ConvertBack undoes the string coercion web inputs apply to their value,
// using the input type as the discriminator.
func ConvertBack(value string, checked bool, inputType string) (any, error) {
	kind := normalizeType(inputType)
	if err := checkControllable(kind); err != nil {
		return nil, err
	}

	switch kind {
	case "number", "range":
		return parseNumber(value), nil
	case "checkbox", "radio":
		return checked, nil
	case "date":
		return parseTime(value, dateLayout), nil
	case "datetime-local":
		return parseTime(value, localDateTimeLayouts...), nil
	default:
		return value, nil
	}
}

func passThrough(value string, checked bool, inputType string) (any, error) {
	kind := normalizeType(inputType)
	if err := checkControllable(kind); err != nil {
		return nil, err
	}
	if kind == "checkbox" || kind == "radio" {
		return checked, nil
	}
	return value, nil
}

func normalizeType(inputType string) string {
	kind := strings.ToLower(strings.TrimSpace(inputType))
	if kind == "" {
		return "text"
	}
	return kind
}

func checkControllable(kind string) error {
	switch kind {
	case "file", "image", "button", "reset", "hidden", "submit":
		return fmt.Errorf("%w %q: inputs of this type cannot be value-controlled, do not bind change or blur handlers to them", ErrUnsupportedType, kind)
	case "datetime":
		return fmt.Errorf("%w %q: use \"datetime-local\" instead", ErrDeprecatedType, kind)
	}
	return nil
}

// parseNumber follows web number semantics: blank is 0 and anything
// unparsable is NaN.
func parseNumber(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return number
}

// parseTime returns the zero time when value matches none of the layouts.
func parseTime(value string, layouts ...string) time.Time {
	trimmed := strings.TrimSpace(value)
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Coerce resolves n and converts the result into T.
func Coerce[T any](n Notification, prev T, opts Options) (Result[T], error) {
	outcome, err := Extract(n, prev, opts)
	if err != nil {
		return Result[T]{Value: prev}, err
	}
	if outcome.Ignored {
		return Result[T]{Value: prev, Ignored: true}, nil
	}
	value, err := As[T](outcome.Value)
	if err != nil {
		return Result[T]{Value: prev}, err
	}
	return Result[T]{Value: value}, nil
}

// As converts v into T. Values already of type T pass through, nil becomes
// the zero value, numbers convert across numeric kinds when no precision is
// lost and named types convert to and from their underlying kind.
func As[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}

	target := reflect.TypeOf((*T)(nil)).Elem()
	src := reflect.ValueOf(v)

	if isNumeric(src.Kind()) && isNumeric(target.Kind()) {
		if !lossless(src, target) {
			return zero, fmt.Errorf("%w: %v does not fit in %s", ErrTypeMismatch, v, target)
		}
		return src.Convert(target).Interface().(T), nil
	}
	if src.Kind() == target.Kind() && src.Type().ConvertibleTo(target) {
		return src.Convert(target).Interface().(T), nil
	}
	return zero, fmt.Errorf("%w: cannot use %T as %s", ErrTypeMismatch, v, target)
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

func lossless(src reflect.Value, target reflect.Type) bool {
	if isFloat(target.Kind()) {
		return true
	}
	if isFloat(src.Kind()) {
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return false
		}
	}
	if isUnsigned(target.Kind()) && isNegative(src) {
		return false
	}
	converted := src.Convert(target)
	back := converted.Convert(src.Type())
	return back.Interface() == src.Interface()
}

func isUnsigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNegative(v reflect.Value) bool {
	switch {
	case isFloat(v.Kind()):
		return v.Float() < 0
	case isUnsigned(v.Kind()):
		return false
	default:
		return v.Int() < 0
	}
}
