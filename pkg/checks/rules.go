package checks

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/validation"
)

// Rule kinds understood by FromRule.
const (
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleRequired  = "required"
	RuleEmail     = "email"
	RulePhone     = "phone"
	RuleEnum      = "enum"
)

var (
	// ErrUnknownRule is returned by FromRule for an unsupported kind.
	ErrUnknownRule = errors.New("checks: unknown rule")
	// ErrInvalidRule is returned when a rule's parameters cannot be used.
	ErrInvalidRule = errors.New("checks: invalid rule")

	errRequired  = errors.New("is required")
	errNotNumber = errors.New("must be a number")
)

// Rule is a declarative constraint. Bounds and lengths carry their
// threshold in Params["value"]; min and max accept Params["exclusive"];
// pattern rules keep the expression in Params["pattern"]; enum rules list
// comma-separated options in Params["values"].
type Rule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// FromRule builds an untyped check for rule. Every check except required
// passes on a nil or empty value.
func FromRule(rule Rule) (validation.Check[any], error) {
	kind := strings.TrimSpace(rule.Kind)
	switch kind {
	case RuleRequired:
		return validation.Err(RuleRequired, func(v any) error {
			if isBlank(v) {
				return errRequired
			}
			return nil
		}), nil
	case RuleMin, RuleMax:
		return boundRule(kind, rule.Params)
	case RuleMinLength, RuleMaxLength:
		return lengthRule(kind, rule.Params)
	case RulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return validation.Check[any]{}, fmt.Errorf("%w: pattern rule without expression", ErrInvalidRule)
		}
		check, err := Pattern(expr)
		if err != nil {
			return validation.Check[any]{}, err
		}
		return onStrings(check), nil
	case RuleEmail:
		return onStrings(Email()), nil
	case RulePhone:
		return onStrings(Phone()), nil
	case RuleEnum:
		return enumRule(rule.Params)
	default:
		return validation.Check[any]{}, fmt.Errorf("%w %q", ErrUnknownRule, rule.Kind)
	}
}

// FromRules builds checks for every rule, in order.
func FromRules(rules []Rule) ([]validation.Check[any], error) {
	out := make([]validation.Check[any], 0, len(rules))
	for _, rule := range rules {
		check, err := FromRule(rule)
		if err != nil {
			return nil, err
		}
		out = append(out, check)
	}
	return out, nil
}

func boundRule(kind string, params map[string]string) (validation.Check[any], error) {
	bound, err := strconv.ParseFloat(strings.TrimSpace(params["value"]), 64)
	if err != nil {
		return validation.Check[any]{}, fmt.Errorf("%w: %s value %q", ErrInvalidRule, kind, params["value"])
	}
	exclusive := params["exclusive"] == "true"
	label := strconv.FormatFloat(bound, 'f', -1, 64)

	return validation.Err(kind, func(v any) error {
		if isBlank(v) {
			return nil
		}
		number, ok := toFloat(v)
		if !ok {
			return errNotNumber
		}
		switch {
		case kind == RuleMin && exclusive && number <= bound:
			return fmt.Errorf("must be greater than %s", label)
		case kind == RuleMin && number < bound:
			return fmt.Errorf("must be at least %s", label)
		case kind == RuleMax && exclusive && number >= bound:
			return fmt.Errorf("must be less than %s", label)
		case kind == RuleMax && number > bound:
			return fmt.Errorf("must be at most %s", label)
		}
		return nil
	}), nil
}

func lengthRule(kind string, params map[string]string) (validation.Check[any], error) {
	limit, err := strconv.Atoi(strings.TrimSpace(params["value"]))
	if err != nil || limit < 0 {
		return validation.Check[any]{}, fmt.Errorf("%w: %s value %q", ErrInvalidRule, kind, params["value"])
	}
	return validation.Err(kind, func(v any) error {
		if isBlank(v) {
			return nil
		}
		size, ok := lengthOf(v)
		if !ok {
			return nil
		}
		if kind == RuleMinLength && size < limit {
			return fmt.Errorf("must be at least %d characters", limit)
		}
		if kind == RuleMaxLength && size > limit {
			return fmt.Errorf("must be at most %d characters", limit)
		}
		return nil
	}), nil
}

func enumRule(params map[string]string) (validation.Check[any], error) {
	var options []string
	for _, option := range strings.Split(params["values"], ",") {
		if trimmed := strings.TrimSpace(option); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	if len(options) == 0 {
		return validation.Check[any]{}, fmt.Errorf("%w: enum rule without values", ErrInvalidRule)
	}
	message := "must be one of " + strings.Join(options, ", ")
	return validation.Err(RuleEnum, func(v any) error {
		if isBlank(v) {
			return nil
		}
		got := fmt.Sprint(v)
		for _, option := range options {
			if got == option {
				return nil
			}
		}
		return errors.New(message)
	}), nil
}

// onStrings lifts a string check to untyped values; non-string values pass.
func onStrings(check validation.Check[string]) validation.Check[any] {
	return validation.Check[any]{
		Name: check.Name,
		Fn: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, nil
			}
			return check.Fn(s)
		},
	}
}

func isBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func toFloat(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		number, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return number, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	}
	return 0, false
}

func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}
