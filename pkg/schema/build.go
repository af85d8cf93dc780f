package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/checks"
	"github.com/goliatone/go-formstate/pkg/coerce"
	"github.com/goliatone/go-formstate/pkg/config"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var errNotWhole = errors.New("must be a whole number")

// Build creates a form from def. Every field is a field.Field[any] whose
// value is a string, a float64 or a bool depending on its declared type.
func Build(def Form, cfg config.Config, opts ...form.Option) (*form.Form, error) {
	normalised, err := Normalize(def)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()
	if len(normalised.ErrorOn) > 0 {
		set, err := validation.ParseErrorOn(normalised.ErrorOn...)
		if err != nil {
			return nil, fmt.Errorf("%w: form %q: %w", ErrInvalidDefinition, normalised.Name, err)
		}
		cfg.ErrorOn = set
	}

	formOpts := append([]form.Option{form.WithLogger(cfg.Logger)}, opts...)
	built, err := form.New(normalised.Name, formOpts...)
	if err != nil {
		return nil, err
	}
	for _, fieldDef := range normalised.Fields {
		f, err := BuildField(fieldDef, cfg)
		if err != nil {
			return nil, fmt.Errorf("schema: form %q: %w", normalised.Name, err)
		}
		built.Add(f)
	}
	return built, nil
}

// BuildField creates a single field from def.
func BuildField(def Field, cfg config.Config) (*field.Field[any], error) {
	kind := def.Type
	if kind == "" {
		kind = FieldTypeString
	}
	value, err := initialValue(kind, def.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidDefinition, def.Name, err)
	}

	fieldCfg := cfg.Normalized()
	if len(def.ErrorOn) > 0 {
		set, err := validation.ParseErrorOn(def.ErrorOn...)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidDefinition, def.Name, err)
		}
		fieldCfg.ErrorOn = set
	}
	if def.Sanitize {
		fieldCfg.CheckAdapter = checks.SanitizeHTML
	}

	list, err := Checks(def)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidDefinition, def.Name, err)
	}

	return field.New(field.Definition[any]{
		Name:   def.Name,
		Value:  value,
		Checks: list,
		Config: &fieldCfg,
	})
}

// Checks returns the checks implied by def: required first, then the
// integer constraint, then the declared rules in order.
func Checks(def Field) ([]validation.Check[any], error) {
	var list []validation.Check[any]
	if def.Required {
		required, err := checks.FromRule(checks.Rule{Kind: checks.RuleRequired})
		if err != nil {
			return nil, err
		}
		list = append(list, required)
	}
	if def.Type == FieldTypeInteger {
		list = append(list, validation.Err("integer", wholeNumber))
	}
	rules, err := checks.FromRules(def.Rules)
	if err != nil {
		return nil, err
	}
	return append(list, rules...), nil
}

// InputType returns the web input type a field of def binds to.
func InputType(def Field) string {
	switch def.Type {
	case FieldTypeInteger, FieldTypeNumber:
		return "number"
	case FieldTypeBoolean:
		return "checkbox"
	}
	for _, rule := range def.Rules {
		switch rule.Kind {
		case checks.RuleEmail:
			return "email"
		case checks.RulePhone:
			return "tel"
		}
	}
	return "text"
}

func wholeNumber(v any) error {
	number, ok := v.(float64)
	if !ok {
		return nil
	}
	if number != math.Trunc(number) {
		return errNotWhole
	}
	return nil
}

func initialValue(kind FieldType, raw any) (any, error) {
	switch kind {
	case FieldTypeInteger, FieldTypeNumber:
		switch value := raw.(type) {
		case nil:
			return float64(0), nil
		case string:
			number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("value %q is not a number", value)
			}
			return number, nil
		default:
			number, err := coerce.As[float64](value)
			if err != nil {
				return nil, err
			}
			return number, nil
		}
	case FieldTypeBoolean:
		switch value := raw.(type) {
		case nil:
			return false, nil
		case bool:
			return value, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("value %q is not a boolean", value)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("value %v is not a boolean", value)
		}
	default:
		switch value := raw.(type) {
		case nil:
			return "", nil
		case string:
			return value, nil
		default:
			return fmt.Sprint(value), nil
		}
	}
}
