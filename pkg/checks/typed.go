package checks

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/validation"
)

// Required fails for the zero value of T.
func Required[T comparable]() validation.Check[T] {
	return validation.Err(RuleRequired, func(v T) error {
		var zero T
		if v == zero {
			return errRequired
		}
		return nil
	})
}

// Min fails for values below bound.
func Min[T cmp.Ordered](bound T) validation.Check[T] {
	return validation.Err(RuleMin, func(v T) error {
		if v < bound {
			return fmt.Errorf("must be at least %v", bound)
		}
		return nil
	})
}

// Max fails for values above bound.
func Max[T cmp.Ordered](bound T) validation.Check[T] {
	return validation.Err(RuleMax, func(v T) error {
		if v > bound {
			return fmt.Errorf("must be at most %v", bound)
		}
		return nil
	})
}

// MinLength fails for strings shorter than n runes. Empty strings pass;
// combine with Required to reject them.
func MinLength(n int) validation.Check[string] {
	return validation.Err(RuleMinLength, func(v string) error {
		if v != "" && utf8.RuneCountInString(v) < n {
			return fmt.Errorf("must be at least %d characters", n)
		}
		return nil
	})
}

// MaxLength fails for strings longer than n runes.
func MaxLength(n int) validation.Check[string] {
	return validation.Err(RuleMaxLength, func(v string) error {
		if utf8.RuneCountInString(v) > n {
			return fmt.Errorf("must be at most %d characters", n)
		}
		return nil
	})
}

// Pattern fails for non-empty strings that do not match expr.
func Pattern(expr string) (validation.Check[string], error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return validation.Check[string]{}, fmt.Errorf("%w: pattern %q: %w", ErrInvalidRule, expr, err)
	}
	return validation.Err(RulePattern, func(v string) error {
		if v != "" && !re.MatchString(v) {
			return fmt.Errorf("must match %s", expr)
		}
		return nil
	}), nil
}

// OneOf fails for values outside allowed.
func OneOf[T comparable](allowed ...T) validation.Check[T] {
	set := make(map[T]struct{}, len(allowed))
	labels := make([]string, 0, len(allowed))
	for _, value := range allowed {
		set[value] = struct{}{}
		labels = append(labels, fmt.Sprint(value))
	}
	message := "must be one of " + strings.Join(labels, ", ")
	return validation.Err(RuleEnum, func(v T) error {
		if _, ok := set[v]; !ok {
			return errors.New(message)
		}
		return nil
	})
}
