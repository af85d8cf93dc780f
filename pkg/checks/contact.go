package checks

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[+]*[(]?[0-9]{1,4}[)]?[-\s./0-9]*$`)
)

var (
	errInvalidEmail = errors.New("must be a valid email address")
	errInvalidPhone = errors.New("must be a valid phone number")
)

// IsEmail reports whether input looks like an email address.
func IsEmail(input string) bool {
	return emailPattern.MatchString(input)
}

// IsPhone reports whether input looks like a phone number.
func IsPhone(input string) bool {
	return phonePattern.MatchString(input)
}

// Email fails for non-empty values that are not email addresses.
func Email() validation.Check[string] {
	return validation.Err(RuleEmail, func(v string) error {
		v = strings.TrimSpace(v)
		if v == "" || IsEmail(v) {
			return nil
		}
		return errInvalidEmail
	})
}

// Phone fails for non-empty values that are not phone numbers.
func Phone() validation.Check[string] {
	return validation.Err(RulePhone, func(v string) error {
		v = strings.TrimSpace(v)
		if v == "" || IsPhone(v) {
			return nil
		}
		return errInvalidPhone
	})
}
