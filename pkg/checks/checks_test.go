package checks_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/checks"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func messages[T any](value T, list ...validation.Check[T]) []string {
	report := validation.Run(value, "field", list, validation.Options{ErrorOn: validation.ErrorOnError})
	return validation.Messages(report.Errors)
}

func TestContactFormats(t *testing.T) {
	tests := []struct {
		input string
		email bool
		phone bool
	}{
		{input: "ann@example.com", email: true},
		{input: "ANN.B+tag@mail.Example.org", email: true},
		{input: "ann@example", email: false},
		{input: "+1 555-010-9999", phone: true},
		{input: "(030) 1234.5678", phone: true},
		{input: "call me", phone: false},
	}
	for _, tt := range tests {
		if got := checks.IsEmail(tt.input); got != tt.email {
			t.Errorf("IsEmail(%q) = %v, want %v", tt.input, got, tt.email)
		}
		if got := checks.IsPhone(tt.input); got != tt.phone {
			t.Errorf("IsPhone(%q) = %v, want %v", tt.input, got, tt.phone)
		}
	}
}

func TestEmailAndPhoneChecks(t *testing.T) {
	if diff := cmp.Diff([]string{"must be a valid email address"}, messages("nope", checks.Email())); diff != "" {
		t.Fatalf("email mismatch (-want +got):\n%s", diff)
	}
	if got := messages("", checks.Email(), checks.Phone()); got != nil {
		t.Fatalf("expected empty value to pass, got %v", got)
	}
	if diff := cmp.Diff([]string{"must be a valid phone number"}, messages("abc", checks.Phone())); diff != "" {
		t.Fatalf("phone mismatch (-want +got):\n%s", diff)
	}
}

func TestTypedChecks(t *testing.T) {
	if diff := cmp.Diff([]string{"is required", "must be at least 18"}, messages(0, checks.Required[int](), checks.Min(18))); diff != "" {
		t.Fatalf("int checks mismatch (-want +got):\n%s", diff)
	}
	if got := messages(99.5, checks.Max(100.0)); got != nil {
		t.Fatalf("expected value under max to pass, got %v", got)
	}
	if diff := cmp.Diff([]string{"must be at least 3 characters"}, messages("hé", checks.MinLength(3), checks.MaxLength(5))); diff != "" {
		t.Fatalf("length mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"must be one of red, green"}, messages("blue", checks.OneOf("red", "green"))); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestPattern(t *testing.T) {
	check, err := checks.Pattern("^[a-z]+$")
	if err != nil {
		t.Fatalf("Pattern: %v", err)
	}
	if diff := cmp.Diff([]string{"must match ^[a-z]+$"}, messages("Abc", check)); diff != "" {
		t.Fatalf("pattern mismatch (-want +got):\n%s", diff)
	}

	if _, err := checks.Pattern("("); !errors.Is(err, checks.ErrInvalidRule) {
		t.Fatalf("expected ErrInvalidRule, got %v", err)
	}
}

func TestFromRule(t *testing.T) {
	tests := []struct {
		name  string
		rule  checks.Rule
		value any
		want  []string
	}{
		{name: "required blank", rule: checks.Rule{Kind: "required"}, value: "  ", want: []string{"is required"}},
		{name: "required nil", rule: checks.Rule{Kind: "required"}, value: nil, want: []string{"is required"}},
		{name: "min float", rule: checks.Rule{Kind: "min", Params: map[string]string{"value": "18"}}, value: float64(12), want: []string{"must be at least 18"}},
		{name: "min int passes", rule: checks.Rule{Kind: "min", Params: map[string]string{"value": "18"}}, value: 21},
		{name: "min exclusive", rule: checks.Rule{Kind: "min", Params: map[string]string{"value": "0", "exclusive": "true"}}, value: 0, want: []string{"must be greater than 0"}},
		{name: "max", rule: checks.Rule{Kind: "max", Params: map[string]string{"value": "2.5"}}, value: 3, want: []string{"must be at most 2.5"}},
		{name: "max string number", rule: checks.Rule{Kind: "max", Params: map[string]string{"value": "10"}}, value: "11", want: []string{"must be at most 10"}},
		{name: "min not a number", rule: checks.Rule{Kind: "min", Params: map[string]string{"value": "1"}}, value: "abc", want: []string{"must be a number"}},
		{name: "min skips blank", rule: checks.Rule{Kind: "min", Params: map[string]string{"value": "1"}}, value: ""},
		{name: "maxLength", rule: checks.Rule{Kind: "maxLength", Params: map[string]string{"value": "2"}}, value: "abc", want: []string{"must be at most 2 characters"}},
		{name: "minLength slice", rule: checks.Rule{Kind: "minLength", Params: map[string]string{"value": "2"}}, value: []string{"a"}, want: []string{"must be at least 2 characters"}},
		{name: "pattern", rule: checks.Rule{Kind: "pattern", Params: map[string]string{"pattern": "^\\d+$"}}, value: "12a", want: []string{"must match ^\\d+$"}},
		{name: "email", rule: checks.Rule{Kind: "email"}, value: "x", want: []string{"must be a valid email address"}},
		{name: "phone non string", rule: checks.Rule{Kind: "phone"}, value: 5},
		{name: "enum", rule: checks.Rule{Kind: "enum", Params: map[string]string{"values": "a, b"}}, value: "c", want: []string{"must be one of a, b"}},
		{name: "enum number", rule: checks.Rule{Kind: "enum", Params: map[string]string{"values": "1,2"}}, value: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := checks.FromRule(tt.rule)
			if err != nil {
				t.Fatalf("FromRule: %v", err)
			}
			if check.Name != tt.rule.Kind {
				t.Fatalf("expected check name %q, got %q", tt.rule.Kind, check.Name)
			}
			if diff := cmp.Diff(tt.want, messages(tt.value, check)); diff != "" {
				t.Fatalf("messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromRuleErrors(t *testing.T) {
	tests := []struct {
		rule checks.Rule
		want error
	}{
		{rule: checks.Rule{Kind: "luhn"}, want: checks.ErrUnknownRule},
		{rule: checks.Rule{Kind: "min"}, want: checks.ErrInvalidRule},
		{rule: checks.Rule{Kind: "maxLength", Params: map[string]string{"value": "-1"}}, want: checks.ErrInvalidRule},
		{rule: checks.Rule{Kind: "pattern"}, want: checks.ErrInvalidRule},
		{rule: checks.Rule{Kind: "enum", Params: map[string]string{"values": " , "}}, want: checks.ErrInvalidRule},
	}
	for _, tt := range tests {
		if _, err := checks.FromRule(tt.rule); !errors.Is(err, tt.want) {
			t.Errorf("FromRule(%+v) error = %v, want %v", tt.rule, err, tt.want)
		}
	}

	if _, err := checks.FromRules([]checks.Rule{{Kind: "required"}, {Kind: "luhn"}}); !errors.Is(err, checks.ErrUnknownRule) {
		t.Fatalf("expected FromRules to stop at the unknown rule, got %v", err)
	}
}

func TestSanitizeHTML(t *testing.T) {
	if got := checks.SanitizeHTML("<b>Ann</b> &amp; Bob<script>x()</script>"); got != "Ann & Bob" {
		t.Fatalf("unexpected sanitized value %q", got)
	}
	if got := checks.SanitizeHTML(42); got != 42 {
		t.Fatalf("expected non-strings to pass through, got %v", got)
	}

	report := validation.Run("<i></i>", "bio", []validation.Check[string]{checks.Required[string]()}, validation.Options{
		ErrorOn: validation.ErrorOnError,
		Adapter: checks.SanitizeHTML,
	})
	if diff := cmp.Diff([]string{"is required"}, validation.Messages(report.Errors)); diff != "" {
		t.Fatalf("adapter mismatch (-want +got):\n%s", diff)
	}
}
