package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formstate/pkg/validation"
)

func minAge(v int) error {
	if v < 18 {
		return errors.New("must be at least 18 years old")
	}
	return nil
}

func TestRunCollectsErrorsInDeclarationOrder(t *testing.T) {
	checks := []validation.Check[int]{
		validation.Err("", minAge),
		validation.Bool("positive", func(v int) bool { return v > 0 }),
		validation.String("even", func(v int) string {
			if v%2 != 0 {
				return "must be even"
			}
			return ""
		}),
	}
	opts := validation.Options{ErrorOn: validation.ErrorOnError | validation.ErrorOnString | validation.ErrorOnBoolean}

	report := validation.Run(13, "age", checks, opts)

	if report.Valid() {
		t.Fatalf("expected report to be invalid")
	}
	if diff := cmp.Diff([]string{"must be at least 18 years old", "must be even"}, validation.Messages(report.Errors)); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if got := report.Errors[0].Check; got != "minAge" {
		t.Fatalf("expected derived check name minAge, got %q", got)
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected one result per check, got %d", len(report.Results))
	}
	if report.Results[1].Value != true || report.Results[1].Error != nil {
		t.Fatalf("expected passing raw result to be kept, got %#v", report.Results[1])
	}
	if report.Results[2].Error != report.Errors[1] {
		t.Fatalf("expected result slot to reference the reported error")
	}
	if report.Errors[0].Value != 13 || report.Errors[0].Name != "age" {
		t.Fatalf("unexpected error subject %#v", report.Errors[0])
	}
}

func TestRunRecoversPanics(t *testing.T) {
	checks := []validation.Check[string]{
		validation.Err("explodes", func(string) error { panic("kaboom") }),
	}

	report := validation.Run("x", "name", checks, validation.Options{ErrorOn: validation.ErrorOnError})

	if len(report.Errors) != 1 {
		t.Fatalf("expected one error, got %d", len(report.Errors))
	}
	if !errors.Is(report.Errors[0], validation.ErrCheckPanicked) {
		t.Fatalf("expected ErrCheckPanicked, got %v", report.Errors[0].Cause)
	}
	if !strings.Contains(report.Errors[0].Message, "kaboom") {
		t.Fatalf("expected panic value in message, got %q", report.Errors[0].Message)
	}
}

func TestRunAppliesAdapter(t *testing.T) {
	var seen []string
	checks := []validation.Check[string]{
		validation.Err("record", func(v string) error {
			seen = append(seen, v)
			return nil
		}),
		validation.Err("record-again", func(v string) error {
			seen = append(seen, v)
			return nil
		}),
	}
	opts := validation.Options{
		ErrorOn: validation.ErrorOnError,
		Adapter: func(v any) any { return strings.ToUpper(v.(string)) },
	}

	report := validation.Run("abc", "code", checks, opts)

	if !report.Valid() {
		t.Fatalf("expected valid report, got %v", report.Errors)
	}
	if diff := cmp.Diff([]string{"ABC", "ABC"}, seen); diff != "" {
		t.Fatalf("adapted values mismatch (-want +got):\n%s", diff)
	}
}

func TestRunReportsIncompatibleAdapter(t *testing.T) {
	checks := []validation.Check[string]{
		validation.Err("noop", func(string) error { return nil }),
	}
	opts := validation.Options{
		ErrorOn: validation.ErrorOnError,
		Adapter: func(any) any { return 42 },
	}

	report := validation.Run("abc", "code", checks, opts)

	if len(report.Errors) != 1 || !errors.Is(report.Errors[0], validation.ErrAdapterType) {
		t.Fatalf("expected adapter type error, got %#v", report.Errors)
	}
}

func TestRunWarnsOnMismatch(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	checks := []validation.Check[string]{
		validation.String("message", func(string) string { return "wrong shape" }),
	}
	opts := validation.Options{ErrorOn: validation.ErrorOnBoolean, Logger: zap.New(core)}

	report := validation.Run("abc", "code", checks, opts)

	if !report.Valid() {
		t.Fatalf("expected mismatched result to pass, got %v", report.Errors)
	}
	if !report.Results[0].Outcome.Mismatch {
		t.Fatalf("expected mismatch flag on the result")
	}
	entries := logs.FilterMessage("check result does not match errorOn").All()
	if len(entries) != 1 {
		t.Fatalf("expected one mismatch warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["check"]; got != "message" {
		t.Fatalf("expected check name in warning, got %v", got)
	}
}

func TestRunWithoutChecks(t *testing.T) {
	report := validation.Run(1, "n", nil, validation.Options{})
	if !report.Valid() || len(report.Results) != 0 {
		t.Fatalf("expected empty valid report, got %#v", report)
	}
}
