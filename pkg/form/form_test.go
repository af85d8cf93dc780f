package form_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/config"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func quietConfig() *config.Config {
	cfg := config.Default()
	cfg.Logger = zap.NewNop()
	return &cfg
}

func failing(message string) validation.Check[string] {
	return validation.Err("fail", func(string) error { return errors.New(message) })
}

func newForm(t *testing.T, opts ...form.Option) *form.Form {
	t.Helper()
	opts = append([]form.Option{form.WithLogger(zap.NewNop())}, opts...)
	f, err := form.New("signup", opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestStateAggregatesErrors(t *testing.T) {
	a := field.MustNew(field.Definition[string]{Name: "a", Config: quietConfig()})
	b := field.MustNew(field.Definition[string]{Name: "b", Config: quietConfig()}, failing("e"))

	state := newForm(t).Add(a, b).State()

	if !state.IsError || state.IsAllError || state.IsAllValid {
		t.Fatalf("unexpected error predicates %#v", state)
	}
	if diff := cmp.Diff([]string{"e"}, validation.Messages(state.Errors)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if state.Errors[0] != b.State().Error {
		t.Fatalf("expected flattened errors to reference field errors")
	}
}

func TestStateAnyAndAllPredicates(t *testing.T) {
	a := field.MustNew(field.Definition[string]{Name: "a", Config: quietConfig()})
	b := field.MustNew(field.Definition[string]{Name: "b", Config: quietConfig()})
	f := newForm(t).Add(a, b)

	_ = a.Set("x")
	state := f.State()
	if !state.IsChanged || state.IsAllChanged || !state.IsDifferent || state.IsAllDifferent {
		t.Fatalf("unexpected predicates after one change %#v", state)
	}

	_ = b.Set("y")
	_ = a.OnBlur(nil)
	_ = b.OnBlur(nil)
	state = f.State()
	if !state.IsAllChanged || !state.IsAllBlurred || !state.IsAllDifferent || !state.IsAllValid {
		t.Fatalf("unexpected predicates after full interaction %#v", state)
	}
	if diff := cmp.Diff(map[string]any{"a": "x", "b": "y"}, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyFormIsVacuouslyAll(t *testing.T) {
	state := newForm(t).State()

	want := form.State{
		Name:           "signup",
		Fields:         []field.Status{},
		IsAllChanged:   true,
		IsAllBlurred:   true,
		IsAllDifferent: true,
		IsAllError:     true,
		IsAllValid:     true,
		IsEmpty:        true,
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestAddOverridesInPlace(t *testing.T) {
	a := field.MustNew(field.Definition[string]{Name: "a", Value: "first", Config: quietConfig()})
	b := field.MustNew(field.Definition[string]{Name: "b", Config: quietConfig()})
	replacement := field.MustNew(field.Definition[string]{Name: "a", Value: "second", Config: quietConfig()})

	f := newForm(t).Add(a, b).Add(replacement)

	if diff := cmp.Diff([]string{"a", "b"}, f.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	status, ok := f.State().Field("a")
	if !ok || status.Value != "second" {
		t.Fatalf("expected replacement to win, got %#v", status)
	}
}

func TestAddSkipsNilFields(t *testing.T) {
	var missing *field.Field[string]
	a := field.MustNew(field.Definition[string]{Name: "a", Config: quietConfig()})

	f := newForm(t).Add(nil, missing, a)

	if diff := cmp.Diff([]string{"a"}, f.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if state := f.State(); len(state.Fields) != 1 {
		t.Fatalf("expected one field in state, got %#v", state.Fields)
	}
}

func TestRemoveHidesField(t *testing.T) {
	a := field.MustNew(field.Definition[string]{Name: "a", Config: quietConfig()}, failing("bad"))
	f := newForm(t).Add(a)

	if !f.Remove("a") {
		t.Fatalf("expected Remove to report the field")
	}
	if f.Remove("a") {
		t.Fatalf("expected second Remove to be a no-op")
	}
	state := f.State()
	if !state.IsEmpty || state.IsError {
		t.Fatalf("expected removed field to be hidden, got %#v", state)
	}
	if !a.State().IsError {
		t.Fatalf("expected removed field to keep its own state")
	}
}

func TestSubmitRecordsInvocation(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var got []any
	f := newForm(t,
		form.WithClock(func() time.Time { return at }),
		form.WithSubmit(func(_ context.Context, args ...any) (any, error) {
			got = args
			return "ok", nil
		}),
	)

	result, err := f.Submit(context.Background(), 1, "two")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected procedure result, got %v", result)
	}
	if diff := cmp.Diff([]any{1, "two"}, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}

	state := f.State()
	if !state.IsSubmitted || len(state.Submissions) != 1 {
		t.Fatalf("expected one submission, got %#v", state.Submissions)
	}
	if state.Submissions[0].ID == "" || !state.Submissions[0].At.Equal(at) {
		t.Fatalf("unexpected submission record %#v", state.Submissions[0])
	}
}

func TestSubmitMarksSubmittedOnFailure(t *testing.T) {
	boom := errors.New("boom")
	f := newForm(t, form.WithSubmit(func(context.Context, ...any) (any, error) {
		return nil, boom
	}))

	_, err := f.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected procedure error, got %v", err)
	}
	state := f.State()
	if !state.IsSubmitted || !errors.Is(state.Submissions[0].Err, boom) {
		t.Fatalf("expected failed submission to be recorded, got %#v", state)
	}
}

func TestSubmitDoesNotGateOnValidity(t *testing.T) {
	a := field.MustNew(field.Definition[string]{Name: "a", Config: quietConfig()}, failing("bad"))
	called := false
	f := newForm(t, form.WithSubmit(func(context.Context, ...any) (any, error) {
		called = true
		return nil, nil
	})).Add(a)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !called {
		t.Fatalf("expected procedure to run for an invalid form")
	}
}

func TestSubmitWithoutProcedure(t *testing.T) {
	f := newForm(t)
	result, err := f.Submit(context.Background())
	if result != nil || err != nil {
		t.Fatalf("expected nil result, got %v, %v", result, err)
	}
	if !f.State().IsSubmitted {
		t.Fatalf("expected form to be submitted")
	}
}

func TestClear(t *testing.T) {
	a := field.MustNew(field.Definition[string]{Name: "a", Value: "x", Config: quietConfig()})
	b := field.MustNew(field.Definition[int]{Name: "b", Value: 3, Config: quietConfig()})
	f := newForm(t).Add(a, b)

	if !f.ClearField("a") || f.ClearField("missing") {
		t.Fatalf("unexpected ClearField results")
	}
	if a.Value() != "" || b.Value() != 3 {
		t.Fatalf("expected only a to be cleared")
	}
	f.Clear()
	if b.Value() != 0 {
		t.Fatalf("expected b to be cleared, got %d", b.Value())
	}
}

func TestNewRequiresName(t *testing.T) {
	if _, err := form.New(" "); !errors.Is(err, form.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}
