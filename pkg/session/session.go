// Package session fills a form interactively. Each field is prompted in
// declaration order, answers are delivered to the field as change and blur
// notifications, and invalid answers are re-prompted. The session moves
// through the phases collecting, confirming and finally submitted or
// cancelled.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/checks"
	"github.com/goliatone/go-formstate/pkg/coerce"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Session phases.
const (
	PhaseCollecting = "collecting"
	PhaseConfirming = "confirming"
	PhaseSubmitted  = "submitted"
	PhaseCancelled  = "cancelled"
)

const (
	eventCollected = "collected"
	eventRevise    = "revise"
	eventSubmit    = "submit"
	eventCancel    = "cancel"
)

// Session drives one form through a prompt driver.
type Session struct {
	mu sync.Mutex

	def  schema.Form
	form *form.Form

	driver      PromptDriver
	machine     *fsm.FSM
	maxAttempts int
	confirm     bool
	logger      *zap.Logger

	result any
}

// New creates a session for f. def supplies labels, types and options for
// the prompts; form fields missing from def are prompted as text.
func New(def schema.Form, f *form.Form, opts ...Option) *Session {
	s := &Session{
		def:         def,
		form:        f,
		maxAttempts: DefaultMaxAttempts,
		confirm:     true,
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	s.logger = s.logger.With(zap.String("form", f.Name()))

	s.machine = fsm.NewFSM(
		PhaseCollecting,
		fsm.Events{
			{Name: eventCollected, Src: []string{PhaseCollecting}, Dst: PhaseConfirming},
			{Name: eventRevise, Src: []string{PhaseConfirming}, Dst: PhaseCollecting},
			{Name: eventSubmit, Src: []string{PhaseConfirming}, Dst: PhaseSubmitted},
			{Name: eventCancel, Src: []string{PhaseCollecting, PhaseConfirming}, Dst: PhaseCancelled},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.logger.Debug("session phase changed", zap.String("from", e.Src), zap.String("to", e.Dst))
			},
		},
	)
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() string {
	return s.machine.Current()
}

// Result returns what the form's submit procedure returned.
func (s *Session) Result() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Run prompts every field, asks for confirmation and submits the form with
// its values as the single argument. The returned state reflects the form
// after the session ended.
func (s *Session) Run(ctx context.Context) (form.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if phase := s.machine.Current(); phase != PhaseCollecting {
		return s.form.State(), fmt.Errorf("session: cannot run in phase %s", phase)
	}

	pending := s.fieldNames()
	var state form.State
	for round := 1; ; round++ {
		if err := s.collect(ctx, pending); err != nil {
			return s.fail(ctx, err)
		}
		if err := s.machine.Event(ctx, eventCollected); err != nil {
			return s.fail(ctx, err)
		}

		state = s.form.State()
		if state.IsAllValid {
			break
		}
		if round >= s.maxAttempts {
			return s.fail(ctx, fmt.Errorf("%w: form %q is still invalid", ErrTooManyAttempts, s.form.Name()))
		}
		pending = invalidFields(state)
		if err := s.driver.Info(ctx, "Some answers need another look."); err != nil {
			return s.fail(ctx, err)
		}
		if err := s.machine.Event(ctx, eventRevise); err != nil {
			return s.fail(ctx, err)
		}
	}

	if s.confirm {
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit " + s.title() + "?", Default: true})
		if err != nil {
			return s.fail(ctx, err)
		}
		if !ok {
			return s.fail(ctx, ErrCancelled)
		}
	}

	if err := s.machine.Event(ctx, eventSubmit); err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.form.Submit(ctx, state.Values())
	s.result = result
	return s.form.State(), err
}

func (s *Session) fail(ctx context.Context, err error) (form.State, error) {
	if s.machine.Can(eventCancel) {
		if eventErr := s.machine.Event(context.WithoutCancel(ctx), eventCancel); eventErr != nil {
			s.logger.Warn("session cancel transition failed", zap.Error(eventErr))
		}
	}
	s.logger.Debug("session ended without submitting", zap.Error(err))
	return s.form.State(), err
}

func (s *Session) collect(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := s.promptField(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, name string) error {
	source, ok := s.form.Field(name)
	if !ok {
		return nil
	}
	control, ok := source.(field.Control)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotControllable, name)
	}
	def, ok := s.def.Field(name)
	if !ok {
		def = schema.Field{Name: name, Type: schema.FieldTypeString}
	}

	for attempt := 1; ; attempt++ {
		n, err := s.ask(ctx, def, control.Status().Value)
		if err != nil {
			return err
		}
		if err := control.OnChange(n); err != nil {
			return fmt.Errorf("session: field %q: %w", name, err)
		}
		if err := control.OnBlur(n); err != nil {
			return fmt.Errorf("session: field %q: %w", name, err)
		}

		status := control.Status()
		if !status.IsError {
			return nil
		}
		for _, message := range validation.Messages(status.Errors) {
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", def.DisplayLabel(), message)); err != nil {
				return err
			}
		}
		if attempt >= s.maxAttempts {
			return fmt.Errorf("%w: field %q", ErrTooManyAttempts, name)
		}
	}
}

func (s *Session) ask(ctx context.Context, def schema.Field, current any) (coerce.Notification, error) {
	label := def.DisplayLabel()
	if def.Required {
		label += " *"
	}

	if def.Type == schema.FieldTypeBoolean {
		checked, _ := current.(bool)
		answer, err := s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: checked, Help: def.Description})
		if err != nil {
			return nil, err
		}
		return coerce.Check(schema.InputType(def), answer), nil
	}

	if options := enumOptions(def); len(options) > 0 {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, formatValue(current)),
			Help:         def.Description,
		})
		if err != nil {
			return nil, err
		}
		if idx >= 0 && idx < len(options) {
			return coerce.Input(schema.InputType(def), options[idx]), nil
		}
	}

	answer, err := s.driver.Input(ctx, InputConfig{Message: label, Default: formatValue(current), Help: def.Description})
	if err != nil {
		return nil, err
	}
	return coerce.Input(schema.InputType(def), answer), nil
}

func (s *Session) fieldNames() []string {
	registered := s.form.Names()
	present := make(map[string]bool, len(registered))
	for _, name := range registered {
		present[name] = true
	}

	names := make([]string, 0, len(registered))
	seen := make(map[string]bool, len(registered))
	for _, def := range s.def.Fields {
		if present[def.Name] && !seen[def.Name] {
			names = append(names, def.Name)
			seen[def.Name] = true
		}
	}
	for _, name := range registered {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names
}

func (s *Session) title() string {
	if s.def.Title != "" {
		return s.def.Title
	}
	return s.form.Name()
}

func invalidFields(state form.State) []string {
	var names []string
	for _, status := range state.Fields {
		if status.IsError {
			names = append(names, status.Name)
		}
	}
	return names
}

func enumOptions(def schema.Field) []string {
	for _, rule := range def.Rules {
		if rule.Kind != checks.RuleEnum {
			continue
		}
		var options []string
		for _, option := range strings.Split(rule.Params["values"], ",") {
			if trimmed := strings.TrimSpace(option); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		return options
	}
	return nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
