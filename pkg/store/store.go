// Package store keeps named forms so that fields can be registered, removed
// and cleared by form name.
package store

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/field"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	// ErrFormNotFound is returned when an operation names an unknown form.
	ErrFormNotFound = errors.New("store: form not found")
	// ErrFormRequired is returned by AddForm for a nil form.
	ErrFormRequired = errors.New("store: form is required")
)

// Store maps form names to forms.
type Store struct {
	mu     sync.RWMutex
	forms  map[string]*form.Form
	logger *zap.Logger
}

// New creates an empty store. A nil logger falls back to the package
// default.
func New(logger *zap.Logger) *Store {
	return &Store{
		forms:  make(map[string]*form.Form),
		logger: logging.OrDefault(logger),
	}
}

// AddForm registers f under its name, replacing any form of the same name.
func (s *Store) AddForm(f *form.Form) error {
	if f == nil {
		return ErrFormRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[f.Name()] = f
	return nil
}

// RemoveForm drops the named form. It reports whether a form was removed.
func (s *Store) RemoveForm(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[name]; !ok {
		return false
	}
	delete(s.forms, name)
	return true
}

// Form returns the named form.
func (s *Store) Form(name string) (*form.Form, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[name]
	return f, ok
}

// Names returns the registered form names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddFieldToForm registers source on the named form.
func (s *Store) AddFieldToForm(source field.Source, formName string) error {
	f, ok := s.Form(formName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrFormNotFound, formName)
	}
	f.Add(source)
	return nil
}

// RemoveFieldFromForm hides the named field. Unknown forms or fields are
// logged and ignored.
func (s *Store) RemoveFieldFromForm(fieldName, formName string) {
	f, ok := s.Form(formName)
	if !ok {
		s.logger.Warn("cannot remove field from unknown form",
			zap.String("form", formName), zap.String("field", fieldName))
		return
	}
	if !f.Remove(fieldName) {
		s.logger.Warn("cannot remove unknown field",
			zap.String("form", formName), zap.String("field", fieldName))
	}
}

// Clear resets field values. Without arguments every form is cleared; with
// a form name only that form; with a form and a field name only that field.
// Unknown names are logged and ignored.
func (s *Store) Clear(names ...string) {
	switch len(names) {
	case 0:
		s.mu.RLock()
		forms := make([]*form.Form, 0, len(s.forms))
		for _, f := range s.forms {
			forms = append(forms, f)
		}
		s.mu.RUnlock()
		for _, f := range forms {
			f.Clear()
		}
	case 1:
		f, ok := s.Form(names[0])
		if !ok {
			s.logger.Warn("cannot clear unknown form", zap.String("form", names[0]))
			return
		}
		f.Clear()
	default:
		f, ok := s.Form(names[0])
		if !ok {
			s.logger.Warn("cannot clear field of unknown form",
				zap.String("form", names[0]), zap.String("field", names[1]))
			return
		}
		if !f.ClearField(names[1]) {
			s.logger.Warn("cannot clear unknown field",
				zap.String("form", names[0]), zap.String("field", names[1]))
		}
	}
}

// FormSnapshot is a detached copy of a form's state.
type FormSnapshot struct {
	Name        string              `json:"name"`
	Fields      []string            `json:"fields"`
	Values      map[string]any      `json:"values"`
	Errors      map[string][]string `json:"errors,omitempty"`
	IsChanged   bool                `json:"isChanged"`
	IsBlurred   bool                `json:"isBlurred"`
	IsAllValid  bool                `json:"isAllValid"`
	IsSubmitted bool                `json:"isSubmitted"`
}

// Snapshot returns deep copies of every form's state, keyed by form name.
// Mutating a snapshot never reaches the live fields.
func (s *Store) Snapshot() (map[string]FormSnapshot, error) {
	s.mu.RLock()
	forms := make([]*form.Form, 0, len(s.forms))
	for _, f := range s.forms {
		forms = append(forms, f)
	}
	s.mu.RUnlock()

	live := make(map[string]FormSnapshot, len(forms))
	values := make(map[string]map[string]any, len(forms))
	for _, f := range forms {
		snap := snapshotOf(f.State())
		values[snap.Name] = snap.Values
		snap.Values = nil
		live[snap.Name] = snap
	}

	var out map[string]FormSnapshot
	if err := deepcopy.Copy(&out, &live); err != nil {
		return nil, fmt.Errorf("store: snapshot: %w", err)
	}
	for name, vals := range values {
		copied, err := copyValues(vals)
		if err != nil {
			return nil, fmt.Errorf("store: snapshot %q: %w", name, err)
		}
		snap := out[name]
		snap.Values = copied
		out[name] = snap
	}
	return out, nil
}

// copyValues copies field values one by one. Scalars and time.Time are
// immutable and assigned directly; deepcopy skips unexported struct fields
// and would zero a time.Time.
func copyValues(src map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(src))
	for key, value := range src {
		copied, err := copyValue(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		out[key] = copied
	}
	return out, nil
}

func copyValue(value any) (any, error) {
	switch value.(type) {
	case nil, time.Time, *time.Location:
		return value, nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Func:
		return value, nil
	}
	src := reflect.New(rv.Type())
	src.Elem().Set(rv)
	dst := reflect.New(rv.Type())
	if err := deepcopy.Copy(dst.Interface(), src.Interface()); err != nil {
		return nil, err
	}
	return dst.Elem().Interface(), nil
}

func snapshotOf(state form.State) FormSnapshot {
	snap := FormSnapshot{
		Name:        state.Name,
		Fields:      make([]string, 0, len(state.Fields)),
		Values:      state.Values(),
		IsChanged:   state.IsChanged,
		IsBlurred:   state.IsBlurred,
		IsAllValid:  state.IsAllValid,
		IsSubmitted: state.IsSubmitted,
	}
	for _, status := range state.Fields {
		snap.Fields = append(snap.Fields, status.Name)
		if len(status.Errors) == 0 {
			continue
		}
		if snap.Errors == nil {
			snap.Errors = make(map[string][]string)
		}
		snap.Errors[status.Name] = validation.Messages(status.Errors)
	}
	return snap
}
