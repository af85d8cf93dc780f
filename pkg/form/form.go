package form

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/internal/logging"
	"github.com/goliatone/go-formstate/pkg/field"
)

// ErrNameRequired is returned when a form is created without a name.
var ErrNameRequired = errors.New("form: name is required")

// Submission records one invocation of Submit.
type Submission struct {
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Args []any     `json:"args,omitempty"`
	// Err is the error returned by the submit procedure, if any.
	Err error `json:"-"`
}

// Form is a named, ordered set of fields.
type Form struct {
	mu sync.RWMutex

	name   string
	order  []string
	fields map[string]field.Source

	submit      SubmitFunc
	submitted   bool
	submissions []Submission

	logger *zap.Logger
	now    func() time.Time
}

// New creates an empty form.
func New(name string, opts ...Option) (*Form, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrNameRequired
	}
	f := &Form{
		name:   trimmed,
		fields: make(map[string]field.Source),
		logger: logging.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.logger = f.logger.With(zap.String("form", f.name))
	return f, nil
}

// MustNew panics when New fails.
func MustNew(name string, opts ...Option) *Form {
	f, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the form name.
func (f *Form) Name() string {
	return f.name
}

// Add registers fields. A field whose name is already registered replaces
// the existing entry and keeps its position.
func (f *Form) Add(sources ...field.Source) *Form {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, source := range sources {
		if isNil(source) {
			f.logger.Debug("skipping nil field")
			continue
		}
		name := source.Name()
		if _, exists := f.fields[name]; exists {
			f.logger.Debug("field overridden", zap.String("field", name))
		} else {
			f.order = append(f.order, name)
		}
		f.fields[name] = source
	}
	return f
}

// Remove hides the named field from the form. The field itself is not
// touched. It reports whether a field was removed.
func (f *Form) Remove(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.fields[name]; !exists {
		return false
	}
	delete(f.fields, name)
	for i, candidate := range f.order {
		if candidate == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true
}

// Field looks up a registered field.
func (f *Form) Field(name string) (field.Source, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	source, ok := f.fields[name]
	return source, ok
}

// Names returns the field names in registration order.
func (f *Form) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.order...)
}

// Len returns the number of registered fields.
func (f *Form) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.order)
}

// Clear resets every field to its zero value.
func (f *Form) Clear() {
	for _, source := range f.sources() {
		source.Clear()
	}
}

// ClearField resets a single field. It reports whether the field exists.
func (f *Form) ClearField(name string) bool {
	source, ok := f.Field(name)
	if !ok {
		return false
	}
	source.Clear()
	return true
}

// Submit invokes the configured procedure with args and returns its result.
// The form is marked submitted whether or not the procedure fails; it does
// not check validity first.
func (f *Form) Submit(ctx context.Context, args ...any) (any, error) {
	f.mu.RLock()
	fn := f.submit
	f.mu.RUnlock()

	var (
		result any
		err    error
	)
	if fn != nil {
		result, err = fn(ctx, args...)
	}

	record := Submission{
		ID:   uuid.NewString(),
		At:   f.now(),
		Args: append([]any(nil), args...),
		Err:  err,
	}

	f.mu.Lock()
	f.submitted = true
	f.submissions = append(f.submissions, record)
	f.mu.Unlock()

	if err != nil {
		f.logger.Debug("submit procedure failed", zap.String("submission", record.ID), zap.Error(err))
	} else {
		f.logger.Debug("form submitted", zap.String("submission", record.ID))
	}
	return result, err
}

// State derives the form state from the current field snapshots.
func (f *Form) State() State {
	f.mu.RLock()
	sources := f.sourcesLocked()
	submitted := f.submitted
	submissions := append([]Submission(nil), f.submissions...)
	f.mu.RUnlock()

	statuses := make([]field.Status, 0, len(sources))
	for _, source := range sources {
		statuses = append(statuses, source.Status())
	}
	state := derive(f.name, statuses)
	state.IsSubmitted = submitted
	state.Submissions = submissions
	return state
}

func (f *Form) sources() []field.Source {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sourcesLocked()
}

func (f *Form) sourcesLocked() []field.Source {
	out := make([]field.Source, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.fields[name])
	}
	return out
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(source field.Source) bool {
	if source == nil {
		return true
	}
	rv := reflect.ValueOf(source)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
