// Package forms implements the booking and contact form state machine:
// field values, per-field validation and the submit lifecycle
// idle -> submitting -> success|error -> idle.
package forms

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"
)

var (
	// ErrInFlight is returned by Submit while a previous submission has not
	// completed.
	ErrInFlight = errors.New("forms: submission already in flight")
	// ErrInvalid is returned by Submit when validation fails.
	ErrInvalid = errors.New("forms: validation failed")
)

// Status is the submit lifecycle state.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Choice is one option of a select field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one input.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Required bool     `json:"required"`
	NotPast  bool     `json:"not_past,omitempty"`
	Choices  []Choice `json:"choices,omitempty"`
}

// Schema is the ordered list of fields of a form.
type Schema struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Field returns the definition of the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks every field of values and returns the failures keyed by
// field name. An empty map means the values are acceptable.
func (s Schema) Validate(values map[string]string, now time.Time) map[string]string {
	errs := map[string]string{}
	for _, f := range s.Fields {
		if msg := f.Check(values[f.Name], now); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

// Submitter delivers validated values to the backend.
type Submitter interface {
	Submit(ctx context.Context, values map[string]string) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, values map[string]string) error

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, values map[string]string) error {
	return f(ctx, values)
}

// Form is the state of one form for one page view. It is safe for concurrent
// use so a slow Submit can overlap a second click.
type Form struct {
	mu      sync.Mutex
	schema  Schema
	values  map[string]string
	errs    map[string]string
	status  Status
	lastErr error
	now     func() time.Time
}

// Option configures a Form.
type Option func(*Form)

// WithClock replaces time.Now for date checks.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// New returns an empty idle form for schema.
func New(schema Schema, opts ...Option) *Form {
	f := &Form{
		schema: schema,
		values: map[string]string{},
		errs:   map[string]string{},
		status: StatusIdle,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Schema returns the form definition.
func (f *Form) Schema() Schema { return f.schema }

// Status returns the lifecycle state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Err returns the error of the last failed submission.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Values returns a copy of all field values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.values)
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errs)
}

// Invalid reports whether the field is currently marked invalid.
func (f *Form) Invalid(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.errs[name]
	return ok
}

// Set edits a field. Editing after a finished submission returns the form to
// idle; a field already marked invalid is re-checked immediately.
func (f *Form) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	if f.status == StatusSuccess || f.status == StatusError {
		f.status = StatusIdle
		f.lastErr = nil
	}
	if _, marked := f.errs[name]; marked {
		f.checkLocked(name)
	}
}

// Blur validates a single field, as when it loses focus, and returns its
// message ("" when valid).
func (f *Form) Blur(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkLocked(name)
}

func (f *Form) checkLocked(name string) string {
	field, ok := f.schema.Field(name)
	if !ok {
		return ""
	}
	msg := field.Check(f.values[name], f.now())
	if msg == "" {
		delete(f.errs, name)
	} else {
		f.errs[name] = msg
	}
	return msg
}

// Validate checks every field and reports whether all passed.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = f.schema.Validate(f.values, f.now())
	return len(f.errs) == 0
}

// Submit validates and hands the values to s. On success every field is
// cleared; on failure the values are kept so the visitor can retry.
func (f *Form) Submit(ctx context.Context, s Submitter) error {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.errs = f.schema.Validate(f.values, f.now())
	if len(f.errs) > 0 {
		f.mu.Unlock()
		return ErrInvalid
	}
	f.status = StatusSubmitting
	f.lastErr = nil
	values := maps.Clone(f.values)
	f.mu.Unlock()

	err := s.Submit(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = StatusError
		f.lastErr = err
		return err
	}
	f.status = StatusSuccess
	f.values = map[string]string{}
	f.errs = map[string]string{}
	return nil
}

// Reset clears values, errors and status.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = map[string]string{}
	f.errs = map[string]string{}
	f.status = StatusIdle
	f.lastErr = nil
}
