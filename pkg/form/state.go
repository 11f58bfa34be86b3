// Package form owns the mutable state of one rendered form: current values,
// inline errors and the pending flag, plus the transitions between them.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/submit"
	"github.com/goliatone/go-folio/pkg/validation"
)

// Option configures a State.
type Option func(*State)

// WithValidator overrides the validator built from the model.
func WithValidator(v *validation.Validator) Option {
	return func(s *State) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithController overrides the submission controller.
func WithController(c *submit.Controller) Option {
	return func(s *State) {
		if c != nil {
			s.controller = c
		}
	}
}

// WithNotifier sets the notification collaborator.
func WithNotifier(n notify.Notifier) Option {
	return func(s *State) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithValues seeds the field values.
func WithValues(values model.FormFields) Option {
	return func(s *State) {
		for name, value := range values {
			if _, ok := s.fields[name]; ok {
				s.fields[name] = value
			}
		}
	}
}

// Attempt describes what a call to Submit did.
type Attempt struct {
	Result validation.Result
	// Outcome is nil when validation failed and nothing was sent.
	Outcome *submit.Outcome
	// Discarded is set when the outcome arrived after Close.
	Discarded bool
}

// Submitted reports whether the payload reached the sender.
func (a Attempt) Submitted() bool {
	return a.Outcome != nil
}

// State is the owned form state. Transitions are expected from a single
// owner; the mutex only guards Close racing a resolving submission.
type State struct {
	mu         sync.Mutex
	form       model.FormModel
	validator  *validation.Validator
	controller *submit.Controller
	notifier   notify.Notifier
	logger     *slog.Logger

	fields model.FormFields
	errors validation.FieldErrors
	closed bool
}

// New builds a State for form with every field empty.
func New(form model.FormModel, options ...Option) *State {
	s := &State{
		form:     form,
		fields:   form.Empty(),
		notifier: notify.Discard,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.validator == nil {
		s.validator = validation.New(form)
	}
	if s.controller == nil {
		s.controller = submit.NewController(submit.NewDelaySender(submit.DefaultDelay))
	}
	return s
}

// Form returns the model.
func (s *State) Form() model.FormModel {
	return s.form
}

// Validator returns the validator Submit checks values with.
func (s *State) Validator() *validation.Validator {
	return s.validator
}

// Fields returns a copy of the current values.
func (s *State) Fields() model.FormFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields.Clone()
}

// Errors returns a copy of the current inline errors.
func (s *State) Errors() validation.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(validation.FieldErrors, len(s.errors))
	for name, msg := range s.errors {
		out[name] = msg
	}
	return out
}

// Pending reports whether a submission is in flight.
func (s *State) Pending() bool {
	return s.controller.Pending()
}

// Change sets a field value and clears that field's error.
func (s *State) Change(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.fields[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	s.fields[name] = value
	delete(s.errors, name)
	return nil
}

// Submit validates the current values and, when valid, hands them to the
// controller and waits for the outcome. Submitting while pending returns
// submit.ErrPending and changes nothing. On success the fields are cleared;
// on failure they are kept. Either outcome emits one notification unless the
// State was closed in the meantime.
func (s *State) Submit(ctx context.Context) (Attempt, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Attempt{}, ErrClosed
	}
	if s.controller.Pending() {
		s.mu.Unlock()
		return Attempt{}, submit.ErrPending
	}
	s.errors = nil
	result := s.validator.Validate(s.fields)
	if !result.Valid() {
		s.errors = result.Errors()
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "form validation failed", "fields", result.Errors().Fields())
		return Attempt{Result: result}, nil
	}
	s.mu.Unlock()

	outcome, err := s.controller.Submit(ctx, result.Values())
	if err != nil {
		if errors.Is(err, submit.ErrPending) {
			return Attempt{}, err
		}
		return Attempt{Result: result}, fmt.Errorf("form: submit: %w", err)
	}

	attempt := Attempt{Result: result, Outcome: &outcome}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		attempt.Discarded = true
		s.logger.DebugContext(ctx, "form outcome discarded after close", "status", outcome.Status)
		return attempt, nil
	}
	if outcome.OK() {
		s.fields = s.form.Empty()
	}
	s.mu.Unlock()

	if !outcome.OK() {
		s.logger.WarnContext(ctx, "form submission failed", "reason", outcome.Reason)
	}
	s.notifier.Notify(ctx, outcome.Notification())
	return attempt, nil
}

// Close tears the State down. Outcomes resolving afterwards are discarded.
func (s *State) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Closed reports whether Close was called.
func (s *State) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
