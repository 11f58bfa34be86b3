package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/submit"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type gateSender struct {
	started chan struct{}
	release chan error
}

func newGateSender() *gateSender {
	return &gateSender{started: make(chan struct{}, 1), release: make(chan error, 1)}
}

func (g *gateSender) Send(ctx context.Context, _ model.FormFields) error {
	g.started <- struct{}{}
	select {
	case err := <-g.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fill(t *testing.T, s *State, values model.FormFields) {
	t.Helper()
	for name, value := range values {
		if err := s.Change(name, value); err != nil {
			t.Fatalf("change %s: %v", name, err)
		}
	}
}

var valid = model.FormFields{"name": "Ana", "email": "ana@ex.com", "message": "Oi"}

func TestState_SuccessClearsFieldsAndNotifies(t *testing.T) {
	rec := &notify.Recorder{}
	sender := submit.SenderFunc(func(context.Context, model.FormFields) error { return nil })
	s := New(model.ContactForm(), WithNotifier(rec), WithController(submit.NewController(sender)))
	fill(t, s, valid)

	attempt, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !attempt.Submitted() || !attempt.Outcome.OK() {
		t.Fatalf("expected successful submission, got %+v", attempt)
	}
	if diff := cmp.Diff(model.ContactForm().Empty(), s.Fields()); diff != "" {
		t.Fatalf("fields not cleared (-want +got):\n%s", diff)
	}
	if s.Pending() {
		t.Fatalf("expected pending to be false")
	}
	if diff := cmp.Diff([]notify.Notification{notify.Success()}, rec.All()); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestState_InvalidStoresErrorsWithoutSending(t *testing.T) {
	called := false
	sender := submit.SenderFunc(func(context.Context, model.FormFields) error {
		called = true
		return nil
	})
	s := New(model.ContactForm(), WithController(submit.NewController(sender)))
	fill(t, s, model.FormFields{"email": "not-an-email"})

	attempt, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Submitted() || called {
		t.Fatalf("invalid form must not be sent")
	}
	if got := s.Errors()["email"]; got != "Email inválido" {
		t.Fatalf("unexpected email error %q", got)
	}
	if got := s.Fields()["email"]; got != "not-an-email" {
		t.Fatalf("fields must be kept on validation failure, got %q", got)
	}

	if err := s.Change("email", "ana@ex.com"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, ok := s.Errors()["email"]; ok {
		t.Fatalf("change should clear the field error")
	}
	if _, ok := s.Errors()["name"]; !ok {
		t.Fatalf("change should keep other errors")
	}
}

func TestState_SubmitWhilePendingIsNoop(t *testing.T) {
	rec := &notify.Recorder{}
	sender := newGateSender()
	s := New(model.ContactForm(), WithNotifier(rec), WithController(submit.NewController(sender)))
	fill(t, s, valid)

	done := make(chan Attempt, 1)
	go func() {
		attempt, _ := s.Submit(context.Background())
		done <- attempt
	}()
	<-sender.started

	if !s.Pending() {
		t.Fatalf("expected pending")
	}
	before := s.Fields()
	if _, err := s.Submit(context.Background()); !errors.Is(err, submit.ErrPending) {
		t.Fatalf("expected ErrPending, got %v", err)
	}
	if diff := cmp.Diff(before, s.Fields()); diff != "" {
		t.Fatalf("pending submit changed fields:\n%s", diff)
	}

	sender.release <- nil
	<-done
	if got := len(rec.All()); got != 1 {
		t.Fatalf("expected exactly one notification, got %d", got)
	}
}

func TestState_FailureKeepsFields(t *testing.T) {
	rec := &notify.Recorder{}
	sender := submit.SenderFunc(func(context.Context, model.FormFields) error {
		return &submit.SubmissionError{Reason: submit.ReasonServer}
	})
	s := New(model.ContactForm(), WithNotifier(rec), WithController(submit.NewController(sender)))
	fill(t, s, valid)

	attempt, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.Outcome.OK() || attempt.Outcome.Reason != submit.ReasonServer {
		t.Fatalf("expected server failure, got %+v", attempt.Outcome)
	}
	if diff := cmp.Diff(valid, s.Fields()); diff != "" {
		t.Fatalf("fields must be kept on failure:\n%s", diff)
	}
	last, _ := rec.Last()
	if diff := cmp.Diff(notify.Failure("server"), last); diff != "" {
		t.Fatalf("notification mismatch:\n%s", diff)
	}
}

func TestState_OutcomeAfterCloseIsDiscarded(t *testing.T) {
	rec := &notify.Recorder{}
	sender := newGateSender()
	s := New(model.ContactForm(), WithNotifier(rec), WithController(submit.NewController(sender)))
	fill(t, s, valid)

	done := make(chan Attempt, 1)
	go func() {
		attempt, _ := s.Submit(context.Background())
		done <- attempt
	}()
	<-sender.started
	s.Close()
	sender.release <- nil

	select {
	case attempt := <-done:
		if !attempt.Discarded {
			t.Fatalf("expected discarded attempt")
		}
	case <-time.After(time.Second):
		t.Fatalf("submit did not resolve")
	}
	if len(rec.All()) != 0 {
		t.Fatalf("discarded outcome must not notify")
	}
	if diff := cmp.Diff(valid, s.Fields()); diff != "" {
		t.Fatalf("discarded outcome must not mutate fields:\n%s", diff)
	}
	if err := s.Change("name", "x"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestState_ChangeUnknownField(t *testing.T) {
	s := New(model.ContactForm())
	if err := s.Change("phone", "123"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestState_WithValuesSeedsDeclaredFields(t *testing.T) {
	s := New(model.ContactForm(), WithValues(model.FormFields{"name": "Ana", "other": "x"}))
	if got := s.Fields(); got["name"] != "Ana" || len(got) != 3 {
		t.Fatalf("unexpected seeded fields %v", got)
	}
}
