package submit

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-folio/pkg/model"
)

// Observer is told about every accepted submission once it resolves.
type Observer interface {
	ObserveSubmission(outcome Outcome, elapsed time.Duration)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(outcome Outcome, elapsed time.Duration)

// ObserveSubmission calls fn.
func (fn ObserverFunc) ObserveSubmission(outcome Outcome, elapsed time.Duration) {
	fn(outcome, elapsed)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithObserver registers an observer.
func WithObserver(observer Observer) ControllerOption {
	return func(c *Controller) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithClock overrides the time source used to measure latency.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller guards a Sender so at most one submission is in flight. Its
// lifecycle is idle -> pending -> idle.
type Controller struct {
	sender    Sender
	pending   atomic.Bool
	observers []Observer
	now       func() time.Time
}

// NewController wraps sender. A nil sender uses a DelaySender with the
// default delay.
func NewController(sender Sender, options ...ControllerOption) *Controller {
	if sender == nil {
		sender = NewDelaySender(DefaultDelay)
	}
	c := &Controller{sender: sender, now: time.Now}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Pending reports whether a submission is in flight.
func (c *Controller) Pending() bool {
	return c.pending.Load()
}

// Submit delivers payload and returns its outcome. When a submission is
// already pending it returns ErrPending without calling the sender. Sender
// errors are reported through the outcome, never as the returned error.
func (c *Controller) Submit(ctx context.Context, payload model.FormFields) (Outcome, error) {
	if c == nil || c.sender == nil {
		return Outcome{}, ErrNilSender
	}
	if !c.pending.CompareAndSwap(false, true) {
		return Outcome{}, ErrPending
	}
	defer c.pending.Store(false)

	started := c.now()
	outcome := Success()
	if err := c.sender.Send(ctx, payload.Clone()); err != nil {
		outcome = Failure(reasonFor(ctx, err))
	}

	elapsed := c.now().Sub(started)
	for _, observer := range c.observers {
		observer.ObserveSubmission(outcome, elapsed)
	}
	return outcome, nil
}

func reasonFor(ctx context.Context, err error) Reason {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return ReasonTimeout
		}
		return ReasonNetwork
	}
	return Classify(err)
}
