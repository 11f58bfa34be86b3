package submit

import (
	"context"
	"time"

	"github.com/goliatone/go-folio/pkg/model"
)

// DefaultDelay is the latency of the simulated sender.
const DefaultDelay = time.Second

// Sender delivers a validated payload.
type Sender interface {
	Send(ctx context.Context, payload model.FormFields) error
}

// SenderFunc adapts a function into a Sender.
type SenderFunc func(ctx context.Context, payload model.FormFields) error

// Send calls fn.
func (fn SenderFunc) Send(ctx context.Context, payload model.FormFields) error {
	return fn(ctx, payload)
}

// DelaySender simulates delivery by waiting Delay and then succeeding. It
// only fails when ctx ends first.
type DelaySender struct {
	Delay time.Duration
}

// NewDelaySender returns a DelaySender; non-positive delays use DefaultDelay.
func NewDelaySender(delay time.Duration) *DelaySender {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &DelaySender{Delay: delay}
}

// Send waits for the configured delay.
func (s *DelaySender) Send(ctx context.Context, _ model.FormFields) error {
	delay := s.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
