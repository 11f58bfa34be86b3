package metrics

import (
	"context"
	"time"

	"github.com/goliatone/go-folio/pkg/model"
	"github.com/goliatone/go-folio/pkg/submit"
)

// InstrumentedSender counts delivery attempts by outcome and records how long
// the wrapped Sender took.
type InstrumentedSender struct {
	next    submit.Sender
	metrics *Metrics
	now     func() time.Time
}

var _ submit.Sender = (*InstrumentedSender)(nil)

// InstrumentSender wraps next. A nil Metrics returns next unchanged.
func (m *Metrics) InstrumentSender(next submit.Sender) submit.Sender {
	if m == nil || next == nil {
		return next
	}
	return &InstrumentedSender{next: next, metrics: m, now: time.Now}
}

// Send delegates to the wrapped Sender and returns its error untouched.
func (s *InstrumentedSender) Send(ctx context.Context, payload model.FormFields) error {
	started := s.now()
	err := s.next.Send(ctx, payload)
	s.metrics.DeliveryDuration.Observe(s.now().Sub(started).Seconds())

	status, reason := string(submit.StatusSuccess), ""
	if err != nil {
		status, reason = string(submit.StatusFailure), string(submit.Classify(err))
	}
	s.metrics.Deliveries.WithLabelValues(status, reason).Inc()
	return err
}
