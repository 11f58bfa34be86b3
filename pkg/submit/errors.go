package submit

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrPending is returned when a submission is already in flight.
	ErrPending = errors.New("submit: submission already pending")
	// ErrNilSender is returned by controllers built without a sender.
	ErrNilSender = errors.New("submit: sender is nil")
)

// Reason classifies a failed submission.
type Reason string

const (
	ReasonNetwork Reason = "network"
	ReasonTimeout Reason = "timeout"
	ReasonServer  Reason = "server"
)

// SubmissionError is a failed delivery with its classified reason.
type SubmissionError struct {
	Reason Reason
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("submit: %s failure", e.Reason)
	}
	return fmt.Sprintf("submit: %s failure: %v", e.Reason, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Classify maps an error returned by a Sender to a Reason. Typed
// SubmissionErrors keep their reason; deadlines and net timeouts are
// timeouts; everything else is a network failure.
func Classify(err error) Reason {
	var subErr *SubmissionError
	if errors.As(err, &subErr) {
		return subErr.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonNetwork
}
