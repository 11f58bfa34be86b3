package submit

import "github.com/goliatone/go-folio/pkg/notify"

// Status is the terminal state of an accepted submission.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome is produced exactly once per accepted submission.
type Outcome struct {
	Status Status `json:"status"`
	Reason Reason `json:"reason,omitempty"`
}

// Success returns a successful outcome.
func Success() Outcome {
	return Outcome{Status: StatusSuccess}
}

// Failure returns a failed outcome with reason.
func Failure(reason Reason) Outcome {
	return Outcome{Status: StatusFailure, Reason: reason}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

// Notification returns the user-facing notification for the outcome.
func (o Outcome) Notification() notify.Notification {
	if o.OK() {
		return notify.Success()
	}
	return notify.Failure(string(o.Reason))
}
