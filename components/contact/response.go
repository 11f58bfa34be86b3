package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-folio/pkg/notify"
	"github.com/goliatone/go-folio/pkg/validation"
)

// Error codes carried in the response envelope.
const (
	CodeInvalidPayload    = "invalid_payload"
	CodeValidationFailed  = "validation_failed"
	CodeSubmissionPending = "submission_pending"
	CodeRateLimited       = "rate_limited"
	CodeSubmissionFailed  = "submission_failed"
	CodeForbidden         = "forbidden"
	CodeMethodNotAllowed  = "method_not_allowed"
	CodeInternal          = "internal_error"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Response is the JSON envelope returned by the contact endpoint.
type Response struct {
	Status       string                 `json:"status"`
	Data         any                    `json:"data,omitempty"`
	Code         string                 `json:"code,omitempty"`
	Message      string                 `json:"message,omitempty"`
	FormID       string                 `json:"formId,omitempty"`
	Errors       validation.FieldErrors `json:"errors,omitempty"`
	Notification *notify.Notification   `json:"notification,omitempty"`
}

// SuccessData is the data member of a successful submission.
type SuccessData struct {
	// Reset tells the client to clear its inputs.
	Reset bool `json:"reset"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(resp)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Status: statusError, Code: code, Message: message})
}

func guardStatus(err error) int {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	return code
}
