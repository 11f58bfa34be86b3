package validation

import (
	"sort"
	"strings"

	"github.com/goliatone/go-folio/pkg/model"
)

// FieldError is a single failed rule on a field.
type FieldError struct {
	Field   string     `json:"field"`
	Rule    model.Rule `json:"rule"`
	Message string     `json:"message"`
}

func (e FieldError) Error() string {
	return "validation: " + e.Field + ": " + e.Message
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

// Fields returns the failing field names sorted alphabetically.
func (e FieldErrors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result is either Valid (carrying the trimmed values) or Invalid (carrying
// one error per failing field).
type Result struct {
	values model.FormFields
	issues []FieldError
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return len(r.issues) == 0
}

// Values returns a copy of the trimmed values. It is nil for invalid results.
func (r Result) Values() model.FormFields {
	if !r.Valid() {
		return nil
	}
	return r.values.Clone()
}

// Errors returns the field → message map. It is nil for valid results.
func (r Result) Errors() FieldErrors {
	if r.Valid() {
		return nil
	}
	out := make(FieldErrors, len(r.issues))
	for _, issue := range r.issues {
		out[issue.Field] = issue.Message
	}
	return out
}

// Issues returns the structured errors in field declaration order.
func (r Result) Issues() []FieldError {
	if len(r.issues) == 0 {
		return nil
	}
	return append([]FieldError(nil), r.issues...)
}

// Err returns the result as an error, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Issues: r.Issues()}
}

// Error aggregates the issues of an invalid result.
type Error struct {
	Issues []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}
