package form

import "errors"

var (
	// ErrClosed is returned by operations on a torn-down State.
	ErrClosed = errors.New("form: state is closed")
	// ErrUnknownField is returned when changing a field the model does not declare.
	ErrUnknownField = errors.New("form: unknown field")
)
