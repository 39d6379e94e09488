package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the transport layer.
const (
	CodeInvalidRequest = "invalidRequest"
	CodeNotFound       = "notFound"
	CodeConflict       = "conflict"
	CodeUnsupported    = "unsupported"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidRequestError(format string, args ...interface{}) error {
	return &BookingError{Code: CodeInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &BookingError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &BookingError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewUnsupportedError(format string, args ...interface{}) error {
	return &BookingError{Code: CodeUnsupported, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the booking error code, or "" for untyped errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
