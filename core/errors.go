package core

import "github.com/pkg/errors"

// FieldError pins a message to a single form field so a screen can
// re-render with the error next to the offending input.
type FieldError struct {
	Field string
	Error string
}

// ValidationError aggregates the field errors of one form submission.
// It covers the checks validator tags cannot express (cross-field time
// ordering, multipart file presence).
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

// NewShutdownError signals that the console cannot keep serving and
// should stop gracefully.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
