package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

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

// NotFoundError reports a missing (or not owned) resource. Its message is returned to API clients as is.
type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (err NotFoundError) Error() string {
	return err.Resource + " not found"
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

type shutdown struct {
	message string
}

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

// UpstreamError reports a failed call to an external dependency (the AI model).
// Message is safe to return to API clients, Err is only logged.
type UpstreamError struct {
	Message string
	Err     error
}

func NewUpstreamError(msg string, err error) *UpstreamError {
	return &UpstreamError{Message: msg, Err: err}
}

func (err UpstreamError) Error() string {
	return err.Message
}

func (err UpstreamError) Unwrap() error {
	return err.Err
}
