package backend

import (
	"errors"
	"fmt"
)

// Backend tags used across the error taxonomy and client construction.
const (
	Jaeger     = "jaeger"
	Loki       = "loki"
	Prometheus = "prometheus"
)

// Error is the single error kind surfaced by every tool of a given backend.
// The backend tag distinguishes which adapter failed; the message text carries
// the reason (HTTP failure, malformed response, empty result, invalid input).
type Error struct {
	Backend string // backend tag: "jaeger", "loki" or "prometheus"
	Message string // human-readable failure reason
	Err     error  // optional upstream cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Backend, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf creates a backend-tagged error with a formatted message.
func Errorf(backend, format string, args ...any) *Error {
	return &Error{Backend: backend, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a backend-tagged error carrying an upstream cause.
func Wrap(backend, message string, err error) *Error {
	return &Error{Backend: backend, Message: message, Err: err}
}

// Ensure returns err unchanged if it is already tagged for the given backend,
// and otherwise wraps it so callers see one error taxonomy per backend
// regardless of failure origin. A nil err stays nil.
func Ensure(backend, message string, err error) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) && be.Backend == backend {
		return err
	}
	return Wrap(backend, message, err)
}
