package service

import "errors"

var (
	// ErrQueryRequired is returned when an agent query carries no text
	ErrQueryRequired = errors.New("query is required")

	// ErrPropertyNotFound is returned when a referenced property does not exist
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidProperty wraps validation failures on new listings
	ErrInvalidProperty = errors.New("invalid property")
)

// TransientError marks a generator failure that may succeed on a later request.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// NewTransientError wraps an error as transient.
func NewTransientError(err error) error {
	return &TransientError{err: err}
}

// FatalError marks a generator failure caused by configuration, such as a
// missing binary or a rejected API key.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// NewFatalError wraps an error as fatal.
func NewFatalError(err error) error {
	return &FatalError{err: err}
}

// IsTransient returns true if the error is transient.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal returns true if the error is fatal.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// failureKind labels a generator error for logs and metrics
func failureKind(err error) string {
	switch {
	case IsFatal(err):
		return "fatal"
	case IsTransient(err):
		return "transient"
	default:
		return "unknown"
	}
}
