package domain

import (
	"errors"
	"fmt"
)

// ErrNetwork is returned when the trips backend could not be reached or its
// response could not be read (connection refused, timeout, malformed body).
var ErrNetwork = errors.New("network error")

// ErrServer is returned when the trips backend answered with a non-2xx status
// that is not a validation rejection.
var ErrServer = errors.New("server error")

// ErrValidationRejected is returned when the backend refused a syntactically
// valid draft. The accompanying message comes from the backend.
var ErrValidationRejected = errors.New("validation rejected")

// ErrInvalidInput is returned by local validation. It never reaches the network.
var ErrInvalidInput = errors.New("invalid input")

// ErrAlreadyInProgress is returned when a create is attempted while another
// create is still in flight.
var ErrAlreadyInProgress = errors.New("already in progress")

// Error pairs one of the sentinel kinds above with a human-readable message.
// errors.Is(err, domain.ErrNetwork) matches through Unwrap.
type Error struct {
	Kind    error
	Message string
}

// NewError builds an *Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// MessageOf returns the human-readable message carried by err, or "" when err
// carries no usable text (nil, or a kind without a message).
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// KindOf returns the sentinel kind err wraps, or nil if it wraps none of them.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrNetwork,
		ErrServer,
		ErrValidationRejected,
		ErrInvalidInput,
		ErrAlreadyInProgress,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
