package mcstatus

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrInvalidArgument is returned before any I/O when a request cannot be built.
var ErrInvalidArgument = errors.New("mcstatus: invalid argument")

// RemoteError is returned when the API answers with a status other than 200.
type RemoteError struct {
	StatusCode int
	Status     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("mcstatus: API returned status %d: %s", e.StatusCode, e.Status)
}

// TransportError wraps DNS, connect, timeout and read failures.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mcstatus: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request ran past its deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ParseError is returned when a 200 response body is not a JSON object, or
// when an accessor finds a field of the wrong type. Field is empty in the
// first case.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("mcstatus: field %q has an unexpected type: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("mcstatus: failed to parse status document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when a required field is absent from the document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("mcstatus: required field %q is missing", e.Field)
}

// DecodeError is returned when icon bytes are not a decodable image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mcstatus: failed to decode icon: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}
