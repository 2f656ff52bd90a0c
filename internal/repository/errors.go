package repository

import (
	"errors"
	"fmt"

	"taskmgr/internal/service"
)

// Kind classifies a failure.
type Kind int

const (
	// KindValidation is a local input rejection; it never reaches the network.
	KindValidation Kind = iota + 1

	// KindRejected is a non-2xx response from the server.
	KindRejected

	// KindTransport covers network failures, timeouts and decode errors.
	KindTransport

	// KindContract is a nominally successful response missing its body.
	KindContract
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRejected:
		return "rejected"
	case KindTransport:
		return "transport"
	case KindContract:
		return "contract"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Error() is the flat human-readable
// message shown to users.
type Error struct {
	Kind   Kind
	Status int // HTTP status for KindRejected, 0 otherwise
	Msg    string
	cause  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.cause }

// ValidationError returns the error used for local input rejection.
func ValidationError() *Error {
	return &Error{Kind: KindValidation, Msg: service.ErrInvalidTask.Error(), cause: service.ErrInvalidTask}
}

// classify turns an API client error into an *Error.
func classify(err error) *Error {
	var re *Error
	if errors.As(err, &re) {
		return re
	}
	var se *service.StatusError
	if errors.As(err, &se) {
		return &Error{
			Kind:   KindRejected,
			Status: se.Code,
			Msg:    fmt.Sprintf("server error: %d - %s", se.Code, se.Status),
			cause:  err,
		}
	}
	if errors.Is(err, service.ErrInvalidTask) {
		return &Error{Kind: KindValidation, Msg: err.Error(), cause: err}
	}
	return &Error{Kind: KindTransport, Msg: err.Error(), cause: err}
}
