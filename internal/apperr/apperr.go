// Package apperr classifies service failures so the HTTP boundary can map
// them to status codes without inspecting error text.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// InvalidArgument means the input was missing or malformed.
	InvalidArgument Kind = iota + 1
	// NotFound means a referenced entity is absent.
	NotFound
	// Conflict means a uniqueness rule was violated, e.g. duplicate email.
	Conflict
	// InvalidCredentials means login failed. The message is the same for an
	// unknown email and a wrong password.
	InvalidCredentials
	// PartialFailure means a multi-step write stopped after its first step
	// succeeded, leaving canonical and denormalized state disagreeing.
	PartialFailure
	// Internal means the storage layer failed before anything was changed.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case InvalidCredentials:
		return "invalid credentials"
	case PartialFailure:
		return "partial failure"
	case Internal:
		return "internal"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from err. Unclassified errors count as Internal.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
