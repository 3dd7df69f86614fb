package provider

import (
	"errors"
	"fmt"
)

// Kind categorizes a source failure.
type Kind string

const (
	// KindStorage means the local store could not be opened, seeded or queried.
	KindStorage Kind = "storage"
	// KindNetwork means the remote endpoint could not be reached or answered with a non-200 status.
	KindNetwork Kind = "network"
	// KindFormat means the remote body was received but could not be interpreted.
	KindFormat Kind = "format"
)

// Error is the structured error returned by price sources.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Kind, e.Op)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Op)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// NewStorageError creates a storage error
func NewStorageError(op string, cause error) *Error {
	return &Error{Kind: KindStorage, Op: op, Err: cause}
}

// NewNetworkError creates a network error
func NewNetworkError(op string, cause error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: cause}
}

// NewStatusError creates a network error for an unexpected HTTP status
func NewStatusError(statusCode int, op string) *Error {
	return &Error{Kind: KindNetwork, Op: op, StatusCode: statusCode}
}

// NewFormatError creates a format error
func NewFormatError(op string, cause error) *Error {
	return &Error{Kind: KindFormat, Op: op, Err: cause}
}

// IsKind reports whether any error in err's chain is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
