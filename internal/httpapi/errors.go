// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package httpapi

import "net/http"

// Code classifies an API error for mapping to an HTTP status.
type Code int

const (
	// CodeInvalidArgument indicates the request was rejected due to
	// missing or malformed input.
	CodeInvalidArgument Code = iota + 1
	// CodeUnauthenticated indicates the caller has no valid identity.
	CodeUnauthenticated
	// CodeNotFound indicates the referenced resource does not exist or
	// is not visible to the caller.
	CodeNotFound
	// CodeInternal indicates an unexpected failure. Details are logged,
	// never returned to the caller.
	CodeInternal
)

func (c Code) httpStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// NewError wraps err with an API error code.
func NewError(code Code, err error) *Error {
	return &Error{code: code, err: err}
}

// Error is an error with an API error code. Handlers return it for
// failures that should map to a specific HTTP status; anything else is
// treated as internal.
type Error struct {
	code Code
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the API error code.
func (e *Error) Code() Code {
	return e.code
}
