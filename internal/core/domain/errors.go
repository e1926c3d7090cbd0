package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies a domain error. The HTTP adapter maps each kind to a
// status code exactly once, so services never deal in transport codes.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindBadRequest
	KindNotFound
	KindConflict
	KindAuthentication
	KindAuthorization
	KindRateLimited
)

// Error is the result-style error carried across service boundaries.
type Error struct {
	Kind       ErrorKind
	Message    string
	RetryAfter time.Duration // set for KindRateLimited only
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidation reports malformed input (bad coordinates, weak password).
func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewBadRequest reports a business-rule violation.
func NewBadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound reports a missing resource.
func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflict reports a uniqueness violation surfaced by the store.
func NewConflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NewAuthentication reports bad credentials or an invalid/revoked token.
func NewAuthentication(format string, args ...any) *Error {
	return &Error{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

// NewAuthorization reports insufficient privilege.
func NewAuthorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// NewRateLimited reports that the caller exceeded a request budget.
func NewRateLimited(retryAfter time.Duration) *Error {
	return &Error{
		Kind:       KindRateLimited,
		Message:    "rate limit exceeded, please try again later",
		RetryAfter: retryAfter,
	}
}

// NewInternal wraps an unclassified failure. The wrapped error is logged
// server-side; callers only see the generic message.
func NewInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf extracts the kind of err, defaulting to KindInternal for errors
// that did not pass through the taxonomy.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a conflict domain error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
