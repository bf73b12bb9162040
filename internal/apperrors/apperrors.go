// Package apperrors defines the typed error kinds raised by domain services
// and the authorization gate. The HTTP layer maps kinds to status codes; this
// package has no transport dependencies.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuthenticationRequired
	KindAuthorization
	KindTwoFactorRequired
	KindConflict
)

// Error is a domain error carrying a kind and a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// NewValidation returns a validation error for malformed mutation input.
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFound returns a not-found error naming the entity kind and id.
func NewNotFound(entity string, id uint64) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %d not found", entity, id)}
}

// NewAuthenticationRequired returns the error for anonymous access to an
// operation that mandates an acting user.
func NewAuthenticationRequired() *Error {
	return &Error{Kind: KindAuthenticationRequired, Message: "User is not logged in"}
}

// NewAuthorization returns a policy denial embedding the attempted action and
// the denying policy's reason.
func NewAuthorization(action, reason string) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf("Not authorized to %s: %s", action, reason)}
}

// NewTwoFactorRequired returns the distinct error for policies that demand a
// second authentication factor.
func NewTwoFactorRequired(action string) *Error {
	return &Error{Kind: KindTwoFactorRequired, Message: fmt.Sprintf("Two-factor authentication is required to %s", action)}
}

// NewConflict returns a conflict error with a fixed user-facing message.
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}
