// Package apperr defines the stable error taxonomy exposed by the service.
// Every error surfaced to an API caller carries a machine-readable kind and
// a safe human message; internal causes stay attached for logging but are
// never serialized to the client.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for API consumers.
type Kind string

const (
	// KindNotFound means a referenced entity does not exist. Maps to 404.
	KindNotFound Kind = "not_found"
	// KindValidation means the input was malformed or violates a unique or
	// type constraint. Maps to 400.
	KindValidation Kind = "validation"
	// KindConflict means a mutation is blocked by referential use. Maps to 409.
	KindConflict Kind = "conflict"
	// KindUnauthorized means no authenticated identity was present. Maps to 401.
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden means the identity lacks the required permission or role. Maps to 403.
	KindForbidden Kind = "forbidden"
	// KindInternal means an unexpected failure. Maps to 500, message is generic.
	KindInternal Kind = "internal"
)

// Error is a kinded error with a caller-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}

	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an Error of the given kind with a caller-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind wrapping an internal cause.
// The cause is kept for logging only; callers see the message.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

// NotFound is shorthand for New(KindNotFound, message).
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation is shorthand for New(KindValidation, message).
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Conflict is shorthand for New(KindConflict, message).
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// Unauthorized is shorthand for New(KindUnauthorized, message).
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Forbidden is shorthand for New(KindForbidden, message).
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// KindOf returns the kind of err, or KindInternal if err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// SafeMessage returns the caller-safe message for err. Unkinded errors map
// to a generic message so no driver or internal text leaks to the client.
func SafeMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return "internal server error"
}
