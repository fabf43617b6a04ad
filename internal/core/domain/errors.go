package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for transport mapping.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the single error type crossing the service boundary.
// Fields holds per-field messages for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and message, so sentinels
// compare equal to copies that carry extra context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrMovieNotFound   = NotFound("movie not found")
	ErrProfileNotFound = NotFound("profile not found or not authorized")
	ErrUserNotFound    = NotFound("user not found")

	ErrEmailTaken = Validation("email is already registered", map[string]string{"email": "email is already registered"})

	ErrInvalidCredentials = Unauthenticated("invalid credentials")
	ErrMissingToken       = Unauthenticated("token required")
	ErrExpiredToken       = Unauthenticated("token has expired")
	ErrInvalidToken       = Unauthenticated("invalid token")
	ErrUnknownIdentity    = Unauthenticated("user not found")

	ErrProfileLimit = Forbidden(fmt.Sprintf("limit of %d profiles reached", MaxProfilesPerUser))

	ErrMissingSigningKey = errors.New("token signing key is not configured")
)
