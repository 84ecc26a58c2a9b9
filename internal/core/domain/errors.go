package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredential covers wrong passwords, bad signatures and
	// malformed tokens.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrExpiredCredential is returned for well-signed tokens past their
	// expiration. It matches ErrInvalidCredential under errors.Is.
	ErrExpiredCredential = fmt.Errorf("%w: token expired", ErrInvalidCredential)

	// ErrUnauthenticated means no identity was presented for a protected operation.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInsufficientRole matches ErrUnauthenticated under errors.Is; the
	// boundary reports both the same way.
	ErrInsufficientRole = fmt.Errorf("%w: insufficient role", ErrUnauthenticated)

	ErrTodoNotFound      = errors.New("todo not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateIdentity = errors.New("identity already registered")
	ErrTooManyAttempts   = errors.New("too many failed login attempts")
	ErrInvalidInput      = errors.New("invalid input")
)

const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// DuplicateIdentityError reports which unique user field collided.
type DuplicateIdentityError struct {
	Field string
	Value string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("User with %s %s already exists. Please try with another %s.", e.Field, e.Value, e.Field)
}

func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}

// InvalidInputError carries the reason a request was rejected, worded for
// the client. It matches ErrInvalidInput under errors.Is.
type InvalidInputError struct {
	Reason string
}

// InvalidInput builds an *InvalidInputError from a formatted reason.
func InvalidInput(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
