package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced by the service layer matches exactly one of
// them through errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)

// Repository sentinels.
var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrNoteNotFound = fmt.Errorf("note %w", ErrNotFound)
	ErrEmailTaken   = fmt.Errorf("email %w", ErrConflict)
)

// Error is a domain failure carrying a human-readable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
