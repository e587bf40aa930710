package usecase

import (
	"errors"
	"fmt"

	"opftube/services/api/internal/repo/persistent"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Error carries a client-facing message and one of the sentinel kinds above.
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

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func notFound(resource string) error {
	return &Error{Kind: ErrNotFound, Message: resource + " not found"}
}

// lookup maps a repository miss to a not-found error for resource.
func lookup(err error, resource string) error {
	if errors.Is(err, persistent.ErrNotFound) {
		return notFound(resource)
	}
	return err
}
