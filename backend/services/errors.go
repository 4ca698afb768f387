package services

import "fmt"

// Typed domain errors. Services return these; the HTTP layer maps them to
// status codes in utils.Fail and nowhere else.

type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

func NewAuthError(msg string) *AuthError { return &AuthError{Msg: msg} }

type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

func NewForbiddenError(msg string) *ForbiddenError { return &ForbiddenError{Msg: msg} }

type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id uint) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func NewConflictError(msg string) *ConflictError { return &ConflictError{Msg: msg} }

// PersistenceError wraps a failed store operation. The wrapped error is logged
// server-side; clients only ever see the operation name.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
