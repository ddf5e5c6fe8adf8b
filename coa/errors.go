package coa

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines certificate error kinds.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindFormat     ErrorKind = "format"
	KindCapacity   ErrorKind = "capacity"
	KindInternal   ErrorKind = "internal"
)

// Error wraps errors with a kind and the offending field, when known.
type Error struct {
	Kind  ErrorKind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new certificate error.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// NewFieldError creates an error carrying field-level context.
func NewFieldError(kind ErrorKind, field, msg string, err error) *Error {
	return &Error{Kind: kind, Field: field, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var coaErr *Error
	if errors.As(err, &coaErr) {
		kind = coaErr.Kind
		msg = coaErr.Error()
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = KindInternal
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindFormat:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("format")
	case KindCapacity:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("capacity")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its certificate error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var coaErr *Error
	if errors.As(err, &coaErr) {
		return coaErr.Kind
	}

	return KindInternal
}

// FieldFromError returns the offending field name, if the error carries one.
func FieldFromError(err error) string {
	var coaErr *Error
	if errors.As(err, &coaErr) {
		return coaErr.Field
	}
	return ""
}
