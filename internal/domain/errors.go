package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("not authorized")
	ErrStorage    = errors.New("storage failure")
)

// Error ties an error kind to the operation that produced it. errors.Is matches
// both the kind and the underlying cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Storage(op string, err error) error {
	return &Error{Kind: ErrStorage, Op: op, Err: err}
}

func Validation(op, reason string) error {
	return &Error{Kind: ErrValidation, Op: op, Err: errors.New(reason)}
}

func NotFound(op, what string) error {
	return &Error{Kind: ErrNotFound, Op: op, Err: errors.New(what + " not found")}
}

func Forbidden(op, reason string) error {
	return &Error{Kind: ErrForbidden, Op: op, Err: errors.New(reason)}
}

// OpOf returns the operation recorded on err, or "" if there is none.
func OpOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
