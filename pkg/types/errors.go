package types

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of a calculator error.
type ErrorCode string

// Error codes. S0xxx are raised while tokenizing, D0xxx while evaluating
// or converting.
const (
	// S0xxx: Tokenizer errors
	ErrMalformedExpression ErrorCode = "S0201"
	ErrCapacityExceeded    ErrorCode = "S0301"

	// D1xxx: Arithmetic errors
	ErrDivisionByZero     ErrorCode = "D1001"
	ErrArithmeticOverflow ErrorCode = "D1002"

	// D2xxx: Base conversion errors
	ErrInvalidBase   ErrorCode = "D2001"
	ErrInvalidNumber ErrorCode = "D2002"
)

// Error represents a structured calculator error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new error. Pass a negative position when the error
// is not tied to a location in the source expression.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is works against a bare code template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or "" if
// there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
