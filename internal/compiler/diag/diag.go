// Package diag defines the compile errors reported by wcc and renders them
// against the source they were found in.
//
// Every error is fatal. Stages return a *Error wrapping one of the sentinel
// kinds below; callers match kinds with errors.Is.
package diag

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/wcc/internal/compiler/token"
)

// Error kinds
var (
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrUnknownType         = errors.New("unknown type")
	ErrRedeclaration       = errors.New("variable already declared")
	ErrUndefinedVariable   = errors.New("undefined variable")
	ErrInvalidLogType      = errors.New("invalid type in log statement")
	ErrInvalidLogSeparator = errors.New("invalid separator in log statement")
	ErrNonConstantLogArg   = errors.New("non-constant expression in log statement")
	ErrDivisionByZero      = errors.New("division by zero in constant expression")
	ErrIntegerRange        = errors.New("integer out of range")
	ErrInternal            = errors.New("internal compiler error")
)

// Classification labels, used as the message prefix.
const (
	SyntaxError   = "Syntax Error"
	SemanticError = "Semantic Error"
	InternalError = "Internal Error"
)

type Error struct {
	Kind   error
	Line   int // 0 when the error has no source position
	Column int
	Detail string
}

// At builds an error of the given kind positioned at tok.
func At(kind error, tok token.Token, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Line:   tok.Line,
		Column: tok.Column,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Internal builds an ErrInternal with no source position.
func Internal(format string, args ...any) *Error {
	return &Error{Kind: ErrInternal, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Unwrap() error { return e.Kind }

// Class returns the classification shown to the user.
func (e *Error) Class() string {
	switch e.Kind {
	case ErrUnexpectedToken, ErrInvalidLogSeparator:
		return SyntaxError
	case ErrInternal:
		return InternalError
	default:
		return SemanticError
	}
}

// Message is the kind plus detail, without position or class.
func (e *Error) Message() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Class(), e.Message())
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Class(), e.Message())
}
