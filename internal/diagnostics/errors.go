// Package diagnostics defines the semantic error taxonomy reported by the
// resolution and type-check passes.
package diagnostics

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrA001 ErrorCode = "A001" // Unresolved name
	ErrA002 ErrorCode = "A002" // Redefinition in the current scope
	ErrA003 ErrorCode = "A003" // Type mismatch
	ErrA004 ErrorCode = "A004" // Call arity mismatch
	ErrA005 ErrorCode = "A005" // Domain constraint violation
	ErrA006 ErrorCode = "A006" // Not an array
	ErrA007 ErrorCode = "A007" // Not a function
)

// Readable aliases used by callers that match on the kind of failure.
const (
	UnresolvedName   = ErrA001
	Redefinition     = ErrA002
	TypeMismatch     = ErrA003
	ArityMismatch    = ErrA004
	DomainConstraint = ErrA005
	NotAnArray       = ErrA006
	NotAFunction     = ErrA007
)

var codeTitles = map[ErrorCode]string{
	ErrA001: "unresolved name",
	ErrA002: "redefinition",
	ErrA003: "type mismatch",
	ErrA004: "arity mismatch",
	ErrA005: "domain constraint violation",
	ErrA006: "not an array",
	ErrA007: "not a function",
}

// Title returns a short human description of the code.
func (c ErrorCode) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return "error"
}

// DiagnosticError is a semantic failure attributed to a node.
type DiagnosticError struct {
	Code    ErrorCode
	Node    fmt.Stringer // offending node, may be nil
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("error [%s]: %s: %s", e.Code, e.Code.Title(), e.Message)
	}
	return fmt.Sprintf("error [%s]: %s: %s (in %s)", e.Code, e.Code.Title(), e.Message, e.Node)
}

func NewError(code ErrorCode, node fmt.Stringer, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Node: node, Message: msg}
}

func Errorf(code ErrorCode, node fmt.Stringer, format string, args ...any) *DiagnosticError {
	return NewError(code, node, fmt.Sprintf(format, args...))
}

// CodeOf extracts the code of the first DiagnosticError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
