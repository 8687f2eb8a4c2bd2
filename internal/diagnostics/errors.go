package diagnostics

import (
	"fmt"

	"github.com/funvibe/tackc/internal/token"
)

type ErrorCode string

// Parser errors
const (
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // malformed literal
	ErrP003 ErrorCode = "P003" // illegal character
)

// Scope errors
const (
	ErrS001 ErrorCode = "S001" // duplicate definition
	ErrS002 ErrorCode = "S002" // redefinition of intrinsic
)

// Type errors
const (
	ErrT001 ErrorCode = "T001" // unknown identifier
	ErrT002 ErrorCode = "T002" // unresolved type
	ErrT003 ErrorCode = "T003" // type mismatch
	ErrT004 ErrorCode = "T004" // arity mismatch
	ErrT005 ErrorCode = "T005" // invalid cast
	ErrT006 ErrorCode = "T006" // immutable assignment target
	ErrT007 ErrorCode = "T007" // wrong kind of name (variable vs function)
)

// Code generation errors
const (
	ErrC001 ErrorCode = "C001" // backend failure
)

// Driver errors
const (
	ErrD001 ErrorCode = "D001" // I/O failure
	ErrD002 ErrorCode = "D002" // configuration
)

// DiagnosticError is a user-facing compile error anchored at a token.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, File: tok.File, Message: message}
}

// Location renders file:line:column, or just the file for driver errors.
func (e *DiagnosticError) Location() string {
	if e.Token.Line == 0 {
		if e.File == "" {
			return "tackc"
		}
		return e.File
	}
	tok := e.Token
	if tok.File == "" {
		tok.File = e.File
	}
	return tok.Location()
}

// Error renders the diagnostic as "<location>: <message>."
func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: %s.", e.Location(), e.Message)
}

// IsSyntax reports whether the error came from the parser or lexer.
func (e *DiagnosticError) IsSyntax() bool {
	return len(e.Code) > 0 && e.Code[0] == 'P'
}
