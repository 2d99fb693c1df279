// File: errors.go
// Title: Syntax Error Taxonomy
// Description: Closed set of syntax error kinds and the error record
//              produced by the checker. Records keep the column of the
//              offending token even though the default rendering shows the
//              line only.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-13 v0.1.0: Initial error kinds
// - 2026-10-15 v0.1.1: Added expression-at-end and nesting kinds

package syntax

import (
	"fmt"

	"github.com/msto63/analiza/internal/lang/token"
)

// ErrorKind classifies a syntax error
type ErrorKind int

const (
	// ErrMismatch: an expected kind was not found at the cursor
	ErrMismatch ErrorKind = iota
	// ErrEndOfInput: an expected kind was pending when the tokens ran out
	ErrEndOfInput
	// ErrUnexpectedToken: a token that cannot start a statement
	ErrUnexpectedToken
	// ErrUnknownKeyword: a reserved word that is neither a function nor an operator
	ErrUnknownKeyword
	// ErrInvalidExpression: a token that cannot start an expression
	ErrInvalidExpression
	// ErrExpressionEnd: an expression was expected but no token remained
	ErrExpressionEnd
	// ErrNestingTooDeep: conditionals or expressions exceeded the depth limit
	ErrNestingTooDeep
)

var errorKindNames = [...]string{
	ErrMismatch:          "mismatch",
	ErrEndOfInput:        "end_of_input",
	ErrUnexpectedToken:   "unexpected_token",
	ErrUnknownKeyword:    "unknown_keyword",
	ErrInvalidExpression: "invalid_expression",
	ErrExpressionEnd:     "expression_end",
	ErrNestingTooDeep:    "nesting_too_deep",
}

// String returns the snake_case name of the kind
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return "unknown"
	}
	return errorKindNames[k]
}

// MessageKey is the translation key used to render errors of this kind
func (k ErrorKind) MessageKey() string {
	return "syntax." + k.String()
}

// Error is one syntax error. Expected is only meaningful for ErrMismatch and
// ErrEndOfInput; Lexeme, Line and Column are zero for kinds raised without a
// current token.
type Error struct {
	Kind     ErrorKind
	Expected token.Kind
	Lexeme   string
	Line     int
	Column   int
}

// Error renders the default Spanish message
func (e Error) Error() string {
	switch e.Kind {
	case ErrMismatch:
		return fmt.Sprintf("Error sintáctico: se esperaba %s pero se encontró '%s' en línea %d", e.Expected, e.Lexeme, e.Line)
	case ErrEndOfInput:
		return fmt.Sprintf("Error sintáctico: se esperaba %s pero no se encontró ningún token.", e.Expected)
	case ErrUnexpectedToken:
		return fmt.Sprintf("Error sintáctico: token inesperado '%s' en la línea %d", e.Lexeme, e.Line)
	case ErrUnknownKeyword:
		return fmt.Sprintf("Error sintáctico: función u operador desconocido '%s' en línea %d", e.Lexeme, e.Line)
	case ErrInvalidExpression:
		return fmt.Sprintf("Error sintáctico: expresión inválida en línea %d", e.Line)
	case ErrExpressionEnd:
		return "Error sintáctico: se esperaba una expresión pero no se encontró ningún token."
	case ErrNestingTooDeep:
		return fmt.Sprintf("Error sintáctico: anidamiento demasiado profundo en línea %d", e.Line)
	default:
		return fmt.Sprintf("Error sintáctico: %s en línea %d", e.Kind, e.Line)
	}
}

// Params exposes the error fields to message templates
func (e Error) Params() map[string]interface{} {
	return map[string]interface{}{
		"Kind":     e.Kind.String(),
		"Expected": e.Expected.String(),
		"Lexeme":   e.Lexeme,
		"Line":     e.Line,
		"Column":   e.Column,
	}
}

func mismatch(expected token.Kind, found token.Token) Error {
	return Error{Kind: ErrMismatch, Expected: expected, Lexeme: found.Lexeme, Line: found.Line, Column: found.Column}
}

func atToken(kind ErrorKind, tok token.Token) Error {
	return Error{Kind: kind, Lexeme: tok.Lexeme, Line: tok.Line, Column: tok.Column}
}
