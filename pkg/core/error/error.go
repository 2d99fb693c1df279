// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     error
// Description: Structured errors with codes, severity and operation context
// Author:      msto63
// Created:     2026-10-12
// License:     MIT
// ============================================================================

// Package error provides the structured error type used for infrastructure
// failures (I/O, configuration, report parsing, storage). Lexical and syntax
// findings are not errors in this sense; they are reported as data.
package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error is a structured error with a code, a severity and optional context
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	operation string
	details   map[string]interface{}
}

// New creates an error with CodeUnknown and the severity of that code
func New(message string) *Error {
	return &Error{
		message:  message,
		code:     CodeUnknown,
		severity: GetSeverityFromCode(CodeUnknown),
		details:  make(map[string]interface{}),
	}
}

// Newf creates an error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps err with message. Code, severity and details of a wrapped
// *Error are inherited. Wrap(nil, ...) returns nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{
		message:  message,
		cause:    err,
		code:     CodeUnknown,
		severity: SeverityMedium,
		details:  make(map[string]interface{}),
	}

	var inner *Error
	if errors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}
	return wrapped
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the code and the severity derived from it
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	e.severity = GetSeverityFromCode(code)
	return e
}

// WithSeverity overrides the severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithOperation records the failing operation, e.g. "report.ReadTokens"
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithDetail attaches a key-value detail
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

func (e *Error) Code() Code {
	return e.code
}

func (e *Error) Severity() Severity {
	return e.severity
}

func (e *Error) Operation() string {
	return e.operation
}

// Details returns a copy of the attached details
func (e *Error) Details() map[string]interface{} {
	details := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		details[k] = v
	}
	return details
}

// String renders the error with its code, operation and sorted details
func (e *Error) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.code, e.Error())
	if e.operation != "" {
		fmt.Fprintf(&b, " (operation: %s)", e.operation)
	}
	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.details[k]))
		}
		fmt.Fprintf(&b, " {%s}", strings.Join(parts, ", "))
	}
	return b.String()
}

// MarshalJSON implements json.Marshaler
func (e *Error) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"message":  e.Error(),
		"code":     e.code,
		"severity": e.severity.String(),
	}
	if e.operation != "" {
		data["operation"] = e.operation
	}
	if len(e.details) > 0 {
		data["details"] = e.details
	}
	return json.Marshal(data)
}

// HasCode reports whether any *Error in err's chain carries code
func HasCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}
