// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     error
// Description: Error codes and severities
// Author:      msto63
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package error

// Code categorizes an error
type Code string

const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Report files
	CodeInvalidFormat Code = "INVALID_FORMAT"
	CodeIOError       Code = "IO_ERROR"

	// Configuration and locales
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeMissingConfig Code = "MISSING_CONFIG"

	// History store
	CodeDatabaseError Code = "DATABASE_ERROR"
)

// String returns the code text
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether c is one of the declared codes
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeInvalidFormat, CodeIOError,
		CodeConfigError, CodeInvalidConfig, CodeMissingConfig,
		CodeDatabaseError:
		return true
	default:
		return false
	}
}

// Category returns the high-level group of the code
func (c Code) Category() string {
	switch c {
	case CodeInvalidFormat, CodeIOError:
		return "report"
	case CodeConfigError, CodeInvalidConfig, CodeMissingConfig:
		return "configuration"
	case CodeDatabaseError:
		return "database"
	default:
		return "generic"
	}
}

// Severity grades an infrastructure error
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the lowercase severity name
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode returns the default severity of code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeDatabaseError, CodeIOError, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh
	case CodeInvalidInput, CodeInvalidFormat, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
