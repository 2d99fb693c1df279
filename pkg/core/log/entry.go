// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     log
// Description: Log entries and structured fields
// Author:      msto63
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package log

import (
	"time"
)

// Fields are key-value pairs attached to an entry
type Fields map[string]interface{}

// Merge returns a new Fields holding f overlaid with other
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Entry is a single log record
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	Fields    Fields
	Error     error
	Duration  time.Duration
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
