// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     log
// Description: Log level definitions and parsing
// Author:      msto63
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package log

import (
	"fmt"
	"strings"
)

// Level represents the importance of a log message
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the lowercase name of the level
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ShortString returns the four-letter tag used by the text formatter
func (l Level) ShortString() string {
	switch l {
	case LevelTrace:
		return "TRCE"
	case LevelDebug:
		return "DEBU"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERRO"
	case LevelFatal:
		return "FATA"
	default:
		return "UNKN"
	}
}

// ShouldLog reports whether a message at level l passes the minimum level
func (l Level) ShouldLog(minimum Level) bool {
	return l >= minimum
}

// ParseError is returned when a level or format name cannot be parsed
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid log %s: %q", e.Type, e.Input)
}

// ParseLevel parses a level name, accepting "warning" as an alias of warn
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, &ParseError{Input: s, Type: "level"}
	}
}
