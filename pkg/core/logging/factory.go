// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"github.com/msto63/analiza/pkg/core/config"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: "json", "text" or "logfmt" (default: text)
	Format string

	// Primary output (default: stderr, so reports on stdout stay clean)
	Output io.Writer

	// Additional outputs besides the primary one
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
	}
}

// NewLogger creates a logger. Unknown levels fall back to info and unknown
// formats to text.
func NewLogger(cfg LoggerConfig) *anlog.Logger {
	level, err := anlog.ParseLevel(cfg.Level)
	if err != nil {
		level = anlog.LevelInfo
	}

	format, err := anlog.ParseFormat(cfg.Format)
	if err != nil {
		format = anlog.FormatText
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return anlog.NewWithConfig(anlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
}

// FromConfig creates the application logger from the general section.
// Verbose forces the debug level.
func FromConfig(cfg *config.Config, verbose bool) *anlog.Logger {
	lc := DefaultLoggerConfig("analiza")
	lc.Level = cfg.General.LogLevel
	lc.Format = cfg.General.LogFormat
	if verbose {
		lc.Level = "debug"
	}
	return NewLogger(lc)
}
