// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     version
// Description: Central version management for the tool and its components
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for analiza and its components
const (
	// Tool version
	Tool = "1.0.0"

	// Component versions
	Lexer   = "1.0.0"
	Syntax  = "1.0.0"
	Reports = "1.0.0"
	History = "1.0.0"
)

// Build metadata, set with -ldflags "-X .../version.Commit=..."
var (
	Commit = "dev"
	Date   = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "syntax":
		return Syntax
	case "reports":
		return Reports
	case "history":
		return History
	default:
		return Tool
	}
}

// String returns the tool version with build metadata
func String() string {
	return fmt.Sprintf("analiza %s (commit %s, built %s)", Tool, Commit, Date)
}
