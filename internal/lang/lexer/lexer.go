// File: lexer.go
// Title: Tokenizer
// Description: Converts source text into classified tokens and lexical
//              errors. Scanning is line-bounded, always runs to the end of
//              the input and reports every unmatched rune.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial tokenizer
// - 2026-10-14 v0.1.1: Columns counted in runes of the un-stripped line

package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/analiza/internal/lang/token"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

// Error is an unexpected character at a 1-based position
type Error struct {
	Char   rune
	Line   int
	Column int
}

// Error renders the line written to the lexical error report
func (e Error) Error() string {
	return fmt.Sprintf("Caracter inesperado '%c' en linea %d, columna %d", e.Char, e.Line, e.Column)
}

// Result holds the two ordered outputs of one tokenizer run
type Result struct {
	Tokens []token.Token
	Errors []Error
}

// HasErrors reports whether any lexical error was found
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Options configures a Lexer
type Options struct {
	Logger *anlog.Logger
}

// Lexer tokenizes whole sources. It holds no per-run state and may be
// shared.
type Lexer struct {
	logger *anlog.Logger
}

// New creates a lexer
func New(opts Options) *Lexer {
	if opts.Logger == nil {
		opts.Logger = anlog.GetDefault()
	}
	return &Lexer{logger: opts.Logger.WithField("component", "lexer")}
}

// Tokenize scans source to completion
func (l *Lexer) Tokenize(source string) *Result {
	lines := splitLines(source)
	timer := l.logger.StartTimer("lexical analysis").WithField("lines", len(lines))

	result := &Result{}
	for i, line := range lines {
		scanLine(line, i+1, result)
	}

	timer.WithField("tokens", len(result.Tokens)).WithField("errors", len(result.Errors)).Stop()
	return result
}

// Tokenize scans source with a lexer using the default logger
func Tokenize(source string) *Result {
	return New(Options{}).Tokenize(source)
}

func scanLine(line string, lineNo int, result *Result) {
	pos, col := 0, 1
	for pos < len(line) {
		r, size := utf8.DecodeRuneInString(line[pos:])
		if unicode.IsSpace(r) {
			pos += size
			col++
			continue
		}

		lexeme, kind, ok := match(line[pos:])
		if !ok {
			result.Errors = append(result.Errors, Error{Char: r, Line: lineNo, Column: col})
			pos += size
			col++
			continue
		}

		result.Tokens = append(result.Tokens, token.Token{
			Lexeme: lexeme,
			Kind:   kind,
			Line:   lineNo,
			Column: col,
		})
		pos += len(lexeme)
		col += utf8.RuneCountInString(lexeme)
	}
}

// splitLines splits on "\r\n", "\n" and "\r"
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.Split(source, "\n")
}
