// File: rules.go
// Title: Ordered Lexical Rules
// Description: The fixed, ordered list of lexical rules. At every scan
//              position the rules are tried top to bottom and the first one
//              that matches wins; there is no longest-match arbitration.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial rule table

package lexer

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/analiza/internal/lang/token"
)

// rule classifies the lexeme matched by pattern at the start of the input.
// Word rules must end on a word boundary or they do not match.
type rule struct {
	name    string
	kind    token.Kind
	pattern *regexp.Regexp
	word    bool
}

// rules is evaluated in order. Integer precedes real, so "3.14" scans as
// "3", an unexpected ".", then "14".
var rules = []rule{
	{name: "comparador", kind: token.Comparator, pattern: regexp.MustCompile(`^(>=|<=|==|!=|>|<)`)},
	{name: "asignacion", kind: token.Assignment, pattern: regexp.MustCompile(`^(=|\+=|-=|\*=|/=|%=)`)},
	{name: "operador", kind: token.Operator, pattern: regexp.MustCompile(`^[+\-*/^%]`)},
	{name: "parentesis", kind: token.Paren, pattern: regexp.MustCompile(`^[()]`)},
	{name: "coma", kind: token.Comma, pattern: regexp.MustCompile(`^,`)},
	{name: "punto_y_coma", kind: token.Semicolon, pattern: regexp.MustCompile(`^;`)},
	{name: "entero", kind: token.Integer, pattern: regexp.MustCompile(`^[0-9]+`), word: true},
	{name: "real", kind: token.Real, pattern: regexp.MustCompile(`^[0-9]+\.[0-9]+`), word: true},
	{name: "identificador", kind: token.Identifier, pattern: regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), word: true},
}

// match returns the lexeme and kind of the first rule matching at the start
// of rest, after reserved-word and keyword-operator reclassification
func match(rest string) (string, token.Kind, bool) {
	for _, r := range rules {
		lexeme := r.pattern.FindString(rest)
		if lexeme == "" {
			continue
		}
		if r.word && !endsOnBoundary(rest, len(lexeme)) {
			continue
		}
		return lexeme, classify(lexeme, r.kind), true
	}
	return "", token.Illegal, false
}

func classify(lexeme string, matched token.Kind) token.Kind {
	if matched == token.Identifier && token.IsReserved(lexeme) {
		return token.Reserved
	}
	if token.IsKeywordOperator(lexeme) {
		return token.Operator
	}
	return matched
}

// endsOnBoundary reports whether the rune following rest[:n] is not a word
// rune. Letters and digits are judged by Unicode, so "año" does not end a
// word after "a".
func endsOnBoundary(rest string, n int) bool {
	if n >= len(rest) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(rest[n:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
