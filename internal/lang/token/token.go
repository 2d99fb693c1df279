// File: token.go
// Title: Token Model
// Description: Defines the closed set of token kinds, the Token record shared
//              by the tokenizer and the syntax checker, and the fixed
//              vocabularies of the language (reserved words, keyword
//              operators, math functions).
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial token model

package token

import (
	"fmt"
)

// Kind classifies a lexeme
type Kind int

const (
	// Illegal is the zero value and never produced by the tokenizer
	Illegal Kind = iota

	Reserved   // var, mostrar, si, entonces, fin, sen, cos, raiz, logd, logn
	Comparator // >= <= == != > <
	Assignment // = += -= *= /= %=
	Operator   // + - * / ^ % and sum, res, pro, div, pot, mod
	Paren      // ( )
	Comma      // ,
	Semicolon  // ;
	Integer    // 42
	Real       // 3.14 (see lexer rule order)
	Identifier // x, total_2
)

// kindNames holds the report names of every kind, indexed by Kind
var kindNames = [...]string{
	Illegal:    "ILEGAL",
	Reserved:   "PALABRA_RESERVADA",
	Comparator: "COMPARADOR",
	Assignment: "ASIGNACION",
	Operator:   "OPERADOR",
	Paren:      "PARENTESIS",
	Comma:      "COMA",
	Semicolon:  "PUNTO_Y_COMA",
	Integer:    "ENTERO",
	Real:       "REAL",
	Identifier: "IDENTIFICADOR",
}

// String returns the report name of the kind
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "DESCONOCIDO"
	}
	return kindNames[k]
}

// IsValid reports whether k is a kind the tokenizer can produce
func (k Kind) IsValid() bool {
	return k > Illegal && int(k) < len(kindNames)
}

// ParseKind maps a report name back to its Kind
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return Illegal, fmt.Errorf("unknown token kind %q", name)
}

// Kinds returns all producible kinds in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := range kindNames {
		if Kind(k).IsValid() {
			kinds = append(kinds, Kind(k))
		}
	}
	return kinds
}

// Token is a single classified lexeme with its 1-based source position
type Token struct {
	Lexeme string
	Kind   Kind
	Line   int
	Column int
}

// String returns a compact representation used in logs and test output
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}

// Is reports whether the token has the given kind and lexeme
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}
