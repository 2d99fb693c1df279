// File: vocabulary.go
// Title: Fixed Language Vocabularies
// Description: Read-only tables of reserved words, keyword operators, math
//              functions and statement keywords.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial vocabularies

package token

// Statement and block keywords
const (
	KeywordVar      = "var"
	KeywordMostrar  = "mostrar"
	KeywordSi       = "si"
	KeywordEntonces = "entonces"
	KeywordFin      = "fin"
)

var reservedWords = map[string]struct{}{
	KeywordVar:      {},
	KeywordMostrar:  {},
	KeywordSi:       {},
	KeywordEntonces: {},
	KeywordFin:      {},
	"sen":           {},
	"cos":           {},
	"raiz":          {},
	"logd":          {},
	"logn":          {},
}

var keywordOperators = map[string]struct{}{
	"sum": {},
	"res": {},
	"pro": {},
	"div": {},
	"pot": {},
	"mod": {},
}

var mathFunctions = map[string]struct{}{
	"sen":  {},
	"cos":  {},
	"raiz": {},
	"logd": {},
	"logn": {},
}

// IsReserved reports whether s is a reserved word
func IsReserved(s string) bool {
	_, ok := reservedWords[s]
	return ok
}

// IsKeywordOperator reports whether s is one of sum, res, pro, div, pot, mod
func IsKeywordOperator(s string) bool {
	_, ok := keywordOperators[s]
	return ok
}

// IsMathFunction reports whether s is one of sen, cos, raiz, logd, logn
func IsMathFunction(s string) bool {
	_, ok := mathFunctions[s]
	return ok
}
