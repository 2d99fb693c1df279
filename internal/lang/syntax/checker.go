// File: checker.go
// Title: Recursive-Descent Syntax Checker
// Description: Walks a token sequence with one token of lookahead and
//              collects syntax errors. A failed expectation never moves the
//              cursor, so one missing token can produce several errors in
//              the same statement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-13 v0.1.0: Initial checker
// - 2026-10-15 v0.1.1: Depth limit for conditionals and expressions
// - 2026-10-18 v0.1.2: Operator chains no longer count towards the depth limit

package syntax

import (
	"github.com/msto63/analiza/internal/lang/token"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

// DefaultMaxDepth bounds nested conditionals, parentheses, function calls
// and keyword-operators
const DefaultMaxDepth = 1000

// Options configures a Checker
type Options struct {
	Logger   *anlog.Logger
	MaxDepth int
}

// Checker validates token sequences against the grammar. It keeps no
// per-run state and may be shared.
type Checker struct {
	logger   *anlog.Logger
	maxDepth int
}

// New creates a checker
func New(opts Options) *Checker {
	if opts.Logger == nil {
		opts.Logger = anlog.GetDefault()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Checker{
		logger:   opts.Logger.WithField("component", "syntax"),
		maxDepth: opts.MaxDepth,
	}
}

// Check runs one forward pass over tokens and returns the errors in
// detection order
func (c *Checker) Check(tokens []token.Token) []Error {
	timer := c.logger.StartTimer("syntax analysis").WithField("tokens", len(tokens))

	r := &run{tokens: tokens, maxDepth: c.maxDepth}
	r.program()

	timer.WithField("errors", len(r.errors)).Stop()
	return r.errors
}

// Check validates tokens with a default checker
func Check(tokens []token.Token) []Error {
	return New(Options{}).Check(tokens)
}

// run is the state of one pass: the cursor, the collected errors and the
// current nesting depth
type run struct {
	tokens   []token.Token
	pos      int
	errors   []Error
	depth    int
	maxDepth int
	tooDeep  bool
}

func (r *run) current() (token.Token, bool) {
	if r.pos < len(r.tokens) {
		return r.tokens[r.pos], true
	}
	return token.Token{}, false
}

func (r *run) advance() {
	if r.pos < len(r.tokens) {
		r.pos++
	}
}

func (r *run) report(err Error) {
	r.errors = append(r.errors, err)
}

// consume advances past the current token if it has the expected kind.
// Otherwise it records an error and leaves the cursor where it is.
func (r *run) consume(expected token.Kind) {
	tok, ok := r.current()
	switch {
	case !ok:
		r.report(Error{Kind: ErrEndOfInput, Expected: expected})
	case tok.Kind != expected:
		r.report(mismatch(expected, tok))
	default:
		r.advance()
	}
}

// enter increments the depth. When the limit is exceeded it records a
// single error for the run, skips the current token and returns false.
func (r *run) enter() bool {
	if r.depth >= r.maxDepth {
		if tok, ok := r.current(); ok {
			if !r.tooDeep {
				r.report(atToken(ErrNestingTooDeep, tok))
				r.tooDeep = true
			}
			r.advance()
		}
		return false
	}
	r.depth++
	return true
}

func (r *run) leave() {
	r.depth--
}

func (r *run) program() {
	for {
		tok, ok := r.current()
		if !ok {
			return
		}
		if tok.Lexeme == token.KeywordFin {
			r.advance()
			continue
		}
		r.statement(tok)
	}
}

// block parses statements until "fin" or the end of the tokens. The "fin"
// itself is left for the enclosing conditional.
func (r *run) block() {
	for {
		tok, ok := r.current()
		if !ok || tok.Lexeme == token.KeywordFin {
			return
		}
		r.statement(tok)
	}
}

// statement dispatches on the lexeme of tok. A statement that consumed
// nothing, which only happens for hand-edited token reports where a keyword
// carries the wrong kind, is skipped so both loops terminate.
func (r *run) statement(tok token.Token) {
	start := r.pos
	switch tok.Lexeme {
	case token.KeywordVar:
		r.declaration()
	case token.KeywordMostrar:
		r.show()
	case token.KeywordSi:
		r.conditional()
	default:
		r.report(atToken(ErrUnexpectedToken, tok))
	}
	if r.pos == start {
		r.advance()
	}
}

// var IDENT = Expression ;
func (r *run) declaration() {
	r.consume(token.Reserved)
	r.consume(token.Identifier)
	r.consume(token.Assignment)
	r.expression()
	r.consume(token.Semicolon)
}

// mostrar IDENT ;
func (r *run) show() {
	r.consume(token.Reserved)
	r.consume(token.Identifier)
	r.consume(token.Semicolon)
}

// si ( Expression Comparator Expression ) entonces Block fin
func (r *run) conditional() {
	if !r.enter() {
		return
	}
	defer r.leave()

	r.consume(token.Reserved)
	r.consume(token.Paren)
	r.expression()
	r.consume(token.Comparator)
	r.expression()
	r.consume(token.Paren)
	r.consume(token.Reserved)
	r.block()
	r.consume(token.Reserved)
}

// expression walks Operand (Operator Expression)* as a loop, so a long
// operator chain does not add depth. Only parentheses, function calls and
// keyword-operators nest.
func (r *run) expression() {
	chained := false
	for {
		tok, ok := r.current()
		if !ok {
			r.report(Error{Kind: ErrExpressionEnd})
			return
		}

		if tok.Kind == token.Identifier || tok.Kind == token.Integer || tok.Kind == token.Real {
			r.advance()
		} else {
			r.nested(tok)
			// a nested form only continues a chain that an operator started
			if !chained {
				return
			}
		}

		next, ok := r.current()
		if !ok || next.Kind != token.Operator {
			return
		}
		r.advance()
		chained = true
	}
}

// nested parses an expression form that does not start with an operand
func (r *run) nested(tok token.Token) {
	switch {
	case tok.Is(token.Paren, "("):
		if !r.enter() {
			return
		}
		defer r.leave()
		r.consume(token.Paren)
		r.expression()
		r.consume(token.Paren)

	case token.IsMathFunction(tok.Lexeme):
		if !r.enter() {
			return
		}
		defer r.leave()
		r.advance()
		r.consume(token.Paren)
		r.expression()
		r.consume(token.Paren)

	case token.IsKeywordOperator(tok.Lexeme):
		if !r.enter() {
			return
		}
		defer r.leave()
		r.advance()
		r.expression()

	case tok.Kind == token.Reserved:
		r.report(atToken(ErrUnknownKeyword, tok))

	default:
		r.report(atToken(ErrInvalidExpression, tok))
	}
}
