// Package report renders analysis results as the plain-text reports the
// tool hands between its stages, and reads the token report back.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/msto63/analiza/internal/lang/lexer"
	"github.com/msto63/analiza/internal/lang/syntax"
	"github.com/msto63/analiza/internal/lang/token"
	anerror "github.com/msto63/analiza/pkg/core/error"
)

// TokensHeader starts every token report. The token report is a machine
// hand-off format and is never localized.
const TokensHeader = "Tokens:"

// Message keys and their Spanish defaults
const (
	keyLexicalHeader = "report.lexical.header"
	keyLexicalNone   = "report.lexical.none"
	keyLexicalError  = "report.lexical.error"
	keySyntaxHeader  = "report.syntax.header"
	keySyntaxNone    = "report.syntax.none"
	keySyntaxColumn  = "report.syntax.column"

	defaultLexicalHeader = "Errores léxicos:"
	defaultLexicalNone   = "No se encontraron errores léxicos."
	defaultSyntaxHeader  = "Errores sintácticos:"
	defaultSyntaxNone    = "No se encontraron errores sintácticos."
)

// Translator resolves message keys, rendering fallbackMsg when a key has no
// translation. *i18n.Manager satisfies it. Fallbacks passed by Writer are
// already rendered.
type Translator interface {
	TWithFallback(key string, fallbackMsg string, data ...map[string]interface{}) string
}

// Options configures a Writer
type Options struct {
	Translator    Translator // nil renders the built-in Spanish messages
	SyntaxColumns bool       // append the column to syntax error messages
}

// Writer renders reports
type Writer struct {
	tr      Translator
	columns bool
}

// NewWriter creates a report writer
func NewWriter(opts Options) *Writer {
	return &Writer{tr: opts.Translator, columns: opts.SyntaxColumns}
}

func (w *Writer) translate(key, fallback string, data map[string]interface{}) string {
	if w.tr == nil {
		return fallback
	}
	if data == nil {
		return w.tr.TWithFallback(key, fallback)
	}
	return w.tr.TWithFallback(key, fallback, data)
}

// WriteTokens writes the token report: a header line, then one line per
// token with lexeme, kind name, line and column
func (w *Writer) WriteTokens(out io.Writer, tokens []token.Token) error {
	bw := bufio.NewWriter(out)
	fmt.Fprintln(bw, TokensHeader)
	for _, tok := range tokens {
		fmt.Fprintf(bw, "%-20s %-20s Linea: %d Columna: %d\n", tok.Lexeme, tok.Kind, tok.Line, tok.Column)
	}
	return flush(bw, "report.WriteTokens")
}

// LexicalMessage renders one lexical error
func (w *Writer) LexicalMessage(e lexer.Error) string {
	return w.translate(keyLexicalError, e.Error(), map[string]interface{}{
		"Char":   string(e.Char),
		"Line":   e.Line,
		"Column": e.Column,
	})
}

// WriteLexicalErrors writes the lexical error report, or the no-errors
// marker when errs is empty
func (w *Writer) WriteLexicalErrors(out io.Writer, errs []lexer.Error) error {
	bw := bufio.NewWriter(out)
	if len(errs) == 0 {
		fmt.Fprintln(bw, w.translate(keyLexicalNone, defaultLexicalNone, nil))
		return flush(bw, "report.WriteLexicalErrors")
	}

	fmt.Fprintln(bw, w.translate(keyLexicalHeader, defaultLexicalHeader, nil))
	for _, e := range errs {
		fmt.Fprintln(bw, w.LexicalMessage(e))
	}
	return flush(bw, "report.WriteLexicalErrors")
}

// SyntaxMessage renders one syntax error. The column is appended only when
// the writer was created with SyntaxColumns and the error has a position.
func (w *Writer) SyntaxMessage(e syntax.Error) string {
	msg := w.translate(e.Kind.MessageKey(), e.Error(), e.Params())
	if w.columns && e.Line > 0 {
		msg = w.translate(keySyntaxColumn, fmt.Sprintf("%s (columna %d)", msg, e.Column), map[string]interface{}{
			"Message": msg,
			"Column":  e.Column,
		})
	}
	return msg
}

// WriteSyntaxErrors writes the syntax error report, or the no-errors marker
// when errs is empty
func (w *Writer) WriteSyntaxErrors(out io.Writer, errs []syntax.Error) error {
	bw := bufio.NewWriter(out)
	if len(errs) == 0 {
		fmt.Fprintln(bw, w.translate(keySyntaxNone, defaultSyntaxNone, nil))
		return flush(bw, "report.WriteSyntaxErrors")
	}

	fmt.Fprintln(bw, w.translate(keySyntaxHeader, defaultSyntaxHeader, nil))
	for _, e := range errs {
		fmt.Fprintln(bw, w.SyntaxMessage(e))
	}
	return flush(bw, "report.WriteSyntaxErrors")
}

func flush(bw *bufio.Writer, operation string) error {
	if err := bw.Flush(); err != nil {
		return anerror.Wrap(err, "failed to write report").WithCode(anerror.CodeIOError).WithOperation(operation)
	}
	return nil
}

// WriteFile creates path, including missing parent directories, and fills
// it with render
func WriteFile(path string, render func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return anerror.Wrap(err, "failed to create report directory").
				WithCode(anerror.CodeIOError).
				WithOperation("report.WriteFile").
				WithDetail("path", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return anerror.Wrap(err, "failed to create report").
			WithCode(anerror.CodeIOError).
			WithOperation("report.WriteFile").
			WithDetail("path", path)
	}

	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return anerror.Wrap(err, "failed to close report").
			WithCode(anerror.CodeIOError).
			WithOperation("report.WriteFile").
			WithDetail("path", path)
	}
	return nil
}
