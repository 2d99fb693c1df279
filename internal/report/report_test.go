package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/analiza/internal/lang/lexer"
	"github.com/msto63/analiza/internal/lang/syntax"
	"github.com/msto63/analiza/internal/lang/token"
	"github.com/msto63/analiza/locales"
	anerror "github.com/msto63/analiza/pkg/core/error"
	"github.com/msto63/analiza/pkg/core/i18n"
)

func TestWriter_WriteTokens(t *testing.T) {
	tokens := []token.Token{
		{Lexeme: "var", Kind: token.Reserved, Line: 1, Column: 1},
		{Lexeme: "x", Kind: token.Identifier, Line: 1, Column: 5},
	}

	var buf bytes.Buffer
	if err := NewWriter(Options{}).WriteTokens(&buf, tokens); err != nil {
		t.Fatalf("WriteTokens() error = %v", err)
	}

	expected := "Tokens:\n" +
		"var                  PALABRA_RESERVADA    Linea: 1 Columna: 1\n" +
		"x                    IDENTIFICADOR        Linea: 1 Columna: 5\n"
	if buf.String() != expected {
		t.Errorf("WriteTokens() =\n%q\nwant\n%q", buf.String(), expected)
	}
}

func TestWriter_WriteLexicalErrors(t *testing.T) {
	tests := []struct {
		name     string
		errs     []lexer.Error
		expected string
	}{
		{
			name:     "no errors",
			expected: "No se encontraron errores léxicos.\n",
		},
		{
			name: "with errors",
			errs: []lexer.Error{{Char: '.', Line: 1, Column: 10}, {Char: 'ñ', Line: 3, Column: 2}},
			expected: "Errores léxicos:\n" +
				"Caracter inesperado '.' en linea 1, columna 10\n" +
				"Caracter inesperado 'ñ' en linea 3, columna 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(Options{}).WriteLexicalErrors(&buf, tt.errs); err != nil {
				t.Fatalf("WriteLexicalErrors() error = %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("got %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestWriter_WriteSyntaxErrors(t *testing.T) {
	errs := []syntax.Error{
		{Kind: syntax.ErrMismatch, Expected: token.Identifier, Lexeme: ";", Line: 2, Column: 9},
		{Kind: syntax.ErrEndOfInput, Expected: token.Reserved},
	}

	t.Run("no errors", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(Options{}).WriteSyntaxErrors(&buf, nil); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "No se encontraron errores sintácticos.\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("line only by default", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(Options{}).WriteSyntaxErrors(&buf, errs); err != nil {
			t.Fatal(err)
		}
		expected := "Errores sintácticos:\n" +
			"Error sintáctico: se esperaba IDENTIFICADOR pero se encontró ';' en línea 2\n" +
			"Error sintáctico: se esperaba PALABRA_RESERVADA pero no se encontró ningún token.\n"
		if buf.String() != expected {
			t.Errorf("got %q, want %q", buf.String(), expected)
		}
	})

	t.Run("with columns", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(Options{SyntaxColumns: true}).WriteSyntaxErrors(&buf, errs); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if !strings.HasSuffix(lines[1], "en línea 2 (columna 9)") {
			t.Errorf("column not appended: %q", lines[1])
		}
		if strings.Contains(lines[2], "columna") {
			t.Errorf("end-of-input error has no position: %q", lines[2])
		}
	})
}

func newTranslator(t *testing.T, locale string) *i18n.Manager {
	t.Helper()
	manager, err := i18n.New(i18n.Options{DefaultLocale: locales.Default, FS: locales.FS})
	if err != nil {
		t.Fatalf("i18n.New() error = %v", err)
	}
	if err := manager.SetLocale(locale); err != nil {
		t.Fatalf("SetLocale() error = %v", err)
	}
	return manager
}

// The shipped Spanish locale must render exactly what the built-in
// defaults render
func TestWriter_SpanishLocaleMatchesDefaults(t *testing.T) {
	plain := NewWriter(Options{SyntaxColumns: true})
	localized := NewWriter(Options{Translator: newTranslator(t, "es"), SyntaxColumns: true})

	syntaxErrs := []syntax.Error{
		{Kind: syntax.ErrMismatch, Expected: token.Semicolon, Lexeme: "2", Line: 1, Column: 15},
		{Kind: syntax.ErrEndOfInput, Expected: token.Paren},
		{Kind: syntax.ErrUnexpectedToken, Lexeme: "x", Line: 4, Column: 1},
		{Kind: syntax.ErrUnknownKeyword, Lexeme: "entonces", Line: 2, Column: 3},
		{Kind: syntax.ErrInvalidExpression, Lexeme: ")", Line: 5, Column: 8},
		{Kind: syntax.ErrExpressionEnd},
		{Kind: syntax.ErrNestingTooDeep, Lexeme: "si", Line: 9, Column: 4},
	}
	for _, e := range syntaxErrs {
		if got, want := localized.SyntaxMessage(e), plain.SyntaxMessage(e); got != want {
			t.Errorf("%s: localized %q, default %q", e.Kind, got, want)
		}
	}

	lexErr := lexer.Error{Char: '@', Line: 2, Column: 7}
	if got, want := localized.LexicalMessage(lexErr), plain.LexicalMessage(lexErr); got != want {
		t.Errorf("lexical: localized %q, default %q", got, want)
	}

	var a, b bytes.Buffer
	_ = plain.WriteLexicalErrors(&a, nil)
	_ = localized.WriteLexicalErrors(&b, nil)
	if a.String() != b.String() {
		t.Errorf("no-errors marker differs: %q vs %q", a.String(), b.String())
	}
}

func TestWriter_EnglishLocale(t *testing.T) {
	w := NewWriter(Options{Translator: newTranslator(t, "en")})

	var buf bytes.Buffer
	err := w.WriteSyntaxErrors(&buf, []syntax.Error{{Kind: syntax.ErrUnexpectedToken, Lexeme: "x", Line: 4}})
	if err != nil {
		t.Fatal(err)
	}
	expected := "Syntax errors:\nSyntax error: unexpected token 'x' at line 4\n"
	if buf.String() != expected {
		t.Errorf("got %q, want %q", buf.String(), expected)
	}
}

func TestReadTokens_RoundTrip(t *testing.T) {
	source := "var x = 3.14;\nsi (x >= 1) entonces\n  mostrar x;\nfin"
	tokens := lexer.Tokenize(source).Tokens

	var buf bytes.Buffer
	if err := NewWriter(Options{}).WriteTokens(&buf, tokens); err != nil {
		t.Fatal(err)
	}

	read, err := ReadTokens(&buf)
	if err != nil {
		t.Fatalf("ReadTokens() error = %v", err)
	}
	if len(read) != len(tokens) {
		t.Fatalf("read %d tokens, wrote %d", len(read), len(tokens))
	}
	for i := range tokens {
		if read[i] != tokens[i] {
			t.Errorf("token %d: read %v, wrote %v", i, read[i], tokens[i])
		}
	}
}

func TestReadTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
		code     anerror.Code
	}{
		{
			name:  "short lines skipped",
			input: "Tokens:\n\nfoo bar\nx IDENTIFICADOR Linea: 2 Columna: 4\n",
			expected: []token.Token{
				{Lexeme: "x", Kind: token.Identifier, Line: 2, Column: 4},
			},
		},
		{
			name:  "lowercase kind and glued line without column",
			input: "; punto_y_coma Linea:7\n",
			expected: []token.Token{
				{Lexeme: ";", Kind: token.Semicolon, Line: 7},
			},
		},
		{
			name:  "unknown kind",
			input: "x VARIABLE Linea: 1 Columna: 1\n",
			code:  anerror.CodeInvalidFormat,
		},
		{
			name:  "non-numeric line",
			input: "x IDENTIFICADOR Linea: uno Columna: 1\n",
			code:  anerror.CodeInvalidFormat,
		},
		{
			name:  "missing line",
			input: "x IDENTIFICADOR Columna: 1\n",
			code:  anerror.CodeInvalidFormat,
		},
		{
			name:  "bad column",
			input: "x IDENTIFICADOR Linea: 1 Columna: 0\n",
			code:  anerror.CodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := ReadTokens(strings.NewReader(tt.input))
			if tt.code != "" {
				if !anerror.HasCode(err, tt.code) {
					t.Fatalf("ReadTokens() error = %v, want code %v", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadTokens() error = %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %v, want %v", tokens, tt.expected)
			}
			for i := range tt.expected {
				if tokens[i] != tt.expected[i] {
					t.Errorf("token %d = %v, want %v", i, tokens[i], tt.expected[i])
				}
			}
		})
	}
}

func TestWriteFileAndReadTokensFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "resultados.txt")
	tokens := []token.Token{{Lexeme: "fin", Kind: token.Reserved, Line: 1, Column: 1}}

	err := WriteFile(path, func(w io.Writer) error {
		return NewWriter(Options{}).WriteTokens(w, tokens)
	})
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not created: %v", err)
	}

	read, err := ReadTokensFile(path)
	if err != nil || len(read) != 1 || read[0] != tokens[0] {
		t.Errorf("ReadTokensFile() = %v, %v", read, err)
	}

	_, err = ReadTokensFile(filepath.Join(dir, "missing.txt"))
	if !anerror.HasCode(err, anerror.CodeNotFound) {
		t.Errorf("missing report error = %v, want NOT_FOUND", err)
	}
}
