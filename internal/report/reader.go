package report

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/msto63/analiza/internal/lang/token"
	anerror "github.com/msto63/analiza/pkg/core/error"
)

const (
	lineLabel   = "Linea:"
	columnLabel = "Columna:"
)

// ReadTokens parses a token report. Header lines and lines with fewer than
// three fields are skipped. The column is optional and reads as 0 when
// absent.
func ReadTokens(r io.Reader) ([]token.Token, error) {
	var tokens []token.Token

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.HasPrefix(text, TokensHeader) {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			continue
		}

		tok, err := parseTokenLine(fields)
		if err != nil {
			return nil, anerror.Wrap(err, "malformed token report").
				WithCode(anerror.CodeInvalidFormat).
				WithOperation("report.ReadTokens").
				WithDetail("report_line", lineNo)
		}
		tokens = append(tokens, tok)
	}

	if err := scanner.Err(); err != nil {
		return nil, anerror.Wrap(err, "failed to read token report").
			WithCode(anerror.CodeIOError).
			WithOperation("report.ReadTokens")
	}
	return tokens, nil
}

// ReadTokensFile reads a token report from path
func ReadTokensFile(path string) ([]token.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		code := anerror.CodeIOError
		if os.IsNotExist(err) {
			code = anerror.CodeNotFound
		}
		return nil, anerror.Wrap(err, "failed to open token report").
			WithCode(code).
			WithOperation("report.ReadTokensFile").
			WithDetail("path", path)
	}
	defer f.Close()

	return ReadTokens(f)
}

func parseTokenLine(fields []string) (token.Token, error) {
	kind, err := token.ParseKind(strings.ToUpper(fields[1]))
	if err != nil {
		return token.Token{}, err
	}

	lineText, ok := labelled(fields[2:], lineLabel)
	if !ok {
		return token.Token{}, anerror.New("missing line number").WithDetail("lexeme", fields[0])
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return token.Token{}, anerror.New("invalid line number").WithDetail("value", lineText)
	}

	column := 0
	if columnText, ok := labelled(fields[2:], columnLabel); ok {
		column, err = strconv.Atoi(columnText)
		if err != nil || column < 1 {
			return token.Token{}, anerror.New("invalid column number").WithDetail("value", columnText)
		}
	}

	return token.Token{Lexeme: fields[0], Kind: kind, Line: line, Column: column}, nil
}

// labelled returns the value following label, written either as a separate
// field or glued to it
func labelled(fields []string, label string) (string, bool) {
	for i, f := range fields {
		if f == label {
			if i+1 < len(fields) {
				return fields[i+1], true
			}
			return "", false
		}
		if strings.HasPrefix(f, label) {
			return strings.TrimPrefix(f, label), true
		}
	}
	return "", false
}
