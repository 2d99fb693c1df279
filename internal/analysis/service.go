// ============================================================================
// analiza - Analizador léxico y sintáctico
// ============================================================================
//
// Package:     analysis
// Description: Pipeline that runs both analysis stages through the textual
//              report hand-off and records each run
// Author:      msto63
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package analysis

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/analiza/internal/history"
	"github.com/msto63/analiza/internal/lang/lexer"
	"github.com/msto63/analiza/internal/lang/syntax"
	"github.com/msto63/analiza/internal/lang/token"
	"github.com/msto63/analiza/internal/report"
	"github.com/msto63/analiza/pkg/core/config"
	anerror "github.com/msto63/analiza/pkg/core/error"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

// Run is the outcome of one analysis
type Run struct {
	ID            string
	Source        string
	Tokens        []token.Token
	LexicalErrors []lexer.Error
	SyntaxErrors  []syntax.Error
	StartedAt     time.Time
	Duration      time.Duration

	// Rendered reports, empty for stages that did not run
	TokenReport   string
	LexicalReport string
	SyntaxReport  string
}

// HasErrors reports whether either stage found an error
func (r *Run) HasErrors() bool {
	return len(r.LexicalErrors) > 0 || len(r.SyntaxErrors) > 0
}

// Options configures a Service
type Options struct {
	Config     *config.Config    // nil uses config.Default()
	Translator report.Translator // nil renders the built-in Spanish messages
	Logger     *anlog.Logger
	History    history.Store // nil disables run recording
}

// Service runs the analysis stages
type Service struct {
	cfg     *config.Config
	lexer   *lexer.Lexer
	checker *syntax.Checker
	writer  *report.Writer
	history history.Store
	logger  *anlog.Logger
}

// New creates a service
func New(opts Options) *Service {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = anlog.GetDefault()
	}

	return &Service{
		cfg:     opts.Config,
		lexer:   lexer.New(lexer.Options{Logger: opts.Logger}),
		checker: syntax.New(syntax.Options{Logger: opts.Logger, MaxDepth: opts.Config.Checker.MaxDepth}),
		writer: report.NewWriter(report.Options{
			Translator:    opts.Translator,
			SyntaxColumns: opts.Config.Reports.SyntaxColumns,
		}),
		history: opts.History,
		logger:  opts.Logger.WithField("component", "analysis"),
	}
}

// Writer returns the report writer used for rendering messages
func (s *Service) Writer() *report.Writer {
	return s.writer
}

// ReadSource reads a source file
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", anerror.New("source file not found").
			WithCode(anerror.CodeNotFound).
			WithOperation("analysis.ReadSource").
			WithDetail("path", path)
	}
	if err != nil {
		return "", anerror.Wrap(err, "failed to read source").
			WithCode(anerror.CodeIOError).
			WithOperation("analysis.ReadSource").
			WithDetail("path", path)
	}
	return string(data), nil
}

func newRun(source string) *Run {
	return &Run{ID: uuid.New().String(), Source: source, StartedAt: time.Now()}
}

// Lex runs the first stage: it tokenizes source and writes the token and
// lexical error reports
func (s *Service) Lex(ctx context.Context, name, source string) (*Run, error) {
	run := newRun(name)
	if err := s.lex(ctx, run, source); err != nil {
		return nil, err
	}
	run.Duration = time.Since(run.StartedAt)
	return run, nil
}

func (s *Service) lex(ctx context.Context, run *Run, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result := s.lexer.Tokenize(source)
	run.Tokens = result.Tokens
	run.LexicalErrors = result.Errors

	tokenReport, err := s.render(func(w io.Writer) error { return s.writer.WriteTokens(w, result.Tokens) })
	if err != nil {
		return err
	}
	lexicalReport, err := s.render(func(w io.Writer) error { return s.writer.WriteLexicalErrors(w, result.Errors) })
	if err != nil {
		return err
	}
	run.TokenReport = tokenReport
	run.LexicalReport = lexicalReport

	if err := writeReport(s.cfg.TokensPath(), tokenReport); err != nil {
		return err
	}
	if err := writeReport(s.cfg.LexicalPath(), lexicalReport); err != nil {
		return err
	}

	s.logger.Debug("lexical stage finished", anlog.Fields{
		"source":  run.Source,
		"tokens":  len(run.Tokens),
		"errors":  len(run.LexicalErrors),
		"run_id":  run.ID,
		"reports": s.cfg.Reports.Dir,
	})
	return nil
}

// Parse runs the second stage: it reads the token report at reportPath and
// writes the syntax error report. An empty reportPath uses the configured
// token report.
func (s *Service) Parse(ctx context.Context, reportPath string) (*Run, error) {
	if reportPath == "" {
		reportPath = s.cfg.TokensPath()
	}
	run := newRun(reportPath)

	tokens, err := report.ReadTokensFile(reportPath)
	if err != nil {
		return nil, err
	}
	if err := s.parse(ctx, run, tokens); err != nil {
		return nil, err
	}
	run.Duration = time.Since(run.StartedAt)
	return run, nil
}

func (s *Service) parse(ctx context.Context, run *Run, tokens []token.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	run.Tokens = tokens
	run.SyntaxErrors = s.checker.Check(tokens)

	syntaxReport, err := s.render(func(w io.Writer) error { return s.writer.WriteSyntaxErrors(w, run.SyntaxErrors) })
	if err != nil {
		return err
	}
	run.SyntaxReport = syntaxReport

	if err := writeReport(s.cfg.SyntaxPath(), syntaxReport); err != nil {
		return err
	}

	s.logger.Debug("syntax stage finished", anlog.Fields{
		"source": run.Source,
		"errors": len(run.SyntaxErrors),
		"run_id": run.ID,
	})
	return nil
}

// Check runs both stages. The checker consumes the tokens re-read from the
// rendered token report, so a run behaves exactly like lex followed by
// parse. The run is recorded when a history store is configured.
func (s *Service) Check(ctx context.Context, name, source string) (*Run, error) {
	run := newRun(name)

	if err := s.lex(ctx, run, source); err != nil {
		return nil, err
	}

	tokens, err := report.ReadTokens(bytes.NewBufferString(run.TokenReport))
	if err != nil {
		return nil, anerror.Wrap(err, "token report did not round-trip").
			WithCode(anerror.CodeInternal).
			WithOperation("analysis.Check")
	}
	if err := s.parse(ctx, run, tokens); err != nil {
		return nil, err
	}
	run.Duration = time.Since(run.StartedAt)

	s.record(ctx, run)

	s.logger.Info("analysis finished", anlog.Fields{
		"source":         run.Source,
		"tokens":         len(run.Tokens),
		"lexical_errors": len(run.LexicalErrors),
		"syntax_errors":  len(run.SyntaxErrors),
		"duration":       run.Duration.String(),
	})
	return run, nil
}

// CheckFile reads path and checks it
func (s *Service) CheckFile(ctx context.Context, path string) (*Run, error) {
	source, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return s.Check(ctx, path, source)
}

// record stores the run. Store failures are logged and do not fail the run.
func (s *Service) record(ctx context.Context, run *Run) {
	if s.history == nil {
		return
	}

	entry := &history.Entry{
		ID:                run.ID,
		Source:            run.Source,
		StartedAt:         run.StartedAt,
		Duration:          run.Duration,
		TokenCount:        len(run.Tokens),
		LexicalErrorCount: len(run.LexicalErrors),
		SyntaxErrorCount:  len(run.SyntaxErrors),
		TokenReport:       run.TokenReport,
		LexicalReport:     run.LexicalReport,
		SyntaxReport:      run.SyntaxReport,
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.ErrorWithErr("failed to record run", err, anlog.Fields{"run_id": run.ID})
	}
}

func (s *Service) render(fn func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeReport(path, content string) error {
	return report.WriteFile(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, content); err != nil {
			return anerror.Wrap(err, "failed to write report").
				WithCode(anerror.CodeIOError).
				WithOperation("analysis.writeReport").
				WithDetail("path", path)
		}
		return nil
	})
}
