package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/msto63/analiza/internal/analysis"
	"github.com/msto63/analiza/internal/history"
	"github.com/msto63/analiza/locales"
	"github.com/msto63/analiza/pkg/core/config"
	anerror "github.com/msto63/analiza/pkg/core/error"
	"github.com/msto63/analiza/pkg/core/i18n"
	anlog "github.com/msto63/analiza/pkg/core/log"
	"github.com/msto63/analiza/pkg/core/logging"
)

// app bundles what every command needs
type app struct {
	cfg    *config.Config
	logger *anlog.Logger
	tr     *i18n.Manager
	styles styles
	out    io.Writer
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Flags override the file
	if locale != "" {
		cfg.General.Locale = locale
	}
	if outDir != "" {
		cfg.Reports.Dir = outDir
	}

	logger := logging.FromConfig(cfg, verbose)

	tr, err := i18n.New(i18n.Options{DefaultLocale: locales.Default, FS: locales.FS})
	if err != nil {
		return nil, err
	}
	if err := selectLocale(tr, cfg.General.Locale, logger); err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		tr:     tr,
		styles: newStyles(noColor),
		out:    os.Stdout,
	}, nil
}

// selectLocale switches tr to want. A locale with no loaded translations
// keeps the default and logs a warning listing the available ones.
func selectLocale(tr *i18n.Manager, want string, logger *anlog.Logger) error {
	if !tr.HasLocale(want) {
		logger.Warn("unknown locale, using default", anlog.Fields{
			"locale":    want,
			"default":   tr.GetDefaultLocale(),
			"available": tr.GetAvailableLocales(),
		})
		return nil
	}
	return tr.SetLocale(want)
}

// loadConfig reads --config when given, else the default locations. Having
// no config file at all is fine.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, err := config.LoadFromEnv()
	if anerror.HasCode(err, anerror.CodeMissingConfig) {
		return config.Default(), nil
	}
	return cfg, err
}

func (a *app) t(key string, data ...map[string]interface{}) string {
	return a.tr.T(key, data...)
}

func (a *app) println(s string) {
	fmt.Fprintln(a.out, s)
}

// openHistory opens the run store, or returns nil when history is disabled
func (a *app) openHistory() (history.Store, error) {
	if !a.cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: a.cfg.History.Path})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// requireHistory is openHistory for commands that cannot work without it
func (a *app) requireHistory() (history.Store, error) {
	store, err := a.openHistory()
	if err != nil {
		return nil, err
	}
	if store == nil {
		a.println(a.t("cli.history.disabled"))
		return nil, errFindings
	}
	return store, nil
}

func (a *app) service(store history.Store) *analysis.Service {
	return analysis.New(analysis.Options{
		Config:     a.cfg,
		Translator: a.tr,
		Logger:     a.logger,
		History:    store,
	})
}

// check runs both stages on path and prints the summary
func (a *app) check(ctx context.Context, svc *analysis.Service, path string) (*analysis.Run, error) {
	run, err := svc.CheckFile(ctx, path)
	if anerror.HasCode(err, anerror.CodeNotFound) {
		a.println(a.styles.Fail.Render(a.t("cli.lex.file_not_found", map[string]interface{}{"File": path})))
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	a.printSummary(svc, run)
	return run, nil
}

func (a *app) printSummary(svc *analysis.Service, run *analysis.Run) {
	s := a.styles
	w := svc.Writer()

	a.println(s.Title.Render(a.t("cli.check.title", map[string]interface{}{"Source": run.Source})))
	a.println("  " + a.t("cli.check.tokens", map[string]interface{}{"Count": len(run.Tokens)}))

	a.println("  " + s.countStyle(len(run.LexicalErrors)).Render(
		a.t("cli.check.lexical", map[string]interface{}{"Count": len(run.LexicalErrors)})))
	for _, e := range run.LexicalErrors {
		a.println(s.Item.Render(w.LexicalMessage(e)))
	}

	a.println("  " + s.countStyle(len(run.SyntaxErrors)).Render(
		a.t("cli.check.syntax", map[string]interface{}{"Count": len(run.SyntaxErrors)})))
	for _, e := range run.SyntaxErrors {
		a.println(s.Item.Render(w.SyntaxMessage(e)))
	}

	if run.HasErrors() {
		a.println(s.Fail.Render(a.t("cli.check.failed")))
	} else {
		a.println(s.OK.Render(a.t("cli.check.clean")))
	}
	a.println(s.Muted.Render(a.t("cli.check.run", map[string]interface{}{
		"ID":       run.ID,
		"Duration": run.Duration.String(),
	})))
}
