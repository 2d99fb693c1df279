package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	anerror "github.com/msto63/analiza/pkg/core/error"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "ANALIZA_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Reports ReportsConfig `toml:"reports"`
	Checker CheckerConfig `toml:"checker"`
	History HistoryConfig `toml:"history"`
	Watch   WatchConfig   `toml:"watch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Locale    string `toml:"locale"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// ReportsConfig holds the location and names of the textual reports
type ReportsConfig struct {
	Dir           string `toml:"dir"`
	TokensFile    string `toml:"tokens_file"`
	LexicalFile   string `toml:"lexical_file"`
	SyntaxFile    string `toml:"syntax_file"`
	SyntaxColumns bool   `toml:"syntax_columns"`
}

// CheckerConfig holds syntax checker limits
type CheckerConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// HistoryConfig holds the run history store settings
type HistoryConfig struct {
	Enabled   bool     `toml:"enabled"`
	Path      string   `toml:"path"`
	Retention Duration `toml:"retention"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{History: HistoryConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, anerror.New("config file not found").
			WithCode(anerror.CodeMissingConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, anerror.Wrap(err, "failed to parse config").
			WithCode(anerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the ANALIZA_CONFIG environment
// variable or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/analiza.toml",
			"./analiza.toml",
			filepath.Join(os.Getenv("HOME"), ".config/analiza/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, anerror.New("no config file found, set " + EnvConfigPath + " or create configs/analiza.toml").
			WithCode(anerror.CodeMissingConfig).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Locale == "" {
		c.General.Locale = "es"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Reports
	if c.Reports.Dir == "" {
		c.Reports.Dir = "."
	}
	if c.Reports.TokensFile == "" {
		c.Reports.TokensFile = "resultados.txt"
	}
	if c.Reports.LexicalFile == "" {
		c.Reports.LexicalFile = "errores_lexicos.txt"
	}
	if c.Reports.SyntaxFile == "" {
		c.Reports.SyntaxFile = "errores_sintaxis.txt"
	}

	// Checker
	if c.Checker.MaxDepth == 0 {
		c.Checker.MaxDepth = 1000
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "./data/analiza.db"
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Reports.Dir = os.ExpandEnv(c.Reports.Dir)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, msg string) error {
		return anerror.New(msg).
			WithCode(anerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("key", key).
			WithDetail("value", value)
	}

	if _, err := anlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "unknown log level")
	}
	if _, err := anlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, "unknown log format")
	}
	if strings.TrimSpace(c.General.Locale) == "" {
		return invalid("general.locale", c.General.Locale, "locale cannot be blank")
	}
	for key, name := range map[string]string{
		"reports.tokens_file":  c.Reports.TokensFile,
		"reports.lexical_file": c.Reports.LexicalFile,
		"reports.syntax_file":  c.Reports.SyntaxFile,
	} {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) {
			return invalid(key, name, "report file must be a plain file name")
		}
	}
	if c.Checker.MaxDepth < 0 {
		return invalid("checker.max_depth", c.Checker.MaxDepth, "max depth must be positive")
	}
	if c.History.Retention.Duration < 0 {
		return invalid("history.retention", c.History.Retention.String(), "retention cannot be negative")
	}
	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", c.Watch.Debounce.String(), "debounce cannot be negative")
	}
	return nil
}

// TokensPath returns the path of the token report
func (c *Config) TokensPath() string {
	return filepath.Join(c.Reports.Dir, c.Reports.TokensFile)
}

// LexicalPath returns the path of the lexical error report
func (c *Config) LexicalPath() string {
	return filepath.Join(c.Reports.Dir, c.Reports.LexicalFile)
}

// SyntaxPath returns the path of the syntax error report
func (c *Config) SyntaxPath() string {
	return filepath.Join(c.Reports.Dir, c.Reports.SyntaxFile)
}
