// File: i18n.go
// Title: Core Internationalization Implementation
// Description: Implements the i18n Manager for loading, parsing and looking
//              up translations from TOML and YAML language files held in any
//              fs.FS, with template interpolation and default-locale
//              fallback.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-07-26 v0.1.1: Fixed template cache collision issue
// - 2026-10-15 v0.2.0: Locale files are read from an fs.FS so they can be
//                      embedded; template cache keyed per locale
// - 2026-10-18 v0.2.1: Fallback texts are rendered without caching

package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	anerror "github.com/msto63/analiza/pkg/core/error"
)

// Format represents the language file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota

	// FormatTOML represents TOML format
	FormatTOML

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

func (f Format) extensions() []string {
	switch f {
	case FormatTOML:
		return []string{".toml"}
	case FormatYAML:
		return []string{".yaml", ".yml"}
	default:
		return []string{".toml", ".yaml", ".yml"}
	}
}

// Options defines configuration options for the i18n manager
type Options struct {
	DefaultLocale string // Default locale (e.g., "es")
	FS            fs.FS  // File system holding the language files; overrides LocalesDir
	LocalesDir    string // Directory containing language files when FS is nil
	Format        Format // File format (default: auto-detect)
	NoFallback    bool   // Disable fallback to the default locale
}

// Manager manages translations for an application
type Manager struct {
	mu            sync.RWMutex
	defaultLocale string
	currentLocale string
	fallback      bool
	translations  map[string]map[string]interface{} // locale -> translations

	tmplMu    sync.Mutex
	templates map[string]*template.Template // locale:key -> compiled template
}

// TranslationData represents the structure of a translation file
type TranslationData map[string]interface{}

// New creates a new i18n manager with the specified options
func New(options Options) (*Manager, error) {
	if strings.TrimSpace(options.DefaultLocale) == "" {
		return nil, anerror.New("default locale cannot be empty").WithCode(anerror.CodeInvalidInput).WithOperation("i18n.New")
	}

	fsys := options.FS
	if fsys == nil {
		if strings.TrimSpace(options.LocalesDir) == "" {
			options.LocalesDir = "./locales"
		}
		if _, err := os.Stat(options.LocalesDir); os.IsNotExist(err) {
			return nil, anerror.New("locales directory not found").WithCode(anerror.CodeNotFound).WithOperation("i18n.New").WithDetail("directory", options.LocalesDir)
		}
		fsys = os.DirFS(options.LocalesDir)
	}

	manager := &Manager{
		defaultLocale: options.DefaultLocale,
		currentLocale: options.DefaultLocale,
		fallback:      !options.NoFallback,
		translations:  make(map[string]map[string]interface{}),
		templates:     make(map[string]*template.Template),
	}

	if err := manager.loadAll(fsys, options.Format); err != nil {
		return nil, anerror.Wrap(err, "failed to load locales").WithCode(anerror.CodeConfigError).WithOperation("i18n.loadAll")
	}

	return manager, nil
}

// loadAll loads every supported language file at the root of fsys
func (m *Manager) loadAll(fsys fs.FS, format Format) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if !supported(format, ext) {
			continue
		}

		locale := strings.TrimSuffix(name, path.Ext(name))
		if strings.TrimSpace(locale) == "" {
			continue
		}
		if _, loaded := m.translations[locale]; loaded {
			continue
		}

		data, err := parseFile(fsys, name, ext)
		if err != nil {
			return err
		}
		m.translations[locale] = data
	}

	if _, exists := m.translations[m.defaultLocale]; !exists {
		return fmt.Errorf("default locale '%s' not found", m.defaultLocale)
	}

	return nil
}

func supported(format Format, ext string) bool {
	for _, candidate := range format.extensions() {
		if ext == candidate {
			return true
		}
	}
	return false
}

func parseFile(fsys fs.FS, name, ext string) (TranslationData, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", name, err)
	}

	var data TranslationData
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to parse TOML file %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", name, err)
		}
	}
	return data, nil
}

// T translates a key with optional template data. A missing key yields the
// empty string.
func (m *Manager) T(key string, data ...map[string]interface{}) string {
	translation, _ := m.TryT(key, data...)
	return translation
}

// TryT translates a key and returns an error if translation fails
func (m *Manager) TryT(key string, data ...map[string]interface{}) (string, error) {
	m.mu.RLock()
	locale := m.currentLocale
	translation, source := m.getTranslation(key, locale)
	m.mu.RUnlock()

	if translation == "" {
		return "", anerror.New("translation not found").WithCode(anerror.CodeNotFound).WithOperation("i18n.TryT").WithDetail("key", key)
	}

	if len(data) > 0 && data[0] != nil {
		rendered, err := m.renderTemplate(source+":"+key, translation, data[0])
		if err != nil {
			return translation, anerror.Wrap(err, "template rendering failed").WithCode(anerror.CodeInvalidFormat).WithOperation("i18n.renderTemplate")
		}
		return rendered, nil
	}

	return translation, nil
}

// TWithFallback translates a key, rendering fallbackMsg when the key has
// no translation
func (m *Manager) TWithFallback(key string, fallbackMsg string, data ...map[string]interface{}) string {
	if translation, err := m.TryT(key, data...); err == nil {
		return translation
	}

	if len(data) > 0 && data[0] != nil {
		if rendered, err := m.renderTemplate("", fallbackMsg, data[0]); err == nil {
			return rendered
		}
	}

	return fallbackMsg
}

// getTranslation retrieves a translation and the locale it came from
func (m *Manager) getTranslation(key, locale string) (string, string) {
	if translations, exists := m.translations[locale]; exists {
		if value := getNestedValue(translations, key); value != "" {
			return value, locale
		}
	}

	if m.fallback && locale != m.defaultLocale {
		if translations, exists := m.translations[m.defaultLocale]; exists {
			if value := getNestedValue(translations, key); value != "" {
				return value, m.defaultLocale
			}
		}
	}

	return "", ""
}

// getNestedValue retrieves a nested value using dot notation
func getNestedValue(data map[string]interface{}, key string) string {
	keys := strings.Split(key, ".")
	current := data

	for i, k := range keys {
		if i == len(keys)-1 {
			if value, ok := current[k]; ok {
				switch v := value.(type) {
				case map[string]interface{}, TranslationData:
					return ""
				case []interface{}:
					if len(v) > 0 {
						return fmt.Sprintf("%v", v[0])
					}
					return ""
				default:
					return fmt.Sprintf("%v", v)
				}
			}
			return ""
		}

		if next, ok := current[k].(map[string]interface{}); ok {
			current = next
		} else if nextData, ok := current[k].(TranslationData); ok {
			current = nextData
		} else {
			return ""
		}
	}

	return ""
}

// renderTemplate renders a translation template with data. Templates are
// cached under cacheKey; an empty cacheKey compiles text without caching.
func (m *Manager) renderTemplate(cacheKey, text string, data map[string]interface{}) (string, error) {
	var tmpl *template.Template
	if cacheKey == "" {
		var err error
		tmpl, err = template.New("fallback").Option("missingkey=zero").Parse(text)
		if err != nil {
			return text, fmt.Errorf("template compilation failed: %w", err)
		}
	} else {
		m.tmplMu.Lock()
		cached, exists := m.templates[cacheKey]
		if !exists {
			var err error
			cached, err = template.New(cacheKey).Option("missingkey=zero").Parse(text)
			if err != nil {
				m.tmplMu.Unlock()
				return text, fmt.Errorf("template compilation failed: %w", err)
			}
			m.templates[cacheKey] = cached
		}
		m.tmplMu.Unlock()
		tmpl = cached
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return text, fmt.Errorf("template execution failed: %w", err)
	}
	return result.String(), nil
}

// SetLocale sets the current locale
func (m *Manager) SetLocale(locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.translations[locale]; !exists {
		return anerror.New("locale not available").WithCode(anerror.CodeNotFound).WithOperation("i18n.SetLocale").WithDetail("locale", locale)
	}

	m.currentLocale = locale
	return nil
}

// GetCurrentLocale returns the current locale
func (m *Manager) GetCurrentLocale() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocale
}

// GetDefaultLocale returns the default locale
func (m *Manager) GetDefaultLocale() string {
	return m.defaultLocale
}

// GetAvailableLocales returns the sorted list of loaded locales
func (m *Manager) GetAvailableLocales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locales := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// HasLocale reports whether a locale is loaded
func (m *Manager) HasLocale(locale string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.translations[locale]
	return exists
}

// GetTranslationKeys returns all leaf keys of the current locale, sorted
func (m *Manager) GetTranslationKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := collectKeys(m.translations[m.currentLocale], "")
	sort.Strings(keys)
	return keys
}

func collectKeys(data map[string]interface{}, prefix string) []string {
	var keys []string
	for k, v := range data {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		switch nested := v.(type) {
		case map[string]interface{}:
			keys = append(keys, collectKeys(nested, full)...)
		case TranslationData:
			keys = append(keys, collectKeys(nested, full)...)
		default:
			keys = append(keys, full)
		}
	}
	return keys
}
