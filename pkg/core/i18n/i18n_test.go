// File: i18n_test.go
// Title: Internationalization Module Tests
// Description: Tests for TOML/YAML loading from directories and fs.FS,
//              template rendering, fallback and the shipped locales.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial test implementation
// - 2026-10-15 v0.2.0: fs.FS loading and shipped locale coverage

package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/msto63/analiza/locales"
	anerror "github.com/msto63/analiza/pkg/core/error"
)

func TestNew(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("create with valid options", func(t *testing.T) {
		esContent := `
[messages]
welcome = "Bienvenido"
`
		if err := os.WriteFile(filepath.Join(tempDir, "es.toml"), []byte(esContent), 0644); err != nil {
			t.Fatalf("Failed to write es.toml: %v", err)
		}

		manager, err := New(Options{DefaultLocale: "es", LocalesDir: tempDir})
		if err != nil {
			t.Fatalf("Failed to create i18n manager: %v", err)
		}
		if manager.GetDefaultLocale() != "es" || manager.GetCurrentLocale() != "es" {
			t.Errorf("unexpected locales: %v", manager)
		}
	})

	t.Run("empty default locale", func(t *testing.T) {
		_, err := New(Options{DefaultLocale: " ", LocalesDir: tempDir})
		if !anerror.HasCode(err, anerror.CodeInvalidInput) {
			t.Errorf("Expected INVALID_INPUT, got %v", err)
		}
	})

	t.Run("nonexistent locales directory", func(t *testing.T) {
		_, err := New(Options{DefaultLocale: "es", LocalesDir: "/nonexistent/directory"})
		if !anerror.HasCode(err, anerror.CodeNotFound) {
			t.Errorf("Expected NOT_FOUND, got %v", err)
		}
	})

	t.Run("default locale missing", func(t *testing.T) {
		_, err := New(Options{DefaultLocale: "fr", LocalesDir: tempDir})
		if !anerror.HasCode(err, anerror.CodeConfigError) {
			t.Errorf("Expected CONFIG_ERROR, got %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		fsys := fstest.MapFS{"es.toml": {Data: []byte("[broken")}}
		if _, err := New(Options{DefaultLocale: "es", FS: fsys}); err == nil {
			t.Error("Expected error for malformed TOML")
		}
	})
}

func newMapManager(t *testing.T) *Manager {
	t.Helper()
	fsys := fstest.MapFS{
		"es.toml": {Data: []byte(`
[messages]
welcome = "Hola, {{.Name}}!"
simple = "Hola"
only_es = "Solo español"

[nested.deep]
value = "Valor profundo"
`)},
		"en.yaml": {Data: []byte(`
messages:
  welcome: "Hello, {{.Name}}!"
  simple: "Hello"
nested:
  deep:
    value: "Deep value"
`)},
		"README.md": {Data: []byte("ignored")},
	}

	manager, err := New(Options{DefaultLocale: "es", FS: fsys})
	if err != nil {
		t.Fatalf("Failed to create i18n manager: %v", err)
	}
	return manager
}

func TestTranslation(t *testing.T) {
	manager := newMapManager(t)

	tests := []struct {
		name     string
		locale   string
		key      string
		data     map[string]interface{}
		expected string
	}{
		{"simple", "es", "messages.simple", nil, "Hola"},
		{"template", "es", "messages.welcome", map[string]interface{}{"Name": "Ana"}, "Hola, Ana!"},
		{"nested", "es", "nested.deep.value", nil, "Valor profundo"},
		{"yaml simple", "en", "messages.simple", nil, "Hello"},
		{"yaml template", "en", "messages.welcome", map[string]interface{}{"Name": "Ana"}, "Hello, Ana!"},
		{"yaml nested", "en", "nested.deep.value", nil, "Deep value"},
		{"fallback to default locale", "en", "messages.only_es", nil, "Solo español"},
		{"missing", "en", "missing.key", nil, ""},
		{"table is not a leaf", "es", "nested.deep", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := manager.SetLocale(tt.locale); err != nil {
				t.Fatalf("SetLocale(%s) error = %v", tt.locale, err)
			}
			var got string
			if tt.data != nil {
				got = manager.T(tt.key, tt.data)
			} else {
				got = manager.T(tt.key)
			}
			if got != tt.expected {
				t.Errorf("T(%s) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestTryT(t *testing.T) {
	manager := newMapManager(t)

	if _, err := manager.TryT("missing.key"); !anerror.HasCode(err, anerror.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
	if got, err := manager.TryT("messages.simple"); err != nil || got != "Hola" {
		t.Errorf("TryT() = %q, %v", got, err)
	}
}

func TestTWithFallback(t *testing.T) {
	manager := newMapManager(t)

	if got := manager.TWithFallback("missing.key", "Por defecto"); got != "Por defecto" {
		t.Errorf("TWithFallback() = %q", got)
	}
	got := manager.TWithFallback("missing.key", "Línea {{.Line}}", map[string]interface{}{"Line": 7})
	if got != "Línea 7" {
		t.Errorf("TWithFallback() with data = %q", got)
	}
	if got := manager.TWithFallback("messages.simple", "Por defecto"); got != "Hola" {
		t.Errorf("TWithFallback() = %q", got)
	}
}

func TestTWithFallback_DoesNotCacheFallbackTexts(t *testing.T) {
	manager := newMapManager(t)

	for i := 0; i < 100; i++ {
		msg := fmt.Sprintf("Error %d en la línea {{.Line}}", i)
		want := fmt.Sprintf("Error %d en la línea 3", i)
		if got := manager.TWithFallback("missing.key", msg, map[string]interface{}{"Line": 3}); got != want {
			t.Fatalf("TWithFallback() = %q, want %q", got, want)
		}
	}

	manager.tmplMu.Lock()
	cached := len(manager.templates)
	manager.tmplMu.Unlock()
	if cached != 0 {
		t.Errorf("template cache holds %d entries after fallback rendering, want 0", cached)
	}

	// translated keys are still cached
	manager.T("messages.welcome", map[string]interface{}{"Name": "Ana"})
	manager.tmplMu.Lock()
	cached = len(manager.templates)
	manager.tmplMu.Unlock()
	if cached != 1 {
		t.Errorf("template cache holds %d entries, want 1", cached)
	}
}

func TestNoFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"es.toml": {Data: []byte(`only_es = "Solo"`)},
		"en.yaml": {Data: []byte(`other: "x"`)},
	}
	manager, err := New(Options{DefaultLocale: "es", FS: fsys, NoFallback: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := manager.SetLocale("en"); err != nil {
		t.Fatalf("SetLocale() error = %v", err)
	}
	if _, err := manager.TryT("only_es"); !anerror.HasCode(err, anerror.CodeNotFound) {
		t.Errorf("fallback should be disabled, TryT() error = %v", err)
	}
}

func TestLocaleManagement(t *testing.T) {
	manager := newMapManager(t)

	available := manager.GetAvailableLocales()
	if len(available) != 2 || available[0] != "en" || available[1] != "es" {
		t.Errorf("GetAvailableLocales() = %v", available)
	}
	if !manager.HasLocale("en") || manager.HasLocale("fr") {
		t.Error("HasLocale() mismatch")
	}
	if err := manager.SetLocale("fr"); !anerror.HasCode(err, anerror.CodeNotFound) {
		t.Errorf("SetLocale(fr) = %v", err)
	}

	keys := manager.GetTranslationKeys()
	want := []string{"messages.only_es", "messages.simple", "messages.welcome", "nested.deep.value"}
	if len(keys) != len(want) {
		t.Fatalf("GetTranslationKeys() = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %s, want %s", i, keys[i], want[i])
		}
	}
}

func TestShippedLocales(t *testing.T) {
	manager, err := New(Options{DefaultLocale: locales.Default, FS: locales.FS})
	if err != nil {
		t.Fatalf("Failed to load shipped locales: %v", err)
	}

	esKeys := manager.GetTranslationKeys()
	if err := manager.SetLocale("en"); err != nil {
		t.Fatalf("SetLocale(en) error = %v", err)
	}
	enKeys := manager.GetTranslationKeys()

	if len(esKeys) != len(enKeys) {
		t.Fatalf("es has %d keys, en has %d", len(esKeys), len(enKeys))
	}
	for i := range esKeys {
		if esKeys[i] != enKeys[i] {
			t.Errorf("key mismatch: es %s, en %s", esKeys[i], enKeys[i])
		}
	}

	if err := manager.SetLocale("es"); err != nil {
		t.Fatal(err)
	}
	got := manager.T("syntax.end_of_input", map[string]interface{}{"Expected": "PALABRA_RESERVADA"})
	if got != "Error sintáctico: se esperaba PALABRA_RESERVADA pero no se encontró ningún token." {
		t.Errorf("syntax.end_of_input = %q", got)
	}
}
