package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/msto63/analiza/pkg/core/config"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("analiza")

	if cfg.Name != "analiza" {
		t.Errorf("Name = %v, want analiza", cfg.Name)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level    string
		expected anlog.Level
	}{
		{"debug", anlog.LevelDebug},
		{"info", anlog.LevelInfo},
		{"warn", anlog.LevelWarn},
		{"warning", anlog.LevelWarn},
		{"error", anlog.LevelError},
		{"invalid", anlog.LevelInfo}, // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(LoggerConfig{Name: "test", Level: tt.level, Output: &bytes.Buffer{}})
			if logger.GetLevel() != tt.expected {
				t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), tt.expected)
			}
		})
	}
}

func TestNewLogger_FormatAndOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Name:              "test",
		Level:             "info",
		Format:            "json",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("hello", anlog.Fields{"key": "value"})

	var data map[string]interface{}
	if err := json.Unmarshal(primary.Bytes(), &data); err != nil {
		t.Fatalf("primary output is not JSON: %v", err)
	}
	if data["key"] != "value" {
		t.Errorf("missing field in %v", data)
	}
	if primary.String() != extra.String() {
		t.Error("additional output should receive the same entry")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()

	if got := FromConfig(cfg, false).GetLevel(); got != anlog.LevelWarn {
		t.Errorf("FromConfig() level = %v, want warn", got)
	}
	if got := FromConfig(cfg, true).GetLevel(); got != anlog.LevelDebug {
		t.Errorf("FromConfig(verbose) level = %v, want debug", got)
	}
}
