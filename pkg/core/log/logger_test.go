package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	anerror "github.com/msto63/analiza/pkg/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf, Name: "test"}), &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if f, err := ParseFormat("logfmt"); err != nil || f != FormatLogfmt {
		t.Errorf("ParseFormat(logfmt) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("entries below warn were written: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestLogger_JSONFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.WithField("component", "lexer").Info("tokenized", Fields{"tokens": 5})

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if data["component"] != "lexer" || data["tokens"] != float64(5) {
		t.Errorf("missing fields in %v", data)
	}
	if data["level"] != "info" || data["logger"] != "test" || data["message"] != "tokenized" {
		t.Errorf("unexpected standard fields in %v", data)
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatLogfmt)
	_ = parent.WithField("child", true)

	parent.Info("parent")
	if strings.Contains(buf.String(), "child") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestLogger_WithFieldsOverridesContext(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatJSON)
	base := parent.WithFields(Fields{"component": "lexer", "source": "a.txt"})
	child := base.WithFields(Fields{"source": "b.txt"})

	child.Info("child")
	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if data["component"] != "lexer" || data["source"] != "b.txt" {
		t.Errorf("unexpected fields in %v", data)
	}

	buf.Reset()
	base.Info("base")
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if data["source"] != "a.txt" {
		t.Errorf("child override leaked into parent: %v", data)
	}
}

func TestFields_Merge(t *testing.T) {
	a := Fields{"x": 1, "y": 2}
	merged := a.Merge(Fields{"y": 3, "z": 4})

	if merged["x"] != 1 || merged["y"] != 3 || merged["z"] != 4 {
		t.Errorf("Merge() = %v", merged)
	}
	if a["y"] != 2 || len(a) != 2 {
		t.Errorf("Merge() mutated receiver: %v", a)
	}
	if got := Fields(nil).Merge(nil); got == nil || len(got) != 0 {
		t.Errorf("nil Merge(nil) = %v, want empty map", got)
	}
}

func TestLogger_LogError(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatText)

	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Fatal("LogError(nil) should not write")
	}

	logger.LogError(anerror.New("bad report").WithCode(anerror.CodeInvalidFormat))
	if !strings.Contains(buf.String(), "[INFO]") || !strings.Contains(buf.String(), "error_code=INVALID_FORMAT") {
		t.Errorf("low severity error should log at info with code: %q", buf.String())
	}

	buf.Reset()
	logger.LogError(fmt.Errorf("plain"))
	if !strings.Contains(buf.String(), "[ERRO]") {
		t.Errorf("plain error should log at error: %q", buf.String())
	}
}

func TestTimer_Stop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	timer := logger.StartTimer("lexical analysis").WithField("source", "prog.txt")
	time.Sleep(time.Millisecond)
	if d := timer.Stop(); d <= 0 {
		t.Errorf("Stop() = %v, want > 0", d)
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	out := buf.String()
	if strings.Count(out, "lexical analysis completed") != 1 {
		t.Errorf("expected one completion line, got %q", out)
	}
	if !strings.Contains(out, "source=prog.txt") || !strings.Contains(out, "duration=") {
		t.Errorf("missing timer fields in %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard logger should not enable any level")
	}
	logger.Error("nothing")
}
