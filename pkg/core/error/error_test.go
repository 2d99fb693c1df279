package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("boom")

	if err.Error() != "boom" {
		t.Errorf("Error() = %v, want boom", err.Error())
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want medium", err.Severity())
	}
}

func TestWithCode_SetsSeverity(t *testing.T) {
	tests := []struct {
		code     Code
		expected Severity
	}{
		{CodeInternal, SeverityCritical},
		{CodeDatabaseError, SeverityHigh},
		{CodeIOError, SeverityHigh},
		{CodeInvalidFormat, SeverityLow},
		{CodeNotFound, SeverityLow},
		{CodeMissingConfig, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.expected {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Fatal("Wrap(nil) should return nil")
	}

	base := fmt.Errorf("disk full")
	wrapped := Wrap(base, "writing report")
	if wrapped.Error() != "writing report: disk full" {
		t.Errorf("Error() = %v", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is should find the cause")
	}

	inner := New("bad line").WithCode(CodeInvalidFormat).WithDetail("line", 3)
	outer := Wrap(inner, "reading tokens")
	if outer.Code() != CodeInvalidFormat {
		t.Errorf("Code() = %v, want inherited %v", outer.Code(), CodeInvalidFormat)
	}
	if outer.Details()["line"] != 3 {
		t.Errorf("Details() should inherit line, got %v", outer.Details())
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	inner := New("missing").WithCode(CodeNotFound)
	chain := fmt.Errorf("outer: %w", Wrap(inner, "middle").WithCode(CodeIOError))

	if !HasCode(chain, CodeNotFound) {
		t.Error("HasCode should find the inner code")
	}
	if !HasCode(chain, CodeIOError) {
		t.Error("HasCode should find the middle code")
	}
	if HasCode(chain, CodeDatabaseError) {
		t.Error("HasCode should not find an absent code")
	}
	if GetCode(chain) != CodeIOError {
		t.Errorf("GetCode() = %v, want %v", GetCode(chain), CodeIOError)
	}
	if GetCode(fmt.Errorf("plain")) != CodeUnknown {
		t.Error("GetCode of a plain error should be UNKNOWN")
	}
}

func TestString(t *testing.T) {
	err := New("cannot open").
		WithCode(CodeIOError).
		WithOperation("report.WriteTokens").
		WithDetail("path", "resultados.txt").
		WithDetail("attempt", 1)

	s := err.String()
	for _, want := range []string{"[IO_ERROR]", "cannot open", "operation: report.WriteTokens", "attempt=1, path=resultados.txt"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("bad").WithCode(CodeInvalidFormat).WithOperation("op")
	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal error = %v", jerr)
	}
	if decoded["code"] != "INVALID_FORMAT" || decoded["severity"] != "low" || decoded["operation"] != "op" {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestCode_Category(t *testing.T) {
	tests := map[Code]string{
		CodeInvalidFormat: "report",
		CodeInvalidConfig: "configuration",
		CodeDatabaseError: "database",
		CodeNotFound:      "generic",
	}
	for code, want := range tests {
		if got := code.Category(); got != want {
			t.Errorf("%v.Category() = %v, want %v", code, got, want)
		}
		if !code.IsValid() {
			t.Errorf("%v.IsValid() = false", code)
		}
	}
	if Code("NOPE").IsValid() {
		t.Error("unknown code should be invalid")
	}
}
