package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerJSONIncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, FormatJSON, &buf)

	l.Info("Importer", "rows=%d", 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if line["component"] != "Importer" {
		t.Fatalf("expected component Importer, got %v", line["component"])
	}
	if line["msg"] != "rows=3" {
		t.Fatalf("expected msg rows=3, got %v", line["msg"])
	}
}

func TestLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, FormatText, &buf)

	l.Info("X", "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	l.SetLogLevel(LevelDebug)
	l.Debug("X", "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug line after lowering level, got %q", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("X", "nothing")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{"debug": LevelDebug, "WARN": LevelWarn, "error": LevelError, "bogus": LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %s, got %s", in, LevelName(want), LevelName(got))
		}
	}
}
