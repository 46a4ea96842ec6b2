package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("combined parts", Int("parts", 4))
	if !strings.Contains(buf.String(), "combined parts") {
		t.Fatalf("expected message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "parts=4") {
		t.Fatalf("expected attribute in output, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info record should have been filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("warn record missing: %q", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
