package logging

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewTeesIntoLogDir(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Options{Level: "debug", Format: "json", LogDir: dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hello", String("component", "test"))

	data, err := os.ReadFile(filepath.Join(dir, "phototag.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Fatalf("log file missing structured field: %s", data)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAttrHelpers(t *testing.T) {
	if got := Int("images", 3); got.Key != "images" || got.Value.Int64() != 3 {
		t.Fatalf("Int attr = %v", got)
	}
	if got := String("file", "a.jpg"); got.Key != "file" || got.Value.String() != "a.jpg" {
		t.Fatalf("String attr = %v", got)
	}
	if got := Error(nil); got.Value.String() != "<nil>" {
		t.Fatalf("Error(nil) = %v", got)
	}
	if got := Error(errors.New("boom")); got.Key != "error" {
		t.Fatalf("Error attr key = %q", got.Key)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must report disabled at every level.
	logger.Error("discarded", Error(nil))
	if logger.Enabled(nil, slog.LevelError) {
		t.Fatal("noop logger should be disabled")
	}
}
