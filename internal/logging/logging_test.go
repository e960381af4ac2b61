package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":       zapcore.InfoLevel,
		"debug":  zapcore.DebugLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("expected %v for %q, got %v", want, input, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "creatordesk.log")
	logger, err := New(Options{Path: path, Level: "info"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("opened collection", zap.String("collection", "members"), zap.Int("rows", 30))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"opened collection"`) || !strings.Contains(out, `"collection":"members"`) {
		t.Fatalf("expected structured entry, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug entry to be filtered, got %q", out)
	}
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creatordesk.log")
	logger, err := New(Options{Path: path, Level: "error", Verbose: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("load more", zap.Int("page", 2))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "load more") {
		t.Fatalf("expected debug entry, got %q", string(data))
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Options{Path: filepath.Join(t.TempDir(), "x.log"), Level: "chatty"}); err == nil {
		t.Fatalf("expected error")
	}
}
