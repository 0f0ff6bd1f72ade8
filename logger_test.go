package dotscreen

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestLogger_DefaultSilent verifies the default logger discards everything.
func TestLogger_DefaultSilent(t *testing.T) {
	SetLogger(nil) // restore default

	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

// TestSetLogger verifies an injected logger receives pipeline messages.
func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("test message", "key", "value")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output, got %q", buf.String())
	}
}

// TestSetLogger_NilRestoresSilent verifies SetLogger(nil) reinstates the
// silent default.
func TestSetLogger_NilRestoresSilent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	Logger().Error("should vanish")

	if buf.Len() != 0 {
		t.Errorf("expected no output after SetLogger(nil), got %q", buf.String())
	}
}
