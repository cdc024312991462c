package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestBuildCompleted(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).BuildCompleted("run-1", 3, 4, 1, 12*time.Millisecond)

	out := buf.String()
	for _, want := range []string{"build completed", "run=run-1", "cards_encoded=3", "cards_reused=4", "errors=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %q", want, out)
		}
	}
	if _, err := time.ParseInLocation(time.DateTime, out[:19], time.Local); err != nil {
		t.Errorf("line does not start with a timestamp: %q", out)
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.InfoLevel)

	l.Skipped("a.md", "no card content")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}

	l.FileError("b.md", errors.New("boom"))
	if !strings.Contains(buf.String(), "file=b.md") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"":      log.InfoLevel,
		"loud":  log.InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monakit.log")
	l, cleanup, err := NewFileLogger(path, log.DebugLevel)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	l.AssetMissing("cards/vintage.png")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "image not found") {
		t.Errorf("log file = %q", data)
	}

	if _, _, err := NewFileLogger(filepath.Join(t.TempDir(), "no", "dir", "x.log"), log.InfoLevel); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := Discard()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return its argument")
	}
}
