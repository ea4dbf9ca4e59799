package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"bookbind/internal/logging"
)

func TestNewConsoleLoggerWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("workspace allocated", logging.String("path", "/tmp/ws"), logging.Int("entries", 4))

	line := buf.String()
	if !strings.Contains(line, "workspace allocated") {
		t.Fatalf("missing message: %q", line)
	}
	if !strings.Contains(line, "path=/tmp/ws") || !strings.Contains(line, "entries=4") {
		t.Fatalf("missing attrs: %q", line)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn suppressed: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("packed", logging.String("target", "book.epub"))
	if !strings.Contains(buf.String(), `"target":"book.epub"`) {
		t.Fatalf("unexpected json output: %q", buf.String())
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(nil))
}
