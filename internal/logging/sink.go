package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Sink is the process-wide, append-only diagnostic log for external tool and
// compression facility output. Entries are written as whole buffers under a
// lock, never as interleaved byte streams, so concurrent sessions can share
// one sink. The file is never truncated by bookbind.
type Sink struct {
	mu   sync.Mutex
	path string
}

// NewSink returns a sink appending to the given file path. The file is
// created on first append.
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Path returns the sink file location, surfaced in failure messages so users
// can inspect diagnostics.
func (s *Sink) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Append records one labelled entry containing the captured output of a
// single operation.
func (s *Sink) Append(label string, output []byte) error {
	if s == nil || s.path == "" {
		return nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "==== %s %s ====\n", time.Now().Format(time.RFC3339), label)
	buf.Write(output)
	if len(output) > 0 && output[len(output)-1] != '\n' {
		buf.WriteByte('\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log sink: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append log sink: %w", err)
	}
	return nil
}

// Tail returns up to maxLines of the most recent sink content. A missing
// sink file yields no lines and no error.
func (s *Sink) Tail(maxLines int) ([]string, error) {
	if s == nil || s.path == "" || maxLines <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log sink: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}
