package archive

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"bookbind/internal/logging"
	"bookbind/internal/template"
)

// Executor abstracts command execution for testability.
type Executor interface {
	// Run executes binary with args in dir and returns its combined output.
	Run(ctx context.Context, dir, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, dir, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}

// ToolOption configures the tool facility.
type ToolOption func(*Tool)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) ToolOption {
	return func(t *Tool) {
		if exec != nil {
			t.exec = exec
		}
	}
}

// Tool is the Facility backed by external zip and unzip binaries. All tool
// output goes to the shared log sink, never the interactive surface; a
// non-zero exit status is reported as a plain error for the caller to wrap.
type Tool struct {
	zipBinary   string
	unzipBinary string
	sink        *logging.Sink
	exec        Executor
}

// NewTool constructs a tool facility.
func NewTool(zipBinary, unzipBinary string, sink *logging.Sink, opts ...ToolOption) (*Tool, error) {
	zipBinary = strings.TrimSpace(zipBinary)
	unzipBinary = strings.TrimSpace(unzipBinary)
	if zipBinary == "" || unzipBinary == "" {
		return nil, fmt.Errorf("zip and unzip binaries required")
	}
	tool := &Tool{
		zipBinary:   zipBinary,
		unzipBinary: unzipBinary,
		sink:        sink,
		exec:        commandExecutor{},
	}
	for _, opt := range opts {
		opt(tool)
	}
	return tool, nil
}

// Pack runs the zip binary twice from inside the workspace: first storing
// the mimetype uncompressed as the leading entry, then growing the archive
// with everything else minus dotfiles.
func (t *Tool) Pack(ctx context.Context, ws, dest string) error {
	markerArgs := []string{"-X", "-0", dest, template.MimetypePath}
	if err := t.run(ctx, ws, t.zipBinary, markerArgs); err != nil {
		return fmt.Errorf("store marker entry: %w", err)
	}

	growArgs := []string{
		"-r", "-g", "-X", dest, ".",
		"-x", template.MimetypePath,
		"-x", ".*",
		"-x", "*/.*",
	}
	if err := t.run(ctx, ws, t.zipBinary, growArgs); err != nil {
		return fmt.Errorf("compress workspace: %w", err)
	}
	return nil
}

// Unpack expands the archive into the workspace with the unzip binary.
func (t *Tool) Unpack(ctx context.Context, path, ws string) error {
	args := []string{"-o", path, "-d", ws}
	if err := t.run(ctx, ws, t.unzipBinary, args); err != nil {
		return fmt.Errorf("expand archive: %w", err)
	}
	return nil
}

func (t *Tool) run(ctx context.Context, dir, binary string, args []string) error {
	output, err := t.exec.Run(ctx, dir, binary, args)
	label := binary + " " + strings.Join(args, " ")
	if sinkErr := t.sink.Append(label, output); sinkErr != nil && err == nil {
		err = sinkErr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", binary, err)
	}
	return nil
}
