package archive_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookbind/internal/archive"
	"bookbind/internal/logging"
)

type recordedCall struct {
	dir    string
	binary string
	args   []string
}

type fakeExecutor struct {
	calls  []recordedCall
	output []byte
	err    error
}

func (f *fakeExecutor) Run(_ context.Context, dir, binary string, args []string) ([]byte, error) {
	f.calls = append(f.calls, recordedCall{dir: dir, binary: binary, args: args})
	return f.output, f.err
}

func TestToolPackInvokesZipTwice(t *testing.T) {
	exec := &fakeExecutor{}
	sink := logging.NewSink(filepath.Join(t.TempDir(), "tools.log"))
	tool, err := archive.NewTool("zip", "unzip", sink, archive.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewTool failed: %v", err)
	}

	ws := t.TempDir()
	if err := tool.Pack(context.Background(), ws, "/scratch/tmp.epub"); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 zip invocations, got %d", len(exec.calls))
	}

	marker := exec.calls[0]
	if marker.dir != ws || marker.binary != "zip" {
		t.Fatalf("unexpected marker call: %+v", marker)
	}
	joined := strings.Join(marker.args, " ")
	if !strings.Contains(joined, "-0") || !strings.HasSuffix(joined, "mimetype") {
		t.Fatalf("marker entry not stored first/uncompressed: %v", marker.args)
	}

	grow := exec.calls[1]
	growJoined := strings.Join(grow.args, " ")
	if !strings.Contains(growJoined, "-g") {
		t.Fatalf("second call does not grow the archive: %v", grow.args)
	}
	if !strings.Contains(growJoined, "-x .*") {
		t.Fatalf("dotfiles not excluded: %v", grow.args)
	}
	if !strings.Contains(growJoined, "-x mimetype") {
		t.Fatalf("marker not excluded from grow pass: %v", grow.args)
	}
}

func TestToolFailureCapturedInSink(t *testing.T) {
	exec := &fakeExecutor{output: []byte("zip error: Nothing to do!"), err: errors.New("exit status 12")}
	sinkPath := filepath.Join(t.TempDir(), "tools.log")
	sink := logging.NewSink(sinkPath)
	tool, err := archive.NewTool("zip", "unzip", sink, archive.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewTool failed: %v", err)
	}

	err = tool.Pack(context.Background(), t.TempDir(), "/scratch/tmp.epub")
	if err == nil {
		t.Fatal("expected pack failure")
	}
	if !strings.Contains(err.Error(), "exit status 12") {
		t.Fatalf("exit status lost: %v", err)
	}

	data, readErr := os.ReadFile(sinkPath)
	if readErr != nil {
		t.Fatalf("read sink: %v", readErr)
	}
	if !strings.Contains(string(data), "Nothing to do!") {
		t.Fatalf("tool output missing from sink:\n%s", data)
	}
}

func TestToolUnpackArgs(t *testing.T) {
	exec := &fakeExecutor{}
	sink := logging.NewSink(filepath.Join(t.TempDir(), "tools.log"))
	tool, err := archive.NewTool("zip", "unzip", sink, archive.WithExecutor(exec))
	if err != nil {
		t.Fatalf("NewTool failed: %v", err)
	}

	ws := t.TempDir()
	if err := tool.Unpack(context.Background(), "/books/novel.epub", ws); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if len(exec.calls) != 1 || exec.calls[0].binary != "unzip" {
		t.Fatalf("unexpected calls: %+v", exec.calls)
	}
	joined := strings.Join(exec.calls[0].args, " ")
	if !strings.Contains(joined, "/books/novel.epub") || !strings.Contains(joined, ws) {
		t.Fatalf("unexpected unzip args: %v", exec.calls[0].args)
	}
}

func TestNewToolRequiresBinaries(t *testing.T) {
	sink := logging.NewSink("")
	if _, err := archive.NewTool("", "unzip", sink); err == nil {
		t.Fatal("expected error for missing zip binary")
	}
	if _, err := archive.NewTool("zip", "  ", sink); err == nil {
		t.Fatal("expected error for missing unzip binary")
	}
}
