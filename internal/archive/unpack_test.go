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
	"bookbind/internal/testsupport"
)

func TestUnpackerExpandsArchive(t *testing.T) {
	src := t.TempDir()
	testsupport.ScaffoldedWorkspace(t, src)
	archivePath := filepath.Join(t.TempDir(), "novel.epub")
	if err := (archive.Builtin{}).Pack(context.Background(), src, archivePath); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	ws := t.TempDir()
	unpacker := archive.NewUnpacker(archive.Builtin{}, logging.NewSink(""), logging.NewNop())
	if err := unpacker.Unpack(context.Background(), archivePath, ws); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	for _, rel := range []string{"mimetype", "META-INF/container.xml", "OEBPS/content.opf"} {
		if _, err := os.Stat(filepath.Join(ws, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("missing %s after unpack: %v", rel, err)
		}
	}
}

func TestUnpackerWrapsFailureWithSink(t *testing.T) {
	sinkPath := filepath.Join(t.TempDir(), "tools.log")
	unpacker := archive.NewUnpacker(failingFacility{}, logging.NewSink(sinkPath), logging.NewNop())

	err := unpacker.Unpack(context.Background(), "/books/corrupt.epub", t.TempDir())
	if !errors.Is(err, archive.ErrUnpack) {
		t.Fatalf("error = %v, want ErrUnpack", err)
	}
	if !strings.Contains(err.Error(), sinkPath) {
		t.Fatalf("sink path missing from error: %v", err)
	}
}

func TestUnpackerMalformedInput(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "not-a-zip.epub")
	if err := os.WriteFile(bogus, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write bogus archive: %v", err)
	}

	unpacker := archive.NewUnpacker(archive.Builtin{}, logging.NewSink(""), logging.NewNop())
	if err := unpacker.Unpack(context.Background(), bogus, t.TempDir()); !errors.Is(err, archive.ErrUnpack) {
		t.Fatalf("error = %v, want ErrUnpack", err)
	}
}
