package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path (and parent directories) with the given content.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ScaffoldedWorkspace lays down a minimal valid workspace tree by hand,
// bypassing the scaffolder, for packager tests.
func ScaffoldedWorkspace(t testing.TB, ws string) {
	t.Helper()

	WriteFile(t, filepath.Join(ws, "mimetype"), []byte("application/epub+zip"))
	WriteFile(t, filepath.Join(ws, "META-INF", "container.xml"), []byte(`<?xml version="1.0"?><container/>`))
	WriteFile(t, filepath.Join(ws, "OEBPS", "content.opf"), []byte(`<?xml version="1.0"?><package/>`))
	WriteFile(t, filepath.Join(ws, "OEBPS", "toc.ncx"), []byte(`<?xml version="1.0"?><ncx/>`))
}
