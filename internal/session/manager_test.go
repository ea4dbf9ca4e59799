package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookbind/internal/archive"
	"bookbind/internal/logging"
	"bookbind/internal/template"
	"bookbind/internal/testsupport"
	"bookbind/internal/workspace"
)

type acceptAllPrompter struct{}

func (acceptAllPrompter) ConfirmOverwrite(string) (bool, error) { return true, nil }
func (acceptAllPrompter) AlternatePath(string) (string, error)  { return "", errors.New("no alternate") }

func newManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(testsupport.NewConfig(t), logging.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() {
		if err := mgr.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return mgr
}

func TestManagerCreate(t *testing.T) {
	mgr := newManager(t)
	target := filepath.Join(t.TempDir(), "field-notes")

	binding, err := mgr.Create(context.Background(), target)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if binding.Target != target+".epub" {
		t.Errorf("target = %q, want %q", binding.Target, target+".epub")
	}

	for _, name := range []string{
		template.MimetypePath,
		template.ContainerPath,
		template.PackagePath,
		template.NavPath,
		workspace.BindingFile,
	} {
		if _, err := os.Stat(filepath.Join(binding.Workspace, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	resolved, err := workspace.Resolve(filepath.Join(binding.Workspace, "OEBPS"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Workspace != binding.Workspace {
		t.Errorf("resolved workspace = %q, want %q", resolved.Workspace, binding.Workspace)
	}

	listed, err := mgr.Store().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].Workspace != binding.Workspace {
		t.Errorf("sessions = %+v, want one for %s", listed, binding.Workspace)
	}
}

func TestManagerCreateRejectsForeignExtension(t *testing.T) {
	mgr := newManager(t)
	_, err := mgr.Create(context.Background(), filepath.Join(t.TempDir(), "notes.zip"))
	if !errors.Is(err, archive.ErrInvalidExtension) {
		t.Fatalf("err = %v, want ErrInvalidExtension", err)
	}
}

func TestManagerRoundTrip(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "journal")

	created, err := mgr.Create(ctx, target)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	chapter := filepath.Join(created.Workspace, "OEBPS", "Text", "ch01.xhtml")
	testsupport.WriteFile(t, chapter, []byte("<html/>"))

	dest, err := mgr.Repack(ctx, created.Workspace, acceptAllPrompter{})
	if err != nil {
		t.Fatalf("Repack: %v", err)
	}
	if dest != created.Target {
		t.Errorf("dest = %q, want %q", dest, created.Target)
	}

	opened, err := mgr.Open(ctx, dest)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened.Workspace == created.Workspace {
		t.Error("open reused the create workspace")
	}
	if _, err := os.Stat(filepath.Join(opened.Workspace, "OEBPS", "Text", "ch01.xhtml")); err != nil {
		t.Errorf("chapter missing after round trip: %v", err)
	}

	listed, err := mgr.Store().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("sessions = %d, want 2", len(listed))
	}
}

func TestManagerOpenMissingArchive(t *testing.T) {
	mgr := newManager(t)
	_, err := mgr.Open(context.Background(), filepath.Join(t.TempDir(), "absent.epub"))
	if err == nil {
		t.Fatal("expected error for missing archive")
	}
	if !strings.Contains(err.Error(), "absent.epub") {
		t.Errorf("err = %v, want mention of archive path", err)
	}
}

func TestManagerOpenChecksExtensionBeforeUnpack(t *testing.T) {
	mgr := newManager(t)
	// The file exists but has the wrong extension; the extension check has
	// to win over any unpack attempt.
	bogus := filepath.Join(t.TempDir(), "notes.tar")
	testsupport.WriteFile(t, bogus, []byte("not a zip"))

	_, err := mgr.Open(context.Background(), bogus)
	if !errors.Is(err, archive.ErrInvalidExtension) {
		t.Fatalf("err = %v, want ErrInvalidExtension", err)
	}
}

func TestManagerOpenCleansFailedWorkspace(t *testing.T) {
	mgr := newManager(t)
	corrupt := filepath.Join(t.TempDir(), "corrupt.epub")
	testsupport.WriteFile(t, corrupt, []byte("this is not a zip archive"))

	_, err := mgr.Open(context.Background(), corrupt)
	if !errors.Is(err, archive.ErrUnpack) {
		t.Fatalf("err = %v, want ErrUnpack", err)
	}

	entries, readErr := os.ReadDir(mgr.cfg.Paths.ScratchDir)
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "corrupt") {
			t.Errorf("failed workspace %s left behind", e.Name())
		}
	}
}

func TestManagerRepackOutsideWorkspace(t *testing.T) {
	mgr := newManager(t)
	_, err := mgr.Repack(context.Background(), t.TempDir(), acceptAllPrompter{})
	if !errors.Is(err, workspace.ErrNoBinding) {
		t.Fatalf("err = %v, want ErrNoBinding", err)
	}
}
