package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bookbind/internal/template"
)

// Facility is the compression/decompression mechanism behind the unpacker
// and packager. Implementations must honour the OCF entry rules on Pack:
// the mimetype file is the first physical entry and is stored uncompressed,
// every other entry uses standard compression, and dotfile-prefixed entries
// are excluded.
type Facility interface {
	// Pack compresses the workspace tree into a new archive at dest.
	Pack(ctx context.Context, ws, dest string) error
	// Unpack expands the archive at path into the workspace directory.
	Unpack(ctx context.Context, path, ws string) error
}

// Builtin is the in-process Facility backed by archive/zip.
type Builtin struct{}

// Pack writes the workspace as an OCF-ordered zip archive at dest. The
// mimetype bytes are taken from the workspace, never regenerated.
func (Builtin) Pack(ctx context.Context, ws, dest string) error {
	mimetype, err := os.ReadFile(filepath.Join(ws, template.MimetypePath))
	if err != nil {
		return fmt.Errorf("read marker file: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	header := &zip.FileHeader{
		Name:               template.MimetypePath,
		Method:             zip.Store,
		UncompressedSize64: uint64(len(mimetype)),
	}
	mw, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create marker entry: %w", err)
	}
	if _, err := mw.Write(mimetype); err != nil {
		return fmt.Errorf("write marker entry: %w", err)
	}

	entries, err := collectEntries(ws)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeEntry(zw, ws, entry); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return out.Close()
}

// Unpack expands every entry of the archive into the workspace, refusing
// entries that would escape it.
func (Builtin) Unpack(ctx context.Context, path, ws string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractFile(file, ws); err != nil {
			return err
		}
	}
	return nil
}

// collectEntries lists archive-relative paths under the workspace in sorted
// order, excluding the marker file (already written) and dotfile-prefixed
// entries at any depth. Empty directories are kept so scaffolded content
// subdirectories survive a repack.
func collectEntries(ws string) ([]string, error) {
	var entries []string
	err := filepath.WalkDir(ws, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == ws {
			return nil
		}
		rel, err := filepath.Rel(ws, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if name == template.MimetypePath {
			return nil
		}
		if d.IsDir() {
			empty, err := isEmptyDir(path)
			if err != nil {
				return err
			}
			if empty {
				entries = append(entries, name+"/")
			}
			return nil
		}
		entries = append(entries, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk workspace: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

func isEmptyDir(path string) (bool, error) {
	children, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	for _, child := range children {
		if !strings.HasPrefix(child.Name(), ".") {
			return false, nil
		}
	}
	return true, nil
}

func writeEntry(zw *zip.Writer, ws, name string) error {
	if strings.HasSuffix(name, "/") {
		header := &zip.FileHeader{Name: name, Method: zip.Store}
		if _, err := zw.CreateHeader(header); err != nil {
			return fmt.Errorf("create directory entry %s: %w", name, err)
		}
		return nil
	}

	in, err := os.Open(filepath.Join(ws, filepath.FromSlash(name)))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer in.Close()

	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}

func extractFile(file *zip.File, ws string) error {
	dest := filepath.Join(ws, filepath.FromSlash(file.Name))
	rel, err := filepath.Rel(ws, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("entry %q escapes workspace", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", file.Name, err)
	}

	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", file.Name, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", file.Name, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", file.Name, err)
	}
	return out.Close()
}
