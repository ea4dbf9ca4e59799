package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bookbind/internal/logging"
	"bookbind/internal/template"
)

// Generator is the signature embedded in the manifests bookbind produces.
const Generator = "bookbind 0.3.0"

// Options parameterize a scaffold run.
type Options struct {
	// FormatVersion is the EPUB format version, 2 or 3.
	FormatVersion int
	// ContentDirs are the subdirectories created under OEBPS.
	ContentDirs []string
	// Identifier supplies the manifest's unique identifier.
	Identifier IdentifierPolicy
	// Title is the book title; derived from the target name when empty.
	Title string
	// Logger receives progress records; nil means silent.
	Logger *slog.Logger
}

// Scaffold populates an empty workspace with the bootstrap file set: the
// mimetype marker, the container descriptor, the package manifest, the
// navigation skeleton, and the content subdirectories. The steps form one
// logical unit: on any failure the whole workspace directory is removed and
// the triggering error is returned unchanged, so no partially scaffolded
// tree survives.
func Scaffold(ws string, opts Options) error {
	if err := scaffold(ws, opts); err != nil {
		_ = os.RemoveAll(ws)
		return err
	}
	return nil
}

func scaffold(ws string, opts Options) error {
	if opts.Identifier == nil {
		opts.Identifier = UUIDPolicy{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Untitled"
	}
	version, err := versionString(opts.FormatVersion)
	if err != nil {
		return err
	}

	if err := writeFile(ws, template.MimetypePath, []byte(template.Mimetype)); err != nil {
		return err
	}

	container, err := template.Container().Render(template.PackagePath)
	if err != nil {
		return err
	}
	if err := writeFile(ws, template.ContainerPath, container); err != nil {
		return err
	}

	identifier := opts.Identifier.NewIdentifier()

	manifest, err := template.Package().Render(version, identifier, Generator, title)
	if err != nil {
		return err
	}
	if err := writeFile(ws, template.PackagePath, manifest); err != nil {
		return err
	}

	nav, err := template.Nav().Render(identifier, title)
	if err != nil {
		return err
	}
	if err := writeFile(ws, template.NavPath, nav); err != nil {
		return err
	}

	contentRoot := filepath.Dir(filepath.Join(ws, filepath.FromSlash(template.PackagePath)))
	for _, dir := range opts.ContentDirs {
		if err := os.MkdirAll(filepath.Join(contentRoot, dir), 0o755); err != nil {
			return fmt.Errorf("create content directory %q: %w", dir, err)
		}
	}

	logger.Info("scaffolded workspace",
		logging.String("workspace", ws),
		logging.String("identifier", identifier),
		logging.String("version", version),
	)
	return nil
}

func versionString(formatVersion int) (string, error) {
	switch formatVersion {
	case 0, 2:
		return "2.0", nil
	case 3:
		return "3.0", nil
	default:
		return "", fmt.Errorf("unsupported format version %d", formatVersion)
	}
}

func writeFile(ws, name string, data []byte) error {
	path := filepath.Join(ws, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
