package archive

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Ext is the canonical archive extension.
const Ext = ".epub"

// NormalizeTarget enforces the canonical extension on a target archive path.
// A path without an extension gets Ext appended; a path already carrying Ext
// (any case) is returned unchanged; any other extension fails with
// ErrInvalidExtension. The function is pure and idempotent.
func NormalizeTarget(path string) (string, error) {
	ext := filepath.Ext(path)
	switch {
	case ext == "":
		return path + Ext, nil
	case strings.EqualFold(ext, Ext):
		return path, nil
	default:
		return "", fmt.Errorf("%w: %q must end in %s", ErrInvalidExtension, path, Ext)
	}
}
