package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrAllocation indicates the scratch root could not host a new workspace.
// This is fatal for session setup; callers do not retry.
var ErrAllocation = errors.New("workspace allocation failed")

// Allocate creates a uniquely named workspace directory under the scratch
// root. The name is derived from seed with os.MkdirTemp uniqueness, so
// concurrent sessions never collide. The scratch root itself is created once
// at process start (config.EnsureDirectories) and is not recreated here.
func Allocate(scratchRoot, seed string) (string, error) {
	scratchRoot = strings.TrimSpace(scratchRoot)
	if scratchRoot == "" {
		return "", fmt.Errorf("%w: scratch root not configured", ErrAllocation)
	}

	pattern := sanitizeSeed(seed) + "-*"
	dir, err := os.MkdirTemp(scratchRoot, pattern)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return dir, nil
}

// sanitizeSeed reduces an arbitrary seed (typically a target file base name)
// to a safe directory-name fragment.
func sanitizeSeed(seed string) string {
	seed = strings.TrimSpace(seed)
	seed = strings.TrimSuffix(seed, filepath.Ext(seed))

	var b strings.Builder
	for _, r := range seed {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '.':
			b.WriteByte('-')
		}
	}
	cleaned := strings.Trim(b.String(), "-")
	if cleaned == "" {
		cleaned = "workspace"
	}
	return cleaned
}
