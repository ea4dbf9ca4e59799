package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"bookbind/internal/fileutil"
	"bookbind/internal/logging"
	"bookbind/internal/template"
	"bookbind/internal/workspace"
)

// Prompter is the injected interview surface the packager uses when the
// destination already exists. The host UI owns the interaction; the core
// never talks to a terminal directly.
type Prompter interface {
	// ConfirmOverwrite reports whether the existing target may be replaced.
	ConfirmOverwrite(target string) (bool, error)
	// AlternatePath supplies a different destination after a refusal.
	AlternatePath(target string) (string, error)
}

// Packager re-compresses edited workspaces into their target archives using
// a two-phase build: the archive is assembled in the scratch root and only
// published to the destination once complete, so the destination is never
// left partially written.
type Packager struct {
	ScratchRoot string
	Facility    Facility
	Prompter    Prompter
	Sink        *logging.Sink
	Logger      *slog.Logger
}

// Pack resolves the session binding from any path under a workspace,
// negotiates the destination, and builds and publishes the archive. It
// returns the final archive path.
func (p *Packager) Pack(ctx context.Context, anyPath string) (string, error) {
	binding, err := workspace.Resolve(anyPath)
	if err != nil {
		return "", err
	}

	dest, err := p.resolveDestination(binding.Target)
	if err != nil {
		return "", err
	}

	if err := p.checkRequiredMembers(binding.Workspace); err != nil {
		return "", err
	}

	tmp, err := p.buildTemp(ctx, binding.Workspace)
	if err != nil {
		return "", err
	}

	if err := p.publish(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	logger := p.logger()
	logger.Info("packed archive",
		logging.String("workspace", binding.Workspace),
		logging.String("target", dest),
	)
	return dest, nil
}

// resolveDestination applies the overwrite interview and normalizes the
// outcome. Refusing an overwrite prompts for an alternative destination
// instead of aborting silently.
func (p *Packager) resolveDestination(target string) (string, error) {
	dest, err := NormalizeTarget(target)
	if err != nil {
		return "", err
	}

	declined := make(map[string]bool)
	for {
		if _, err := os.Stat(dest); err != nil {
			if os.IsNotExist(err) {
				return dest, nil
			}
			return "", fmt.Errorf("inspect destination %q: %w", dest, err)
		}

		ok, err := p.Prompter.ConfirmOverwrite(dest)
		if err != nil {
			return "", err
		}
		if ok {
			return dest, nil
		}
		declined[dest] = true

		alternate, err := p.Prompter.AlternatePath(dest)
		if err != nil {
			return "", err
		}
		dest, err = NormalizeTarget(alternate)
		if err != nil {
			return "", err
		}
		// An alternate pointing back at a declined destination would
		// re-run the same interview with the same answers.
		if declined[dest] {
			return "", fmt.Errorf("destination %q was already declined", dest)
		}
	}
}

// checkRequiredMembers refuses to pack a workspace missing the marker file
// or the container descriptor; the result could never be a valid archive.
func (p *Packager) checkRequiredMembers(ws string) error {
	for _, member := range []string{template.MimetypePath, template.ContainerPath} {
		if _, err := os.Stat(filepath.Join(ws, filepath.FromSlash(member))); err != nil {
			return fmt.Errorf("%w: workspace missing %s", ErrPack, member)
		}
	}
	return nil
}

// buildTemp compresses the workspace into a fresh temporary file in the
// scratch root and returns its path. The destination is never touched here.
func (p *Packager) buildTemp(ctx context.Context, ws string) (string, error) {
	tmpFile, err := os.CreateTemp(p.ScratchRoot, "pack-*"+Ext)
	if err != nil {
		return "", fmt.Errorf("create temporary archive: %w", err)
	}
	tmp := tmpFile.Name()
	tmpFile.Close()
	// The facility creates the archive itself; external zip tools refuse to
	// grow an empty placeholder file.
	_ = os.Remove(tmp)

	if err := p.Facility.Pack(ctx, ws, tmp); err != nil {
		_ = os.Remove(tmp)
		if sinkPath := p.Sink.Path(); sinkPath != "" {
			return "", fmt.Errorf("%w: %s (diagnostics in %s): %w", ErrPack, ws, sinkPath, err)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrPack, ws, err)
	}
	return tmp, nil
}

// publish atomically moves the completed temporary archive to the
// destination, serialized per target so concurrent sessions cannot race on
// the same file. Cross-device moves fall back to a verified copy.
func (p *Packager) publish(tmp, dest string) error {
	lock := flock.New(p.lockPath(dest))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock destination %q: %w", dest, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := os.Rename(tmp, dest); err != nil {
		if copyErr := fileutil.CopyFileVerified(tmp, dest); copyErr != nil {
			return fmt.Errorf("publish archive: %w", copyErr)
		}
		if removeErr := os.Remove(tmp); removeErr != nil {
			p.logger().Warn("temporary archive left behind",
				logging.String("path", tmp),
				logging.Error(removeErr),
			)
		}
	}
	return nil
}

func (p *Packager) lockPath(dest string) string {
	sum := sha256.Sum256([]byte(dest))
	return filepath.Join(p.ScratchRoot, "."+hex.EncodeToString(sum[:8])+".lock")
}

func (p *Packager) logger() *slog.Logger {
	if p.Logger == nil {
		return logging.NewNop()
	}
	return p.Logger
}
