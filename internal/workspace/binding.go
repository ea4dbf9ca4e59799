package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// BindingFile is the directory-scoped metadata file attaching a session
// binding to its workspace. The dotfile prefix keeps it out of packed
// archives via the packager's dotfile exclusion.
const BindingFile = ".bookbind.toml"

// ErrNoBinding indicates a path does not live under a bound workspace.
var ErrNoBinding = errors.New("no session binding found")

// Binding is the persisted (workspace, target) association for one editing
// session. It is written once at session setup, before the workspace is
// handed to the user, and read-only afterwards.
type Binding struct {
	Workspace     string    `toml:"workspace"`
	Target        string    `toml:"target"`
	FormatVersion int       `toml:"format_version"`
	CreatedAt     time.Time `toml:"created_at"`
}

// Bind persists the binding at the workspace root.
func Bind(ws, target string, formatVersion int) (Binding, error) {
	absWS, err := filepath.Abs(ws)
	if err != nil {
		return Binding{}, fmt.Errorf("resolve workspace path: %w", err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return Binding{}, fmt.Errorf("resolve target path: %w", err)
	}

	binding := Binding{
		Workspace:     absWS,
		Target:        absTarget,
		FormatVersion: formatVersion,
		CreatedAt:     time.Now().UTC(),
	}

	data, err := toml.Marshal(binding)
	if err != nil {
		return Binding{}, fmt.Errorf("encode binding: %w", err)
	}
	if err := os.WriteFile(filepath.Join(absWS, BindingFile), data, 0o644); err != nil {
		return Binding{}, fmt.Errorf("write binding: %w", err)
	}
	return binding, nil
}

// Resolve recovers the binding from any path under a bound workspace by
// walking toward the filesystem root until a binding file is found.
func Resolve(path string) (Binding, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Binding{}, fmt.Errorf("resolve path: %w", err)
	}

	dir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		candidate := filepath.Join(dir, BindingFile)
		if _, err := os.Stat(candidate); err == nil {
			return load(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Binding{}, fmt.Errorf("%w: %s", ErrNoBinding, path)
		}
		dir = parent
	}
}

func load(path string) (Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Binding{}, fmt.Errorf("read binding: %w", err)
	}
	var binding Binding
	if err := toml.Unmarshal(data, &binding); err != nil {
		return Binding{}, fmt.Errorf("parse binding %s: %w", path, err)
	}
	if binding.Workspace == "" || binding.Target == "" {
		return Binding{}, fmt.Errorf("binding %s missing workspace or target", path)
	}
	return binding, nil
}
