package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bookbind/internal/archive"
	"bookbind/internal/config"
	"bookbind/internal/logging"
	"bookbind/internal/scaffold"
	"bookbind/internal/sessions"
	"bookbind/internal/workspace"
)

// Manager wires the scaffolder, unpacker, packager, and session registry
// behind the three session operations: create, open, repack. One manager
// serves the whole process; each operation owns a disjoint workspace.
type Manager struct {
	cfg      *config.Config
	store    *sessions.Store
	sink     *logging.Sink
	logger   *slog.Logger
	facility archive.Facility
}

// NewManager builds a manager from configuration. The compression facility
// follows tools.use_external_zip; diagnostics from either facility land in
// the shared log sink.
func NewManager(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	sink := logging.NewSink(cfg.SinkPath())

	var facility archive.Facility = archive.Builtin{}
	if cfg.Tools.UseExternalZip {
		tool, err := archive.NewTool(cfg.ZipBinary(), cfg.UnzipBinary(), sink)
		if err != nil {
			return nil, err
		}
		facility = tool
	}

	store, err := sessions.Open(cfg)
	if err != nil {
		return nil, err
	}

	return &Manager{
		cfg:      cfg,
		store:    store,
		sink:     sink,
		logger:   logger,
		facility: facility,
	}, nil
}

// Close releases the session registry.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Store exposes the session registry for listing commands.
func (m *Manager) Store() *sessions.Store {
	return m.store
}

// Create scaffolds a new archive tree for the target path and returns the
// binding of the fresh workspace.
func (m *Manager) Create(ctx context.Context, targetPath string) (workspace.Binding, error) {
	target, err := archive.NormalizeTarget(targetPath)
	if err != nil {
		return workspace.Binding{}, err
	}

	ws, err := workspace.Allocate(m.cfg.Paths.ScratchDir, filepath.Base(target))
	if err != nil {
		return workspace.Binding{}, err
	}

	err = scaffold.Scaffold(ws, scaffold.Options{
		FormatVersion: m.cfg.Archive.FormatVersion,
		ContentDirs:   m.cfg.Archive.ContentDirs,
		Identifier:    scaffold.UUIDPolicy{},
		Title:         scaffold.DeriveTitle(target),
		Logger:        m.logger,
	})
	if err != nil {
		return workspace.Binding{}, err
	}

	return m.bind(ctx, ws, target, sessions.OriginCreate)
}

// Open unpacks an existing archive into a fresh workspace and returns its
// binding. The extension is checked before any unpack attempt; a workspace
// that fails to unpack is removed.
func (m *Manager) Open(ctx context.Context, archivePath string) (workspace.Binding, error) {
	target, err := archive.NormalizeTarget(archivePath)
	if err != nil {
		return workspace.Binding{}, err
	}
	if _, err := os.Stat(target); err != nil {
		return workspace.Binding{}, fmt.Errorf("archive %q: %w", target, err)
	}

	ws, err := workspace.Allocate(m.cfg.Paths.ScratchDir, filepath.Base(target))
	if err != nil {
		return workspace.Binding{}, err
	}

	unpacker := archive.NewUnpacker(m.facility, m.sink, m.logger)
	if err := unpacker.Unpack(ctx, target, ws); err != nil {
		_ = os.RemoveAll(ws)
		return workspace.Binding{}, err
	}

	return m.bind(ctx, ws, target, sessions.OriginOpen)
}

// Repack packages the workspace containing anyPath back into its bound
// target, using prompter for overwrite negotiation, and returns the final
// archive path.
func (m *Manager) Repack(ctx context.Context, anyPath string, prompter archive.Prompter) (string, error) {
	packager := &archive.Packager{
		ScratchRoot: m.cfg.Paths.ScratchDir,
		Facility:    m.facility,
		Prompter:    prompter,
		Sink:        m.sink,
		Logger:      m.logger,
	}
	return packager.Pack(ctx, anyPath)
}

func (m *Manager) bind(ctx context.Context, ws, target string, origin sessions.Origin) (workspace.Binding, error) {
	binding, err := workspace.Bind(ws, target, m.cfg.Archive.FormatVersion)
	if err != nil {
		_ = os.RemoveAll(ws)
		return workspace.Binding{}, err
	}
	if _, err := m.store.Record(ctx, binding.Workspace, binding.Target, binding.FormatVersion, origin); err != nil {
		// Registry rows are bookkeeping; a failed insert must not kill a
		// usable workspace.
		m.logger.Warn("session not recorded",
			logging.String("workspace", binding.Workspace),
			logging.Error(err),
		)
	}
	return binding, nil
}
