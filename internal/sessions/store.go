package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"bookbind/internal/config"
)

// Origin describes how a session came to exist.
type Origin string

const (
	OriginCreate Origin = "create"
	OriginOpen   Origin = "open"
)

// Session is one registry row: a workspace bound to its target archive.
type Session struct {
	ID            int64
	Workspace     string
	Target        string
	FormatVersion int
	Origin        Origin
	CreatedAt     time.Time
}

// Store manages session bookkeeping backed by SQLite. The binding file in
// each workspace stays the source of truth for repack resolution; the store
// only powers listing and pruning.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the session database in the log directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "sessions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts or replaces the registry row for a workspace.
func (s *Store) Record(ctx context.Context, ws, target string, formatVersion int, origin Origin) (*Session, error) {
	if ws == "" || target == "" {
		return nil, errors.New("workspace and target required")
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sessions (workspace, target, format_version, origin, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(workspace) DO UPDATE SET
             target = excluded.target,
             format_version = excluded.format_version,
             origin = excluded.origin,
             created_at = excluded.created_at`,
		ws,
		target,
		formatVersion,
		string(origin),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}

	return &Session{
		ID:            id,
		Workspace:     ws,
		Target:        target,
		FormatVersion: formatVersion,
		Origin:        origin,
		CreatedAt:     now,
	}, nil
}

// List returns all registered sessions, newest first.
func (s *Store) List(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, workspace, target, format_version, origin, created_at
         FROM sessions ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var result []Session
	for rows.Next() {
		var item Session
		var origin string
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Workspace, &item.Target, &item.FormatVersion, &origin, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		item.Origin = Origin(origin)
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			item.CreatedAt = parsed
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// Remove deletes the registry row for a workspace.
func (s *Store) Remove(ctx context.Context, ws string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE workspace = ?`, ws); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// PruneMissing removes rows whose workspace directory no longer exists and
// returns the pruned workspaces.
func (s *Store) PruneMissing(ctx context.Context) ([]string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var pruned []string
	for _, item := range items {
		if _, statErr := os.Stat(item.Workspace); statErr == nil {
			continue
		} else if !os.IsNotExist(statErr) {
			return pruned, fmt.Errorf("inspect workspace %q: %w", item.Workspace, statErr)
		}
		if err := s.Remove(ctx, item.Workspace); err != nil {
			return pruned, err
		}
		pruned = append(pruned, item.Workspace)
	}
	return pruned, nil
}
