package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lyricmotion/internal/modules/project/domain"
	projectout "lyricmotion/internal/modules/project/port/out"
	apperrors "lyricmotion/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteArchiveStore struct {
	db *sql.DB
}

func NewSQLiteArchiveStore(dbPath string) (projectout.ArchiveStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteArchiveStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteArchiveStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS exports (
  id TEXT PRIMARY KEY,
  project_name TEXT NOT NULL,
  slug TEXT NOT NULL,
  mode TEXT NOT NULL,
  format TEXT NOT NULL,
  scene_count INTEGER NOT NULL,
  runtime_seconds INTEGER NOT NULL,
  exported_at TEXT NOT NULL,
  document TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create exports table: %w", err)
	}
	return nil
}

func (s *SQLiteArchiveStore) RecordExport(ctx context.Context, entry domain.ArchiveEntry) error {
	const stmt = `
INSERT INTO exports (id, project_name, slug, mode, format, scene_count, runtime_seconds, exported_at, document)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  project_name=excluded.project_name,
  slug=excluded.slug,
  mode=excluded.mode,
  format=excluded.format,
  scene_count=excluded.scene_count,
  runtime_seconds=excluded.runtime_seconds,
  exported_at=excluded.exported_at,
  document=excluded.document;
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.ProjectName,
		entry.Slug,
		entry.Mode,
		entry.Format,
		entry.SceneCount,
		entry.RuntimeSeconds,
		entry.ExportedAt.Format(timeLayout),
		entry.Document,
	)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

func (s *SQLiteArchiveStore) ListExports(ctx context.Context) ([]domain.ArchiveEntry, error) {
	const query = `
SELECT id, project_name, slug, mode, format, scene_count, runtime_seconds, exported_at, document
FROM exports
ORDER BY exported_at DESC, id;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.ArchiveEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return entries, nil
}

func (s *SQLiteArchiveStore) GetExport(ctx context.Context, id string) (domain.ArchiveEntry, error) {
	const query = `
SELECT id, project_name, slug, mode, format, scene_count, runtime_seconds, exported_at, document
FROM exports
WHERE id = ?;
`
	row := s.db.QueryRowContext(ctx, query, id)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ArchiveEntry{}, apperrors.ErrNotFound
	}
	return entry, err
}

func scanEntry(scan func(...any) error) (domain.ArchiveEntry, error) {
	entry := domain.ArchiveEntry{}
	exportedAt := ""
	err := scan(
		&entry.ID,
		&entry.ProjectName,
		&entry.Slug,
		&entry.Mode,
		&entry.Format,
		&entry.SceneCount,
		&entry.RuntimeSeconds,
		&exportedAt,
		&entry.Document,
	)
	if err != nil {
		return domain.ArchiveEntry{}, err
	}
	parsed, err := time.Parse(timeLayout, exportedAt)
	if err != nil {
		return domain.ArchiveEntry{}, fmt.Errorf("parse exported_at: %w", err)
	}
	entry.ExportedAt = parsed
	return entry, nil
}
