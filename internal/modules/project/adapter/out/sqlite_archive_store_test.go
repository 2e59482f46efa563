package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"lyricmotion/internal/modules/project/adapter/out"
	"lyricmotion/internal/modules/project/domain"
	projectout "lyricmotion/internal/modules/project/port/out"
	apperrors "lyricmotion/internal/platform/errors"
)

func newStore(t *testing.T) projectout.ArchiveStore {
	t.Helper()
	store, err := out.NewSQLiteArchiveStore(filepath.Join(t.TempDir(), ".lyricmotion", "archive.db"))
	if err != nil {
		t.Fatalf("open archive store: %v", err)
	}
	return store
}

func sampleEntry(id string, exportedAt time.Time) domain.ArchiveEntry {
	return domain.ArchiveEntry{
		ID:             id,
		ProjectName:    "Midnight Run",
		Slug:           "midnight-run",
		Mode:           "manual",
		Format:         "txt",
		SceneCount:     2,
		RuntimeSeconds: 16,
		ExportedAt:     exportedAt,
		Document:       "export body",
	}
}

func TestRecordAndGetExport(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	entry := sampleEntry("export-1", time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC))

	if err := store.RecordExport(ctx, entry); err != nil {
		t.Fatalf("record export: %v", err)
	}
	got, err := store.GetExport(ctx, "export-1")
	if err != nil {
		t.Fatalf("get export: %v", err)
	}
	if !got.ExportedAt.Equal(entry.ExportedAt) {
		t.Fatalf("exported_at mismatch: %v vs %v", got.ExportedAt, entry.ExportedAt)
	}
	got.ExportedAt = entry.ExportedAt
	if !reflect.DeepEqual(entry, got) {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", entry, got)
	}
}

func TestRecordExportUpsertsByID(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	exportedAt := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	if err := store.RecordExport(ctx, sampleEntry("export-1", exportedAt)); err != nil {
		t.Fatalf("record export: %v", err)
	}
	updated := sampleEntry("export-1", exportedAt.Add(time.Hour))
	updated.Document = "revised body"
	if err := store.RecordExport(ctx, updated); err != nil {
		t.Fatalf("re-record export: %v", err)
	}

	entries, err := store.ListExports(ctx)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("upsert duplicated the row: %d entries", len(entries))
	}
	if entries[0].Document != "revised body" {
		t.Fatalf("upsert kept stale document: %s", entries[0].Document)
	}
}

func TestListExportsNewestFirst(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	for i, id := range []string{"export-old", "export-mid", "export-new"} {
		if err := store.RecordExport(ctx, sampleEntry(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	entries, err := store.ListExports(ctx)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "export-new" || entries[2].ID != "export-old" {
		t.Fatalf("entries not newest first: %s, %s, %s", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestGetExportUnknownID(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	if _, err := store.GetExport(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListExportsEmpty(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	entries, err := store.ListExports(context.Background())
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("fresh store should be empty, got %d entries", len(entries))
	}
}
