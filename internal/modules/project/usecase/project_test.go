package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lyricmotion/internal/modules/project/domain"
	"lyricmotion/internal/modules/project/dto"
	projectin "lyricmotion/internal/modules/project/port/in"
	"lyricmotion/internal/modules/project/service"
	"lyricmotion/internal/modules/project/usecase"
	apperrors "lyricmotion/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("entry-%d", s.n)
}

type fakeProjectAPI struct {
	creates int
	updates int
	lyrics  map[string]string
	themes  map[string]string
	fail    error
}

func newFakeProjectAPI() *fakeProjectAPI {
	return &fakeProjectAPI{lyrics: map[string]string{}, themes: map[string]string{}}
}

func (f *fakeProjectAPI) CreateProject(_ context.Context, name string) (domain.Project, error) {
	if f.fail != nil {
		return domain.Project{}, f.fail
	}
	f.creates++
	return domain.Project{ID: fmt.Sprintf("proj-%d", f.creates), Name: name, Status: domain.StatusDraft}, nil
}

func (f *fakeProjectAPI) GetProject(_ context.Context, projectID string) (domain.Project, error) {
	if f.fail != nil {
		return domain.Project{}, f.fail
	}
	return domain.Project{ID: projectID, Name: "Midnight Run", Status: domain.StatusDraft}, nil
}

func (f *fakeProjectAPI) DeleteProject(context.Context, string) error {
	return f.fail
}

func (f *fakeProjectAPI) UpdateProject(_ context.Context, projectID, name string) (domain.Project, error) {
	if f.fail != nil {
		return domain.Project{}, f.fail
	}
	f.updates++
	return domain.Project{ID: projectID, Name: name, Status: domain.StatusDraft}, nil
}

func (f *fakeProjectAPI) ListProjects(context.Context) ([]domain.Project, error) {
	return []domain.Project{{ID: "proj-1", Name: "Midnight Run", Status: domain.StatusStoryboardReady}}, nil
}

func (f *fakeProjectAPI) SaveLyrics(_ context.Context, projectID, lyrics string) error {
	f.lyrics[projectID] = lyrics
	return nil
}

func (f *fakeProjectAPI) SaveTheme(_ context.Context, projectID, theme string) error {
	f.themes[projectID] = theme
	return nil
}

type fakeArchiveStore struct {
	entries []domain.ArchiveEntry
}

func (f *fakeArchiveStore) RecordExport(_ context.Context, entry domain.ArchiveEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeArchiveStore) ListExports(context.Context) ([]domain.ArchiveEntry, error) {
	return f.entries, nil
}

func (f *fakeArchiveStore) GetExport(_ context.Context, id string) (domain.ArchiveEntry, error) {
	for _, entry := range f.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return domain.ArchiveEntry{}, apperrors.ErrNotFound
}

func newUsecase(api *fakeProjectAPI, archive *fakeArchiveStore) projectin.Usecase {
	clk := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	return usecase.NewInteractor(service.NewProjectService(clk, &seqID{}, api, archive))
}

func TestPushCreatesWhenUnlinked(t *testing.T) {
	t.Parallel()
	api := newFakeProjectAPI()
	uc := newUsecase(api, &fakeArchiveStore{})

	out, err := uc.Push(context.Background(), dto.PushInput{
		Name:   "Midnight Run",
		Lyrics: "city lights below",
		Theme:  "neon noir",
	})
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if !out.Created || out.ProjectID != "proj-1" {
		t.Fatalf("expected a freshly created project: %+v", out)
	}
	if api.creates != 1 || api.updates != 0 {
		t.Fatalf("wrong API calls: %d creates, %d updates", api.creates, api.updates)
	}
	if api.lyrics["proj-1"] != "city lights below" || api.themes["proj-1"] != "neon noir" {
		t.Fatalf("lyrics/theme not synced: %v %v", api.lyrics, api.themes)
	}
}

func TestPushUpdatesWhenLinked(t *testing.T) {
	t.Parallel()
	api := newFakeProjectAPI()
	uc := newUsecase(api, &fakeArchiveStore{})

	out, err := uc.Push(context.Background(), dto.PushInput{ProjectID: "proj-9", Name: "Midnight Run"})
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if out.Created || out.ProjectID != "proj-9" {
		t.Fatalf("expected an update of the linked project: %+v", out)
	}
	if api.creates != 0 || api.updates != 1 {
		t.Fatalf("wrong API calls: %d creates, %d updates", api.creates, api.updates)
	}
	if len(api.lyrics) != 0 || len(api.themes) != 0 {
		t.Fatalf("empty lyrics/theme must not be synced: %v %v", api.lyrics, api.themes)
	}
}

func TestPushDefaultsName(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newFakeProjectAPI(), &fakeArchiveStore{})
	out, err := uc.Push(context.Background(), dto.PushInput{})
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if out.Name != "Untitled Storyboard" {
		t.Fatalf("name not defaulted: %q", out.Name)
	}
}

func TestPushBackendFailure(t *testing.T) {
	t.Parallel()
	api := newFakeProjectAPI()
	api.fail = apperrors.ErrBackend
	uc := newUsecase(api, &fakeArchiveStore{})
	if _, err := uc.Push(context.Background(), dto.PushInput{Name: "X"}); !errors.Is(err, apperrors.ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
}

func TestGetAndDeleteProjectRequireID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(newFakeProjectAPI(), &fakeArchiveStore{})

	if _, err := uc.GetProject(ctx, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := uc.DeleteProject(ctx, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	project, err := uc.GetProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if project.ID != "proj-1" || project.Name != "Midnight Run" {
		t.Fatalf("unexpected project: %+v", project)
	}
	if err := uc.DeleteProject(ctx, "proj-1"); err != nil {
		t.Fatalf("delete project: %v", err)
	}
}

func TestArchiveExportAndReadBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	archive := &fakeArchiveStore{}
	uc := newUsecase(newFakeProjectAPI(), archive)

	out, err := uc.ArchiveExport(ctx, dto.ArchiveInput{
		ProjectName:    "Midnight Run",
		Mode:           "manual",
		Format:         "txt",
		SceneCount:     2,
		RuntimeSeconds: 16,
		Document:       "export body",
	})
	if err != nil {
		t.Fatalf("archive export: %v", err)
	}
	if out.ID != "entry-1" || out.Slug != "midnight-run" {
		t.Fatalf("unexpected archive entry: %+v", out)
	}
	if out.ExportedAt.IsZero() {
		t.Fatalf("exported_at not stamped")
	}

	got, err := uc.GetArchive(ctx, out.ID)
	if err != nil {
		t.Fatalf("get archive: %v", err)
	}
	if got.Document != "export body" {
		t.Fatalf("document lost: %+v", got)
	}

	list, err := uc.ListArchive(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list archive: %v, %d entries", err, len(list))
	}
}

func TestArchiveExportRequiresDocument(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newFakeProjectAPI(), &fakeArchiveStore{})
	if _, err := uc.ArchiveExport(context.Background(), dto.ArchiveInput{ProjectName: "X"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetArchiveRequiresID(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newFakeProjectAPI(), &fakeArchiveStore{})
	if _, err := uc.GetArchive(context.Background(), ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.GetArchive(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
