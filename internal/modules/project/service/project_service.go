package service

import (
	"context"
	"fmt"

	"lyricmotion/internal/modules/project/domain"
	projectout "lyricmotion/internal/modules/project/port/out"
	"lyricmotion/internal/platform/clock"
	"lyricmotion/internal/platform/id"
	"lyricmotion/internal/platform/slug"
)

type ProjectService struct {
	clock   clock.Clock
	idGen   id.Generator
	api     projectout.ProjectAPI
	archive projectout.ArchiveStore
}

func NewProjectService(clk clock.Clock, idGen id.Generator, api projectout.ProjectAPI, archive projectout.ArchiveStore) *ProjectService {
	return &ProjectService{clock: clk, idGen: idGen, api: api, archive: archive}
}

// Push creates or updates the backend project and syncs lyrics and theme.
// The returned created flag tells the caller whether a fresh projectId must
// be written back into the session.
func (s *ProjectService) Push(ctx context.Context, projectID, name, lyrics, theme string) (domain.Project, bool, error) {
	if s.api == nil {
		return domain.Project{}, false, fmt.Errorf("no backend configured")
	}
	if name == "" {
		name = "Untitled Storyboard"
	}

	created := false
	var project domain.Project
	var err error
	if projectID == "" {
		project, err = s.api.CreateProject(ctx, name)
		created = true
	} else {
		project, err = s.api.UpdateProject(ctx, projectID, name)
	}
	if err != nil {
		return domain.Project{}, false, err
	}

	if lyrics != "" {
		if err := s.api.SaveLyrics(ctx, project.ID, lyrics); err != nil {
			return domain.Project{}, false, err
		}
	}
	if theme != "" {
		if err := s.api.SaveTheme(ctx, project.ID, theme); err != nil {
			return domain.Project{}, false, err
		}
	}
	return project, created, nil
}

func (s *ProjectService) GetProject(ctx context.Context, projectID string) (domain.Project, error) {
	if s.api == nil {
		return domain.Project{}, fmt.Errorf("no backend configured")
	}
	return s.api.GetProject(ctx, projectID)
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if s.api == nil {
		return fmt.Errorf("no backend configured")
	}
	return s.api.DeleteProject(ctx, projectID)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if s.api == nil {
		return nil, fmt.Errorf("no backend configured")
	}
	return s.api.ListProjects(ctx)
}

// Archive records one export document in the local archive.
func (s *ProjectService) Archive(ctx context.Context, projectName, mode, format string, sceneCount, runtimeSeconds int, document string) (domain.ArchiveEntry, error) {
	name := projectName
	if name == "" {
		name = "Untitled Storyboard"
	}
	entry := domain.ArchiveEntry{
		ID:             s.idGen.New(),
		ProjectName:    name,
		Slug:           slug.Make(name),
		Mode:           mode,
		Format:         format,
		SceneCount:     sceneCount,
		RuntimeSeconds: runtimeSeconds,
		ExportedAt:     s.clock.Now(),
		Document:       document,
	}
	if err := entry.Validate(); err != nil {
		return domain.ArchiveEntry{}, err
	}
	if err := s.archive.RecordExport(ctx, entry); err != nil {
		return domain.ArchiveEntry{}, err
	}
	return entry, nil
}

func (s *ProjectService) ListArchive(ctx context.Context) ([]domain.ArchiveEntry, error) {
	return s.archive.ListExports(ctx)
}

func (s *ProjectService) GetArchive(ctx context.Context, entryID string) (domain.ArchiveEntry, error) {
	return s.archive.GetExport(ctx, entryID)
}
