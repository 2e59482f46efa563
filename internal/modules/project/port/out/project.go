package out

import (
	"context"

	"lyricmotion/internal/modules/project/domain"
)

// ProjectAPI is the backend project store.
type ProjectAPI interface {
	CreateProject(ctx context.Context, name string) (domain.Project, error)
	GetProject(ctx context.Context, projectID string) (domain.Project, error)
	UpdateProject(ctx context.Context, projectID, name string) (domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
	ListProjects(ctx context.Context) ([]domain.Project, error)
	SaveLyrics(ctx context.Context, projectID, lyrics string) error
	SaveTheme(ctx context.Context, projectID, theme string) error
}

// ArchiveStore records exported storyboard documents locally.
type ArchiveStore interface {
	RecordExport(ctx context.Context, entry domain.ArchiveEntry) error
	ListExports(ctx context.Context) ([]domain.ArchiveEntry, error)
	GetExport(ctx context.Context, id string) (domain.ArchiveEntry, error)
}
