package in

import (
	"context"

	"lyricmotion/internal/modules/project/dto"
)

type Usecase interface {
	Push(ctx context.Context, input dto.PushInput) (dto.PushOutput, error)
	GetProject(ctx context.Context, id string) (dto.ProjectOutput, error)
	DeleteProject(ctx context.Context, id string) error
	ListProjects(ctx context.Context) ([]dto.ProjectOutput, error)

	ArchiveExport(ctx context.Context, input dto.ArchiveInput) (dto.ArchiveOutput, error)
	ListArchive(ctx context.Context) ([]dto.ArchiveOutput, error)
	GetArchive(ctx context.Context, id string) (dto.ArchiveOutput, error)
}
