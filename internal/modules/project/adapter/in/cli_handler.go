package in

import (
	"context"

	"lyricmotion/internal/modules/project/dto"
	projectin "lyricmotion/internal/modules/project/port/in"
)

type CLIHandler struct {
	usecase projectin.Usecase
}

func NewCLIHandler(usecase projectin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Push(ctx context.Context, projectID, name, lyrics, theme string) (dto.PushOutput, error) {
	return h.usecase.Push(ctx, dto.PushInput{ProjectID: projectID, Name: name, Lyrics: lyrics, Theme: theme})
}

func (h CLIHandler) GetProject(ctx context.Context, id string) (dto.ProjectOutput, error) {
	return h.usecase.GetProject(ctx, id)
}

func (h CLIHandler) DeleteProject(ctx context.Context, id string) error {
	return h.usecase.DeleteProject(ctx, id)
}

func (h CLIHandler) ListProjects(ctx context.Context) ([]dto.ProjectOutput, error) {
	return h.usecase.ListProjects(ctx)
}

func (h CLIHandler) ArchiveExport(ctx context.Context, input dto.ArchiveInput) (dto.ArchiveOutput, error) {
	return h.usecase.ArchiveExport(ctx, input)
}

func (h CLIHandler) ListArchive(ctx context.Context) ([]dto.ArchiveOutput, error) {
	return h.usecase.ListArchive(ctx)
}

func (h CLIHandler) GetArchive(ctx context.Context, id string) (dto.ArchiveOutput, error) {
	return h.usecase.GetArchive(ctx, id)
}
