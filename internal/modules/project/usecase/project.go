package usecase

import (
	"context"
	"fmt"

	"lyricmotion/internal/modules/project/domain"
	"lyricmotion/internal/modules/project/dto"
	projectin "lyricmotion/internal/modules/project/port/in"
	"lyricmotion/internal/modules/project/service"
	apperrors "lyricmotion/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProjectService
}

func NewInteractor(svc *service.ProjectService) projectin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Push(ctx context.Context, input dto.PushInput) (dto.PushOutput, error) {
	project, created, err := i.svc.Push(ctx, input.ProjectID, input.Name, input.Lyrics, input.Theme)
	if err != nil {
		return dto.PushOutput{}, err
	}
	return dto.PushOutput{
		ProjectID: project.ID,
		Name:      project.Name,
		Status:    string(project.Status),
		Created:   created,
	}, nil
}

func (i *Interactor) GetProject(ctx context.Context, id string) (dto.ProjectOutput, error) {
	if id == "" {
		return dto.ProjectOutput{}, fmt.Errorf("%w: project id is required", apperrors.ErrInvalidInput)
	}
	project, err := i.svc.GetProject(ctx, id)
	if err != nil {
		return dto.ProjectOutput{}, err
	}
	return toProjectOutput(project), nil
}

func (i *Interactor) DeleteProject(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: project id is required", apperrors.ErrInvalidInput)
	}
	return i.svc.DeleteProject(ctx, id)
}

func (i *Interactor) ListProjects(ctx context.Context) ([]dto.ProjectOutput, error) {
	projects, err := i.svc.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.ProjectOutput, 0, len(projects))
	for _, project := range projects {
		outputs = append(outputs, toProjectOutput(project))
	}
	return outputs, nil
}

func (i *Interactor) ArchiveExport(ctx context.Context, input dto.ArchiveInput) (dto.ArchiveOutput, error) {
	if input.Document == "" {
		return dto.ArchiveOutput{}, fmt.Errorf("%w: export document is required", apperrors.ErrInvalidInput)
	}
	entry, err := i.svc.Archive(ctx, input.ProjectName, input.Mode, input.Format, input.SceneCount, input.RuntimeSeconds, input.Document)
	if err != nil {
		return dto.ArchiveOutput{}, err
	}
	return toArchiveOutput(entry), nil
}

func (i *Interactor) ListArchive(ctx context.Context) ([]dto.ArchiveOutput, error) {
	entries, err := i.svc.ListArchive(ctx)
	if err != nil {
		return nil, err
	}
	outputs := make([]dto.ArchiveOutput, 0, len(entries))
	for _, entry := range entries {
		outputs = append(outputs, toArchiveOutput(entry))
	}
	return outputs, nil
}

func (i *Interactor) GetArchive(ctx context.Context, id string) (dto.ArchiveOutput, error) {
	if id == "" {
		return dto.ArchiveOutput{}, fmt.Errorf("%w: archive id is required", apperrors.ErrInvalidInput)
	}
	entry, err := i.svc.GetArchive(ctx, id)
	if err != nil {
		return dto.ArchiveOutput{}, err
	}
	return toArchiveOutput(entry), nil
}

func toProjectOutput(project domain.Project) dto.ProjectOutput {
	return dto.ProjectOutput{
		ID:        project.ID,
		Name:      project.Name,
		Status:    string(project.Status),
		Lyrics:    project.Lyrics,
		Theme:     project.Theme,
		UpdatedAt: project.UpdatedAt,
	}
}

func toArchiveOutput(entry domain.ArchiveEntry) dto.ArchiveOutput {
	return dto.ArchiveOutput{
		ID:             entry.ID,
		ProjectName:    entry.ProjectName,
		Slug:           entry.Slug,
		Mode:           entry.Mode,
		Format:         entry.Format,
		SceneCount:     entry.SceneCount,
		RuntimeSeconds: entry.RuntimeSeconds,
		ExportedAt:     entry.ExportedAt,
		Document:       entry.Document,
	}
}
