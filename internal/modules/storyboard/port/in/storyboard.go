package in

import (
	"context"

	"lyricmotion/internal/modules/storyboard/dto"
)

type Usecase interface {
	NewSession(ctx context.Context, input dto.NewSessionInput) (dto.SessionOutput, error)
	UpdateSession(ctx context.Context, input dto.SessionUpdateInput) (dto.SessionOutput, error)
	Current(ctx context.Context) (dto.SessionOutput, error)

	AddScene(ctx context.Context, input dto.SceneInput) (dto.SceneOutput, error)
	UpdateScene(ctx context.Context, sceneID string, input dto.SceneInput) (dto.SceneOutput, error)
	RemoveScene(ctx context.Context, sceneID string) (dto.SessionOutput, error)

	Breakdown(ctx context.Context, input dto.BreakdownInput) (dto.SessionOutput, error)

	Restore(ctx context.Context) (dto.SessionOutput, error)
	HasUnsavedDraft(ctx context.Context) (bool, error)
	Discard(ctx context.Context) error
	Flush(ctx context.Context) dto.PersistStatus
	StartAutosave()
	StopAutosave()

	ExportText(ctx context.Context, projectName string) (dto.ExportOutput, error)
	ExportMarkdown(ctx context.Context, projectName string) (dto.ExportOutput, error)
}
