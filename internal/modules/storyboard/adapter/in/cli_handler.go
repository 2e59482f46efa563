package in

import (
	"context"

	"lyricmotion/internal/modules/storyboard/dto"
	storyboardin "lyricmotion/internal/modules/storyboard/port/in"
)

type CLIHandler struct {
	usecase storyboardin.Usecase
}

func NewCLIHandler(usecase storyboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) NewSession(ctx context.Context, mode string, blockDuration int) (dto.SessionOutput, error) {
	return h.usecase.NewSession(ctx, dto.NewSessionInput{Mode: mode, BlockDuration: blockDuration})
}

func (h CLIHandler) UpdateSession(ctx context.Context, input dto.SessionUpdateInput) (dto.SessionOutput, error) {
	return h.usecase.UpdateSession(ctx, input)
}

func (h CLIHandler) Current(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) AddScene(ctx context.Context, input dto.SceneInput) (dto.SceneOutput, error) {
	return h.usecase.AddScene(ctx, input)
}

func (h CLIHandler) UpdateScene(ctx context.Context, sceneID string, input dto.SceneInput) (dto.SceneOutput, error) {
	return h.usecase.UpdateScene(ctx, sceneID, input)
}

func (h CLIHandler) RemoveScene(ctx context.Context, sceneID string) (dto.SessionOutput, error) {
	return h.usecase.RemoveScene(ctx, sceneID)
}

func (h CLIHandler) Breakdown(ctx context.Context, lyrics, theme string, blockDuration int) (dto.SessionOutput, error) {
	return h.usecase.Breakdown(ctx, dto.BreakdownInput{Lyrics: lyrics, Theme: theme, BlockDuration: blockDuration})
}

func (h CLIHandler) Restore(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) HasUnsavedDraft(ctx context.Context) (bool, error) {
	return h.usecase.HasUnsavedDraft(ctx)
}

func (h CLIHandler) Discard(ctx context.Context) error {
	return h.usecase.Discard(ctx)
}

func (h CLIHandler) Flush(ctx context.Context) dto.PersistStatus {
	return h.usecase.Flush(ctx)
}

func (h CLIHandler) StartAutosave() { h.usecase.StartAutosave() }
func (h CLIHandler) StopAutosave()  { h.usecase.StopAutosave() }

func (h CLIHandler) Export(ctx context.Context, projectName, format string) (dto.ExportOutput, error) {
	if format == "md" || format == "markdown" {
		return h.usecase.ExportMarkdown(ctx, projectName)
	}
	return h.usecase.ExportText(ctx, projectName)
}
