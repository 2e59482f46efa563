package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lyricmotion/internal/modules/storyboard/domain"
	"lyricmotion/internal/modules/storyboard/dto"
	storyboardin "lyricmotion/internal/modules/storyboard/port/in"
	storyboardout "lyricmotion/internal/modules/storyboard/port/out"
	"lyricmotion/internal/modules/storyboard/service"
	"lyricmotion/internal/platform/clock"
	apperrors "lyricmotion/internal/platform/errors"
	"lyricmotion/internal/platform/slug"
)

// Interactor wires the in-memory session service to the draft store, the
// autosave scheduler and the backend breakdown service. The in-memory session
// stays the source of truth: draft persistence is best-effort and its failures
// surface as PersistStatus, never as errors that abort authoring.
type Interactor struct {
	svc       *service.SessionService
	drafts    storyboardout.DraftStore
	breakdown storyboardout.BreakdownService
	autosave  *service.Autosave
	clock     clock.Clock
	blockDur  int
}

func NewInteractor(
	svc *service.SessionService,
	drafts storyboardout.DraftStore,
	breakdown storyboardout.BreakdownService,
	clk clock.Clock,
	autosaveInterval time.Duration,
	blockDuration int,
) storyboardin.Usecase {
	i := &Interactor{
		svc:       svc,
		drafts:    drafts,
		breakdown: breakdown,
		clock:     clk,
		blockDur:  blockDuration,
	}
	i.autosave = service.NewAutosave(autosaveInterval, func() {
		i.persist(context.Background())
	})
	return i
}

func (i *Interactor) NewSession(_ context.Context, input dto.NewSessionInput) (dto.SessionOutput, error) {
	mode := domain.Mode(input.Mode)
	if input.Mode == "" {
		mode = domain.ModeManual
	}
	if err := mode.Validate(); err != nil {
		return dto.SessionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	duration := input.BlockDuration
	if duration <= 0 {
		duration = i.blockDur
	}
	return toSessionOutput(i.svc.Create(mode, duration)), nil
}

func (i *Interactor) UpdateSession(_ context.Context, input dto.SessionUpdateInput) (dto.SessionOutput, error) {
	merged := domain.SessionInput{
		ProjectID:         input.ProjectID,
		ProjectName:       input.ProjectName,
		Lyrics:            input.Lyrics,
		Theme:             input.Theme,
		BreakdownDuration: input.BlockDuration,
		CurrentStep:       input.CurrentStep,
	}
	if input.Mode != nil {
		mode := domain.Mode(*input.Mode)
		if err := mode.Validate(); err != nil {
			return dto.SessionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		merged.Mode = &mode
	}
	return toSessionOutput(i.svc.UpdateMetadata(merged)), nil
}

func (i *Interactor) Current(_ context.Context) (dto.SessionOutput, error) {
	session, ok := i.svc.Snapshot()
	if !ok {
		return dto.SessionOutput{}, apperrors.ErrNoSession
	}
	return toSessionOutput(session), nil
}

func (i *Interactor) AddScene(_ context.Context, input dto.SceneInput) (dto.SceneOutput, error) {
	scene, err := i.svc.AddScene(toSceneInput(input))
	if err != nil {
		return dto.SceneOutput{}, err
	}
	return toSceneOutput(scene), nil
}

func (i *Interactor) UpdateScene(_ context.Context, sceneID string, input dto.SceneInput) (dto.SceneOutput, error) {
	if sceneID == "" {
		return dto.SceneOutput{}, fmt.Errorf("%w: scene id is required", apperrors.ErrInvalidInput)
	}
	scene, err := i.svc.UpdateScene(sceneID, toSceneInput(input))
	if err != nil {
		return dto.SceneOutput{}, err
	}
	return toSceneOutput(scene), nil
}

func (i *Interactor) RemoveScene(_ context.Context, sceneID string) (dto.SessionOutput, error) {
	if sceneID == "" {
		return dto.SessionOutput{}, fmt.Errorf("%w: scene id is required", apperrors.ErrInvalidInput)
	}
	session, err := i.svc.RemoveScene(sceneID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

// Breakdown asks the backend to segment the lyrics and folds the returned
// scene sets into the session, replacing any scenes from a previous run.
func (i *Interactor) Breakdown(ctx context.Context, input dto.BreakdownInput) (dto.SessionOutput, error) {
	if input.Lyrics == "" {
		return dto.SessionOutput{}, fmt.Errorf("%w: lyrics are required", apperrors.ErrInvalidInput)
	}
	if i.breakdown == nil {
		return dto.SessionOutput{}, fmt.Errorf("%w: no backend configured", apperrors.ErrBackend)
	}
	duration := input.BlockDuration
	if duration <= 0 {
		duration = i.blockDur
	}

	inputs, err := i.breakdown.BreakdownLyrics(ctx, input.Lyrics, input.Theme, duration)
	if err != nil {
		return dto.SessionOutput{}, err
	}

	mode := domain.ModeAutoBreakdown
	session := i.svc.UpdateMetadata(domain.SessionInput{
		Lyrics:            &input.Lyrics,
		Theme:             &input.Theme,
		Mode:              &mode,
		BreakdownDuration: &duration,
	})
	if len(session.Scenes) > 0 {
		session.Scenes = nil
		i.svc.Replace(session)
	}
	for _, sceneInput := range inputs {
		if _, err := i.svc.AddScene(sceneInput); err != nil {
			// A scene with an inverted span is a malformed backend response.
			return dto.SessionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrBackend, err)
		}
	}

	session, _ = i.svc.Snapshot()
	return toSessionOutput(session), nil
}

func (i *Interactor) Restore(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.drafts.LoadDraft(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(i.svc.Replace(session)), nil
}

// HasUnsavedDraft reports whether the durable snapshot holds non-trivial
// content. It never mutates the in-memory session.
func (i *Interactor) HasUnsavedDraft(ctx context.Context) (bool, error) {
	session, err := i.drafts.LoadDraft(ctx)
	if errors.Is(err, apperrors.ErrNoDraft) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return session.HasContent(), nil
}

func (i *Interactor) Discard(ctx context.Context) error {
	i.svc.Clear()
	return i.drafts.ClearDraft(ctx)
}

// Flush writes the current session to the draft store and reports the
// outcome. A failed write leaves the in-memory session authoritative and the
// tool in memory-only operation.
func (i *Interactor) Flush(ctx context.Context) dto.PersistStatus {
	return i.persist(ctx)
}

func (i *Interactor) StartAutosave() { i.autosave.Start() }

// StopAutosave cancels the timer without flushing; callers wanting guaranteed
// last-state durability issue Flush right after.
func (i *Interactor) StopAutosave() { i.autosave.Stop() }

func (i *Interactor) ExportText(_ context.Context, projectName string) (dto.ExportOutput, error) {
	session, ok := i.svc.Snapshot()
	if !ok {
		return dto.ExportOutput{}, apperrors.ErrNoSession
	}
	document := domain.RenderText(session, projectName, i.clock.Now())
	return toExportOutput(session, projectName, document, "txt"), nil
}

func (i *Interactor) ExportMarkdown(_ context.Context, projectName string) (dto.ExportOutput, error) {
	session, ok := i.svc.Snapshot()
	if !ok {
		return dto.ExportOutput{}, apperrors.ErrNoSession
	}
	document, err := domain.RenderMarkdown(session, projectName, i.clock.Now())
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("render markdown export: %w", err)
	}
	return toExportOutput(session, projectName, document, "md"), nil
}

func (i *Interactor) persist(ctx context.Context) dto.PersistStatus {
	session, ok := i.svc.Snapshot()
	if !ok {
		return dto.PersistStatus{Persisted: false, Reason: "no session"}
	}
	if err := i.drafts.SaveDraft(ctx, session); err != nil {
		return dto.PersistStatus{Persisted: false, Reason: err.Error()}
	}
	return dto.PersistStatus{Persisted: true}
}

func toSceneInput(input dto.SceneInput) domain.SceneInput {
	return domain.SceneInput{
		StartTime:        input.StartTime,
		EndTime:          input.EndTime,
		LyricSegment:     input.LyricSegment,
		SceneDescription: input.SceneDescription,
		CameraMovement:   input.CameraMovement,
		Lighting:         input.Lighting,
		Mood:             input.Mood,
		CharacterActions: input.CharacterActions,
		VisualStyle:      input.VisualStyle,
	}
}

func toSceneOutput(scene domain.Scene) dto.SceneOutput {
	return dto.SceneOutput{
		ID:               scene.ID,
		BlockNumber:      scene.BlockNumber,
		StartTime:        scene.StartTime,
		EndTime:          scene.EndTime,
		LyricSegment:     scene.LyricSegment,
		SceneDescription: scene.SceneDescription,
		CameraMovement:   scene.CameraMovement,
		Lighting:         scene.Lighting,
		Mood:             scene.Mood,
		CharacterActions: scene.CharacterActions,
		VisualStyle:      scene.VisualStyle,
		GeneratedPrompt:  scene.GeneratedPrompt,
	}
}

func toSessionOutput(session domain.Session) dto.SessionOutput {
	output := dto.SessionOutput{
		ProjectID:     session.ProjectID,
		ProjectName:   session.ProjectName,
		Lyrics:        session.Lyrics,
		Theme:         session.Theme,
		Mode:          string(session.Mode),
		ModeLabel:     session.Mode.Label(),
		BlockDuration: session.BreakdownDuration,
		CurrentStep:   session.CurrentStep,
		LastSaved:     session.LastSaved,
		TotalRuntime:  session.TotalRuntime(),
	}
	for _, scene := range session.Scenes {
		output.Scenes = append(output.Scenes, toSceneOutput(scene))
	}
	return output
}

func toExportOutput(session domain.Session, projectName, document, extension string) dto.ExportOutput {
	name := projectName
	if name == "" {
		name = session.ProjectName
	}
	if name == "" {
		name = "Untitled Storyboard"
	}
	return dto.ExportOutput{
		Document:    document,
		Filename:    slug.Make(name) + "-storyboard." + extension,
		ProjectName: name,
		SceneCount:  len(session.Scenes),
		Runtime:     session.TotalRuntime(),
	}
}
