package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"lyricmotion/internal/modules/storyboard/domain"
	storyboardout "lyricmotion/internal/modules/storyboard/port/out"
	"lyricmotion/internal/platform/clock"
	apperrors "lyricmotion/internal/platform/errors"
)

// FileDraftStore keeps at most one serialized session snapshot at a fixed
// path. It is the durable half of the autosave loop.
type FileDraftStore struct {
	path string
}

func NewFileDraftStore(path string) storyboardout.DraftStore {
	return &FileDraftStore{path: path}
}

type sceneRecord struct {
	ID               string  `json:"id"`
	BlockNumber      int     `json:"blockNumber"`
	StartTime        float64 `json:"startTime"`
	EndTime          float64 `json:"endTime"`
	LyricSegment     string  `json:"lyricSegment"`
	SceneDescription string  `json:"sceneDescription"`
	CameraMovement   string  `json:"cameraMovement"`
	Lighting         string  `json:"lighting"`
	Mood             string  `json:"mood"`
	CharacterActions string  `json:"characterActions"`
	VisualStyle      string  `json:"visualStyle"`
	GeneratedPrompt  string  `json:"generatedPrompt"`
}

type draftRecord struct {
	ProjectID         string        `json:"projectId,omitempty"`
	ProjectName       string        `json:"projectName"`
	Lyrics            string        `json:"lyrics"`
	Theme             string        `json:"theme"`
	Mode              string        `json:"mode"`
	BreakdownDuration int           `json:"breakdownDuration"`
	CurrentStep       int           `json:"currentStep"`
	LastSaved         int64         `json:"lastSaved"`
	StoryboardScenes  []sceneRecord `json:"storyboardScenes"`
}

func (s *FileDraftStore) SaveDraft(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create draft dir: %w", err)
	}
	payload, err := json.MarshalIndent(toRecord(session), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

// LoadDraft treats malformed data the same as absence: a corrupt snapshot
// must never crash a cold start.
func (s *FileDraftStore) LoadDraft(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, apperrors.ErrNoDraft
		}
		return domain.Session{}, fmt.Errorf("read draft: %w", err)
	}
	record := draftRecord{}
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Session{}, apperrors.ErrNoDraft
	}
	if record.Mode == "" {
		return domain.Session{}, apperrors.ErrNoDraft
	}
	return fromRecord(record), nil
}

func (s *FileDraftStore) ClearDraft(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func toRecord(session domain.Session) draftRecord {
	record := draftRecord{
		ProjectID:         session.ProjectID,
		ProjectName:       session.ProjectName,
		Lyrics:            session.Lyrics,
		Theme:             session.Theme,
		Mode:              string(session.Mode),
		BreakdownDuration: session.BreakdownDuration,
		CurrentStep:       session.CurrentStep,
		LastSaved:         clock.Millis(session.LastSaved),
		StoryboardScenes:  make([]sceneRecord, 0, len(session.Scenes)),
	}
	for _, scene := range session.Scenes {
		record.StoryboardScenes = append(record.StoryboardScenes, sceneRecord{
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
		})
	}
	return record
}

func fromRecord(record draftRecord) domain.Session {
	session := domain.Session{
		ProjectID:         record.ProjectID,
		ProjectName:       record.ProjectName,
		Lyrics:            record.Lyrics,
		Theme:             record.Theme,
		Mode:              domain.Mode(record.Mode),
		BreakdownDuration: record.BreakdownDuration,
		CurrentStep:       record.CurrentStep,
		LastSaved:         clock.FromMillis(record.LastSaved),
	}
	if session.BreakdownDuration <= 0 {
		session.BreakdownDuration = domain.DefaultBreakdownDuration
	}
	for _, scene := range record.StoryboardScenes {
		session.Scenes = append(session.Scenes, domain.Scene{
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
		})
	}
	return session
}
