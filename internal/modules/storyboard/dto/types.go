package dto

import "time"

type NewSessionInput struct {
	Mode          string
	BlockDuration int
}

// SessionUpdateInput uses pointer fields so callers can express "leave as is"
// versus "set to empty".
type SessionUpdateInput struct {
	ProjectID     *string
	ProjectName   *string
	Lyrics        *string
	Theme         *string
	Mode          *string
	BlockDuration *int
	CurrentStep   *int
}

type SceneInput struct {
	StartTime        *float64
	EndTime          *float64
	LyricSegment     *string
	SceneDescription *string
	CameraMovement   *string
	Lighting         *string
	Mood             *string
	CharacterActions *string
	VisualStyle      *string
}

type SceneOutput struct {
	ID               string
	BlockNumber      int
	StartTime        float64
	EndTime          float64
	LyricSegment     string
	SceneDescription string
	CameraMovement   string
	Lighting         string
	Mood             string
	CharacterActions string
	VisualStyle      string
	GeneratedPrompt  string
}

type SessionOutput struct {
	ProjectID     string
	ProjectName   string
	Lyrics        string
	Theme         string
	Mode          string
	ModeLabel     string
	BlockDuration int
	CurrentStep   int
	LastSaved     time.Time
	Scenes        []SceneOutput
	TotalRuntime  int
}

type BreakdownInput struct {
	Lyrics        string
	Theme         string
	BlockDuration int
}

type ExportOutput struct {
	Document    string
	Filename    string
	ProjectName string
	SceneCount  int
	Runtime     int
}

// PersistStatus reports the outcome of a draft flush. Persistence is
// best-effort: a failed flush degrades to memory-only operation instead of
// failing the authoring flow, and this status is how callers observe that.
type PersistStatus struct {
	Persisted bool
	Reason    string
}
