package domain

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeManual        Mode = "manual"
	ModeAutoBreakdown Mode = "auto-breakdown"
)

const DefaultBreakdownDuration = 8

func (m Mode) Validate() error {
	switch m {
	case ModeManual, ModeAutoBreakdown:
		return nil
	default:
		return fmt.Errorf("unsupported mode %q", string(m))
	}
}

func (m Mode) Label() string {
	if m == ModeAutoBreakdown {
		return "AI Breakdown"
	}
	return "Manual"
}

// Session is the complete in-progress authoring state for one storyboard.
// Exactly one lives in memory at a time; the draft store holds at most one
// serialized snapshot of it.
type Session struct {
	ProjectID         string
	ProjectName       string
	Lyrics            string
	Theme             string
	Mode              Mode
	BreakdownDuration int
	Scenes            []Scene
	CurrentStep       int
	LastSaved         time.Time
}

// SessionInput carries a partial metadata update. Scenes are never mutated
// through it.
type SessionInput struct {
	ProjectID         *string
	ProjectName       *string
	Lyrics            *string
	Theme             *string
	Mode              *Mode
	BreakdownDuration *int
	CurrentStep       *int
}

func NewSession(mode Mode) Session {
	return Session{
		Mode:              mode,
		BreakdownDuration: DefaultBreakdownDuration,
	}
}

// ApplyMetadata merges input over the session's metadata fields.
func ApplyMetadata(session Session, input SessionInput) Session {
	if input.ProjectID != nil {
		session.ProjectID = *input.ProjectID
	}
	if input.ProjectName != nil {
		session.ProjectName = *input.ProjectName
	}
	if input.Lyrics != nil {
		session.Lyrics = *input.Lyrics
	}
	if input.Theme != nil {
		session.Theme = *input.Theme
	}
	if input.Mode != nil {
		session.Mode = *input.Mode
	}
	if input.BreakdownDuration != nil && *input.BreakdownDuration > 0 {
		session.BreakdownDuration = *input.BreakdownDuration
	}
	if input.CurrentStep != nil {
		session.CurrentStep = *input.CurrentStep
	}
	return session
}

// HasContent reports whether the session holds work worth restoring: a
// project name, lyrics, or at least one scene. Empty defaults do not count.
func (s Session) HasContent() bool {
	return s.ProjectName != "" || s.Lyrics != "" || len(s.Scenes) > 0
}

// TotalRuntime is the estimated runtime in seconds.
func (s Session) TotalRuntime() int {
	return len(s.Scenes) * s.BreakdownDuration
}

// CloneScenes returns an independent copy of the scene list so snapshots are
// not aliased to the authoritative session.
func (s Session) CloneScenes() []Scene {
	if s.Scenes == nil {
		return nil
	}
	scenes := make([]Scene, len(s.Scenes))
	copy(scenes, s.Scenes)
	return scenes
}
