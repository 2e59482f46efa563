package domain

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusProcessing      Status = "processing"
	StatusStoryboardReady Status = "storyboard_ready"
	StatusVideoReady      Status = "video_ready"
)

// Project mirrors the backend project record the session can be linked to.
type Project struct {
	ID        string
	Name      string
	Status    Status
	Lyrics    string
	Theme     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	return nil
}

// ArchiveEntry is one locally archived export document.
type ArchiveEntry struct {
	ID             string
	ProjectName    string
	Slug           string
	Mode           string
	Format         string
	SceneCount     int
	RuntimeSeconds int
	ExportedAt     time.Time
	Document       string
}

func (e ArchiveEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("archive entry id is required")
	}
	if strings.TrimSpace(e.Document) == "" {
		return fmt.Errorf("archive entry document is required")
	}
	return nil
}
