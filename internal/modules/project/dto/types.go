package dto

import "time"

type PushInput struct {
	ProjectID string
	Name      string
	Lyrics    string
	Theme     string
}

type PushOutput struct {
	ProjectID string
	Name      string
	Status    string
	Created   bool
}

type ProjectOutput struct {
	ID        string
	Name      string
	Status    string
	Lyrics    string
	Theme     string
	UpdatedAt time.Time
}

type ArchiveInput struct {
	ProjectName    string
	Mode           string
	Format         string
	SceneCount     int
	RuntimeSeconds int
	Document       string
}

type ArchiveOutput struct {
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
