package out

import (
	"context"

	"lyricmotion/internal/modules/storyboard/domain"
)

// DraftStore is the single-slot durable snapshot of the in-progress session.
type DraftStore interface {
	SaveDraft(ctx context.Context, session domain.Session) error
	// LoadDraft returns apperrors.ErrNoDraft when no well-formed snapshot
	// exists; malformed data is treated the same as absence.
	LoadDraft(ctx context.Context) (domain.Session, error)
	ClearDraft(ctx context.Context) error
}

// BreakdownService asks the backend to segment lyrics into timed scene
// field sets.
type BreakdownService interface {
	BreakdownLyrics(ctx context.Context, lyrics, theme string, blockDuration int) ([]domain.SceneInput, error)
}
