package service

import (
	"fmt"
	"sync"

	"lyricmotion/internal/modules/storyboard/domain"
	"lyricmotion/internal/platform/clock"
	apperrors "lyricmotion/internal/platform/errors"
	"lyricmotion/internal/platform/id"
)

// SessionService is the sole mutable owner of the current session. Mutations
// are synchronous and immediately visible to subsequent reads; the mutex
// keeps them atomic relative to autosave snapshots taken from the flush
// goroutine.
type SessionService struct {
	mu      sync.Mutex
	clock   clock.Clock
	idGen   id.Generator
	session *domain.Session
}

func NewSessionService(clk clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clk, idGen: idGen}
}

// Create replaces the current session with a fresh one. Durable storage is
// untouched; the old snapshot is overwritten on the next flush.
func (s *SessionService) Create(mode domain.Mode, blockDuration int) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := domain.NewSession(mode)
	if blockDuration > 0 {
		session.BreakdownDuration = blockDuration
	}
	session.LastSaved = s.clock.Now()
	s.session = &session
	return s.snapshotLocked()
}

// UpdateMetadata merges input over the session metadata. A default manual
// session is synthesized first if none exists, so metadata edits are never
// lost to call ordering.
func (s *SessionService) UpdateMetadata(input domain.SessionInput) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		session := domain.NewSession(domain.ModeManual)
		s.session = &session
	}
	updated := domain.ApplyMetadata(*s.session, input)
	updated.LastSaved = s.clock.Now()
	s.session = &updated
	return s.snapshotLocked()
}

// AddScene appends a new scene built from input. The resolved span must end
// after it starts; invalid spans are rejected before anything mutates.
func (s *SessionService) AddScene(input domain.SceneInput) (domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.Scene{}, apperrors.ErrNoSession
	}
	start, end := domain.ResolveSpan(input, s.session.Scenes, s.session.BreakdownDuration)
	if err := domain.ValidateSpan(start, end); err != nil {
		return domain.Scene{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	scene := domain.NewScene(s.idGen.New(), input, s.session.Scenes, s.session.BreakdownDuration)
	s.session.Scenes = append(s.session.Scenes, scene)
	s.session.LastSaved = s.clock.Now()
	return scene, nil
}

// UpdateScene merges input into the scene with the given id, preserving its
// position. The merged span must still end after it starts.
func (s *SessionService) UpdateScene(sceneID string, input domain.SceneInput) (domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.Scene{}, apperrors.ErrNoSession
	}
	for i, scene := range s.session.Scenes {
		if scene.ID != sceneID {
			continue
		}
		updated := domain.ApplyFields(scene, input)
		if err := domain.ValidateSpan(updated.StartTime, updated.EndTime); err != nil {
			return domain.Scene{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		s.session.Scenes[i] = updated
		s.session.LastSaved = s.clock.Now()
		return updated, nil
	}
	return domain.Scene{}, apperrors.ErrSceneNotFound
}

// RemoveScene filters out the scene and renumbers the remainder. Neighbour
// timings are intentionally left unchanged.
func (s *SessionService) RemoveScene(sceneID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.Session{}, apperrors.ErrNoSession
	}
	kept := s.session.Scenes[:0:0]
	found := false
	for _, scene := range s.session.Scenes {
		if scene.ID == sceneID {
			found = true
			continue
		}
		kept = append(kept, scene)
	}
	if !found {
		return domain.Session{}, apperrors.ErrSceneNotFound
	}
	s.session.Scenes = domain.Renumber(kept)
	s.session.LastSaved = s.clock.Now()
	return s.snapshotLocked(), nil
}

// Replace installs a restored session wholesale.
func (s *SessionService) Replace(session domain.Session) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.Scenes = session.CloneScenes()
	s.session = &session
	return s.snapshotLocked()
}

// Snapshot returns a deep copy of the current session, or ok=false when none
// exists.
func (s *SessionService) Snapshot() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return domain.Session{}, false
	}
	return s.snapshotLocked(), true
}

// Clear drops the in-memory session.
func (s *SessionService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

func (s *SessionService) snapshotLocked() domain.Session {
	snapshot := *s.session
	snapshot.Scenes = s.session.CloneScenes()
	return snapshot
}
