package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"lyricmotion/internal/modules/storyboard/domain"
	"lyricmotion/internal/modules/storyboard/dto"
	storyboardin "lyricmotion/internal/modules/storyboard/port/in"
	storyboardout "lyricmotion/internal/modules/storyboard/port/out"
	"lyricmotion/internal/modules/storyboard/service"
	"lyricmotion/internal/modules/storyboard/usecase"
	apperrors "lyricmotion/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("scene-%d", s.n)
}

// fakeDraftStore is an in-memory single slot with a failure toggle.
type fakeDraftStore struct {
	draft *domain.Session
	fail  bool
	saves int
}

func (f *fakeDraftStore) SaveDraft(_ context.Context, session domain.Session) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.saves++
	copied := session
	copied.Scenes = session.CloneScenes()
	f.draft = &copied
	return nil
}

func (f *fakeDraftStore) LoadDraft(context.Context) (domain.Session, error) {
	if f.draft == nil {
		return domain.Session{}, apperrors.ErrNoDraft
	}
	copied := *f.draft
	copied.Scenes = f.draft.CloneScenes()
	return copied, nil
}

func (f *fakeDraftStore) ClearDraft(context.Context) error {
	f.draft = nil
	return nil
}

type fakeBreakdown struct {
	scenes []domain.SceneInput
	err    error
	calls  int
}

func (f *fakeBreakdown) BreakdownLyrics(_ context.Context, _, _ string, _ int) ([]domain.SceneInput, error) {
	f.calls++
	return f.scenes, f.err
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newInteractor(drafts *fakeDraftStore, breakdown *fakeBreakdown) storyboardin.Usecase {
	clk := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	svc := service.NewSessionService(clk, &seqID{})
	// Keep the interface nil when no backend is configured; a typed nil
	// pointer would defeat the interactor's nil check.
	var bd storyboardout.BreakdownService
	if breakdown != nil {
		bd = breakdown
	}
	return usecase.NewInteractor(svc, drafts, bd, clk, time.Second, 8)
}

func TestAuthoringLifecycleFlushAndRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	drafts := &fakeDraftStore{}
	uc := newInteractor(drafts, nil)

	if _, err := uc.NewSession(ctx, dto.NewSessionInput{}); err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := uc.UpdateSession(ctx, dto.SessionUpdateInput{ProjectName: strPtr("Midnight Run")}); err != nil {
		t.Fatalf("update session: %v", err)
	}
	if _, err := uc.AddScene(ctx, dto.SceneInput{Mood: strPtr("wistful")}); err != nil {
		t.Fatalf("add scene: %v", err)
	}
	if status := uc.Flush(ctx); !status.Persisted {
		t.Fatalf("flush failed: %s", status.Reason)
	}

	// A second interactor simulates a new process picking up the draft.
	uc2 := newInteractor(drafts, nil)
	restored, err := uc2.Restore(ctx)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.ProjectName != "Midnight Run" || len(restored.Scenes) != 1 {
		t.Fatalf("restored session incomplete: %+v", restored)
	}
	if restored.Scenes[0].Mood != "wistful" {
		t.Fatalf("restored scene lost fields: %+v", restored.Scenes[0])
	}
}

func TestHasUnsavedDraft(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	drafts := &fakeDraftStore{}
	uc := newInteractor(drafts, nil)

	ok, err := uc.HasUnsavedDraft(ctx)
	if err != nil || ok {
		t.Fatalf("empty store should report no draft: %v %v", ok, err)
	}

	// A flushed but contentless session does not count as unsaved work.
	if _, err := uc.NewSession(ctx, dto.NewSessionInput{}); err != nil {
		t.Fatalf("new session: %v", err)
	}
	uc.Flush(ctx)
	ok, err = uc.HasUnsavedDraft(ctx)
	if err != nil || ok {
		t.Fatalf("contentless draft should not count: %v %v", ok, err)
	}

	if _, err := uc.UpdateSession(ctx, dto.SessionUpdateInput{Lyrics: strPtr("verse one")}); err != nil {
		t.Fatalf("update session: %v", err)
	}
	uc.Flush(ctx)
	ok, err = uc.HasUnsavedDraft(ctx)
	if err != nil || !ok {
		t.Fatalf("draft with lyrics should count: %v %v", ok, err)
	}
}

func TestFlushFailureDegradesToMemoryOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	drafts := &fakeDraftStore{fail: true}
	uc := newInteractor(drafts, nil)

	uc.NewSession(ctx, dto.NewSessionInput{})
	uc.AddScene(ctx, dto.SceneInput{Mood: strPtr("calm")})

	status := uc.Flush(ctx)
	if status.Persisted || status.Reason == "" {
		t.Fatalf("failed flush must report persisted=false with a reason: %+v", status)
	}
	// The in-memory session stays authoritative.
	session, err := uc.Current(ctx)
	if err != nil || len(session.Scenes) != 1 {
		t.Fatalf("session lost after failed flush: %+v %v", session, err)
	}
}

func TestFlushWithoutSession(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeDraftStore{}, nil)
	if status := uc.Flush(context.Background()); status.Persisted {
		t.Fatalf("flush without a session must not persist: %+v", status)
	}
}

func TestBreakdownReplacesScenes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &fakeBreakdown{scenes: []domain.SceneInput{
		{LyricSegment: strPtr("city lights below"), Mood: strPtr("wistful"), StartTime: floatPtr(0), EndTime: floatPtr(8)},
		{LyricSegment: strPtr("we keep on running"), Mood: strPtr("urgent"), StartTime: floatPtr(8), EndTime: floatPtr(16)},
	}}
	uc := newInteractor(&fakeDraftStore{}, backend)

	uc.NewSession(ctx, dto.NewSessionInput{})
	uc.AddScene(ctx, dto.SceneInput{Mood: strPtr("stale")})

	session, err := uc.Breakdown(ctx, dto.BreakdownInput{Lyrics: "city lights below\nwe keep on running", Theme: "neon noir"})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if backend.calls != 1 {
		t.Fatalf("backend called %d times", backend.calls)
	}
	if session.Mode != string(domain.ModeAutoBreakdown) {
		t.Fatalf("mode not switched: %s", session.Mode)
	}
	if len(session.Scenes) != 2 {
		t.Fatalf("previous scenes not replaced: %d scenes", len(session.Scenes))
	}
	if session.Scenes[0].Mood != "wistful" || session.Scenes[1].Mood != "urgent" {
		t.Fatalf("backend scenes not applied: %+v", session.Scenes)
	}
	if session.Scenes[1].BlockNumber != 2 {
		t.Fatalf("scenes not renumbered: %+v", session.Scenes[1])
	}
}

func TestAddSceneRejectsInvertedSpan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&fakeDraftStore{}, nil)

	uc.NewSession(ctx, dto.NewSessionInput{})
	if _, err := uc.AddScene(ctx, dto.SceneInput{StartTime: floatPtr(10), EndTime: floatPtr(5)}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	session, err := uc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if len(session.Scenes) != 0 {
		t.Fatalf("rejected scene must not be stored: %d scenes", len(session.Scenes))
	}
}

func TestBreakdownRejectsMalformedBackendScenes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &fakeBreakdown{scenes: []domain.SceneInput{
		{LyricSegment: strPtr("city lights below"), StartTime: floatPtr(8), EndTime: floatPtr(0)},
	}}
	uc := newInteractor(&fakeDraftStore{}, backend)

	uc.NewSession(ctx, dto.NewSessionInput{})
	if _, err := uc.Breakdown(ctx, dto.BreakdownInput{Lyrics: "city lights below"}); !errors.Is(err, apperrors.ErrBackend) {
		t.Fatalf("expected ErrBackend for an inverted backend span, got %v", err)
	}
}

func TestBreakdownRequiresLyricsAndBackend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	uc := newInteractor(&fakeDraftStore{}, &fakeBreakdown{})
	if _, err := uc.Breakdown(ctx, dto.BreakdownInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without lyrics, got %v", err)
	}

	offline := newInteractor(&fakeDraftStore{}, nil)
	if _, err := offline.Breakdown(ctx, dto.BreakdownInput{Lyrics: "verse"}); !errors.Is(err, apperrors.ErrBackend) {
		t.Fatalf("expected ErrBackend without a configured backend, got %v", err)
	}
}

func TestDiscardClearsMemoryAndDisk(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	drafts := &fakeDraftStore{}
	uc := newInteractor(drafts, nil)

	uc.NewSession(ctx, dto.NewSessionInput{})
	uc.UpdateSession(ctx, dto.SessionUpdateInput{ProjectName: strPtr("Scrapped")})
	uc.Flush(ctx)

	if err := uc.Discard(ctx); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := uc.Current(ctx); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("session survived discard: %v", err)
	}
	if ok, _ := uc.HasUnsavedDraft(ctx); ok {
		t.Fatalf("draft survived discard")
	}
}

func TestExportOutputs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&fakeDraftStore{}, nil)

	uc.NewSession(ctx, dto.NewSessionInput{})
	uc.UpdateSession(ctx, dto.SessionUpdateInput{ProjectName: strPtr("Midnight Run")})
	uc.AddScene(ctx, dto.SceneInput{Mood: strPtr("wistful")})
	uc.AddScene(ctx, dto.SceneInput{Mood: strPtr("urgent")})

	text, err := uc.ExportText(ctx, "")
	if err != nil {
		t.Fatalf("export text: %v", err)
	}
	if text.Filename != "midnight-run-storyboard.txt" {
		t.Fatalf("unexpected filename: %s", text.Filename)
	}
	if text.SceneCount != 2 || text.Runtime != 16 {
		t.Fatalf("unexpected export stats: %+v", text)
	}
	if !strings.Contains(text.Document, "--- Scene 2 ---") {
		t.Fatalf("document missing scene block:\n%s", text.Document)
	}

	md, err := uc.ExportMarkdown(ctx, "Director Cut")
	if err != nil {
		t.Fatalf("export markdown: %v", err)
	}
	if md.Filename != "director-cut-storyboard.md" || md.ProjectName != "Director Cut" {
		t.Fatalf("override name not honoured: %+v", md)
	}

	empty := newInteractor(&fakeDraftStore{}, nil)
	if _, err := empty.ExportText(ctx, ""); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("export without a session must fail: %v", err)
	}
}

func TestRestoreWithoutDraft(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeDraftStore{}, nil)
	if _, err := uc.Restore(context.Background()); !errors.Is(err, apperrors.ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}
