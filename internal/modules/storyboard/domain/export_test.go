package domain_test

import (
	"strings"
	"testing"
	"time"

	"lyricmotion/internal/modules/storyboard/domain"
)

func exportSession(t *testing.T) domain.Session {
	t.Helper()
	session := domain.NewSession(domain.ModeManual)
	session.ProjectName = "Midnight Run"
	session.Scenes = buildScenes(2, session.BreakdownDuration)
	return session
}

func TestRenderTextLayoutAndFooter(t *testing.T) {
	t.Parallel()
	session := exportSession(t)
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	doc := domain.RenderText(session, "", now)
	for _, want := range []string{
		"LYRICMOTION STORYBOARD EXPORT",
		"Project:        Midnight Run",
		"Exported:       2026-08-30T18:00:00Z",
		"Mode:           Manual",
		"Block Duration: 8s",
		"Scenes:         2",
		"--- Scene 1 ---",
		"--- Scene 2 ---",
		"Total Estimated Runtime: 16s (2 scenes x 8s)",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("export missing %q:\n%s", want, doc)
		}
	}
	for _, scene := range session.Scenes {
		if !strings.Contains(doc, scene.GeneratedPrompt) {
			t.Fatalf("export missing prompt for scene %d", scene.BlockNumber)
		}
	}
}

func TestRenderTextIsByteStableForFixedTimestamp(t *testing.T) {
	t.Parallel()
	session := exportSession(t)
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	if domain.RenderText(session, "", now) != domain.RenderText(session, "", now) {
		t.Fatalf("identical inputs produced different documents")
	}
}

func TestRenderTextProjectNameOverrideAndFallback(t *testing.T) {
	t.Parallel()
	session := exportSession(t)
	now := time.Now().UTC()

	doc := domain.RenderText(session, "Director Cut", now)
	if !strings.Contains(doc, "Project:        Director Cut") {
		t.Fatalf("override name not used:\n%s", doc)
	}
	session.ProjectName = ""
	doc = domain.RenderText(session, "", now)
	if !strings.Contains(doc, "Project:        Untitled Storyboard") {
		t.Fatalf("fallback name not used:\n%s", doc)
	}
}

func TestRenderTextOrdersByBlockNumber(t *testing.T) {
	t.Parallel()
	session := exportSession(t)
	// Present the scenes out of order; export must sort by block number.
	session.Scenes[0], session.Scenes[1] = session.Scenes[1], session.Scenes[0]

	doc := domain.RenderText(session, "", time.Now().UTC())
	first := strings.Index(doc, "--- Scene 1 ---")
	second := strings.Index(doc, "--- Scene 2 ---")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("scene blocks out of order (%d, %d):\n%s", first, second, doc)
	}
}

func TestRenderMarkdownFrontmatter(t *testing.T) {
	t.Parallel()
	session := exportSession(t)
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	doc, err := domain.RenderMarkdown(session, "", now)
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}
	if !strings.HasPrefix(doc, "---\n") {
		t.Fatalf("markdown export missing frontmatter:\n%s", doc)
	}
	for _, want := range []string{
		"project: Midnight Run",
		"mode: manual",
		"block_duration: 8",
		"## Scene 1",
		"## Scene 2",
		"Total estimated runtime: 16s",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("markdown export missing %q:\n%s", want, doc)
		}
	}
}
