package markdown_test

import (
	"strings"
	"testing"

	"lyricmotion/internal/platform/markdown"
)

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	meta := map[string]any{
		"project":        "Midnight Run",
		"mode":           "manual",
		"block_duration": 8,
	}
	body := "# Midnight Run\n\n## Scene 1\n"

	doc, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		t.Fatalf("render frontmatter: %v", err)
	}
	if !strings.HasPrefix(doc, "---\n") {
		t.Fatalf("document missing opening separator:\n%s", doc)
	}

	decoded, gotBody, err := markdown.SplitFrontmatter(doc)
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if decoded["project"] != "Midnight Run" || decoded["block_duration"] != 8 {
		t.Fatalf("metadata lost in round trip: %v", decoded)
	}
	if !strings.Contains(gotBody, "## Scene 1") {
		t.Fatalf("body lost in round trip: %q", gotBody)
	}
}

func TestSplitFrontmatterWithoutBlock(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain document\n")
	if err != nil {
		t.Fatalf("split plain document: %v", err)
	}
	if len(meta) != 0 || body != "plain document\n" {
		t.Fatalf("plain document mangled: %v %q", meta, body)
	}
}

func TestSplitFrontmatterUnclosed(t *testing.T) {
	t.Parallel()
	if _, _, err := markdown.SplitFrontmatter("---\nproject: X\n"); err == nil {
		t.Fatalf("unclosed frontmatter should fail")
	}
}
