package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"lyricmotion/internal/platform/markdown"
)

const exportRule = "=================================================="

// RenderText produces the plain-text export document. Output is byte-stable
// for a given session except for the embedded export timestamp.
func RenderText(session Session, projectName string, now time.Time) string {
	name := exportName(session, projectName)
	scenes := sortedScenes(session)

	b := strings.Builder{}
	b.WriteString(exportRule + "\n")
	b.WriteString(" LYRICMOTION STORYBOARD EXPORT\n")
	b.WriteString(exportRule + "\n")
	fmt.Fprintf(&b, "Project:        %s\n", name)
	fmt.Fprintf(&b, "Exported:       %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Mode:           %s\n", session.Mode.Label())
	fmt.Fprintf(&b, "Block Duration: %ds\n", session.BreakdownDuration)
	fmt.Fprintf(&b, "Scenes:         %d\n", len(scenes))
	b.WriteString(exportRule + "\n")

	for _, scene := range scenes {
		fmt.Fprintf(&b, "\n--- Scene %d ---\n", scene.BlockNumber)
		b.WriteString(scene.GeneratedPrompt)
		b.WriteString("\n")
	}

	b.WriteString("\n" + exportRule + "\n")
	fmt.Fprintf(&b, "Total Estimated Runtime: %ds (%d scenes x %ds)\n",
		session.TotalRuntime(), len(scenes), session.BreakdownDuration)
	b.WriteString(exportRule + "\n")
	return b.String()
}

// RenderMarkdown produces the markdown export variant: yaml frontmatter with
// the session metadata, then one section per scene.
func RenderMarkdown(session Session, projectName string, now time.Time) (string, error) {
	name := exportName(session, projectName)
	scenes := sortedScenes(session)

	body := strings.Builder{}
	fmt.Fprintf(&body, "# %s\n", name)
	for _, scene := range scenes {
		fmt.Fprintf(&body, "\n## Scene %d\n\n", scene.BlockNumber)
		body.WriteString(scene.GeneratedPrompt)
		body.WriteString("\n")
	}
	fmt.Fprintf(&body, "\nTotal estimated runtime: %ds\n", session.TotalRuntime())

	meta := map[string]any{
		"project":        name,
		"exported":       now.UTC().Format(time.RFC3339),
		"mode":           string(session.Mode),
		"block_duration": session.BreakdownDuration,
		"scenes":         len(scenes),
	}
	return markdown.RenderFrontmatter(meta, body.String())
}

func exportName(session Session, projectName string) string {
	if projectName != "" {
		return projectName
	}
	if session.ProjectName != "" {
		return session.ProjectName
	}
	return "Untitled Storyboard"
}

func sortedScenes(session Session) []Scene {
	scenes := session.CloneScenes()
	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].BlockNumber < scenes[j].BlockNumber
	})
	return scenes
}
