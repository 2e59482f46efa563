package domain

import (
	"fmt"
	"strings"
)

// Scene is one timed storyboard entry. GeneratedPrompt is derived from the
// other fields and is never set directly; every constructor and update path
// recomputes it.
type Scene struct {
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

// SceneInput carries a partial scene: nil fields are left at their current
// (or default) values. A generated prompt cannot be supplied through it.
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

// ResolveSpan computes the start and end a scene built from input would
// occupy: explicit times win, otherwise the block starts where the previous
// scene ended and runs for blockDuration seconds.
func ResolveSpan(input SceneInput, prior []Scene, blockDuration int) (start, end float64) {
	if len(prior) > 0 {
		start = prior[len(prior)-1].EndTime
	}
	if input.StartTime != nil {
		start = *input.StartTime
	}
	end = start + float64(blockDuration)
	if input.EndTime != nil {
		end = *input.EndTime
	}
	return start, end
}

// ValidateSpan rejects spans that do not end after they start.
func ValidateSpan(start, end float64) error {
	if end <= start {
		return fmt.Errorf("scene must end after it starts (%.1fs - %.1fs)", start, end)
	}
	return nil
}

// NewScene builds a scene appended after prior. Unset times default to a
// block of blockDuration seconds starting where the previous scene ended.
func NewScene(sceneID string, input SceneInput, prior []Scene, blockDuration int) Scene {
	start, end := ResolveSpan(input, prior, blockDuration)

	scene := Scene{
		ID:          sceneID,
		BlockNumber: len(prior) + 1,
		StartTime:   start,
		EndTime:     end,
	}
	scene = applyText(scene, input)
	scene.GeneratedPrompt = ComputePrompt(scene)
	return scene
}

// ApplyFields merges input over scene and recomputes the prompt. Position and
// identity are preserved.
func ApplyFields(scene Scene, input SceneInput) Scene {
	if input.StartTime != nil {
		scene.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		scene.EndTime = *input.EndTime
	}
	scene = applyText(scene, input)
	scene.GeneratedPrompt = ComputePrompt(scene)
	return scene
}

func applyText(scene Scene, input SceneInput) Scene {
	if input.LyricSegment != nil {
		scene.LyricSegment = *input.LyricSegment
	}
	if input.SceneDescription != nil {
		scene.SceneDescription = *input.SceneDescription
	}
	if input.CameraMovement != nil {
		scene.CameraMovement = *input.CameraMovement
	}
	if input.Lighting != nil {
		scene.Lighting = *input.Lighting
	}
	if input.Mood != nil {
		scene.Mood = *input.Mood
	}
	if input.CharacterActions != nil {
		scene.CharacterActions = *input.CharacterActions
	}
	if input.VisualStyle != nil {
		scene.VisualStyle = *input.VisualStyle
	}
	return scene
}

// ComputePrompt renders the export-ready prompt from the descriptive fields,
// timing and block number. It never reads GeneratedPrompt, so applying it
// repeatedly to an unchanged scene is stable.
func ComputePrompt(scene Scene) string {
	lines := []string{
		fmt.Sprintf("Scene %d | %.1fs - %.1fs", scene.BlockNumber, scene.StartTime, scene.EndTime),
	}
	appendLine := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, label+": "+value)
		}
	}
	appendLine("Description", scene.SceneDescription)
	appendLine("Camera", scene.CameraMovement)
	appendLine("Lighting", scene.Lighting)
	appendLine("Mood", scene.Mood)
	appendLine("Action", scene.CharacterActions)
	appendLine("Style", scene.VisualStyle)
	if strings.TrimSpace(scene.LyricSegment) != "" {
		lines = append(lines, fmt.Sprintf("Lyrics: %q", scene.LyricSegment))
	}
	return strings.Join(lines, "\n")
}

// Renumber rewrites block numbers to match list order after an insertion or
// removal. Timings are left alone: deleting a scene does not reflow its
// neighbours. Prompts are recomputed because they embed the block number.
func Renumber(scenes []Scene) []Scene {
	for i := range scenes {
		scenes[i].BlockNumber = i + 1
		scenes[i].GeneratedPrompt = ComputePrompt(scenes[i])
	}
	return scenes
}
