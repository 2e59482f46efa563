package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lyricmotion/internal/bootstrap"
	projectdto "lyricmotion/internal/modules/project/dto"
	sbdto "lyricmotion/internal/modules/storyboard/dto"
	"lyricmotion/internal/platform/config"
	apperrors "lyricmotion/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var studioPath string

	root := &cobra.Command{
		Use:           "lyricmotion",
		Short:         "Lyric-driven storyboard authoring studio",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&studioPath, "studio", ".", "Studio directory holding the draft and archive")

	root.AddCommand(newNewCmd(&studioPath))
	root.AddCommand(newSetCmd(&studioPath))
	root.AddCommand(newSceneCmd(&studioPath))
	root.AddCommand(newBreakdownCmd(&studioPath))
	root.AddCommand(newStatusCmd(&studioPath))
	root.AddCommand(newRestoreCmd(&studioPath))
	root.AddCommand(newDiscardCmd(&studioPath))
	root.AddCommand(newFlushCmd(&studioPath))
	root.AddCommand(newExportCmd(&studioPath))
	root.AddCommand(newProjectCmd(&studioPath))
	root.AddCommand(newArchiveCmd(&studioPath))
	root.AddCommand(newTUICmd(&studioPath))
	return root
}

func loadApp(studioPath string) (*bootstrap.App, error) {
	cfg, err := config.New(studioPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// restoreDraft loads the durable snapshot into memory so a short-lived CLI
// invocation operates on the same session the previous one flushed. A missing
// draft is the normal cold-start case.
func restoreDraft(ctx context.Context, app *bootstrap.App) error {
	_, err := app.StoryboardCLI.Restore(ctx)
	if errors.Is(err, apperrors.ErrNoDraft) {
		return nil
	}
	return err
}

// finishFlush persists the session at the end of a mutating command and
// reports degraded-mode instead of failing.
func finishFlush(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) {
	status := app.StoryboardCLI.Flush(ctx)
	if !status.Persisted {
		cmd.PrintErrf("warning: draft not persisted (%s); session kept in memory only\n", status.Reason)
	}
}

func newNewCmd(studioPath *string) *cobra.Command {
	var mode string
	var duration int
	var force bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a fresh storyboard session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if !force {
				unsaved, err := app.StoryboardCLI.HasUnsavedDraft(ctx)
				if err != nil {
					return err
				}
				if unsaved {
					return fmt.Errorf("an unsaved draft exists: run 'lyricmotion restore' or 'lyricmotion discard' first, or pass --force")
				}
			}
			session, err := app.StoryboardCLI.NewSession(ctx, mode, duration)
			if err != nil {
				return err
			}
			finishFlush(ctx, cmd, app)
			cmd.Printf("started %s session (block duration %ds)\n", session.ModeLabel, session.BlockDuration)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "manual", "Authoring mode: manual or auto-breakdown")
	cmd.Flags().IntVar(&duration, "duration", 0, "Block duration in seconds (default from config)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an unsaved draft without asking")
	return cmd
}

func newSetCmd(studioPath *string) *cobra.Command {
	var name, lyrics, lyricsFile, theme string
	var step int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update session metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			input := sbdto.SessionUpdateInput{}
			if cmd.Flags().Changed("name") {
				input.ProjectName = &name
			}
			if cmd.Flags().Changed("theme") {
				input.Theme = &theme
			}
			if cmd.Flags().Changed("step") {
				input.CurrentStep = &step
			}
			if lyricsFile != "" {
				raw, err := os.ReadFile(lyricsFile)
				if err != nil {
					return fmt.Errorf("read lyrics file: %w", err)
				}
				text := string(raw)
				input.Lyrics = &text
			} else if cmd.Flags().Changed("lyrics") {
				input.Lyrics = &lyrics
			}
			session, err := app.StoryboardCLI.UpdateSession(ctx, input)
			if err != nil {
				return err
			}
			finishFlush(ctx, cmd, app)
			cmd.Printf("session updated (%s, %d scenes)\n", session.ModeLabel, len(session.Scenes))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&lyrics, "lyrics", "", "Song lyrics")
	cmd.Flags().StringVar(&lyricsFile, "lyrics-file", "", "Read lyrics from a file")
	cmd.Flags().StringVar(&theme, "theme", "", "Visual theme description")
	cmd.Flags().IntVar(&step, "step", 0, "Workflow step to resume at")
	return cmd
}

func sceneFlagInput(cmd *cobra.Command, start, end *float64, lyric, desc, camera, lighting, mood, action, style *string) sbdto.SceneInput {
	input := sbdto.SceneInput{}
	if cmd.Flags().Changed("start") {
		input.StartTime = start
	}
	if cmd.Flags().Changed("end") {
		input.EndTime = end
	}
	if cmd.Flags().Changed("lyric") {
		input.LyricSegment = lyric
	}
	if cmd.Flags().Changed("desc") {
		input.SceneDescription = desc
	}
	if cmd.Flags().Changed("camera") {
		input.CameraMovement = camera
	}
	if cmd.Flags().Changed("lighting") {
		input.Lighting = lighting
	}
	if cmd.Flags().Changed("mood") {
		input.Mood = mood
	}
	if cmd.Flags().Changed("action") {
		input.CharacterActions = action
	}
	if cmd.Flags().Changed("style") {
		input.VisualStyle = style
	}
	return input
}

func addSceneFlags(cmd *cobra.Command, start, end *float64, lyric, desc, camera, lighting, mood, action, style *string) {
	cmd.Flags().Float64Var(start, "start", 0, "Start time in seconds")
	cmd.Flags().Float64Var(end, "end", 0, "End time in seconds")
	cmd.Flags().StringVar(lyric, "lyric", "", "Lyric segment")
	cmd.Flags().StringVar(desc, "desc", "", "Scene description")
	cmd.Flags().StringVar(camera, "camera", "", "Camera movement")
	cmd.Flags().StringVar(lighting, "lighting", "", "Lighting")
	cmd.Flags().StringVar(mood, "mood", "", "Mood")
	cmd.Flags().StringVar(action, "action", "", "Character actions")
	cmd.Flags().StringVar(style, "style", "", "Visual style")
}

func newSceneCmd(studioPath *string) *cobra.Command {
	scene := &cobra.Command{Use: "scene", Short: "Manage storyboard scenes"}

	var addStart, addEnd float64
	var addLyric, addDesc, addCamera, addLighting, addMood, addAction, addStyle string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a scene to the storyboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			input := sceneFlagInput(cmd, &addStart, &addEnd, &addLyric, &addDesc, &addCamera, &addLighting, &addMood, &addAction, &addStyle)
			out, err := app.StoryboardCLI.AddScene(ctx, input)
			if errors.Is(err, apperrors.ErrNoSession) {
				return fmt.Errorf("no session: run 'lyricmotion new' first")
			}
			if err != nil {
				return err
			}
			finishFlush(ctx, cmd, app)
			cmd.Printf("added scene %d (%s): %.1fs - %.1fs\n", out.BlockNumber, out.ID, out.StartTime, out.EndTime)
			return nil
		},
	}
	addSceneFlags(addCmd, &addStart, &addEnd, &addLyric, &addDesc, &addCamera, &addLighting, &addMood, &addAction, &addStyle)

	var editStart, editEnd float64
	var editLyric, editDesc, editCamera, editLighting, editMood, editAction, editStyle string
	editCmd := &cobra.Command{
		Use:   "edit <scene-id>",
		Short: "Edit fields of a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			input := sceneFlagInput(cmd, &editStart, &editEnd, &editLyric, &editDesc, &editCamera, &editLighting, &editMood, &editAction, &editStyle)
			out, err := app.StoryboardCLI.UpdateScene(ctx, args[0], input)
			if err != nil {
				return err
			}
			finishFlush(ctx, cmd, app)
			cmd.Printf("updated scene %d\n", out.BlockNumber)
			return nil
		},
	}
	addSceneFlags(editCmd, &editStart, &editEnd, &editLyric, &editDesc, &editCamera, &editLighting, &editMood, &editAction, &editStyle)

	rmCmd := &cobra.Command{
		Use:   "rm <scene-id>",
		Short: "Remove a scene and renumber the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			session, err := app.StoryboardCLI.RemoveScene(ctx, args[0])
			if err != nil {
				return err
			}
			finishFlush(ctx, cmd, app)
			cmd.Printf("removed; %d scenes remain\n", len(session.Scenes))
			printTimeline(cmd, session)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scenes in timeline order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			session, err := app.StoryboardCLI.Current(ctx)
			if errors.Is(err, apperrors.ErrNoSession) {
				cmd.Println("no session")
				return nil
			}
			if err != nil {
				return err
			}
			printTimeline(cmd, session)
			return nil
		},
	}

	scene.AddCommand(addCmd, editCmd, rmCmd, listCmd)
	return scene
}

func printTimeline(cmd *cobra.Command, session sbdto.SessionOutput) {
	for _, scene := range session.Scenes {
		lyric := scene.LyricSegment
		if runes := []rune(lyric); len(runes) > 40 {
			lyric = string(runes[:37]) + "..."
		}
		cmd.Printf("  %2d  %6.1fs - %6.1fs  %-36s  %s\n", scene.BlockNumber, scene.StartTime, scene.EndTime, lyric, scene.ID)
	}
}

func newBreakdownCmd(studioPath *string) *cobra.Command {
	var lyrics, lyricsFile, theme string
	var duration int

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Break lyrics into timed scene blocks via the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			text := lyrics
			if lyricsFile != "" {
				raw, err := os.ReadFile(lyricsFile)
				if err != nil {
					return fmt.Errorf("read lyrics file: %w", err)
				}
				text = string(raw)
			}
			if strings.TrimSpace(text) == "" {
				// Fall back to lyrics already on the session.
				if current, err := app.StoryboardCLI.Current(ctx); err == nil {
					text = current.Lyrics
				}
			}
			session, err := app.StoryboardCLI.Breakdown(ctx, text, theme, duration)
			if err != nil {
				return err
			}
			finishFlush(ctx, cmd, app)
			cmd.Printf("breakdown complete: %d scenes, estimated runtime %ds\n", len(session.Scenes), session.TotalRuntime)
			printTimeline(cmd, session)
			return nil
		},
	}
	cmd.Flags().StringVar(&lyrics, "lyrics", "", "Song lyrics")
	cmd.Flags().StringVar(&lyricsFile, "lyrics-file", "", "Read lyrics from a file")
	cmd.Flags().StringVar(&theme, "theme", "", "Visual theme description")
	cmd.Flags().IntVar(&duration, "duration", 0, "Seconds per block (default from config)")
	return cmd
}

func newStatusCmd(studioPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the draft and session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			unsaved, err := app.StoryboardCLI.HasUnsavedDraft(ctx)
			if err != nil {
				return err
			}
			if !unsaved {
				cmd.Println("no unsaved draft")
				return nil
			}
			session, err := app.StoryboardCLI.Restore(ctx)
			if err != nil {
				return err
			}
			name := session.ProjectName
			if name == "" {
				name = "(unnamed)"
			}
			linked := "draft"
			if session.ProjectID != "" {
				linked = "linked to project " + session.ProjectID
			}
			cmd.Printf("unsaved draft: %s\n", name)
			cmd.Printf("  mode:        %s\n", session.ModeLabel)
			cmd.Printf("  scenes:      %d (runtime %ds)\n", len(session.Scenes), session.TotalRuntime)
			cmd.Printf("  last saved:  %s\n", session.LastSaved.Format("2006-01-02 15:04:05"))
			cmd.Printf("  linkage:     %s\n", linked)
			cmd.Println("run 'lyricmotion restore' to resume or 'lyricmotion discard' to drop it")
			return nil
		},
	}
}

func newRestoreCmd(studioPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Resume the unsaved draft session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			session, err := app.StoryboardCLI.Restore(ctx)
			if errors.Is(err, apperrors.ErrNoDraft) {
				cmd.Println("nothing to restore")
				return nil
			}
			if err != nil {
				return err
			}
			cmd.Printf("restored %s session with %d scenes\n", session.ModeLabel, len(session.Scenes))
			return nil
		},
	}
}

func newDiscardCmd(studioPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Delete the draft snapshot and reset the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := app.StoryboardCLI.Discard(ctx); err != nil {
				return err
			}
			cmd.Println("draft discarded")
			return nil
		},
	}
}

func newFlushCmd(studioPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Write the current session to the draft slot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			status := app.StoryboardCLI.Flush(ctx)
			if !status.Persisted {
				return fmt.Errorf("draft not persisted: %s", status.Reason)
			}
			cmd.Println("draft saved")
			return nil
		},
	}
}

func newExportCmd(studioPath *string) *cobra.Command {
	var name, format, outPath string
	var archive bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the storyboard as a text or markdown document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			out, err := app.StoryboardCLI.Export(ctx, name, format)
			if errors.Is(err, apperrors.ErrNoSession) {
				return fmt.Errorf("no session to export: run 'lyricmotion new' first")
			}
			if err != nil {
				return err
			}

			target := outPath
			if target == "" {
				target = filepath.Join(*studioPath, out.Filename)
			}
			if err := os.WriteFile(target, []byte(out.Document), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			cmd.Printf("exported %d scenes (runtime %ds) to %s\n", out.SceneCount, out.Runtime, target)

			if archive {
				session, err := app.StoryboardCLI.Current(ctx)
				if err != nil {
					return err
				}
				entry, err := app.ProjectCLI.ArchiveExport(ctx, projectArchiveInput(out, session.Mode, normalizeFormat(format)))
				if err != nil {
					return err
				}
				cmd.Printf("archived as %s\n", entry.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name override for the export header")
	cmd.Flags().StringVar(&format, "format", "txt", "Export format: txt or md")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default <studio>/<slug>-storyboard.<ext>)")
	cmd.Flags().BoolVar(&archive, "archive", false, "Record the export in the local archive")
	return cmd
}

func newProjectCmd(studioPath *string) *cobra.Command {
	project := &cobra.Command{Use: "project", Short: "Backend project linkage"}

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Create or update the linked backend project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(ctx, app); err != nil {
				return err
			}
			session, err := app.StoryboardCLI.Current(ctx)
			if errors.Is(err, apperrors.ErrNoSession) {
				return fmt.Errorf("no session to push: run 'lyricmotion new' first")
			}
			if err != nil {
				return err
			}
			out, err := app.ProjectCLI.Push(ctx, session.ProjectID, session.ProjectName, session.Lyrics, session.Theme)
			if err != nil {
				return err
			}
			if out.Created {
				// Link the session to the new backend project.
				if _, err := app.StoryboardCLI.UpdateSession(ctx, sbdto.SessionUpdateInput{ProjectID: &out.ProjectID}); err != nil {
					return err
				}
			}
			finishFlush(ctx, cmd, app)
			cmd.Printf("pushed project %s (%s)\n", out.Name, out.ProjectID)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List backend projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			projects, err := app.ProjectCLI.ListProjects(ctx)
			if err != nil {
				return err
			}
			for _, project := range projects {
				cmd.Printf("  %s  %-24s  %s\n", project.ID, project.Name, project.Status)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one backend project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			project, err := app.ProjectCLI.GetProject(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s  %s  %s\n", project.ID, project.Name, project.Status)
			if project.Theme != "" {
				cmd.Printf("  theme: %s\n", project.Theme)
			}
			if project.Lyrics != "" {
				cmd.Printf("  lyrics:\n%s\n", project.Lyrics)
			}
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a backend project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := app.ProjectCLI.DeleteProject(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("deleted project %s\n", args[0])
			return nil
		},
	}

	project.AddCommand(pushCmd, listCmd, showCmd, rmCmd)
	return project
}

func newArchiveCmd(studioPath *string) *cobra.Command {
	archive := &cobra.Command{Use: "archive", Short: "Locally archived exports"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived exports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			entries, err := app.ProjectCLI.ListArchive(ctx)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				cmd.Printf("  %s  %s  %-24s  %d scenes  %ds  .%s\n",
					entry.ID, entry.ExportedAt.Format("2006-01-02 15:04"), entry.ProjectName, entry.SceneCount, entry.RuntimeSeconds, entry.Format)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived export document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			entry, err := app.ProjectCLI.GetArchive(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Print(entry.Document)
			return nil
		},
	}

	archive.AddCommand(listCmd, showCmd)
	return archive
}

func newTUICmd(studioPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Review the storyboard in the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*studioPath)
			if err != nil {
				return err
			}
			if err := restoreDraft(cmd.Context(), app); err != nil {
				return err
			}
			return bootstrap.RunTUI(*studioPath, app)
		},
	}
}

// normalizeFormat collapses the accepted format spellings to the extension
// the export itself uses, so the archive record matches the written file.
func normalizeFormat(format string) string {
	if format == "md" || format == "markdown" {
		return "md"
	}
	return "txt"
}

func projectArchiveInput(out sbdto.ExportOutput, mode, format string) projectdto.ArchiveInput {
	return projectdto.ArchiveInput{
		ProjectName:    out.ProjectName,
		Mode:           mode,
		Format:         format,
		SceneCount:     out.SceneCount,
		RuntimeSeconds: out.Runtime,
		Document:       out.Document,
	}
}
