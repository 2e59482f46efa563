package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	projectinadapter "lyricmotion/internal/modules/project/adapter/in"
	projectoutadapter "lyricmotion/internal/modules/project/adapter/out"
	projectout "lyricmotion/internal/modules/project/port/out"
	projectservice "lyricmotion/internal/modules/project/service"
	projectusecase "lyricmotion/internal/modules/project/usecase"
	storyboardinadapter "lyricmotion/internal/modules/storyboard/adapter/in"
	storyboardoutadapter "lyricmotion/internal/modules/storyboard/adapter/out"
	storyboardout "lyricmotion/internal/modules/storyboard/port/out"
	storyboardservice "lyricmotion/internal/modules/storyboard/service"
	storyboardusecase "lyricmotion/internal/modules/storyboard/usecase"
	"lyricmotion/internal/platform/clock"
	"lyricmotion/internal/platform/config"
	"lyricmotion/internal/platform/id"
	uiapp "lyricmotion/internal/ui/app"
)

type App struct {
	StoryboardCLI storyboardinadapter.CLIHandler
	ProjectCLI    projectinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	drafts := storyboardoutadapter.NewFileDraftStore(cfg.DraftPath)

	var breakdown storyboardout.BreakdownService
	var projectAPI projectout.ProjectAPI
	if cfg.APIBaseURL != "" {
		breakdown = storyboardoutadapter.NewBreakdownClient(cfg.APIBaseURL, cfg.APITimeout)
		projectAPI = projectoutadapter.NewAPIClient(cfg.APIBaseURL, cfg.APITimeout)
	}

	storyboardUC := storyboardusecase.NewInteractor(
		storyboardservice.NewSessionService(clk, ids),
		drafts,
		breakdown,
		clk,
		cfg.AutosaveInterval,
		cfg.BlockDuration,
	)

	archive, err := projectoutadapter.NewSQLiteArchiveStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new archive store: %w", err)
	}
	projectUC := projectusecase.NewInteractor(
		projectservice.NewProjectService(clk, ids, projectAPI, archive),
	)

	return &App{
		StoryboardCLI: storyboardinadapter.NewCLIHandler(storyboardUC),
		ProjectCLI:    projectinadapter.NewCLIHandler(projectUC),
	}, nil
}

func RunTUI(studioPath string, app *App) error {
	model := uiapp.NewModel(studioPath, app.StoryboardCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
