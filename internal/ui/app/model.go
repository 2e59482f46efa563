package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sbdto "lyricmotion/internal/modules/storyboard/dto"
	"lyricmotion/internal/ui/theme"
	storyboardview "lyricmotion/internal/ui/views/storyboard"
)

// storyboardPort is the minimal interface this orchestration layer needs.
type storyboardPort interface {
	Current(ctx context.Context) (sbdto.SessionOutput, error)
	Flush(ctx context.Context) sbdto.PersistStatus
	StartAutosave()
	StopAutosave()
}

type keyMap struct {
	Refresh key.Binding
	Flush   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Flush:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save draft")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Flush, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh, k.Flush}, {k.Help, k.Quit}}
}

type flushedMsg struct{ status sbdto.PersistStatus }

type Model struct {
	studioPath string
	port       storyboardPort
	view       storyboardview.Model
	help       help.Model
	status     string
	width      int
}

func NewModel(studioPath string, port storyboardPort) Model {
	return Model{
		studioPath: studioPath,
		port:       port,
		view:       storyboardview.New(port),
		help:       help.New(),
	}
}

// Init starts the autosave loop for the lifetime of the TUI. The cadence of
// draft flushes is owned by the scheduler, not by keystrokes.
func (m Model) Init() tea.Cmd {
	m.port.StartAutosave()
	return m.view.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case flushedMsg:
		if msg.status.Persisted {
			m.status = theme.Saved.Render("draft saved")
		} else {
			m.status = theme.Unsafe.Render("draft not saved: " + msg.status.Reason)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			// Autosave never flushes on stop; issue the final save
			// explicitly before leaving.
			m.port.StopAutosave()
			m.port.Flush(context.Background())
			return m, tea.Quit
		case key.Matches(msg, keys.Flush):
			return m, m.flushCmd()
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	footer := m.help.View(keys)
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, m.view.View(), footer))
}

func (m Model) flushCmd() tea.Cmd {
	return func() tea.Msg {
		return flushedMsg{status: m.port.Flush(context.Background())}
	}
}
