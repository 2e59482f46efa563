package storyboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sbdto "lyricmotion/internal/modules/storyboard/dto"
	"lyricmotion/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type StoryboardPort interface {
	Current(ctx context.Context) (sbdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SessionLoadedMsg struct {
	Session sbdto.SessionOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sceneItem struct {
	scene sbdto.SceneOutput
}

func (i sceneItem) Title() string {
	return fmt.Sprintf("Scene %d", i.scene.BlockNumber)
}

func (i sceneItem) Description() string {
	return fmt.Sprintf("%.1fs - %.1fs  %s", i.scene.StartTime, i.scene.EndTime, i.scene.Mood)
}

func (i sceneItem) FilterValue() string { return i.scene.LyricSegment }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    StoryboardPort
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	session sbdto.SessionOutput
	err     error
	loading bool
	width   int
	height  int
}

func New(port StoryboardPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Storyboard"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSessionCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case SessionLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.session = msg.Session
			items := make([]list.Item, 0, len(msg.Session.Scenes))
			for _, scene := range msg.Session.Scenes {
				items = append(items, sceneItem{scene: scene})
			}
			m.list.SetItems(items)
		}
	case tea.KeyMsg:
		if msg.String() == "r" && !m.list.SettingFilter() {
			m.loading = true
			return m, tea.Batch(m.loadSessionCmd(), m.spinner.Tick)
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var listCmd tea.Cmd
	m.list, listCmd = m.list.Update(msg)
	cmds = append(cmds, listCmd)

	m.syncPreview()
	var vpCmd tea.Cmd
	m.preview, vpCmd = m.preview.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " loading session...")
	}
	if m.err != nil {
		return theme.Pane.Render(theme.Muted.Render("no session: " + m.err.Error()))
	}

	header := theme.Title.Render(m.sessionTitle()) + "\n" +
		theme.Muted.Render(fmt.Sprintf("%s · %ds blocks · %d scenes · runtime %ds",
			m.session.ModeLabel, m.session.BlockDuration, len(m.session.Scenes), m.session.TotalRuntime))

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.PaneActive.Render(m.list.View()),
		theme.Pane.Render(m.preview.View()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, panes)
}

func (m Model) sessionTitle() string {
	if m.session.ProjectName != "" {
		return m.session.ProjectName
	}
	return "Untitled Storyboard"
}

func (m *Model) resize() {
	listWidth := m.width / 3
	if listWidth < 24 {
		listWidth = 24
	}
	contentHeight := m.height - 6
	if contentHeight < 5 {
		contentHeight = 5
	}
	m.list.SetSize(listWidth, contentHeight)
	m.preview.Width = m.width - listWidth - 8
	m.preview.Height = contentHeight
}

func (m *Model) syncPreview() {
	item, ok := m.list.SelectedItem().(sceneItem)
	if !ok {
		m.preview.SetContent(theme.Muted.Render("no scenes yet"))
		return
	}
	m.preview.SetContent(item.scene.GeneratedPrompt)
}

func (m Model) loadSessionCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Current(context.Background())
		return SessionLoadedMsg{Session: session, Err: err}
	}
}
