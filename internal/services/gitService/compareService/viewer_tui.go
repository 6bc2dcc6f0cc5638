package compareService

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/redjax/revview/internal/utils/terminal"
)

var (
	diffTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	paneLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("31"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	diffHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)
)

type viewerModel struct {
	diff      pendingDiff
	rows      []Row
	viewport  viewport.Model
	ready     bool
	tuiHelper *terminal.ResponsiveTUIHelper
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.tuiHelper.HandleWindowSizeMsg(msg)

		m.viewport.Width = m.tuiHelper.GetWidth()
		m.viewport.Height = m.tuiHelper.GetHeight() - 5
		m.viewport.SetContent(m.renderRows())

		if !m.ready {
			m.ready = true
			// Reveals target the right pane; center the target row.
			if m.diff.reveal > 0 {
				m.viewport.SetYOffset(m.revealOffset())
			}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"))) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewerModel) View() string {
	if !m.ready {
		return "\n  Preparing comparison...\n"
	}

	paneWidth := m.paneWidth()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		paneLabelStyle.Width(paneWidth).Render(m.diff.previous.Label()),
		" │ ",
		paneLabelStyle.Width(paneWidth).Render(m.diff.current.Label()),
	)

	help := diffHelpStyle.Render("↑/↓: scroll • pgup/pgdn: page • q: quit")

	return strings.Join([]string{
		diffTitleStyle.Render(m.diff.title),
		header,
		m.viewport.View(),
		help,
	}, "\n")
}

func (m viewerModel) paneWidth() int {
	width := (m.tuiHelper.GetWidth() - 13) / 2
	if width < 20 {
		width = 20
	}
	return width
}

func (m viewerModel) revealOffset() int {
	for i, row := range m.rows {
		if row.RightNum == m.diff.reveal {
			offset := i - m.viewport.Height/2
			if offset < 0 {
				offset = 0
			}
			return offset
		}
	}
	return 0
}

func (m viewerModel) renderRows() string {
	paneWidth := m.paneWidth()
	var b strings.Builder

	for _, row := range m.rows {
		leftStyle, rightStyle := contextStyle, contextStyle
		switch row.Kind {
		case RowChanged:
			leftStyle, rightStyle = changedStyle, changedStyle
		case RowRemoved:
			leftStyle = removedStyle
		case RowAdded:
			rightStyle = addedStyle
		}

		left := lipgloss.JoinHorizontal(lipgloss.Top,
			gutterStyle.Width(5).Render(lineNum(row.LeftNum)),
			leftStyle.Width(paneWidth).MaxHeight(1).Render(row.Left),
		)
		right := lipgloss.JoinHorizontal(lipgloss.Top,
			gutterStyle.Width(5).Render(lineNum(row.RightNum)),
			rightStyle.Width(paneWidth).MaxHeight(1).Render(row.Right),
		)

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " │ ", right))
		b.WriteString("\n")
	}

	return b.String()
}

func runDiffViewer(d pendingDiff, rows []Row) error {
	m := viewerModel{
		diff:      d,
		rows:      rows,
		viewport:  viewport.New(80, 24),
		tuiHelper: terminal.NewResponsiveTUIHelper(),
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
