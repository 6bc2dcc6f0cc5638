package historyService

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	t "github.com/evertras/bubble-table/table"

	"github.com/redjax/revview/internal/utils/terminal"
)

const (
	colHash    = "hash"
	colDate    = "date"
	colAuthor  = "author"
	colMessage = "message"
	colIndex   = "__idx__"
)

var (
	browserTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFDF5")).
				Background(lipgloss.Color("#874BFD")).
				Padding(0, 1)

	browserHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#626262")).
				MarginTop(1)
)

type browserModel struct {
	filePath  string
	entries   []Entry
	table     t.Model
	tuiHelper *terminal.ResponsiveTUIHelper
	selected  *Entry
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.tuiHelper.HandleWindowSizeMsg(msg)
		m.table = buildHistoryTable(m.entries, m.tuiHelper.GetWidth())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"))):
			return m, tea.Quit
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			row := m.table.HighlightedRow()
			if idx, ok := row.Data[colIndex].(int); ok && idx < len(m.entries) {
				m.selected = &m.entries[idx]
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	title := browserTitleStyle.Render(fmt.Sprintf("🕑 History: %s", m.filePath))
	help := browserHelpStyle.Render("↑/↓: select • enter: compare with previous • q: quit")
	return title + "\n\n" + m.table.View() + "\n" + help
}

func buildHistoryTable(entries []Entry, termWidth int) t.Model {
	messageWidth := termWidth - 10 - 17 - 20 - 8
	if messageWidth < 20 {
		messageWidth = 20
	}

	cols := []t.Column{
		t.NewColumn(colHash, "Commit", 10),
		t.NewColumn(colDate, "Date", 17),
		t.NewColumn(colAuthor, "Author", 20),
		t.NewColumn(colMessage, "Message", messageWidth),
	}

	rows := make([]t.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, t.NewRow(t.RowData{
			colHash:    e.ShortHash,
			colDate:    e.Date.Format("2006-01-02 15:04"),
			colAuthor:  e.Author,
			colMessage: e.Message,
			colIndex:   i,
		}))
	}

	return t.New(cols).
		WithRows(rows).
		Focused(true)
}

// RunHistoryBrowser shows an interactive commit table for a file's history
// and returns the entry the user picked, or nil if they quit without picking.
func RunHistoryBrowser(filePath string, entries []Entry) (*Entry, error) {
	m := browserModel{
		filePath:  filePath,
		entries:   entries,
		table:     buildHistoryTable(entries, 80),
		tuiHelper: terminal.NewResponsiveTUIHelper(),
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}

	if fm, ok := final.(browserModel); ok {
		return fm.selected, nil
	}
	return nil, nil
}
