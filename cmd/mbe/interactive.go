package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/mbe/codec"
	"github.com/wippyai/mbe/markup"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	intStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3A3A5A"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const cellSep = " │ "

type viewerModel struct {
	err      error
	table    *codec.Table
	filename string
	filter   textinput.Model
	visible  []int
	selected int
	top      int
	height   int
}

func newViewerModel(filename string) *viewerModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter rows"
	ti.Width = 40
	return &viewerModel{
		filename: filename,
		filter:   ti,
		height:   20,
	}
}

type loadedMsg struct {
	err   error
	table *codec.Table
}

func (m *viewerModel) Init() tea.Cmd {
	return m.loadTable
}

func (m *viewerModel) loadTable() tea.Msg {
	tbl, err := loadTable(m.filename)
	return loadedMsg{table: tbl, err: err}
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, header, blank, filter, help
		m.height = max(msg.Height-6, 1)
		m.scroll()

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.table = msg.table
		m.visible = filterRows(m.table, "")

	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.visible = filterRows(m.table, m.filter.Value())
			m.selected, m.top = 0, 0
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			return m, m.filter.Focus()
		case "esc":
			m.filter.SetValue("")
			m.visible = filterRows(m.table, "")
			m.selected, m.top = 0, 0
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown", " ":
			m.move(m.height)
		case "home", "g":
			m.move(-len(m.visible))
		case "end", "G":
			m.move(len(m.visible))
		}
	}
	return m, nil
}

func (m *viewerModel) move(n int) {
	m.selected = min(max(m.selected+n, 0), max(len(m.visible)-1, 0))
	m.scroll()
}

func (m *viewerModel) scroll() {
	if m.selected < m.top {
		m.top = m.selected
	}
	if m.selected >= m.top+m.height {
		m.top = m.selected - m.height + 1
	}
}

func (m *viewerModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.table == nil {
		return "Loading table..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.table.Name))
	fmt.Fprintf(&b, " %s  %d/%d rows\n", m.filename, len(m.visible), len(m.table.Rows))

	b.WriteString(headerStyle.Render("#    " + strings.Join(m.table.Schema.Header(), cellSep)))
	b.WriteString("\n")

	end := min(m.top+m.height, len(m.visible))
	for i := m.top; i < end; i++ {
		r := m.visible[i]
		line := fmt.Sprintf("%-4d ", r) + renderRow(m.table.Rows[r])
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • / filter • esc clear • q quit"))
	return b.String()
}

func renderRow(row codec.Row) string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = renderCell(c)
	}
	return strings.Join(cells, cellSep)
}

// renderCell draws colored markup spans in their own color.
func renderCell(c codec.Cell) string {
	if c.Type.IsInt() {
		return intStyle.Render(strconv.Itoa(int(c.Int)))
	}
	if !markup.Colored(c.Spans) {
		return c.Text
	}
	var b strings.Builder
	for _, s := range c.Spans {
		if !s.HasColor() {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#" + s.Color)).Render(s.Text))
	}
	return b.String()
}

// filterRows returns the indices of rows whose cells contain query,
// case-insensitively. An empty query matches every row.
func filterRows(t *codec.Table, query string) []int {
	if t == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	idx := make([]int, 0, len(t.Rows))
	for r, row := range t.Rows {
		if query == "" || strings.Contains(strings.ToLower(rowText(row)), query) {
			idx = append(idx, r)
		}
	}
	return idx
}

func rowText(row codec.Row) string {
	parts := make([]string, len(row))
	for i, c := range row {
		if c.Type.IsInt() {
			parts[i] = strconv.Itoa(int(c.Int))
		} else {
			parts[i] = c.Text
		}
	}
	return strings.Join(parts, "\t")
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newViewerModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
