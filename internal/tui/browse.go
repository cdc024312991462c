package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/monakit/monakit/internal/mindmap"
)

// CardInfo is one row of the card browser
type CardInfo struct {
	ID      string
	Title   string
	Theme   string
	PubDate string
	Tree    mindmap.Tree
	EditURL string
	Problem string // parse or encode error, if any
}

// BrowseData holds every card found in the content directory
type BrowseData struct {
	Cards []CardInfo
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

type browseModel struct {
	table       table.Model
	viewport    viewport.Model
	data        *BrowseData
	err         error
	ready       bool
	showingTree bool
	selected    *CardInfo
	width       int
	height      int
}

// InitBrowseModel creates a new card browser model
func InitBrowseModel() browseModel {
	columns := []table.Column{
		{Title: "Card", Width: 40},
		{Title: "Theme", Width: 14},
		{Title: "Published", Width: 12},
		{Title: "Branches", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1)

	return browseModel{
		table:    t,
		viewport: vp,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-8, 3)

	case tea.KeyMsg:
		if m.showingTree {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				m.showingTree = false
				return m, nil
			default:
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter", "t":
			if m.data != nil && len(m.data.Cards) > 0 {
				idx := m.table.Cursor()
				if idx >= 0 && idx < len(m.data.Cards) {
					m.selected = &m.data.Cards[idx]
					m.showingTree = true
					m.viewport.SetContent(cardDetail(*m.selected))
					m.viewport.GotoTop()
				}
			}
			return m, nil
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Cards))
			for _, c := range m.data.Cards {
				branches := fmt.Sprintf("%d", len(c.Tree.Branches))
				if c.Problem != "" {
					branches = "⚠"
				}
				rows = append(rows, table.Row{c.Title, c.Theme, c.PubDate, branches})
			}
			m.table.SetRows(rows)
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Monakit Card Browser"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.showingTree && m.selected != nil {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Mindmap: %s", m.selected.Title)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Cards: %d", len(m.data.Cards))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/t tree • q quit"))
	b.WriteString("\n")

	return b.String()
}

// cardDetail is the viewport content for one card
func cardDetail(c CardInfo) string {
	var b strings.Builder
	if c.Problem != "" {
		b.WriteString(warningStyle.Render("⚠ " + c.Problem))
		b.WriteString("\n\n")
	}
	b.WriteString(RenderTree(c.Tree))
	if c.EditURL != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Edit: "))
		b.WriteString(valueStyle.Render(c.EditURL))
		b.WriteString("\n")
	}
	return b.String()
}
