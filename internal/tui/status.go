package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PendingKind says why a card needs re-encoding
type PendingKind string

const (
	PendingNew     PendingKind = "new"
	PendingChanged PendingKind = "changed"
	PendingRemoved PendingKind = "removed"
)

// PendingCard is a card the next build will touch
type PendingCard struct {
	Path string
	Kind PendingKind
}

// StatusData holds all the information for the status display
type StatusData struct {
	ContentDir   string
	PublicDir    string
	OutputDir    string
	ThemesFile   string
	Interval     time.Duration
	CardCount    int
	TrackedCount int
	Pending      []PendingCard
	LastBuild    time.Time
}

// StatusMsg is sent when status data is ready
type StatusMsg struct {
	Data *StatusData
	Err  error
}

type statusModel struct {
	spinner  spinner.Model
	data     *StatusData
	table    table.Model
	err      error
	scanning bool
	ready    bool
}

// InitStatusModel creates a new status display model
func InitStatusModel() statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	columns := []table.Column{
		{Title: "Card", Width: 50},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return statusModel{
		spinner:  s,
		scanning: true,
		table:    t,
	}
}

func (m statusModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case StatusMsg:
		m.scanning = false
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Pending))
			for _, p := range m.data.Pending {
				rows = append(rows, table.Row{p.Path, pendingLabel(p.Kind)})
			}
			m.table.SetRows(rows)
		}
		return m, nil

	case spinner.TickMsg:
		if m.scanning {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m statusModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Monakit Status"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if m.scanning {
		b.WriteString(fmt.Sprintf("%s Scanning cards...\n", m.spinner.View()))
		return b.String()
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	b.WriteString(RenderStatus(m.data))

	if len(m.data.Pending) > 0 {
		b.WriteString(labelStyle.Render("Card Details"))
		b.WriteString("\n")
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • q/ctrl+c quit"))
	} else {
		b.WriteString(helpStyle.Render("q/ctrl+c quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// RenderStatus renders the static part of the status screen
func RenderStatus(d *StatusData) string {
	var b strings.Builder

	themes := d.ThemesFile
	if themes == "" {
		themes = "builtin"
	}

	b.WriteString(labelStyle.Render("Configuration"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Content directory: %s\n", valueStyle.Render(d.ContentDir)))
	b.WriteString(fmt.Sprintf("  Public directory:  %s\n", valueStyle.Render(d.PublicDir)))
	b.WriteString(fmt.Sprintf("  Output directory:  %s\n", valueStyle.Render(d.OutputDir)))
	b.WriteString(fmt.Sprintf("  Themes:            %s\n", valueStyle.Render(themes)))
	b.WriteString(fmt.Sprintf("  Watch interval:    %s\n", valueStyle.Render(d.Interval.String())))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Cards"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Card files: %s\n", valueStyle.Render(fmt.Sprintf("%d", d.CardCount))))
	b.WriteString(fmt.Sprintf("  Encoded:    %s\n", valueStyle.Render(fmt.Sprintf("%d", d.TrackedCount))))
	if d.LastBuild.IsZero() {
		b.WriteString(fmt.Sprintf("  Last build: %s\n", helpStyle.Render("never")))
	} else {
		b.WriteString(fmt.Sprintf("  Last build: %s\n", valueStyle.Render(d.LastBuild.Format(time.DateTime))))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Pending Changes"))
	b.WriteString("\n")
	if len(d.Pending) == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", successStyle.Render("✓ No pending changes")))
	} else {
		counts := map[PendingKind]int{}
		for _, p := range d.Pending {
			counts[p.Kind]++
		}
		for _, kind := range []PendingKind{PendingNew, PendingChanged, PendingRemoved} {
			if n := counts[kind]; n > 0 {
				b.WriteString(fmt.Sprintf("  %s\n", highlightStyle.Render(fmt.Sprintf("● %d card(s) %s", n, kind))))
			}
		}
	}
	b.WriteString("\n")

	return b.String()
}

func pendingLabel(k PendingKind) string {
	switch k {
	case PendingNew:
		return "New"
	case PendingRemoved:
		return "Removed"
	default:
		return "Changed"
	}
}
