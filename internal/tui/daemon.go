package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DaemonData holds daemon status information
type DaemonData struct {
	Running       bool
	PID           int
	StartTime     time.Time
	Interval      time.Duration
	LastBuildTime time.Time
	CardsEncoded  int
	Errors        int
	LogLines      []string
}

// DaemonMsg is sent when daemon data is ready
type DaemonMsg struct {
	Data *DaemonData
	Err  error
}

// TickMsg triggers a periodic refresh
type TickMsg time.Time

const refreshInterval = 2 * time.Second

type daemonModel struct {
	data    *DaemonData
	err     error
	ready   bool
	refresh tea.Cmd
}

// InitDaemonModel creates a new daemon dashboard model. refresh is run on
// every tick and should produce a DaemonMsg.
func InitDaemonModel(refresh tea.Cmd) daemonModel {
	return daemonModel{refresh: refresh}
}

func (m daemonModel) Init() tea.Cmd {
	return tick()
}

func (m daemonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case TickMsg:
		var cmds []tea.Cmd
		if m.refresh != nil {
			cmds = append(cmds, m.refresh)
		}
		cmds = append(cmds, tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
			return TickMsg(t)
		}))
		return m, tea.Batch(cmds...)

	case DaemonMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m daemonModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Monakit Daemon Dashboard"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	b.WriteString(labelStyle.Render("Daemon Status"))
	b.WriteString("\n")
	if m.data.Running {
		uptime := time.Since(m.data.StartTime).Round(time.Second)
		b.WriteString(fmt.Sprintf("  Status: %s\n", successStyle.Render("● Running")))
		b.WriteString(fmt.Sprintf("  PID:    %s\n", valueStyle.Render(fmt.Sprintf("%d", m.data.PID))))
		b.WriteString(fmt.Sprintf("  Uptime: %s\n", valueStyle.Render(uptime.String())))
		if m.data.Interval > 0 {
			b.WriteString(fmt.Sprintf("  Every:  %s\n", valueStyle.Render(m.data.Interval.String())))
		}
	} else {
		b.WriteString(fmt.Sprintf("  Status: %s\n", helpStyle.Render("○ Not running")))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Build Information"))
	b.WriteString("\n")
	if m.data.Running {
		if !m.data.LastBuildTime.IsZero() {
			timeSince := time.Since(m.data.LastBuildTime).Round(time.Second)
			b.WriteString(fmt.Sprintf("  Last build:    %s ago\n", valueStyle.Render(timeSince.String())))
			b.WriteString(fmt.Sprintf("  Cards encoded: %s\n", valueStyle.Render(fmt.Sprintf("%d", m.data.CardsEncoded))))
			if m.data.Errors > 0 {
				b.WriteString(fmt.Sprintf("  Errors:        %s\n", errorStyle.Render(fmt.Sprintf("%d", m.data.Errors))))
			}
		} else {
			b.WriteString(fmt.Sprintf("  %s\n", helpStyle.Render("No build completed yet")))
		}
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", helpStyle.Render("Daemon not running")))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Recent Logs"))
	b.WriteString("\n")
	if len(m.data.LogLines) > 0 {
		for _, line := range m.data.LogLines {
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString(helpStyle.Render("  No logs available"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("q quit • auto-refresh: 2s"))
	b.WriteString("\n")

	return b.String()
}

// tick returns a command that sends a TickMsg
func tick() tea.Cmd {
	return func() tea.Msg {
		return TickMsg(time.Now())
	}
}
