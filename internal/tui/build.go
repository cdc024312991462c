package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// BuildSummary holds the outcome of a build
type BuildSummary struct {
	CardsEncoded int
	CardsReused  int
	Skipped      int
	Errors       []error
	Duration     time.Duration
	DryRun       bool
}

// BuildMsg is sent when a build completes
type BuildMsg struct {
	Summary *BuildSummary
	Err     error
}

// buildModel shows a spinner while a build runs
type buildModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	summary  *BuildSummary
	err      error
}

// InitBuildModel creates a new build progress model
func InitBuildModel() buildModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return buildModel{
		spinner: s,
		status:  "Encoding cards...",
	}
}

func (m buildModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// the build owns state until BuildMsg arrives
			if !m.complete {
				m.status = "Finishing build..."
				return m, nil
			}
			return m, tea.Quit
		}

	case BuildMsg:
		m.complete = true
		m.summary = msg.Summary
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m buildModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.err != nil {
		return errorStyle.Render("✗ Build failed: "+m.err.Error()) + "\n"
	}
	if m.summary == nil {
		return ""
	}

	s := m.summary
	took := helpStyle.Render(fmt.Sprintf("Completed in %v", s.Duration.Round(time.Millisecond)))

	if s.CardsEncoded == 0 && len(s.Errors) == 0 {
		return successStyle.Render(fmt.Sprintf("✓ Nothing to encode, %d card(s) up to date", s.CardsReused)) + "\n" + took + "\n"
	}

	verb := "Encoded"
	if s.DryRun {
		verb = "Would encode"
	}
	msg := successStyle.Render(fmt.Sprintf("✓ %s %d card(s)", verb, s.CardsEncoded))
	if s.CardsReused > 0 {
		msg += ", " + valueStyle.Render(fmt.Sprintf("%d unchanged", s.CardsReused))
	}
	if s.Skipped > 0 {
		msg += ", " + warningStyle.Render(fmt.Sprintf("%d skipped", s.Skipped))
	}
	if len(s.Errors) > 0 {
		msg += ", " + errorStyle.Render(fmt.Sprintf("%d error(s)", len(s.Errors)))
		for _, err := range s.Errors {
			msg += "\n  " + errorStyle.Render("✗ "+err.Error())
		}
	}
	return msg + "\n" + took + "\n"
}
