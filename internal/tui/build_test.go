package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBuildModelView(t *testing.T) {
	tests := []struct {
		name    string
		msg     BuildMsg
		want    []string
		notWant []string
	}{
		{
			name: "encoded",
			msg: BuildMsg{Summary: &BuildSummary{
				CardsEncoded: 2,
				CardsReused:  5,
				Skipped:      1,
				Duration:     1500 * time.Millisecond,
			}},
			want:    []string{"Encoded 2 card(s)", "5 unchanged", "1 skipped", "1.5s"},
			notWant: []string{"error"},
		},
		{
			name: "up to date",
			msg:  BuildMsg{Summary: &BuildSummary{CardsReused: 3}},
			want: []string{"Nothing to encode, 3 card(s) up to date"},
		},
		{
			name: "dry run with errors",
			msg: BuildMsg{Summary: &BuildSummary{
				CardsEncoded: 1,
				DryRun:       true,
				Errors:       []error{errors.New("bad.md: decode card json")},
			}},
			want: []string{"Would encode 1 card(s)", "1 error(s)", "bad.md: decode card json"},
		},
		{
			name: "failure",
			msg:  BuildMsg{Err: errors.New("content dir missing")},
			want: []string{"Build failed: content dir missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := InitBuildModel().Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected quit after build")
			}
			view := m.View()
			for _, want := range tt.want {
				if !strings.Contains(view, want) {
					t.Errorf("view missing %q\n%s", want, view)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(view, nw) {
					t.Errorf("view should not contain %q\n%s", nw, view)
				}
			}
		})
	}
}

func TestBuildModelInProgress(t *testing.T) {
	m := InitBuildModel()
	if !strings.Contains(m.View(), "Encoding cards...") {
		t.Errorf("expected progress view, got %q", m.View())
	}
}

func TestBuildModelWaitsForBuild(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	}
	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			m, cmd := InitBuildModel().Update(key)
			if cmd != nil {
				t.Fatal("quit requested before build finished")
			}
			if !strings.Contains(m.View(), "Finishing build...") {
				t.Errorf("expected finishing status, got %q", m.View())
			}

			m, cmd = m.Update(BuildMsg{Summary: &BuildSummary{CardsReused: 1}})
			if cmd == nil {
				t.Error("expected quit once build finished")
			}
			if _, cmd := m.Update(key); cmd == nil {
				t.Error("key after completion should quit")
			}
		})
	}
}
