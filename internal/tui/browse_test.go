package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/monakit/monakit/internal/mindmap"
)

func TestBrowseModel(t *testing.T) {
	data := &BrowseData{Cards: []CardInfo{
		{
			Title:   "Go Tour",
			Theme:   "vintage",
			PubDate: "2024-03-01",
			Tree:    mindmap.Parse("mindmap\n  root((Go Tour))\n    Types\n      Structs"),
			EditURL: "https://mermaid.live/edit#pako:abc",
		},
		{Title: "Broken", Theme: "blackWhite", Problem: "decode card json: bad"},
	}}

	var m tea.Model = InitBrowseModel()
	m, _ = m.Update(BrowseMsg{Data: data})

	view := m.View()
	for _, want := range []string{"Cards: 2", "Go Tour", "vintage", "Broken"} {
		if !strings.Contains(view, want) {
			t.Errorf("table view missing %q\n%s", want, view)
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = m.View()
	for _, want := range []string{"Mindmap: Go Tour", "└── Types", "Structs", "pako:abc"} {
		if !strings.Contains(view, want) {
			t.Errorf("tree view missing %q\n%s", want, view)
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !strings.Contains(m.View(), "Cards: 2") {
		t.Errorf("esc should return to the table\n%s", m.View())
	}
}

func TestCardDetailProblem(t *testing.T) {
	out := cardDetail(CardInfo{Problem: "no json block"})
	if !strings.Contains(out, "⚠ no json block") || !strings.Contains(out, "(no root)") {
		t.Errorf("cardDetail = %q", out)
	}
}
