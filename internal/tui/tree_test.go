package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/monakit/monakit/internal/mindmap"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderTree(t *testing.T) {
	tree := mindmap.Parse("mindmap\n  root((Go Tour))\n    Types\n      Structs\n        Embedding\n        Tags\n    Methods")

	expected := strings.Join([]string{
		"Go Tour",
		"├── Types",
		"│   └── Structs",
		"│       ├── Embedding",
		"│       └── Tags",
		"└── Methods",
		"",
	}, "\n")

	if got := RenderTree(tree); got != expected {
		t.Errorf("RenderTree mismatch\ngot:\n%s\nwant:\n%s", got, expected)
	}
}

func TestRenderTreeEmpty(t *testing.T) {
	if got := RenderTree(mindmap.Tree{}); got != "(no root)\n" {
		t.Errorf("RenderTree(empty) = %q", got)
	}
}
