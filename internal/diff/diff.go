// Package diff shows what normalization changed in a card's mindmap.
package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/monakit/monakit/internal/card"
	"github.com/monakit/monakit/internal/mindmap"
)

// Unified returns a unified diff from before to after, or "" when the two
// are equal
func Unified(name, before, after string) string {
	before = withNewline(before)
	after = withNewline(after)
	if before == after {
		return ""
	}

	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (normalized)", before, edits))
}

// Render renders a unified diff for the terminal. Plain markdown is returned
// when glamour cannot render.
func Render(unified string) string {
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", withNewline(unified))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}

// Normalization diffs a card file's mindmap against its normalized form.
// It returns "" when normalization changes nothing.
func Normalization(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read card: %w", err)
	}

	doc, err := card.Parse(content)
	if err != nil {
		return "", err
	}
	if doc.Article == nil {
		return "", card.ErrNoContent
	}

	raw := doc.Article.MermaidMarkdown
	return Unified(filepath.Base(path), raw, mindmap.Normalize(raw)), nil
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
