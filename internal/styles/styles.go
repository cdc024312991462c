// Package styles holds the terminal palette shared by the commands.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Monokai Pro color palette
const (
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	Red     = "#FF6188" // Errors
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Branches
	Purple  = "#AB9DF2" // Links, sub-branches
	Magenta = "#FF6188" // Titles

	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	LinkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Purple)).Underline(true)

	// Mindmap levels
	RootStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Yellow))
	BranchStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Cyan))
	SubBranchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Purple))
	LeafStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))
	GuideStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Border))
)

// Swatch renders label on a block of the given CSS colour. Hex colours get
// black or white text, whichever reads better; other CSS values (gradients,
// rgba) are shown as dim text.
func Swatch(color, label string) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return DimStyle.Render(label)
	}

	text := "#000000"
	if l, _, _ := c.Lab(); l < 0.55 {
		text = "#FFFFFF"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(text)).
		Padding(0, 1).
		Render(label)
}

// IsDark reports whether a hex colour is dark. Non-hex values count as light.
func IsDark(color string) bool {
	c, err := colorful.Hex(color)
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	return l < 0.55
}
