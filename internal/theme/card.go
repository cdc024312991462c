// Package theme resolves card and slide theme names into style values for
// the renderers. Every lookup is total: unknown names resolve to the family
// default.
package theme

import "strings"

// DefaultCard is the card theme used when a name is unknown.
const DefaultCard = "blackWhite"

// CardTheme is the flat style description of a knowledge card. The
// *FontFamily fields, BackgroundImage and Gradient are optional.
type CardTheme struct {
	TextColor              string `yaml:"textColor" json:"textColor"`
	BackgroundClass        string `yaml:"backgroundClass" json:"backgroundClass"`
	AccentColor            string `yaml:"accentColor" json:"accentColor"`
	BorderColor            string `yaml:"borderColor" json:"borderColor"`
	SubtleColor            string `yaml:"subtleColor" json:"subtleColor"`
	DecorativeLineColor    string `yaml:"decorativeLineColor" json:"decorativeLineColor"`
	NumberColor            string `yaml:"numberColor" json:"numberColor"`
	BackgroundColor        string `yaml:"backgroundColor" json:"backgroundColor"`
	BackgroundImage        string `yaml:"backgroundImage,omitempty" json:"backgroundImage,omitempty"`
	Gradient               string `yaml:"gradient,omitempty" json:"gradient,omitempty"`
	TitleColor             string `yaml:"titleColor" json:"titleColor"`
	TitleFontSize          string `yaml:"titleFontSize" json:"titleFontSize"`
	TitleFontWeight        string `yaml:"titleFontWeight" json:"titleFontWeight"`
	TitleFontFamily        string `yaml:"titleFontFamily,omitempty" json:"titleFontFamily,omitempty"`
	DescriptionColor       string `yaml:"descriptionColor" json:"descriptionColor"`
	DescriptionFontSize    string `yaml:"descriptionFontSize" json:"descriptionFontSize"`
	DescriptionFontFamily  string `yaml:"descriptionFontFamily,omitempty" json:"descriptionFontFamily,omitempty"`
	SectionTitleColor      string `yaml:"sectionTitleColor" json:"sectionTitleColor"`
	SectionTitleFontSize   string `yaml:"sectionTitleFontSize" json:"sectionTitleFontSize"`
	SectionTitleFontWeight string `yaml:"sectionTitleFontWeight" json:"sectionTitleFontWeight"`
	SectionTitleFontFamily string `yaml:"sectionTitleFontFamily,omitempty" json:"sectionTitleFontFamily,omitempty"`
	KeyPointColor          string `yaml:"keyPointColor" json:"keyPointColor"`
	KeyPointFontSize       string `yaml:"keyPointFontSize" json:"keyPointFontSize"`
	KeyPointFontFamily     string `yaml:"keyPointFontFamily,omitempty" json:"keyPointFontFamily,omitempty"`
	NumberBackgroundColor  string `yaml:"numberBackgroundColor" json:"numberBackgroundColor"`
	NumberTextColor        string `yaml:"numberTextColor" json:"numberTextColor"`
	NumberFontWeight       string `yaml:"numberFontWeight" json:"numberFontWeight"`
	NumberFontFamily       string `yaml:"numberFontFamily,omitempty" json:"numberFontFamily,omitempty"`
	DecorativeLineWidth    string `yaml:"decorativeLineWidth" json:"decorativeLineWidth"`
	DecorativeLineHeight   string `yaml:"decorativeLineHeight" json:"decorativeLineHeight"`
	FontFamily             string `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	LinkColor              string `yaml:"linkColor" json:"linkColor"`
}

// CardName refers to a card theme by name.
type CardName string

// CardSource is either a CardName to look up or a CardTheme used as-is.
type CardSource interface {
	resolveCard(r *Registry) CardTheme
}

func (n CardName) resolveCard(r *Registry) CardTheme {
	if t, ok := r.cards[string(n)]; ok {
		return t
	}
	return r.cards[DefaultCard]
}

func (t CardTheme) resolveCard(*Registry) CardTheme {
	return t
}

const (
	sansStack  = "'Inter', 'Noto Sans SC', system-ui, sans-serif"
	serifStack = "'Playfair Display', 'Noto Serif SC', Georgia, serif"
)

var cardOrder = []string{"blackWhite", "vintage", "glassmorphism", "freshNature"}

var cardThemes = map[string]CardTheme{
	"blackWhite": {
		TextColor:              "#111827",
		BackgroundClass:        "bg-white",
		AccentColor:            "#000000",
		BorderColor:            "#e5e7eb",
		SubtleColor:            "#6b7280",
		DecorativeLineColor:    "#111827",
		NumberColor:            "#ffffff",
		BackgroundColor:        "#ffffff",
		TitleColor:             "#111827",
		TitleFontSize:          "2rem",
		TitleFontWeight:        "700",
		DescriptionColor:       "#374151",
		DescriptionFontSize:    "1rem",
		SectionTitleColor:      "#111827",
		SectionTitleFontSize:   "1.125rem",
		SectionTitleFontWeight: "600",
		KeyPointColor:          "#1f2937",
		KeyPointFontSize:       "0.95rem",
		NumberBackgroundColor:  "#111827",
		NumberTextColor:        "#ffffff",
		NumberFontWeight:       "600",
		DecorativeLineWidth:    "6px",
		DecorativeLineHeight:   "120px",
		FontFamily:             sansStack,
		LinkColor:              "#2563eb",
	},
	"vintage": {
		TextColor:              "#3e2f1c",
		BackgroundClass:        "bg-vintage",
		AccentColor:            "#8b5e34",
		BorderColor:            "#c8b48f",
		SubtleColor:            "#7a6a55",
		DecorativeLineColor:    "#8b5e34",
		NumberColor:            "#f4ecd8",
		BackgroundColor:        "#f4ecd8",
		BackgroundImage:        "/cards/vintage.webp",
		TitleColor:             "#3e2f1c",
		TitleFontSize:          "2.125rem",
		TitleFontWeight:        "700",
		TitleFontFamily:        serifStack,
		DescriptionColor:       "#5b4630",
		DescriptionFontSize:    "1rem",
		DescriptionFontFamily:  serifStack,
		SectionTitleColor:      "#6b4423",
		SectionTitleFontSize:   "1.125rem",
		SectionTitleFontWeight: "700",
		SectionTitleFontFamily: serifStack,
		KeyPointColor:          "#3e2f1c",
		KeyPointFontSize:       "0.95rem",
		NumberBackgroundColor:  "#8b5e34",
		NumberTextColor:        "#f4ecd8",
		NumberFontWeight:       "700",
		NumberFontFamily:       serifStack,
		DecorativeLineWidth:    "4px",
		DecorativeLineHeight:   "110px",
		FontFamily:             serifStack,
		LinkColor:              "#9c4a1a",
	},
	"glassmorphism": {
		TextColor:              "#ffffff",
		BackgroundClass:        "bg-glass",
		AccentColor:            "#f0abfc",
		BorderColor:            "rgba(255, 255, 255, 0.35)",
		SubtleColor:            "rgba(255, 255, 255, 0.75)",
		DecorativeLineColor:    "#f0abfc",
		NumberColor:            "#4c1d95",
		BackgroundColor:        "#667eea",
		Gradient:               "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
		TitleColor:             "#ffffff",
		TitleFontSize:          "2rem",
		TitleFontWeight:        "700",
		DescriptionColor:       "rgba(255, 255, 255, 0.9)",
		DescriptionFontSize:    "1rem",
		SectionTitleColor:      "#ffffff",
		SectionTitleFontSize:   "1.125rem",
		SectionTitleFontWeight: "600",
		KeyPointColor:          "rgba(255, 255, 255, 0.95)",
		KeyPointFontSize:       "0.95rem",
		NumberBackgroundColor:  "rgba(255, 255, 255, 0.25)",
		NumberTextColor:        "#ffffff",
		NumberFontWeight:       "600",
		DecorativeLineWidth:    "6px",
		DecorativeLineHeight:   "120px",
		FontFamily:             sansStack,
		LinkColor:              "#fde68a",
	},
	"freshNature": {
		TextColor:              "#14532d",
		BackgroundClass:        "bg-nature",
		AccentColor:            "#16a34a",
		BorderColor:            "#bbf7d0",
		SubtleColor:            "#4d7c0f",
		DecorativeLineColor:    "#4ade80",
		NumberColor:            "#ffffff",
		BackgroundColor:        "#f0fdf4",
		BackgroundImage:        "/cards/fresh-nature.webp",
		Gradient:               "linear-gradient(135deg, #d4fc79 0%, #96e6a1 100%)",
		TitleColor:             "#14532d",
		TitleFontSize:          "2rem",
		TitleFontWeight:        "800",
		DescriptionColor:       "#166534",
		DescriptionFontSize:    "1rem",
		SectionTitleColor:      "#15803d",
		SectionTitleFontSize:   "1.125rem",
		SectionTitleFontWeight: "700",
		KeyPointColor:          "#14532d",
		KeyPointFontSize:       "0.95rem",
		NumberBackgroundColor:  "#16a34a",
		NumberTextColor:        "#ffffff",
		NumberFontWeight:       "700",
		DecorativeLineWidth:    "6px",
		DecorativeLineHeight:   "120px",
		FontFamily:             sansStack,
		LinkColor:              "#15803d",
	},
}

// templateKeys maps lower-cased frontmatter template names to theme keys.
var templateKeys = map[string]string{
	"blackwhite":    "blackWhite",
	"vintage":       "vintage",
	"glassmorphism": "glassmorphism",
	"freshnature":   "freshNature",
}

// CardTemplateKey maps a card's frontmatter template to a card theme key.
func CardTemplateKey(template string) string {
	if key, ok := templateKeys[strings.ToLower(template)]; ok {
		return key
	}
	return DefaultCard
}

// ResolveCard resolves src against the builtin card themes.
func ResolveCard(src CardSource) CardTheme {
	return builtin.Card(src)
}

// CardNames lists the builtin card theme names.
func CardNames() []string {
	return append([]string(nil), cardOrder...)
}
