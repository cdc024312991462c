package theme

import "strings"

// Var is one CSS custom property.
type Var struct {
	Name  string
	Value string
}

// Variables is an ordered list of CSS custom properties.
type Variables []Var

// Map returns the properties with a value, keyed by name.
func (v Variables) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, p := range v {
		if p.Value != "" {
			m[p.Name] = p.Value
		}
	}
	return m
}

// Declarations renders "name: value;" lines; unset values stay blank.
func (v Variables) Declarations() string {
	lines := make([]string, len(v))
	for i, p := range v {
		lines[i] = p.Name + ": " + p.Value + ";"
	}
	return strings.Join(lines, "\n    ")
}

// CardVariables resolves src and flattens it into --card-* properties.
func CardVariables(src CardSource) Variables {
	return builtin.CardVariables(src)
}

// SlideVariables resolves src and flattens it into --slide-* properties.
func SlideVariables(src SlideSource) Variables {
	return builtin.SlideVariables(src)
}

// CardVariables resolves src and flattens it into --card-* properties.
func (r *Registry) CardVariables(src CardSource) Variables {
	t := r.Card(src)
	return Variables{
		{"--card-text-color", t.TextColor},
		{"--card-background-class", t.BackgroundClass},
		{"--card-accent-color", t.AccentColor},
		{"--card-border-color", t.BorderColor},
		{"--card-subtle-color", t.SubtleColor},
		{"--card-decorative-line-color", t.DecorativeLineColor},
		{"--card-number-color", t.NumberColor},
		{"--card-background-color", t.BackgroundColor},
		{"--card-background-image", t.BackgroundImage},
		{"--card-title-color", t.TitleColor},
		{"--card-title-font-size", t.TitleFontSize},
		{"--card-title-font-weight", t.TitleFontWeight},
		{"--card-title-font-family", t.TitleFontFamily},
		{"--card-description-color", t.DescriptionColor},
		{"--card-description-font-size", t.DescriptionFontSize},
		{"--card-description-font-family", t.DescriptionFontFamily},
		{"--card-section-title-color", t.SectionTitleColor},
		{"--card-section-title-font-size", t.SectionTitleFontSize},
		{"--card-section-title-font-weight", t.SectionTitleFontWeight},
		{"--card-section-title-font-family", t.SectionTitleFontFamily},
		{"--card-key-point-color", t.KeyPointColor},
		{"--card-key-point-font-size", t.KeyPointFontSize},
		{"--card-key-point-font-family", t.KeyPointFontFamily},
		{"--card-number-background-color", t.NumberBackgroundColor},
		{"--card-number-text-color", t.NumberTextColor},
		{"--card-number-font-weight", t.NumberFontWeight},
		{"--card-number-font-family", t.NumberFontFamily},
		{"--card-decorative-line-width", t.DecorativeLineWidth},
		{"--card-decorative-line-height", t.DecorativeLineHeight},
		{"--card-link-color", t.LinkColor},
		{"--card-font-family", t.FontFamily},
	}
}

// SlideVariables resolves src and flattens it into --slide-* properties.
func (r *Registry) SlideVariables(src SlideSource) Variables {
	t := r.Slide(src)
	return Variables{
		{"--slide-background", t.Background},
		{"--slide-background-type", t.Type},
		{"--slide-title-font", t.TitleFont},
		{"--slide-title-weight", string(t.TitleWeight)},
		{"--slide-title-transform", t.TitleTransform},
		{"--slide-text-font", t.TextFont},
		{"--slide-title-color", t.TitleColor},
		{"--slide-text-color", t.TextColor},
		{"--slide-overlay-color", t.OverlayColor},
	}
}

// ParseDeclarations reads a Declarations string back into a map keyed by
// property name without the leading "--". Blank values are skipped.
func ParseDeclarations(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		key, value, _ := strings.Cut(decl, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[strings.TrimPrefix(key, "--")] = value
	}
	return out
}
