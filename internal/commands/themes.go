package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/monakit/monakit/internal/config"
	"github.com/monakit/monakit/internal/styles"
	"github.com/monakit/monakit/internal/theme"
)

// Themes lists the card and slide themes with colour swatches
func Themes(args []string) {
	cfg := mustLoadConfig()
	registry := mustLoadRegistry(cfg)

	family := ""
	if pos := positional(args); len(pos) > 0 {
		family = pos[0]
	}

	switch family {
	case "", "card", "cards":
	case "slide", "slides":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown theme family %q (want card or slide)\n", family)
		os.Exit(1)
	}

	if family == "" || strings.HasPrefix(family, "card") {
		fmt.Println(styles.TitleStyle.Render("Card themes"))
		fmt.Println(CardThemeTable(registry))
	}
	if family == "" || strings.HasPrefix(family, "slide") {
		fmt.Println(styles.TitleStyle.Render("Slide themes"))
		fmt.Println(SlideThemeTable(registry))
	}
}

// CardThemeTable renders one line per card theme
func CardThemeTable(r *theme.Registry) string {
	var b strings.Builder
	for _, name := range r.CardNames() {
		t := r.Card(theme.CardName(name))
		paint := t.BackgroundColor
		if t.Gradient != "" {
			paint = "gradient"
		}
		if t.BackgroundImage != "" {
			paint = t.BackgroundImage
		}
		fmt.Fprintf(&b, "  %-16s %s %s %s  %s\n",
			name,
			styles.Swatch(t.BackgroundColor, "bg"),
			styles.Swatch(t.TextColor, "text"),
			styles.Swatch(t.AccentColor, "accent"),
			styles.DimStyle.Render(paint))
	}
	return b.String()
}

// SlideThemeTable renders one line per slide theme
func SlideThemeTable(r *theme.Registry) string {
	var b strings.Builder
	for _, name := range r.SlideNames() {
		t := r.Slide(theme.SlideName(name))
		bg := styles.Swatch(t.Background, "bg")
		if t.Gradient() {
			bg = styles.DimStyle.Render("gradient")
		}
		fmt.Fprintf(&b, "  %-16s %s %s %s  %s\n",
			name,
			bg,
			styles.Swatch(t.TitleColor, "title"),
			styles.Swatch(t.TextColor, "text"),
			styles.DimStyle.Render(fmt.Sprintf("%s / %s", t.TitleFont, t.TitleWeight)))
	}
	return b.String()
}

// CSS prints the style declarations for one theme
func CSS(args []string) {
	pos := positional(args)
	if len(pos) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: monakit css <card|slide> <name>")
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	registry := mustLoadRegistry(cfg)

	family, name := pos[0], pos[1]
	if hasFlag(args, "--json") {
		out, err := CSSJSON(registry, family, name)
		if err != nil {
			fail("Error", err)
		}
		fmt.Println(out)
		return
	}

	switch family {
	case "card":
		if !registry.HasCard(name) {
			warnFallback(name, theme.DefaultCard)
		}
		fmt.Printf(".knowledge-card {\n    %s\n}\n", registry.CardVariables(theme.CardName(name)).Declarations())
	case "slide":
		if !registry.HasSlide(name) {
			warnFallback(name, theme.DefaultSlide)
		}
		fmt.Printf("<section %s>\n", registry.BackgroundAttrs(name))
		fmt.Printf(":root {\n    %s\n}\n", registry.SlideVariables(theme.SlideName(name)).Declarations())
		fmt.Println(registry.SlideStyles(name, theme.NewScopeID()))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown theme family %q (want card or slide)\n", family)
		os.Exit(1)
	}
}

// CSSJSON returns a theme's custom properties as a JSON object keyed by
// property name without the leading "--"
func CSSJSON(r *theme.Registry, family, name string) (string, error) {
	var decls string
	switch family {
	case "card":
		decls = r.CardVariables(theme.CardName(name)).Declarations()
	case "slide":
		decls = r.SlideVariables(theme.SlideName(name)).Declarations()
	default:
		return "", fmt.Errorf("unknown theme family %q (want card or slide)", family)
	}

	out, err := json.MarshalIndent(theme.ParseDeclarations(decls), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func warnFallback(name, def string) {
	fmt.Fprintln(os.Stderr, styles.WarningStyle.Render(fmt.Sprintf("⚠ Unknown theme %q, using %s", name, def)))
}

func mustLoadRegistry(cfg *config.Config) *theme.Registry {
	registry, err := theme.LoadRegistry(cfg.ThemesFile)
	if err != nil {
		fail("Error loading themes", err)
	}
	return registry
}
