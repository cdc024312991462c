package theme

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultSlide is the slide theme used when a name is unknown.
const DefaultSlide = "black"

// Background types of a slide theme.
const (
	BackgroundSolid    = "solid"
	BackgroundGradient = "gradient"
)

// Weight is a CSS font weight, either numeric ("600") or a keyword ("normal").
type Weight string

// UnmarshalYAML accepts both numbers and keywords.
func (w *Weight) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: font weight must be a scalar", node.Line)
	}
	*w = Weight(node.Value)
	return nil
}

// SlideTheme is the flat style description of a slide deck.
type SlideTheme struct {
	Background     string `yaml:"background" json:"background"`
	Type           string `yaml:"type" json:"type"`
	TitleFont      string `yaml:"titleFont" json:"titleFont"`
	TitleWeight    Weight `yaml:"titleWeight" json:"titleWeight"`
	TitleTransform string `yaml:"titleTransform" json:"titleTransform"`
	TextFont       string `yaml:"textFont" json:"textFont"`
	TitleColor     string `yaml:"titleColor" json:"titleColor"`
	TextColor      string `yaml:"textColor" json:"textColor"`
	OverlayColor   string `yaml:"overlayColor" json:"overlayColor"`
}

// Gradient reports whether the background is a CSS gradient.
func (t SlideTheme) Gradient() bool {
	return t.Type == BackgroundGradient
}

// SlideName refers to a slide theme by name.
type SlideName string

// SlideSource is either a SlideName to look up or a SlideTheme used as-is.
type SlideSource interface {
	resolveSlide(r *Registry) SlideTheme
}

func (n SlideName) resolveSlide(r *Registry) SlideTheme {
	if t, ok := r.slides[string(n)]; ok {
		return t
	}
	return r.slides[DefaultSlide]
}

func (t SlideTheme) resolveSlide(*Registry) SlideTheme {
	return t
}

const (
	sourceSans = `"Source Sans Pro", Helvetica, sans-serif`
	league     = `"League Gothic", Impact, sans-serif`
	lato       = "Lato, sans-serif"
	openSans   = `"Open Sans", sans-serif`
	palatino   = `"Palatino Linotype", "Book Antiqua", Palatino, FreeSerif, serif`
)

var slideOrder = []string{
	"black", "white", "league", "beige", "moon", "solarized",
	"sky", "night", "serif", "simple", "blood", "dracula",
}

var slideThemes = map[string]SlideTheme{
	"black": {
		Background: "#191919", Type: BackgroundSolid,
		TitleFont: sourceSans, TitleWeight: "600", TitleTransform: "uppercase",
		TextFont: sourceSans, TitleColor: "#fff", TextColor: "#fff",
		OverlayColor: "rgba(0, 0, 0, 0.3)",
	},
	"white": {
		Background: "#ffffff", Type: BackgroundSolid,
		TitleFont: sourceSans, TitleWeight: "600", TitleTransform: "uppercase",
		TextFont: sourceSans, TitleColor: "#222", TextColor: "#222",
		OverlayColor: "rgba(255, 255, 255, 0.3)",
	},
	"league": {
		Background: "radial-gradient(circle, rgb(85, 90, 95) 0%, rgb(28, 30, 32) 100%)", Type: BackgroundGradient,
		TitleFont: league, TitleWeight: "normal", TitleTransform: "uppercase",
		TextFont: lato, TitleColor: "#eee", TextColor: "#eee",
		OverlayColor: "rgba(0, 0, 0, 0.3)",
	},
	"beige": {
		Background: "radial-gradient(circle, rgb(255, 255, 255) 0%, rgb(247, 242, 211) 100%)", Type: BackgroundGradient,
		TitleFont: league, TitleWeight: "normal", TitleTransform: "uppercase",
		TextFont: lato, TitleColor: "#333", TextColor: "#333",
		OverlayColor: "rgba(0, 0, 0, 0.1)",
	},
	"moon": {
		Background: "#002b36", Type: BackgroundSolid,
		TitleFont: league, TitleWeight: "normal", TitleTransform: "uppercase",
		TextFont: lato, TitleColor: "#eee8d5", TextColor: "#93a1a1",
		OverlayColor: "rgba(0, 0, 0, 0.3)",
	},
	"solarized": {
		Background: "#fdf6e3", Type: BackgroundSolid,
		TitleFont: league, TitleWeight: "normal", TitleTransform: "uppercase",
		TextFont: lato, TitleColor: "#657b83", TextColor: "#657b83",
		OverlayColor: "rgba(255, 255, 255, 0.3)",
	},
	"sky": {
		Background: "radial-gradient(circle, #f7fbfc 0%, #add9e4 100%)", Type: BackgroundGradient,
		TitleFont: `"Quicksand", sans-serif`, TitleWeight: "normal", TitleTransform: "uppercase",
		TextFont: openSans, TitleColor: "#333", TextColor: "#333",
		OverlayColor: "rgba(0, 0, 0, 0.1)",
	},
	"night": {
		Background: "radial-gradient(circle, #1e1e1e 0%, #000000 100%)", Type: BackgroundGradient,
		TitleFont: `"Montserrat", Impact, sans-serif`, TitleWeight: "normal", TitleTransform: "none",
		TextFont: openSans, TitleColor: "#fff", TextColor: "#fff",
		OverlayColor: "rgba(0, 0, 0, 0.3)",
	},
	"serif": {
		Background: "#f0f1eb", Type: BackgroundSolid,
		TitleFont: palatino, TitleWeight: "normal", TitleTransform: "none",
		TextFont: palatino, TitleColor: "#383d3d", TextColor: "#383d3d",
		OverlayColor: "rgba(255, 255, 255, 0.3)",
	},
	"simple": {
		Background: "#ffffff", Type: BackgroundSolid,
		TitleFont: sourceSans, TitleWeight: "600", TitleTransform: "none",
		TextFont: lato, TitleColor: "#333", TextColor: "#333",
		OverlayColor: "rgba(255, 255, 255, 0.3)",
	},
	"blood": {
		Background: "#222", Type: BackgroundSolid,
		TitleFont: `"Ubuntu", sans-serif`, TitleWeight: "700", TitleTransform: "uppercase",
		TextFont: "Ubuntu, sans-serif", TitleColor: "#fff", TextColor: "#fff",
		OverlayColor: "rgba(0, 0, 0, 0.3)",
	},
	"dracula": {
		Background: "#282a36", Type: BackgroundSolid,
		TitleFont: league, TitleWeight: "normal", TitleTransform: "none",
		TextFont: `-apple-system, BlinkMacSystemFont, "avenir next", avenir, "segoe ui", "helvetica neue", helvetica, Cantarell, Ubuntu, roboto, noto, arial, sans-serif`,
		TitleColor: "#bd93f9", TextColor: "#fff",
		OverlayColor: "rgba(0, 0, 0, 0.3)",
	},
}

// ResolveSlide resolves src against the builtin slide themes.
func ResolveSlide(src SlideSource) SlideTheme {
	return builtin.Slide(src)
}

// SlideNames lists the builtin slide theme names.
func SlideNames() []string {
	return append([]string(nil), slideOrder...)
}

// SlideBackground returns the background paint for a slide theme.
func SlideBackground(src SlideSource) map[string]string {
	t := ResolveSlide(src)
	if t.Gradient() {
		return map[string]string{"background": t.Background}
	}
	return map[string]string{"backgroundColor": t.Background}
}

// BackgroundAttrs renders the reveal.js section attributes for a theme. The
// class keeps the requested name even when the lookup fell back.
func BackgroundAttrs(name string) string {
	return builtin.BackgroundAttrs(name)
}

// SlideStyles renders the CSS block scoping a theme to one deck instance.
func SlideStyles(name, scopeID string) string {
	return builtin.SlideStyles(name, scopeID)
}

// NewScopeID returns a fresh id for SlideStyles.
func NewScopeID() string {
	return ":" + uuid.NewString()[:8] + ":"
}

// BackgroundAttrs renders the reveal.js section attributes for a theme.
func (r *Registry) BackgroundAttrs(name string) string {
	t := r.Slide(SlideName(name))
	attr := fmt.Sprintf(`data-background-color="%s"`, t.Background)
	if t.Gradient() {
		attr = fmt.Sprintf(`data-background="%s"`, t.Background)
	}
	return fmt.Sprintf(`%s class="theme-%s"`, attr, name)
}

// SlideStyles renders the CSS block scoping a theme to one deck instance.
func (r *Registry) SlideStyles(name, scopeID string) string {
	t := r.Slide(SlideName(name))
	scope := ".reveal-" + strings.ReplaceAll(scopeID, ":", "-")

	return fmt.Sprintf(`
    %[1]s .slides section {
      background: %[2]s !important;
      padding-top: 30px;
    }

    %[1]s .slides section h1,
    %[1]s .slides section h2 {
      font-family: %[3]s !important;
      font-weight: %[4]s !important;
      text-transform: %[5]s !important;
      color: %[6]s !important;
      font-size: 32px !important;
      padding-left: 8px;
      padding-right: 8px;
      display: -webkit-box;
      -webkit-line-clamp: 2;
      line-clamp: 2;
      -webkit-box-orient: vertical;
      overflow: hidden;
      text-overflow: ellipsis;
      max-width: 100%%;
      line-height: 1.2;
      letter-spacing: normal !important;
    }

    %[1]s .slides section p,
    %[1]s .slides section em {
      font-family: %[7]s !important;
      color: %[8]s !important;
      font-size: 20px !important;
      line-height: 0.8 !important;
      letter-spacing: normal !important;
    }

    %[1]s .slides section em {
      font-style: normal !important;
    }

    %[1]s .reveal-viewport {
      border: 1px solid black;
      border-radius: 1rem;
    }
  `, scope, t.Background, t.TitleFont, t.TitleWeight, t.TitleTransform, t.TitleColor, t.TextFont, t.TextColor)
}
