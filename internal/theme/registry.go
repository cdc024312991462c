package theme

import (
	"fmt"
	"os"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Registry is an immutable set of card and slide themes. The builtin
// registry backs the package-level functions; LoadRegistry layers custom
// themes from a YAML file on top of it.
type Registry struct {
	cards      map[string]CardTheme
	slides     map[string]SlideTheme
	cardNames  []string
	slideNames []string
}

var builtin = &Registry{
	cards:      cardThemes,
	slides:     slideThemes,
	cardNames:  cardOrder,
	slideNames: slideOrder,
}

// Builtin returns the registry of builtin themes.
func Builtin() *Registry {
	return builtin
}

// Card resolves src; unknown names and a nil source resolve to DefaultCard.
func (r *Registry) Card(src CardSource) CardTheme {
	if t, ok := src.(*CardTheme); src == nil || ok && t == nil {
		src = CardName(DefaultCard)
	}
	return src.resolveCard(r)
}

// Slide resolves src; unknown names and a nil source resolve to DefaultSlide.
func (r *Registry) Slide(src SlideSource) SlideTheme {
	if t, ok := src.(*SlideTheme); src == nil || ok && t == nil {
		src = SlideName(DefaultSlide)
	}
	return src.resolveSlide(r)
}

// HasCard reports whether name is a known card theme.
func (r *Registry) HasCard(name string) bool {
	_, ok := r.cards[name]
	return ok
}

// HasSlide reports whether name is a known slide theme.
func (r *Registry) HasSlide(name string) bool {
	_, ok := r.slides[name]
	return ok
}

// CardNames lists card theme names, builtins first.
func (r *Registry) CardNames() []string {
	return append([]string(nil), r.cardNames...)
}

// SlideNames lists slide theme names, builtins first.
func (r *Registry) SlideNames() []string {
	return append([]string(nil), r.slideNames...)
}

// themeFile is the YAML layout of a custom themes file. Each entry may name
// a theme it extends; its fields are decoded over that base.
//
//	cards:
//	  midnight:
//	    extends: blackWhite
//	    backgroundColor: "#0f172a"
//	slides:
//	  paper:
//	    extends: white
//	    background: "#faf7f0"
type themeFile struct {
	Cards  map[string]yaml.Node `yaml:"cards"`
	Slides map[string]yaml.Node `yaml:"slides"`
}

type extendsHeader struct {
	Extends string `yaml:"extends"`
}

// LoadRegistry reads custom themes from a YAML file. An empty path returns
// the builtin registry.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return builtin, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes file: %w", err)
	}
	r, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("invalid themes file %s: %w", path, err)
	}
	return r, nil
}

// ParseRegistry builds a registry from YAML theme definitions layered over
// the builtin themes.
func ParseRegistry(data []byte) (*Registry, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse themes: %w", err)
	}

	r := &Registry{
		cards:      make(map[string]CardTheme, len(cardThemes)+len(file.Cards)),
		slides:     make(map[string]SlideTheme, len(slideThemes)+len(file.Slides)),
		cardNames:  CardNames(),
		slideNames: SlideNames(),
	}
	for name, t := range cardThemes {
		r.cards[name] = t
	}
	for name, t := range slideThemes {
		r.slides[name] = t
	}

	for _, name := range sortedKeys(file.Cards) {
		node := file.Cards[name]
		var base CardTheme
		ext, err := extendsOf(&node)
		if err != nil {
			return nil, fmt.Errorf("card theme %q: %w", name, err)
		}
		if ext != "" {
			t, ok := r.cards[ext]
			if !ok {
				return nil, fmt.Errorf("card theme %q extends unknown theme %q", name, ext)
			}
			base = t
		}
		if err := node.Decode(&base); err != nil {
			return nil, fmt.Errorf("card theme %q: %w", name, err)
		}
		if err := base.Validate(); err != nil {
			return nil, fmt.Errorf("card theme %q: %w", name, err)
		}
		if _, exists := r.cards[name]; !exists {
			r.cardNames = append(r.cardNames, name)
		}
		r.cards[name] = base
	}

	for _, name := range sortedKeys(file.Slides) {
		node := file.Slides[name]
		var base SlideTheme
		ext, err := extendsOf(&node)
		if err != nil {
			return nil, fmt.Errorf("slide theme %q: %w", name, err)
		}
		if ext != "" {
			t, ok := r.slides[ext]
			if !ok {
				return nil, fmt.Errorf("slide theme %q extends unknown theme %q", name, ext)
			}
			base = t
		}
		if err := node.Decode(&base); err != nil {
			return nil, fmt.Errorf("slide theme %q: %w", name, err)
		}
		if err := base.Validate(); err != nil {
			return nil, fmt.Errorf("slide theme %q: %w", name, err)
		}
		if _, exists := r.slides[name]; !exists {
			r.slideNames = append(r.slideNames, name)
		}
		r.slides[name] = base
	}

	return r, nil
}

func extendsOf(node *yaml.Node) (string, error) {
	var h extendsHeader
	if err := node.Decode(&h); err != nil {
		return "", err
	}
	return h.Extends, nil
}

func sortedKeys(m map[string]yaml.Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the documented minimal field set of a card theme.
func (t CardTheme) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.TextColor, validation.Required, cssColor),
		validation.Field(&t.BackgroundClass, validation.Required),
		validation.Field(&t.AccentColor, validation.Required, cssColor),
		validation.Field(&t.BorderColor, validation.Required, cssColor),
		validation.Field(&t.SubtleColor, validation.Required, cssColor),
		validation.Field(&t.DecorativeLineColor, validation.Required, cssColor),
		validation.Field(&t.NumberColor, validation.Required, cssColor),
		validation.Field(&t.BackgroundColor, validation.Required, cssColor),
		validation.Field(&t.TitleColor, validation.Required, cssColor),
		validation.Field(&t.TitleFontSize, validation.Required),
		validation.Field(&t.TitleFontWeight, validation.Required),
		validation.Field(&t.DescriptionColor, validation.Required, cssColor),
		validation.Field(&t.DescriptionFontSize, validation.Required),
		validation.Field(&t.SectionTitleColor, validation.Required, cssColor),
		validation.Field(&t.SectionTitleFontSize, validation.Required),
		validation.Field(&t.SectionTitleFontWeight, validation.Required),
		validation.Field(&t.KeyPointColor, validation.Required, cssColor),
		validation.Field(&t.KeyPointFontSize, validation.Required),
		validation.Field(&t.NumberBackgroundColor, validation.Required, cssColor),
		validation.Field(&t.NumberTextColor, validation.Required, cssColor),
		validation.Field(&t.NumberFontWeight, validation.Required),
		validation.Field(&t.DecorativeLineWidth, validation.Required),
		validation.Field(&t.DecorativeLineHeight, validation.Required),
		validation.Field(&t.LinkColor, validation.Required, cssColor),
	)
}

// Validate checks every slide theme field.
func (t SlideTheme) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Background, validation.Required, validation.When(t.Type == BackgroundSolid, cssColor)),
		validation.Field(&t.Type, validation.Required, validation.In(BackgroundSolid, BackgroundGradient)),
		validation.Field(&t.TitleFont, validation.Required),
		validation.Field(&t.TitleWeight, validation.Required),
		validation.Field(&t.TitleTransform, validation.Required, validation.In("uppercase", "none", "capitalize", "lowercase")),
		validation.Field(&t.TextFont, validation.Required),
		validation.Field(&t.TitleColor, validation.Required, cssColor),
		validation.Field(&t.TextColor, validation.Required, cssColor),
		validation.Field(&t.OverlayColor, validation.Required, cssColor),
	)
}

// cssColor rejects malformed hex colours; rgb(), rgba() and named colours
// pass through.
var cssColor = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "#") {
		return nil
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("invalid hex colour %q", s)
	}
	return nil
})
