package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/monakit/monakit/internal/logger"
)

// ErrAssetNotFound is returned by an AssetResolver when no asset exists for
// the requested key.
var ErrAssetNotFound = errors.New("asset not found")

// AssetResolver turns a public asset path (e.g. "cards/vintage.png") into a
// URL the renderer can inline, typically a data URI.
type AssetResolver interface {
	Resolve(ctx context.Context, key string) (string, error)
}

// Painter derives background paint from card themes.
type Painter struct {
	registry *Registry
	assets   AssetResolver
	log      *logger.Logger
}

// NewPainter creates a painter over the builtin themes. assets may be nil, in
// which case every background image counts as missing.
func NewPainter(assets AssetResolver, log *logger.Logger) *Painter {
	return builtin.NewPainter(assets, log)
}

// NewPainter creates a painter over the registry's themes.
func (r *Registry) NewPainter(assets AssetResolver, log *logger.Logger) *Painter {
	return &Painter{
		registry: r,
		assets:   assets,
		log:      logger.OrDiscard(log),
	}
}

// Registry returns the themes the painter resolves against.
func (p *Painter) Registry() *Registry {
	return p.registry
}

// AssetKey maps a theme's background image to the inlinable asset key: the
// leading slash is dropped and .webp images resolve to their .png twin.
func AssetKey(image string) string {
	key := strings.TrimPrefix(image, "/")
	if strings.HasSuffix(key, ".webp") {
		key = strings.TrimSuffix(key, ".webp") + ".png"
	}
	return key
}

// CardBackground returns the style properties painting a card's background.
//
// A background image wins when its asset resolves. A missing asset yields no
// paint at all, not the solid colour. Any other asset error is logged and
// the gradient or colour rules apply.
func (p *Painter) CardBackground(ctx context.Context, src CardSource) map[string]string {
	t := p.registry.Card(src)

	if t.BackgroundImage != "" {
		key := AssetKey(t.BackgroundImage)
		uri, err := p.resolve(ctx, key)
		switch {
		case err == nil:
			return map[string]string{
				"backgroundImage":    fmt.Sprintf("url(%q)", uri),
				"backgroundSize":     "100% 100%",
				"backgroundPosition": "center",
				"position":           "relative",
				"backgroundRepeat":   "no-repeat",
				"backdropFilter":     "blur(4px) saturate(1.2)",
			}
		case errors.Is(err, ErrAssetNotFound):
			p.log.AssetMissing(key)
			return map[string]string{}
		default:
			p.log.AssetFailed(key, err)
		}
	}

	if t.Gradient != "" {
		return map[string]string{
			"backgroundImage": t.Gradient,
			"position":        "relative",
		}
	}

	color := t.BackgroundColor
	if color == "" {
		color = "#ffffff"
	}
	return map[string]string{
		"backgroundColor": color,
		"position":        "relative",
	}
}

func (p *Painter) resolve(ctx context.Context, key string) (string, error) {
	if p.assets == nil {
		return "", ErrAssetNotFound
	}
	return p.assets.Resolve(ctx, key)
}
