package card

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/monakit/monakit/internal/mindmap"
	"github.com/monakit/monakit/internal/share"
	"github.com/monakit/monakit/internal/theme"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

// RenderOptions controls Render. A nil Painter paints over the builtin
// themes without images; a nil Share derives the structure from the
// article and omits the share link.
type RenderOptions struct {
	Painter *theme.Painter
	Share   *share.Result
	BaseURL string
}

type cardView struct {
	Class       string
	Style       template.CSS
	Title       string
	Description template.HTML
	KeyPoints   []template.HTML
	References  []Link
	Tools       []Link
	Tree        mindmap.Tree
	EditURL     string
	ViewURL     string
}

var cardTemplate = template.Must(template.New("card").Funcs(template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"dict": dict,
}).Parse(`<article class="knowledge-card {{.Class}}" style="{{.Style}}">
  <header>
    <h1 class="card-title">{{.Title}}</h1>
    <div class="card-description">{{.Description}}</div>
  </header>
{{- if .KeyPoints}}
  <section class="card-key-points">
    <ol>
{{- range $i, $p := .KeyPoints}}
      <li><span class="card-number">{{inc $i}}</span>{{$p}}</li>
{{- end}}
    </ol>
  </section>
{{- end}}
{{- if .Tree.Root}}
  <section class="card-structure">
    <h2>{{.Tree.Root}}</h2>
    <ul>
{{- range .Tree.Branches}}
      <li>{{.Title}}
{{- if .SubBranches}}
        <ul>
{{- range .SubBranches}}
          <li>{{.Title}}{{if .Leaves}}<ul>{{range .Leaves}}<li>{{.}}</li>{{end}}</ul>{{end}}</li>
{{- end}}
        </ul>
{{- end}}
      </li>
{{- end}}
    </ul>
  </section>
{{- end}}
{{- template "links" (dict "Class" "card-references" "Links" .References)}}
{{- template "links" (dict "Class" "card-tools" "Links" .Tools)}}
{{- if .EditURL}}
  <footer class="card-share">
    <a href="{{.EditURL}}" target="_blank" rel="noopener noreferrer">Edit mindmap</a>
    <a href="{{.ViewURL}}" target="_blank" rel="noopener noreferrer">View mindmap</a>
  </footer>
{{- end}}
</article>
{{define "links"}}
{{- if .Links}}
  <section class="{{.Class}}">
    <ul>
{{- range .Links}}
      <li>{{if .Valid}}<a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Title}}</a>{{else}}{{.Title}}{{end}}</li>
{{- end}}
    </ul>
  </section>
{{- end}}
{{- end}}`))

func dict(pairs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return m
}

// Render writes doc as a themed, self-contained HTML fragment.
func Render(ctx context.Context, w io.Writer, doc *Document, opts RenderOptions) error {
	if doc.Article == nil {
		return ErrNoContent
	}

	painter := opts.Painter
	if painter == nil {
		painter = theme.NewPainter(nil, nil)
	}
	src := theme.CardName(doc.ThemeKey())
	vars := painter.Registry().CardVariables(src)
	paint := painter.CardBackground(ctx, src)

	a := doc.Article
	view := cardView{
		Class:       vars.Map()["--card-background-class"],
		Style:       styleAttr(vars, paint),
		Title:       doc.Title(),
		Description: inlineMarkdown(a.Description),
		References:  a.References,
		Tools:       a.Tools,
	}
	for _, p := range a.KeyPoints {
		view.KeyPoints = append(view.KeyPoints, inlineMarkdown(p))
	}

	if opts.Share != nil {
		view.Tree = opts.Share.StructureText
		view.EditURL = share.EditURL(opts.BaseURL, opts.Share.PakoValue)
		view.ViewURL = share.ViewURL(opts.BaseURL, opts.Share.PakoValue)
	} else {
		view.Tree = mindmap.Parse(mindmap.Normalize(a.MermaidMarkdown))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return cardTemplate.Execute(w, view)
}

// inlineMarkdown renders md and sanitizes the result. Single-paragraph
// output loses its <p> wrapper.
func inlineMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	out := strings.TrimSpace(policy.Sanitize(buf.String()))
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

// styleAttr joins the CSS variables and background paint into a style
// attribute value.
func styleAttr(vars theme.Variables, paint map[string]string) template.CSS {
	var decls []string
	for _, v := range vars {
		if v.Value != "" {
			decls = append(decls, v.Name+": "+v.Value)
		}
	}

	keys := make([]string, 0, len(paint))
	for k := range paint {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		decls = append(decls, kebab(k)+": "+paint[k])
	}
	return template.CSS(strings.Join(decls, "; "))
}

// kebab converts a camelCase style property to its CSS name.
func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
