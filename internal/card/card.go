// Package card reads knowledge card documents: YAML frontmatter followed by a
// markdown body whose first ```json block holds the card content.
package card

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/monakit/monakit/internal/theme"
)

// ErrNoContent is returned when a card body has no ```json block.
var ErrNoContent = errors.New("no card content")

var jsonBlock = regexp.MustCompile("(?s)```json\n(.*?)\n```")

// dateLayouts are the pubDate formats accepted in frontmatter.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2 2006",
	"Jan 02 2006",
	"January 2, 2006",
}

// Date is a frontmatter date that accepts YAML timestamps and date strings.
type Date struct {
	time.Time
}

// UnmarshalYAML parses the scalar with the first matching layout.
func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		var t time.Time
		if terr := unmarshal(&t); terr != nil {
			return err
		}
		d.Time = t
		return nil
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// Meta is the card frontmatter.
type Meta struct {
	Title    string   `yaml:"title" json:"title"`
	Tags     []string `yaml:"tags" json:"tags,omitempty"`
	PubDate  Date     `yaml:"pubDate" json:"pubDate"`
	Template string   `yaml:"template" json:"template"`
}

// Validate checks the required frontmatter fields.
func (m Meta) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.PubDate, validation.By(func(value interface{}) error {
			if d, _ := value.(Date); d.IsZero() {
				return validation.ErrRequired
			}
			return nil
		})),
	)
}

// Link is a titled reference; URL may be empty.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Valid reports whether the link has a usable http(s) URL.
func (l Link) Valid() bool {
	return ValidURL(l.URL)
}

// Article is the structured card content.
type Article struct {
	Title           string   `json:"title"`
	URL             string   `json:"url,omitempty"`
	Description     string   `json:"description"`
	KeyPoints       []string `json:"keyPoints"`
	References      []Link   `json:"references"`
	Tools           []Link   `json:"tools"`
	MermaidMarkdown string   `json:"mermaidMarkdown"`
}

// Document is a parsed card file.
type Document struct {
	Meta    Meta
	Body    []byte
	RawJSON string
	// Article is nil when the body has no json block.
	Article *Article
}

// Parse reads a card file.
func Parse(source []byte) (*Document, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Template == "" {
		meta.Template = theme.DefaultCard
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}

	doc := &Document{Meta: meta, Body: body}

	raw, err := ExtractJSON(body)
	if errors.Is(err, ErrNoContent) {
		return doc, nil
	}

	var article Article
	if err := json.Unmarshal([]byte(raw), &article); err != nil {
		return nil, fmt.Errorf("decode card json: %w", err)
	}
	doc.RawJSON = raw
	doc.Article = &article
	return doc, nil
}

// ExtractJSON returns the contents of the first ```json block in body.
func ExtractJSON(body []byte) (string, error) {
	m := jsonBlock.FindSubmatch(bytes.ReplaceAll(body, []byte("\r\n"), []byte("\n")))
	if m == nil {
		return "", ErrNoContent
	}
	return string(m[1]), nil
}

// ThemeKey returns the card theme named by the template field.
func (d *Document) ThemeKey() string {
	return theme.CardTemplateKey(d.Meta.Template)
}

// Title prefers the frontmatter title over the article's.
func (d *Document) Title() string {
	if d.Meta.Title != "" || d.Article == nil {
		return d.Meta.Title
	}
	return d.Article.Title
}

// ValidURL reports whether s is an absolute http or https URL.
func ValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
