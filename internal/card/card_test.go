package card

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleCard = "---\n" +
	"title: Go Concurrency\n" +
	"tags: [go, concurrency]\n" +
	"pubDate: 2024-03-01\n" +
	"template: Vintage\n" +
	"---\n" +
	"Intro text.\n\n" +
	"```json\n" +
	`{"title":"Go Concurrency","description":"Goroutines **and** channels","keyPoints":["Share memory by communicating","Use <b>context</b>"],` +
	`"references":[{"title":"Effective Go","url":"https://go.dev/doc/effective_go"},{"title":"Book","url":null}],` +
	`"tools":[{"title":"race detector","url":"javascript:alert(1)"}],` +
	`"mermaidMarkdown":"mindmap\n  root((Concurrency))\n    Goroutines\n      Scheduling\n        M:N"}` + "\n" +
	"```\n"

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleCard))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Meta.Title != "Go Concurrency" {
		t.Errorf("Title = %q", doc.Meta.Title)
	}
	if len(doc.Meta.Tags) != 2 || doc.Meta.Tags[1] != "concurrency" {
		t.Errorf("Tags = %v", doc.Meta.Tags)
	}
	if want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC); !doc.Meta.PubDate.Equal(want) {
		t.Errorf("PubDate = %v, want %v", doc.Meta.PubDate, want)
	}
	if doc.ThemeKey() != "vintage" {
		t.Errorf("ThemeKey = %q, want vintage", doc.ThemeKey())
	}

	if doc.Article == nil {
		t.Fatal("expected article")
	}
	if len(doc.Article.KeyPoints) != 2 || doc.Article.References[1].URL != "" {
		t.Errorf("unexpected article: %+v", doc.Article)
	}
	if !strings.HasPrefix(doc.RawJSON, `{"title":"Go Concurrency"`) {
		t.Errorf("RawJSON = %q", doc.RawJSON)
	}
}

func TestParseDefaults(t *testing.T) {
	src := "---\ntitle: Plain\npubDate: \"Jul 08 2022\"\n---\nNo content here.\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Meta.Template != "blackWhite" {
		t.Errorf("Template = %q, want blackWhite", doc.Meta.Template)
	}
	if doc.Meta.PubDate.Year() != 2022 || doc.Meta.PubDate.Month() != time.July {
		t.Errorf("PubDate = %v", doc.Meta.PubDate)
	}
	if doc.Article != nil {
		t.Errorf("expected no article, got %+v", doc.Article)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"missing title", "---\npubDate: 2024-01-01\n---\n", "title"},
		{"missing date", "---\ntitle: x\n---\n", "pubDate"},
		{"bad date", "---\ntitle: x\npubDate: someday\n---\n", "invalid date"},
		{"bad json", "---\ntitle: x\npubDate: 2024-01-01\n---\n```json\n{nope\n```\n", "decode card json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.source))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		err      error
	}{
		{"first block wins", "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```", `{"a":1}`, nil},
		{"multiline", "text\n```json\n{\n  \"a\": 1\n}\n```", "{\n  \"a\": 1\n}", nil},
		{"crlf", "```json\r\n{}\r\n```", "{}", nil},
		{"other language", "```yaml\na: 1\n```", "", ErrNoContent},
		{"empty", "", "", ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON([]byte(tt.body))
			if !errors.Is(err, tt.err) {
				t.Fatalf("error = %v, want %v", err, tt.err)
			}
			if got != tt.expected {
				t.Errorf("ExtractJSON = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://go.dev", true},
		{"http://localhost:8080/x", true},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"/relative/path", false},
		{"", false},
		{"https://", false},
	}

	for _, tt := range tests {
		if got := ValidURL(tt.input); got != tt.expected {
			t.Errorf("ValidURL(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
