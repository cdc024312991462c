// Package build turns the card collection into a share manifest: one entry
// per card with its encoded mindmap, editor links and neighbours.
package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/monakit/monakit/internal/card"
	"github.com/monakit/monakit/internal/config"
	"github.com/monakit/monakit/internal/listing"
	"github.com/monakit/monakit/internal/logger"
	"github.com/monakit/monakit/internal/mindmap"
	"github.com/monakit/monakit/internal/share"
	"github.com/monakit/monakit/internal/state"
)

// Builder scans card files and writes the share manifest
type Builder struct {
	config  *config.Config
	state   *state.State
	encoder *share.Encoder
	log     *logger.Logger
	dryRun  bool
}

// NewBuilder creates a new builder instance
func NewBuilder(cfg *config.Config, st *state.State) *Builder {
	return &Builder{
		config:  cfg,
		state:   st,
		encoder: share.DefaultEncoder(),
		log:     logger.Discard(),
	}
}

// SetLogger sets the logger for the builder
func (b *Builder) SetLogger(l *logger.Logger) {
	b.log = logger.OrDiscard(l)
	b.encoder.SetLogger(b.log)
}

// SetDryRun makes Build report what it would do without writing the
// manifest or touching the state
func (b *Builder) SetDryRun(dryRun bool) {
	b.dryRun = dryRun
}

// Entry is one card in the share manifest
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags,omitempty"`
	PubDate   time.Time `json:"pubDate"`
	Template  string    `json:"template"`
	Theme     string    `json:"theme"`
	PakoValue string    `json:"pakoValue"`
	EditURL   string    `json:"editUrl"`
	ViewURL   string    `json:"viewUrl"`
	Root      string    `json:"root"`
	Branches  int       `json:"branches"`
	Leaves    int       `json:"leaves"`
	Previous  string    `json:"previous,omitempty"`
	Next      string    `json:"next,omitempty"`
}

// Manifest is the file written to <output_dir>/share.json
type Manifest struct {
	Run         string    `json:"run"`
	GeneratedAt time.Time `json:"generatedAt"`
	Cards       []Entry   `json:"cards"`
}

// Result represents the result of a build
type Result struct {
	RunID        string
	CardsEncoded int
	CardsReused  int
	Skipped      []string
	Errors       []error
	Entries      []Entry
	ManifestPath string
	DryRun       bool
	StartTime    time.Time
	EndTime      time.Time
}

// Build scans the cards directory, encodes changed cards and writes the
// manifest. Per-card failures are collected in the result.
func (b *Builder) Build() (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		DryRun:    b.dryRun,
		StartTime: time.Now(),
	}
	b.log.BuildStarted(result.RunID, b.config.ContentDir)

	cardsDir := b.config.CardsDir()
	files, err := ScanDirectory(cardsDir, ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to scan cards directory: %w", err)
	}

	seen := make(map[string]bool, len(files))
	for _, path := range files {
		seen[path] = true

		entry, reused, err := b.processCard(cardsDir, path)
		switch {
		case errors.Is(err, card.ErrNoContent):
			result.Skipped = append(result.Skipped, path)
			b.log.Skipped(path, "no card content")
			continue
		case err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
			b.log.FileError(path, err)
			continue
		}

		if reused {
			result.CardsReused++
		} else {
			result.CardsEncoded++
		}
		result.Entries = append(result.Entries, *entry)
	}

	link(result.Entries)

	if !b.dryRun {
		for _, path := range b.state.Prune(seen) {
			b.log.Debug("card removed", "file", path)
		}

		result.ManifestPath = b.config.ManifestPath()
		manifest := Manifest{
			Run:         result.RunID,
			GeneratedAt: result.StartTime.UTC(),
			Cards:       result.Entries,
		}
		if err := WriteManifest(result.ManifestPath, manifest); err != nil {
			return nil, err
		}
		b.state.LastBuild = result.StartTime
	}

	result.EndTime = time.Now()
	b.log.BuildCompleted(result.RunID, result.CardsEncoded, result.CardsReused,
		len(result.Errors), result.EndTime.Sub(result.StartTime))

	return result, nil
}

// processCard parses one card and encodes its mindmap unless the state
// holds a value for the unchanged file
func (b *Builder) processCard(cardsDir, path string) (*Entry, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	doc, err := card.Parse(data)
	if err != nil {
		return nil, false, err
	}
	if doc.Article == nil {
		return nil, false, card.ErrNoContent
	}

	changed, err := b.state.HasChanged(path)
	if err != nil {
		return nil, false, err
	}

	var tree mindmap.Tree
	pako, cached := b.state.Pako(path)
	reused := cached && !changed
	if reused {
		tree = mindmap.Parse(mindmap.Normalize(doc.Article.MermaidMarkdown))
	} else {
		res, err := b.encoder.Encode(doc.Article.MermaidMarkdown)
		if err != nil {
			return nil, false, fmt.Errorf("encode mindmap: %w", err)
		}
		pako = res.PakoValue
		tree = res.StructureText
		b.log.CardEncoded(path, len(pako))

		if !b.dryRun {
			if err := b.state.Update(path, pako); err != nil {
				return nil, false, fmt.Errorf("update state: %w", err)
			}
		}
	}

	return &Entry{
		ID:        cardID(cardsDir, path),
		Title:     doc.Title(),
		Tags:      doc.Meta.Tags,
		PubDate:   doc.Meta.PubDate.Time,
		Template:  doc.Meta.Template,
		Theme:     doc.ThemeKey(),
		PakoValue: pako,
		EditURL:   share.EditURL(b.config.ShareBaseURL, pako),
		ViewURL:   share.ViewURL(b.config.ShareBaseURL, pako),
		Root:      tree.Root,
		Branches:  len(tree.Branches),
		Leaves:    tree.LeafCount(),
	}, reused, nil
}

// link orders entries newest-first and fills in their neighbours
func link(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PubDate.After(entries[j].PubDate)
	})

	index := make([]listing.Entry, len(entries))
	for i, e := range entries {
		index[i] = listing.Entry{ID: e.ID, Title: e.Title, PubDate: e.PubDate}
	}

	for i := range entries {
		n := listing.Adjacent(index, entries[i].ID)
		if n.Previous != nil {
			entries[i].Previous = n.Previous.ID
		}
		if n.Next != nil {
			entries[i].Next = n.Next.ID
		}
	}
}

// cardID is the card's path below the cards directory without extension
func cardID(cardsDir, path string) string {
	rel, err := filepath.Rel(cardsDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}

// WriteManifest writes the manifest as indented JSON, replacing any
// previous file atomically
func WriteManifest(path string, m Manifest) error {
	if m.Cards == nil {
		m.Cards = []Entry{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// ReadManifest loads a manifest written by Build
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// ScanDirectory scans a directory for files with given extension
func ScanDirectory(dir string, ext string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// String returns a human-readable summary of the build result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	prefix := "Build complete"
	if r.DryRun {
		prefix = "Dry run complete"
	}
	return fmt.Sprintf(
		"%s: %d cards encoded, %d reused, %d skipped, %d errors (took %v)",
		prefix,
		r.CardsEncoded,
		r.CardsReused,
		len(r.Skipped),
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
