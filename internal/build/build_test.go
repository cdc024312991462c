package build

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/monakit/monakit/internal/config"
	"github.com/monakit/monakit/internal/logger"
	"github.com/monakit/monakit/internal/share"
	"github.com/monakit/monakit/internal/state"
)

func cardSource(title, date, mermaid string) string {
	return "---\n" +
		"title: " + title + "\n" +
		"pubDate: " + date + "\n" +
		"template: freshNature\n" +
		"---\n\n" +
		"```json\n" +
		`{"title":"` + title + `","description":"d","keyPoints":[],"references":[],"tools":[],"mermaidMarkdown":"` + mermaid + `"}` +
		"\n```\n"
}

func setupSite(t *testing.T) (*config.Config, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := &config.Config{
		ContentDir: filepath.Join(tmpDir, "content"),
		OutputDir:  filepath.Join(tmpDir, "dist"),
	}
	cardsDir := cfg.CardsDir()
	if err := os.MkdirAll(filepath.Join(cardsDir, "go"), 0755); err != nil {
		t.Fatalf("Failed to create cards directory: %v", err)
	}

	files := map[string]string{
		"old.md":         cardSource("Old", "2024-01-01", `mindmap\n  root((Old))\n    A\n      B\n        C`),
		"new.md":         cardSource("New", "2024-03-01", `mindmap\n  root((New))\n    A`),
		"go/middle.md":   cardSource("Middle", "2024-02-01", `mindmap\n  root((Mid))`),
		"draft.md":       "---\ntitle: Draft\npubDate: 2024-01-05\n---\nNo json yet.\n",
		"broken.md":      "---\ntitle: Broken\n---\n",
		"notes.txt":      "ignored",
		"go/another.txt": "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(cardsDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	return cfg, cardsDir
}

func TestBuild(t *testing.T) {
	cfg, cardsDir := setupSite(t)
	st := state.NewState()

	var logBuf bytes.Buffer
	builder := NewBuilder(cfg, st)
	builder.SetLogger(logger.New(&logBuf))

	result, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result.CardsEncoded != 3 || result.CardsReused != 0 {
		t.Errorf("encoded/reused = %d/%d, want 3/0", result.CardsEncoded, result.CardsReused)
	}
	if len(result.Skipped) != 1 || !strings.HasSuffix(result.Skipped[0], "draft.md") {
		t.Errorf("Skipped = %v", result.Skipped)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Error(), "broken.md") {
		t.Errorf("Errors = %v", result.Errors)
	}

	ids := make([]string, len(result.Entries))
	for i, e := range result.Entries {
		ids[i] = e.ID
	}
	if strings.Join(ids, ",") != "new,go/middle,old" {
		t.Errorf("entry order = %v", ids)
	}

	newest := result.Entries[0]
	if newest.Previous != "" || newest.Next != "go/middle" {
		t.Errorf("newest neighbours = %q/%q", newest.Previous, newest.Next)
	}
	if newest.Theme != "freshNature" || newest.Root != "New" || newest.Branches != 1 {
		t.Errorf("unexpected entry: %+v", newest)
	}
	if !strings.HasPrefix(newest.EditURL, share.DefaultBaseURL+"/edit#pako:") {
		t.Errorf("EditURL = %q", newest.EditURL)
	}
	code, err := share.Decode(newest.PakoValue)
	if err != nil || code != "mindmap\n  root((New))\n    A" {
		t.Errorf("decoded pako = %q, %v", code, err)
	}
	if result.Entries[2].Leaves != 1 {
		t.Errorf("old card leaves = %d, want 1", result.Entries[2].Leaves)
	}

	manifest, err := ReadManifest(cfg.ManifestPath())
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if manifest.Run != result.RunID || len(manifest.Cards) != 3 {
		t.Errorf("manifest run=%s cards=%d", manifest.Run, len(manifest.Cards))
	}

	if _, ok := st.Pako(filepath.Join(cardsDir, "old.md")); !ok {
		t.Error("state should cache the pako value of old.md")
	}
	if st.LastBuild.IsZero() {
		t.Error("LastBuild should be set")
	}

	logs := logBuf.String()
	for _, want := range []string{"build started", "card encoded", "file error", "build completed"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestBuildReusesUnchanged(t *testing.T) {
	cfg, cardsDir := setupSite(t)
	st := state.NewState()

	first, err := NewBuilder(cfg, st).Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}

	changed := filepath.Join(cardsDir, "new.md")
	if err := os.WriteFile(changed, []byte(cardSource("New", "2024-03-01", `mindmap\n  root((Newer))`)), 0644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(5 * time.Second)
	if err := os.Chtimes(changed, later, later); err != nil {
		t.Fatal(err)
	}

	second, err := NewBuilder(cfg, st).Build()
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	if second.CardsEncoded != 1 || second.CardsReused != 2 {
		t.Errorf("encoded/reused = %d/%d, want 1/2", second.CardsEncoded, second.CardsReused)
	}
	if second.Entries[0].Root != "Newer" {
		t.Errorf("Root = %q, want Newer", second.Entries[0].Root)
	}
	if second.Entries[2].PakoValue != first.Entries[2].PakoValue {
		t.Error("unchanged card should keep its pako value")
	}
}

func TestBuildPrunesRemovedCards(t *testing.T) {
	cfg, cardsDir := setupSite(t)
	st := state.NewState()

	if _, err := NewBuilder(cfg, st).Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	removed := filepath.Join(cardsDir, "old.md")
	if err := os.Remove(removed); err != nil {
		t.Fatal(err)
	}
	if _, err := NewBuilder(cfg, st).Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := st.Files[removed]; ok {
		t.Error("removed card should be pruned from state")
	}
}

func TestBuildDryRun(t *testing.T) {
	cfg, _ := setupSite(t)
	st := state.NewState()

	builder := NewBuilder(cfg, st)
	builder.SetDryRun(true)
	result, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if result.CardsEncoded != 3 {
		t.Errorf("CardsEncoded = %d, want 3", result.CardsEncoded)
	}
	if _, err := os.Stat(cfg.ManifestPath()); !os.IsNotExist(err) {
		t.Error("dry run should not write the manifest")
	}
	if len(st.Files) != 0 {
		t.Error("dry run should not touch the state")
	}
	if !strings.HasPrefix(result.String(), "Dry run complete: 3 cards encoded") {
		t.Errorf("String() = %q", result.String())
	}
}

func TestBuildMissingCardsDir(t *testing.T) {
	cfg := &config.Config{
		ContentDir: filepath.Join(t.TempDir(), "missing"),
		OutputDir:  t.TempDir(),
	}
	if _, err := NewBuilder(cfg, state.NewState()).Build(); err == nil {
		t.Error("expected error for missing cards directory")
	}
}

func TestScanDirectory(t *testing.T) {
	_, cardsDir := setupSite(t)

	files, err := ScanDirectory(cardsDir, ".md")
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if len(files) != 5 {
		t.Errorf("expected 5 markdown files, got %d: %v", len(files), files)
	}
}

func TestCardID(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/site/cards/go.md", "go"},
		{"/site/cards/lang/rust.md", "lang/rust"},
	}

	for _, tt := range tests {
		if got := cardID("/site/cards", tt.path); got != tt.expected {
			t.Errorf("cardID(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestResultString(t *testing.T) {
	start := time.Now()
	r := &Result{
		CardsEncoded: 2,
		CardsReused:  5,
		Skipped:      []string{"a"},
		StartTime:    start,
		EndTime:      start.Add(1500 * time.Millisecond),
	}

	expected := "Build complete: 2 cards encoded, 5 reused, 1 skipped, 0 errors (took 1.5s)"
	if r.String() != expected {
		t.Errorf("String() = %q, want %q", r.String(), expected)
	}
}
