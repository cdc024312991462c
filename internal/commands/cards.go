package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/monakit/monakit/internal/assets"
	"github.com/monakit/monakit/internal/card"
	"github.com/monakit/monakit/internal/diff"
	"github.com/monakit/monakit/internal/mindmap"
	"github.com/monakit/monakit/internal/share"
	"github.com/monakit/monakit/internal/styles"
	"github.com/monakit/monakit/internal/theme"
	"github.com/monakit/monakit/internal/tui"
)

// Encode prints the share value and links for a mindmap. The input is a
// card file, raw mindmap text, or "-" for stdin.
func Encode(args []string) {
	pos := positional(args)
	if len(pos) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input file specified")
		os.Exit(1)
	}

	text, err := mindmapSource(pos[0])
	if err != nil {
		fail("Error reading input", err)
	}

	cfg := mustLoadConfig()
	res, err := share.DefaultEncoder().Encode(text)
	if err != nil {
		fail("Encoding failed", err)
	}

	if hasFlag(args, "--json") {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fail("Encoding failed", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Println(res.PakoValue)
	fmt.Println()
	fmt.Println(styles.DimStyle.Render("edit: ") + styles.LinkStyle.Render(share.EditURL(cfg.ShareBaseURL, res.PakoValue)))
	fmt.Println(styles.DimStyle.Render("view: ") + styles.LinkStyle.Render(share.ViewURL(cfg.ShareBaseURL, res.PakoValue)))
}

// Decode prints the mindmap text carried by a share value
func Decode(args []string) {
	pos := positional(args)
	if len(pos) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No share value specified")
		os.Exit(1)
	}

	text, err := share.Decode(pos[0])
	if err != nil {
		fail("Decoding failed", err)
	}
	fmt.Println(text)
}

// Tree prints the parsed structure of a card's mindmap
func Tree(args []string) {
	pos := positional(args)
	if len(pos) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input file specified")
		os.Exit(1)
	}

	text, err := mindmapSource(pos[0])
	if err != nil {
		fail("Error reading input", err)
	}

	tree := mindmap.Parse(mindmap.Normalize(text))
	if hasFlag(args, "--json") {
		out, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			fail("Error", err)
		}
		fmt.Println(string(out))
		return
	}
	fmt.Print(tui.RenderTree(tree))
}

// Diff shows what normalization removes from a card's mindmap
func Diff(args []string) {
	pos := positional(args)
	if len(pos) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No card file specified")
		os.Exit(1)
	}

	unified, err := diff.Normalization(pos[0])
	if err != nil {
		fail("Error", err)
	}
	if unified == "" {
		fmt.Println(styles.SuccessStyle.Render("✓ Mindmap is already normalized"))
		return
	}

	if hasFlag(args, "--plain") {
		fmt.Print(unified)
		return
	}
	fmt.Print(diff.Render(unified))
}

// Render writes a card as a themed HTML fragment to stdout or --out
func Render(args []string) {
	pos := positional(args)
	if len(pos) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No card file specified")
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	log, cleanup := fileLogger(cfg)
	defer cleanup()

	data, err := os.ReadFile(pos[0])
	if err != nil {
		fail("Error reading card", err)
	}
	doc, err := card.Parse(data)
	if err != nil {
		fail("Error parsing card", err)
	}

	registry, err := theme.LoadRegistry(cfg.ThemesFile)
	if err != nil {
		fail("Error loading themes", err)
	}

	opts := card.RenderOptions{
		Painter: registry.NewPainter(assets.NewInliner(os.DirFS(cfg.PublicDir)), log),
		BaseURL: cfg.ShareBaseURL,
	}
	if doc.Article != nil {
		encoder := share.DefaultEncoder()
		encoder.SetLogger(log)
		opts.Share = encoder.TryEncode(doc.Article.MermaidMarkdown)
	}

	w := os.Stdout
	if out := flagValue(args, "--out"); out != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			fail("Error creating output directory", err)
		}
		f, err := os.Create(out)
		if err != nil {
			fail("Error creating output file", err)
		}
		defer f.Close()
		w = f
	}

	if err := card.Render(context.Background(), w, doc, opts); err != nil {
		if errors.Is(err, card.ErrNoContent) {
			fmt.Fprintln(os.Stderr, styles.WarningStyle.Render("⚠ Card has no json block, nothing to render"))
			os.Exit(1)
		}
		fail("Error rendering card", err)
	}
}

// mindmapSource returns the mindmap text of a card file, or the input itself
// when it holds no card
func mindmapSource(name string) (string, error) {
	data, err := readInput(name)
	if err != nil {
		return "", err
	}

	doc, err := card.Parse(data)
	if err == nil && doc.Article != nil {
		return doc.Article.MermaidMarkdown, nil
	}
	return string(data), nil
}

// flagValue returns the value following flag, or ""
func flagValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
