package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/monakit/monakit/internal/build"
	"github.com/monakit/monakit/internal/listing"
	"github.com/monakit/monakit/internal/styles"
)

// List prints one page of the share manifest written by the last build
func List(args []string) {
	cfg := mustLoadConfig()

	page, err := intFlag(args, "--page", 1)
	if err != nil {
		fail("Error", err)
	}
	limit, err := intFlag(args, "--limit", listing.DefaultLimit)
	if err != nil {
		fail("Error", err)
	}

	manifest, err := build.ReadManifest(cfg.ManifestPath())
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Println(styles.DimStyle.Render("No manifest yet. Run 'monakit build' first."))
		return
	}
	if err != nil {
		fail("Error reading manifest", err)
	}

	p := listing.Paginate(manifest.Cards, page, limit)
	if hasFlag(args, "--json") {
		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			fail("Error encoding page", err)
		}
		fmt.Println(string(out))
		return
	}
	fmt.Print(FormatPage(p))
}

// FormatPage renders a manifest page as a table with a page footer
func FormatPage(p listing.Page[build.Entry]) string {
	var b strings.Builder
	if p.Total == 0 {
		b.WriteString(styles.DimStyle.Render("No cards in manifest") + "\n")
		return b.String()
	}

	for _, e := range p.Items {
		date := "-"
		if !e.PubDate.IsZero() {
			date = e.PubDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "  %-10s %-28s %s  %s\n",
			date,
			e.ID,
			e.Title,
			styles.DimStyle.Render(e.Theme))
	}

	footer := fmt.Sprintf("Page %d of %d, %d card(s)", p.Page, max(p.TotalPages, 1), p.Total)
	if p.HasMore {
		footer += fmt.Sprintf(", next: --page %d", p.Page+1)
	}
	b.WriteString("\n" + styles.DimStyle.Render(footer) + "\n")
	return b.String()
}

// intFlag returns the integer value following flag, or def when absent
func intFlag(args []string, flag string, def int) (int, error) {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return 0, fmt.Errorf("invalid %s: %q", flag, args[i+1])
			}
			return n, nil
		}
	}
	return def, nil
}
