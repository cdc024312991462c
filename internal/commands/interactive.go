package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/monakit/monakit/internal/build"
	"github.com/monakit/monakit/internal/card"
	"github.com/monakit/monakit/internal/config"
	"github.com/monakit/monakit/internal/mindmap"
	"github.com/monakit/monakit/internal/share"
	"github.com/monakit/monakit/internal/state"
	"github.com/monakit/monakit/internal/styles"
	"github.com/monakit/monakit/internal/tui"
)

// Status displays what the next build would do
func Status() {
	cfg := mustLoadConfig()

	m := tui.InitStatusModel()
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	go func() {
		st, err := state.Load(config.StateFilePath())
		if err != nil {
			p.Send(tui.StatusMsg{Err: fmt.Errorf("error loading state: %w", err)})
			return
		}

		files := scanCards(cfg)
		p.Send(tui.StatusMsg{
			Data: &tui.StatusData{
				ContentDir:   cfg.CardsDir(),
				PublicDir:    cfg.PublicDir,
				OutputDir:    cfg.OutputDir,
				ThemesFile:   cfg.ThemesFile,
				Interval:     cfg.Interval,
				CardCount:    len(files),
				TrackedCount: len(st.Files),
				Pending:      PendingCards(cfg.CardsDir(), files, st),
				LastBuild:    st.LastBuild,
			},
		})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}

// Browse shows all cards in an interactive browser
func Browse() {
	cfg := mustLoadConfig()

	m := tui.InitBrowseModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		data, err := LoadBrowseData(cfg)
		p.Send(tui.BrowseMsg{Data: data, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}

// LoadBrowseData reads every card, preferring the last manifest's share
// values and encoding the rest on the fly
func LoadBrowseData(cfg *config.Config) (*tui.BrowseData, error) {
	cardsDir := cfg.CardsDir()
	files, err := build.ScanDirectory(cardsDir, ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to scan cards directory: %w", err)
	}

	known := map[string]string{}
	if manifest, err := build.ReadManifest(cfg.ManifestPath()); err == nil {
		for _, e := range manifest.Cards {
			known[e.ID] = e.EditURL
		}
	}

	encoder := share.DefaultEncoder()
	data := &tui.BrowseData{}
	for _, path := range files {
		rel, _ := filepath.Rel(cardsDir, path)
		info := tui.CardInfo{ID: rel, Title: filepath.Base(path)}

		content, err := os.ReadFile(path)
		if err != nil {
			info.Problem = err.Error()
			data.Cards = append(data.Cards, info)
			continue
		}

		doc, err := card.Parse(content)
		if err != nil {
			info.Problem = err.Error()
			data.Cards = append(data.Cards, info)
			continue
		}

		info.Title = doc.Title()
		info.Theme = doc.ThemeKey()
		info.PubDate = doc.Meta.PubDate.Format("2006-01-02")

		if doc.Article == nil {
			info.Problem = card.ErrNoContent.Error()
			data.Cards = append(data.Cards, info)
			continue
		}

		id := filepath.ToSlash(rel[:len(rel)-len(filepath.Ext(rel))])
		if edit, ok := known[id]; ok {
			info.EditURL = edit
			info.Tree = mindmap.Parse(mindmap.Normalize(doc.Article.MermaidMarkdown))
		} else if res := encoder.TryEncode(doc.Article.MermaidMarkdown); res != nil {
			info.EditURL = share.EditURL(cfg.ShareBaseURL, res.PakoValue)
			info.Tree = res.StructureText
		}
		info.ID = id
		data.Cards = append(data.Cards, info)
	}

	return data, nil
}
