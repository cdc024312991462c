package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/monakit/monakit/internal/build"
	"github.com/monakit/monakit/internal/config"
	"github.com/monakit/monakit/internal/styles"
	"github.com/monakit/monakit/internal/tui"
)

// Build performs a one-shot manifest build
func Build(args []string) {
	titleStyle := styles.TitleStyle
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle

	dryRun := hasFlag(args, "--dry-run")

	if dryRun {
		fmt.Println(titleStyle.Render("Monakit Build (DRY RUN)"))
	} else {
		fmt.Println(titleStyle.Render("Monakit Build"))
	}
	fmt.Println()

	cfg := mustLoadConfig()
	st := mustLoadState()

	fmt.Printf("%s → %s\n", dimStyle.Render(cfg.CardsDir()), dimStyle.Render(cfg.ManifestPath()))
	if dryRun {
		fmt.Println(dimStyle.Render("(dry run - nothing will be written)"))
	}
	fmt.Println()

	builder := build.NewBuilder(cfg, st)
	builder.SetDryRun(dryRun)

	log, cleanup := fileLogger(cfg)
	defer cleanup()
	builder.SetLogger(log)

	m := tui.InitBuildModel()
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := builder.Build()

		var summary *tui.BuildSummary
		if result != nil {
			summary = &tui.BuildSummary{
				CardsEncoded: result.CardsEncoded,
				CardsReused:  result.CardsReused,
				Skipped:      len(result.Skipped),
				Errors:       result.Errors,
				Duration:     result.EndTime.Sub(result.StartTime),
				DryRun:       result.DryRun,
			}
		}

		p.Send(tui.BuildMsg{
			Summary: summary,
			Err:     err,
		})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(errorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
	<-done

	if dryRun {
		return
	}

	if err := st.Save(config.StateFilePath()); err != nil {
		fmt.Println(errorStyle.Render("✗ Error saving state: " + err.Error()))
		os.Exit(1)
	}
}
