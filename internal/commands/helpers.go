package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/monakit/monakit/internal/build"
	"github.com/monakit/monakit/internal/config"
	"github.com/monakit/monakit/internal/logger"
	"github.com/monakit/monakit/internal/state"
	"github.com/monakit/monakit/internal/styles"
	"github.com/monakit/monakit/internal/tui"
)

// BuildActivity is what the dashboard learns from the log tail
type BuildActivity struct {
	Lines        []string
	LastBuild    time.Time
	CardsEncoded int
	Errors       int
}

// ParseLogFile reads the last N lines from the log file and extracts the
// most recent build summary
func ParseLogFile(logPath string, maxLines int) BuildActivity {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return BuildActivity{Lines: []string{"Unable to read log file"}}
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	activity := BuildActivity{Lines: lines[startIdx:]}

	for i := len(activity.Lines) - 1; i >= 0; i-- {
		line := activity.Lines[i]
		if !strings.Contains(line, "build completed") {
			continue
		}

		// Format: 2025-11-27 14:11:57 INFO build completed run=... cards_encoded=3
		if len(line) > 19 {
			if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
				activity.LastBuild = t
			}
		}
		if idx := strings.Index(line, "cards_encoded="); idx != -1 {
			_, _ = fmt.Sscanf(line[idx:], "cards_encoded=%d", &activity.CardsEncoded) //nolint:errcheck // best effort parsing
		}
		if idx := strings.Index(line, " errors="); idx != -1 {
			_, _ = fmt.Sscanf(line[idx+1:], "errors=%d", &activity.Errors) //nolint:errcheck // best effort parsing
		}
		break
	}

	return activity
}

// PendingCards compares the cards on disk with the build state
func PendingCards(cardsDir string, files []string, st *state.State) []tui.PendingCard {
	var pending []tui.PendingCard
	onDisk := make(map[string]bool, len(files))

	for _, path := range files {
		onDisk[path] = true

		kind := tui.PendingChanged
		if _, tracked := st.Files[path]; !tracked {
			kind = tui.PendingNew
		} else if changed, err := st.HasChanged(path); err != nil || !changed {
			continue
		}
		pending = append(pending, tui.PendingCard{Path: relPath(cardsDir, path), Kind: kind})
	}

	for path := range st.Files {
		if !onDisk[path] {
			pending = append(pending, tui.PendingCard{Path: relPath(cardsDir, path), Kind: tui.PendingRemoved})
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Path < pending[j].Path
	})
	return pending
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

// mustLoadConfig loads the configuration or exits
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}
	return cfg
}

// mustLoadState loads the build state or exits
func mustLoadState() *state.State {
	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fail("Error loading state", err)
	}
	return st
}

// fileLogger opens the configured log file, falling back to a discarding
// logger when none is configured or it cannot be opened
func fileLogger(cfg *config.Config) (*logger.Logger, func()) {
	if cfg.LogFile == "" {
		return logger.Discard(), func() {}
	}
	l, cleanup, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return logger.Discard(), func() {}
	}
	return l, cleanup
}

// readInput reads a file, or stdin when name is "-"
func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// parseInterval returns the --interval flag value, or def when absent
func parseInterval(args []string, def time.Duration) (time.Duration, error) {
	for i, arg := range args {
		if arg == "--interval" && i+1 < len(args) {
			d, err := time.ParseDuration(args[i+1])
			if err != nil {
				return 0, fmt.Errorf("invalid interval: %w", err)
			}
			if d <= 0 {
				return 0, fmt.Errorf("invalid interval: must be positive")
			}
			return d, nil
		}
	}
	return def, nil
}

func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

// valueFlags take the following argument as their value
var valueFlags = map[string]bool{
	"--interval": true,
	"--out":      true,
	"--page":     true,
	"--limit":    true,
}

// positional returns the arguments that are not flags or flag values
func positional(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		switch {
		case valueFlags[args[i]]:
			i++
		case strings.HasPrefix(args[i], "--"):
		default:
			out = append(out, args[i])
		}
	}
	return out
}

func fail(msg string, err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg+": "+err.Error()))
	os.Exit(1)
}

// scanCards lists card files, treating a missing directory as empty
func scanCards(cfg *config.Config) []string {
	files, err := build.ScanDirectory(cfg.CardsDir(), ".md")
	if err != nil {
		return nil
	}
	return files
}
