package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/monakit/monakit/internal/build"
	"github.com/monakit/monakit/internal/config"
	"github.com/monakit/monakit/internal/daemon"
	"github.com/monakit/monakit/internal/logger"
	"github.com/monakit/monakit/internal/state"
	"github.com/monakit/monakit/internal/styles"
	"github.com/monakit/monakit/internal/tui"
)

// Start starts the daemon in background mode
func Start(args []string) {
	successStyle := styles.SuccessStyle
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle

	if info, running := daemon.IsRunning(); running {
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Daemon already running with PID %d", info.PID)))
		os.Exit(1)
	}

	if _, err := parseInterval(args, 0); err != nil {
		fail("Error", err)
	}

	daemonArgs := []string{"daemon"}
	if interval := flagValue(args, "--interval"); interval != "" {
		daemonArgs = append(daemonArgs, "--interval", interval)
	}

	if err := daemon.Daemonize(daemonArgs); err != nil {
		fmt.Println(errorStyle.Render("✗ Failed to start daemon: " + err.Error()))
		os.Exit(1)
	}

	// Give it a moment to start
	time.Sleep(500 * time.Millisecond)

	if info, running := daemon.IsRunning(); running {
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Daemon started with PID %d, building every %v", info.PID, info.Interval)))
		fmt.Println(dimStyle.Render("  Run 'monakit dashboard' to monitor the daemon"))
	} else {
		fmt.Println(errorStyle.Render("✗ Daemon failed to start"))
		os.Exit(1)
	}
}

// Stop stops the running daemon
func Stop() {
	successStyle := styles.SuccessStyle
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle

	info, running := daemon.IsRunning()
	if !running {
		fmt.Println(dimStyle.Render("Daemon is not running"))
		return
	}

	fmt.Printf("Stopping daemon (PID %d)...\n", info.PID)

	if err := daemon.Stop(); err != nil {
		fmt.Println(errorStyle.Render("✗ Failed to stop daemon: " + err.Error()))
		os.Exit(1)
	}

	for i := 0; i < 10; i++ {
		time.Sleep(500 * time.Millisecond)
		_, running = daemon.IsRunning()
		if !running {
			break
		}
	}

	if running {
		fmt.Println(errorStyle.Render("✗ Daemon did not stop gracefully"))
		os.Exit(1)
	}

	fmt.Println(successStyle.Render("✓ Daemon stopped"))
}

// Daemon runs the watch loop headless until SIGTERM or SIGINT. This is what
// Start and the installed service launch.
func Daemon(args []string) {
	cfg, st := loadWatchSetup(args)

	if err := daemon.WritePID(pidInfo(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing PID file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := daemon.RemovePID(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove PID file on shutdown: %v\n", err)
		}
	}()

	log, cleanup := fileLogger(cfg)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := runWatchLoop(ctx, cfg, st, log); err != nil {
		log.Error("watch loop failed", "error", err)
		os.Exit(1)
	}
	log.Info("daemon shutdown complete")
}

// Watch runs the watch loop in the foreground with the dashboard
func Watch(args []string) {
	cfg, st := loadWatchSetup(args)

	if err := daemon.WritePID(pidInfo(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing PID file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := daemon.RemovePID(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove PID file on shutdown: %v\n", err)
		}
	}()

	log, cleanup := fileLogger(cfg)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatchLoop(ctx, cfg, st, log)
	}()

	p := tea.NewProgram(tui.InitDaemonModel(dashboardRefresh(cfg)), tea.WithInput(os.Stdin))
	_, runErr := p.Run()

	// TUI exited, stop the watch loop gracefully
	cancel()
	if err := <-done; err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Watch failed: " + err.Error()))
		os.Exit(1)
	}
	if runErr != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + runErr.Error()))
		os.Exit(1)
	}
	log.Info("watch stopped")
}

// Dashboard monitors a running daemon
func Dashboard() {
	cfg := mustLoadConfig()

	p := tea.NewProgram(tui.InitDaemonModel(dashboardRefresh(cfg)), tea.WithInput(os.Stdin))
	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}

// dashboardRefresh gathers daemon status and the log tail
func dashboardRefresh(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		info, running := daemon.IsRunning()

		data := &tui.DaemonData{
			Running:   running,
			PID:       info.PID,
			StartTime: info.Started,
			Interval:  info.Interval,
		}

		if running && cfg.LogFile != "" {
			activity := ParseLogFile(cfg.LogFile, 20)
			data.LogLines = activity.Lines
			data.LastBuildTime = activity.LastBuild
			data.CardsEncoded = activity.CardsEncoded
			data.Errors = activity.Errors
		}

		return tui.DaemonMsg{Data: data}
	}
}

// pidInfo describes this watcher for the dashboard
func pidInfo(cfg *config.Config) daemon.Info {
	return daemon.Info{
		Interval: cfg.Interval,
		Config:   config.ConfigPath(),
	}
}

func loadWatchSetup(args []string) (*config.Config, *state.State) {
	cfg := mustLoadConfig()

	interval, err := parseInterval(args, cfg.Interval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Interval = interval

	if err := os.MkdirAll(cfg.CardsDir(), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating cards directory: %v\n", err)
		os.Exit(1)
	}

	return cfg, mustLoadState()
}

// runWatchLoop rebuilds the manifest on start, on card changes and on every
// interval tick, saving the state after each build
func runWatchLoop(ctx context.Context, cfg *config.Config, st *state.State, log *logger.Logger) error {
	log.Info("daemon started",
		"pid", os.Getpid(),
		"interval", cfg.Interval)
	log.ConfigLoaded(cfg.ContentDir, cfg.OutputDir, cfg.Interval)

	builder := build.NewBuilder(cfg, st)
	builder.SetLogger(log)

	w := &daemon.Watcher{
		Dir:      cfg.CardsDir(),
		Interval: cfg.Interval,
		Log:      log,
	}

	err := w.Run(ctx, func(trigger daemon.Trigger) {
		log.Debug("build triggered", "trigger", trigger)
		if _, err := builder.Build(); err != nil {
			log.Error("build failed", "error", err)
			return
		}
		if err := st.Save(config.StateFilePath()); err != nil {
			log.Error("failed to save state", "error", err)
		}
	})

	if saveErr := st.Save(config.StateFilePath()); saveErr != nil {
		log.Error("failed to save state on shutdown", "error", saveErr)
	}
	return err
}
