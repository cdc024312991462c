// Package daemon manages the background watcher process and its rebuild
// loop.
package daemon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// PIDFile returns the path to the daemon PID file
// Can be overridden for testing
var PIDFile = func() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "monakit", "daemon.pid")
}

// ErrNotRunning is returned when no live watcher owns the PID file
var ErrNotRunning = errors.New("daemon is not running")

// Info is the record a watcher leaves in its PID file
type Info struct {
	PID      int           `yaml:"pid"`
	Interval time.Duration `yaml:"interval,omitempty"`
	Config   string        `yaml:"config,omitempty"`
	Started  time.Time     `yaml:"started"`
}

// WritePID records the current process in the PID file. PID and Started
// are filled in when left zero.
func WritePID(info Info) error {
	if info.PID == 0 {
		info.PID = os.Getpid()
	}
	if info.Started.IsZero() {
		info.Started = time.Now()
	}

	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode PID file: %w", err)
	}

	path := PIDFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// ReadInfo loads the PID file. A file holding only a process id is
// accepted, with Started taken from its modification time.
func ReadInfo() (Info, error) {
	path := PIDFile()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, fmt.Errorf("%w (PID file not found)", ErrNotRunning)
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to read PID file: %w", err)
	}

	if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
		info := Info{PID: pid}
		if st, err := os.Stat(path); err == nil {
			info.Started = st.ModTime()
		}
		return info, nil
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("invalid PID file: %w", err)
	}
	if info.PID <= 0 {
		return Info{}, fmt.Errorf("invalid PID in file: %d", info.PID)
	}
	return info, nil
}

// ReadPID returns the process id from the PID file
func ReadPID() (int, error) {
	info, err := ReadInfo()
	return info.PID, err
}

// RemovePID removes the PID file
func RemovePID() error {
	if err := os.Remove(PIDFile()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// IsRunning reports whether the process named in the PID file is alive.
// A PID file left by a dead process is removed.
func IsRunning() (Info, bool) {
	info, err := ReadInfo()
	if err != nil {
		return Info{}, false
	}

	if !alive(info.PID) {
		if err := RemovePID(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove stale PID file: %v\n", err)
		}
		return Info{}, false
	}
	return info, true
}

// alive sends signal 0, which checks the process without touching it
func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

// Stop asks the running watcher to shut down with SIGTERM
func Stop() error {
	info, running := IsRunning()
	if !running {
		return ErrNotRunning
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}
	return nil
}

// Daemonize re-executes the binary with args in a new session, detached
// from the terminal
func Daemonize(args []string) error {
	if info, running := IsRunning(); running {
		return fmt.Errorf("daemon already running with PID %d", info.PID)
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	cmd := exec.Command(executable, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	return cmd.Process.Release()
}
