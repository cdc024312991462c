package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/monakit/monakit/internal/styles"
)

const serviceLabel = "com.monakit"

// service describes the auto-start unit for one platform
type service struct {
	Path    string
	Content string
	Enable  [][]string
	Disable [][]string
}

// serviceFor returns the unit that runs "<execPath> daemon" at login
func serviceFor(goos, home, execPath string) (*service, error) {
	switch goos {
	case "darwin":
		path := filepath.Join(home, "Library", "LaunchAgents", serviceLabel+".plist")
		return &service{
			Path: path,
			Content: fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>daemon</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>/tmp/monakit.out.log</string>
	<key>StandardErrorPath</key>
	<string>/tmp/monakit.err.log</string>
</dict>
</plist>`, serviceLabel, execPath),
			Enable:  [][]string{{"launchctl", "load", path}},
			Disable: [][]string{{"launchctl", "unload", path}},
		}, nil

	case "linux":
		return &service{
			Path: filepath.Join(home, ".config", "systemd", "user", "monakit.service"),
			Content: fmt.Sprintf(`[Unit]
Description=Monakit - knowledge card share manifest watcher
After=default.target

[Service]
Type=simple
ExecStart=%s daemon
Restart=on-failure
RestartSec=10

[Install]
WantedBy=default.target`, execPath),
			Enable: [][]string{
				{"systemctl", "--user", "daemon-reload"},
				{"systemctl", "--user", "enable", "monakit.service"},
				{"systemctl", "--user", "start", "monakit.service"},
			},
			Disable: [][]string{
				{"systemctl", "--user", "stop", "monakit.service"},
				{"systemctl", "--user", "disable", "monakit.service"},
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported operating system: %s (supported: darwin, linux)", goos)
}

// Install generates system service files for daemon auto-start
func Install() {
	fmt.Println(styles.TitleStyle.Render("Monakit Install"))
	fmt.Println()

	svc := mustService()

	if err := os.MkdirAll(filepath.Dir(svc.Path), 0755); err != nil {
		fail("Failed to create service directory", err)
	}
	if err := os.WriteFile(svc.Path, []byte(svc.Content), 0644); err != nil {
		fail("Failed to write service file", err)
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Service file created: " + svc.Path))
	fmt.Println()
	fmt.Println("To enable the service:")
	printCommands(svc.Enable)
	fmt.Println()
	fmt.Println("To disable the service:")
	printCommands(svc.Disable)
}

// Uninstall stops the service and removes its file
func Uninstall() {
	warningStyle := styles.WarningStyle

	fmt.Println(styles.TitleStyle.Render("Monakit Uninstall"))
	fmt.Println()

	svc := mustService()

	if _, err := os.Stat(svc.Path); os.IsNotExist(err) {
		fmt.Println(warningStyle.Render("⚠ Service file not found: " + svc.Path))
		fmt.Println("Nothing to uninstall.")
		return
	}

	fmt.Println("Attempting to stop the service...")
	for _, argv := range svc.Disable {
		if err := exec.Command(argv[0], argv[1:]...).Run(); err != nil {
			fmt.Println(warningStyle.Render(fmt.Sprintf("⚠ %s %s failed (may not be loaded): %v", argv[0], argv[len(argv)-2], err)))
		}
	}

	if err := os.Remove(svc.Path); err != nil {
		fail("Failed to remove service file", err)
	}

	if runtime.GOOS == "linux" {
		if err := exec.Command("systemctl", "--user", "daemon-reload").Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload systemd daemon: %v\n", err)
		}
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Service file removed: " + svc.Path))
	fmt.Println(styles.SuccessStyle.Render("✓ Monakit has been uninstalled"))
}

func mustService() *service {
	home, err := os.UserHomeDir()
	if err != nil {
		fail("Failed to get home directory", err)
	}
	execPath, err := os.Executable()
	if err != nil {
		fail("Failed to get executable path", err)
	}
	svc, err := serviceFor(runtime.GOOS, home, execPath)
	if err != nil {
		fail("Cannot install", err)
	}
	return svc
}

func printCommands(cmds [][]string) {
	for _, argv := range cmds {
		fmt.Println(styles.DimStyle.Render("  " + strings.Join(argv, " ")))
	}
}
