package main

import (
	"fmt"
	"os"

	"github.com/monakit/monakit/internal/commands"
	"github.com/monakit/monakit/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "encode":
		commands.Encode(args)
	case "decode":
		commands.Decode(args)
	case "tree":
		commands.Tree(args)
	case "diff":
		commands.Diff(args)
	case "render":
		commands.Render(args)
	case "themes":
		commands.Themes(args)
	case "css":
		commands.CSS(args)
	case "build":
		commands.Build(args)
	case "status":
		commands.Status()
	case "browse", "cards":
		commands.Browse()
	case "list":
		commands.List(args)
	case "start":
		commands.Start(args)
	case "daemon":
		commands.Daemon(args)
	case "watch":
		commands.Watch(args)
	case "dashboard":
		commands.Dashboard()
	case "stop":
		commands.Stop()
	case "install":
		commands.Install()
	case "uninstall":
		commands.Uninstall()
	case "version", "-v", "--version":
		fmt.Printf("monakit v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := `monakit - Knowledge card mindmaps, themes and share links

Usage:
  monakit <command> [options]

Cards:
  encode <file|->        Print the share value and links for a mindmap (--json)
  decode <pako>          Print the mindmap carried by a share value
  tree <file|->          Show the parsed mindmap structure (--json)
  diff <card.md>         Show what normalization strips (--plain)
  render <card.md>       Render a card as themed HTML (--out file)

Themes:
  themes [card|slide]    List themes with colour swatches
  css <card|slide> <name>
                         Print a theme's CSS declarations (--json)

Build:
  build                  Encode changed cards and write the share manifest (--dry-run)
  status                 Show what the next build would do
  browse                 Browse cards and their mindmaps
  list                   Page through the share manifest (--page 1 --limit 10 --json)

Daemon:
  start                  Start the watcher in the background (--interval 30s)
  watch                  Run the watcher in the foreground with a dashboard
  dashboard              Monitor a running watcher
  stop                   Stop the background watcher
  install                Install an auto-start service
  uninstall              Remove the auto-start service

  version                Show version information
  help                   Show this help message

Configuration: %s
`
	fmt.Printf(usage, config.ConfigPath())
}
