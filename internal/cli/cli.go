// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package cli provides command parsing and the non-TUI command handlers
// for super-chizuko.
package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

const usageText = `super-chizuko - terminal chat client for the Chizuko companion bot

Usage:
  chizuko                    Start the TUI (default)
  chizuko chat               Plain-terminal chat (line editing, no TUI)
  chizuko status             Show backend and storage status
  chizuko config <get|set|list|path> [key] [value]
                             Inspect or edit the configuration
  chizuko version            Show version information
  chizuko help               Show this help

Environment:
  CHIZUKO_BACKEND_URL        Override the chat backend URL
  CHIZUKO_STORE_PATH         Override the history database path

Configuration lives in ~/.chizuko/config.toml.
`

// Parse maps os.Args onto a command and its remaining arguments.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, nil
	}

	switch args[0] {
	case "tui":
		return CmdTUI, args[1:]
	case "chat", "c":
		return CmdChat, args[1:]
	case "status", "s":
		return CmdStatus, args[1:]
	case "config":
		return CmdConfig, args[1:]
	case "version", "--version", "-v":
		return CmdVersion, args[1:]
	case "help", "--help", "-h":
		return CmdHelp, args[1:]
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args[0])
		return CmdHelp, nil
	}
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("super-chizuko %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
	fmt.Printf("  %s/%s, %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
}
