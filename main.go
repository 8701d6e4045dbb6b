// super-chizuko - A terminal chat client for the Chizuko companion bot.
//
// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wonderxxxx/super-chizuko/internal/cli"
	"github.com/wonderxxxx/super-chizuko/internal/config"
	"github.com/wonderxxxx/super-chizuko/internal/gateway"
	"github.com/wonderxxxx/super-chizuko/internal/session"
	"github.com/wonderxxxx/super-chizuko/internal/store"
	"github.com/wonderxxxx/super-chizuko/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// runTUI starts the full-screen chat interface.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	storePath := cfg.StorePath
	if storePath == "" {
		storePath = store.DefaultPath()
	}
	st := store.Open(storePath)
	defer st.Close()

	client := gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout(),
	})

	// Diagnostics go to a log file; stderr belongs to the alt screen.
	diag := openDiagLog()

	sink := chat.NewProgramSink()
	sess := session.New(st, client, sink, session.Options{
		FallbackReply: cfg.FallbackReply,
		WelcomePrompt: cfg.WelcomePrompt,
		Logf:          diag.Printf,
	})

	lastIdentity, _ := st.LastIdentity()
	model := chat.New(cfg, sess, lastIdentity, st.Persistent())

	p := tea.NewProgram(model, tea.WithAltScreen())
	sink.SetProgram(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openDiagLog returns a logger writing to ~/.chizuko/chizuko.log, or a
// discarding logger when the file cannot be opened.
func openDiagLog() *log.Logger {
	dir, err := config.ConfigDir()
	if err != nil {
		return log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return log.New(io.Discard, "", 0)
	}
	f, err := os.OpenFile(filepath.Join(dir, "chizuko.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(f, "", log.LstdFlags)
}
