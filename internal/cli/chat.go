// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// chat.go - Plain-terminal chat handler.
//
// Handles the "chizuko chat" command: the same session pipeline as the TUI,
// rendered as a scrolling REPL with liner-based line editing and input
// history. Useful over slow links and in terminals where the full-screen
// app is unwanted.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/wonderxxxx/super-chizuko/internal/config"
	"github.com/wonderxxxx/super-chizuko/internal/gateway"
	"github.com/wonderxxxx/super-chizuko/internal/model"
	"github.com/wonderxxxx/super-chizuko/internal/segment"
	"github.com/wonderxxxx/super-chizuko/internal/session"
	"github.com/wonderxxxx/super-chizuko/internal/store"
	"github.com/wonderxxxx/super-chizuko/internal/ui/components"
	"github.com/wonderxxxx/super-chizuko/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(styles.Pink).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextDim)

	warnStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// CONSOLE SINK
// =============================================================================

// consoleSink renders session output directly to stdout. The REPL drives
// the session synchronously, so prints arrive in strict send order.
type consoleSink struct {
	theme *styles.Theme
	width int
}

func newConsoleSink() *consoleSink {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w
	}
	return &consoleSink{theme: styles.NewTheme(), width: width - 2}
}

func (s *consoleSink) RenderMessage(role model.Role, segs []segment.Segment) {
	label := s.theme.AssistantLabel
	if role == model.RoleUser {
		label = s.theme.UserLabel
	}
	fmt.Println(label.Render(role.DisplayName()))
	for _, seg := range segs {
		fmt.Println(components.RenderSegment(seg, s.theme, s.width))
	}
	fmt.Println()
}

func (s *consoleSink) RenderPending(id string) {
	fmt.Print(s.theme.Pending.Render("Chizuko is typing..."))
}

func (s *consoleSink) ResolvePending(id string, segs []segment.Segment) {
	// Erase the placeholder line, then print the final reply.
	fmt.Print("\r\033[2K")
	fmt.Println(s.theme.AssistantLabel.Render(model.RoleAssistant.DisplayName()))
	for _, seg := range segs {
		fmt.Println(components.RenderSegment(seg, s.theme, s.width))
	}
	fmt.Println()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat runs the plain-terminal chat loop.
func HandleChat(args []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "chat requires an interactive terminal; use the backend API directly for scripting")
		os.Exit(1)
	}

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

	sink := newConsoleSink()
	sess := session.New(st, client, sink, session.Options{
		FallbackReply: cfg.FallbackReply,
		WelcomePrompt: cfg.WelcomePrompt,
		Logf: func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, infoStyle.Render("[diag] ")+format+"\n", a...)
		},
	})

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	historyFile := loadInputHistory(line)

	fmt.Println(bannerStyle.Render("super-chizuko") + infoStyle.Render("  "+Version))
	healthCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	err = client.CheckHealth(healthCtx)
	cancel()
	if err != nil {
		fmt.Println(warnStyle.Render("backend not reachable - replies will use the fallback text"))
	}
	if !st.Persistent() {
		fmt.Println(warnStyle.Render("history storage unavailable - this conversation will not be saved"))
	}
	fmt.Println()

	if !loginLoop(line, st, sess) {
		return
	}

	messageLoop(line, sess)
	saveInputHistory(line, historyFile)
	fmt.Println(infoStyle.Render("Bye."))
}

// loginLoop prompts until a login succeeds. Returns false on EOF/abort.
func loginLoop(line *liner.State, st store.Store, sess *session.Session) bool {
	prompt := "Identity: "
	if last, ok := st.LastIdentity(); ok {
		prompt = fmt.Sprintf("Identity [%s]: ", last)
	}

	for {
		input, err := line.Prompt(promptStyle.Render(prompt))
		if err == liner.ErrPromptAborted || err == io.EOF {
			return false
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}

		identity := strings.TrimSpace(input)
		if identity == "" {
			if last, ok := st.LastIdentity(); ok {
				identity = last
			}
		}

		err = sess.Login(context.Background(), identity)
		if err == nil {
			return true
		}
		var vErr *session.ValidationError
		if errors.As(err, &vErr) {
			fmt.Println(warnStyle.Render(vErr.Reason))
			continue
		}
		// Transport failures during the welcome bootstrap were
		// recovered with the fallback reply; the session is active.
		return true
	}
}

// messageLoop reads and sends messages until quit.
func messageLoop(line *liner.State, sess *session.Session) {
	fmt.Println(infoStyle.Render("Type /help for commands, /quit to exit."))
	for {
		input, err := line.Prompt(promptStyle.Render("you> "))
		if err == liner.ErrPromptAborted || err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		text := strings.TrimSpace(input)
		switch text {
		case "":
			continue
		case "/quit", "/q", "/exit":
			return
		case "/help", "/h":
			fmt.Println(infoStyle.Render("  /help   show this help"))
			fmt.Println(infoStyle.Render("  /quit   exit the chat"))
			continue
		}

		line.AppendHistory(input)
		// Send blocks until the reply (or the fallback) has been
		// rendered and persisted; the returned error is diagnostic.
		sess.Send(context.Background(), text)
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

func loadInputHistory(line *liner.State) string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "input_history")
	if f, err := os.Open(path); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return path
}

func saveInputHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
