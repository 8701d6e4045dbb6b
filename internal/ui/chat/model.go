// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/wonderxxxx/super-chizuko/internal/config"
	"github.com/wonderxxxx/super-chizuko/internal/session"
	"github.com/wonderxxxx/super-chizuko/internal/ui/components"
	"github.com/wonderxxxx/super-chizuko/internal/ui/styles"
)

// =============================================================================
// VIEW STATE
// =============================================================================

// viewState selects which screen is active.
type viewState int

const (
	viewLogin viewState = iota
	viewChat
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the super-chizuko app.
type Model struct {
	// Collaborators
	cfg     *config.Config
	sess    *session.Session
	theme   *styles.Theme
	persist bool // false when the store degraded to memory-only

	// View state
	view      viewState
	loggingIn bool
	loginErr  string
	width     int
	height    int
	ready     bool

	// Components
	loginInput textinput.Model
	chatInput  textinput.Model
	viewport   viewport.Model
	spin       spinner.Model
	transcript components.Transcript
}

// New creates the app model. lastIdentity pre-fills the login form;
// persistent reports whether the store survived opening.
func New(cfg *config.Config, sess *session.Session, lastIdentity string, persistent bool) *Model {
	theme := styles.NewTheme()

	login := textinput.New()
	login.Placeholder = "you@example.com"
	login.CharLimit = 120
	login.Width = 40
	login.SetValue(lastIdentity)
	login.Focus()

	input := textinput.New()
	input.Placeholder = "Say something to Chizuko..."
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Pink)

	return &Model{
		cfg:        cfg,
		sess:       sess,
		theme:      theme,
		persist:    persistent,
		view:       viewLogin,
		loginInput: login,
		chatInput:  input,
		spin:       sp,
	}
}
