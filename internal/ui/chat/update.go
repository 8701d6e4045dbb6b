// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wonderxxxx/super-chizuko/internal/session"
	"github.com/wonderxxxx/super-chizuko/internal/ui/components"
)

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loginInput.Focus())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.view == viewLogin {
				return m, tea.Quit
			}
		}
		if m.view == viewLogin {
			return m.updateLogin(msg)
		}
		return m.updateChat(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.transcript.HasPending() {
			m.refreshViewport()
		}
		return m, cmd

	case LoginDoneMsg:
		m.loggingIn = false
		if msg.Err != nil {
			var vErr *session.ValidationError
			if errors.As(msg.Err, &vErr) {
				m.loginErr = vErr.Reason
				return m, nil
			}
			// Transport failures during the welcome bootstrap were
			// already recovered with the fallback reply.
		}
		m.view = viewChat
		m.loginInput.Blur()
		return m, m.chatInput.Focus()

	case SendDoneMsg:
		// Diagnostic only; the transcript already shows the outcome.
		return m, nil

	case MessageAppendedMsg:
		m.transcript.Append(msg.Role, msg.Segments)
		m.refreshViewport()
		return m, nil

	case PendingAddedMsg:
		m.transcript.AddPending(msg.ID)
		m.refreshViewport()
		return m, nil

	case PendingResolvedMsg:
		m.transcript.Resolve(msg.ID, msg.Segments)
		m.refreshViewport()
		return m, nil
	}

	if m.view == viewChat {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// LOGIN VIEW
// =============================================================================

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter && !m.loggingIn {
		identity := strings.TrimSpace(m.loginInput.Value())
		if identity == "" {
			m.loginErr = "Please enter an identity to chat as."
			return m, nil
		}
		m.loginErr = ""
		m.loggingIn = true
		return m, loginCmd(m.sess, identity)
	}

	var cmd tea.Cmd
	m.loginInput, cmd = m.loginInput.Update(msg)
	return m, cmd
}

func loginCmd(sess *session.Session, identity string) tea.Cmd {
	return func() tea.Msg {
		err := sess.Login(context.Background(), identity)
		return LoginDoneMsg{Identity: identity, Err: err}
	}
}

// =============================================================================
// CHAT VIEW
// =============================================================================

func (m *Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		text := m.chatInput.Value()
		m.chatInput.Reset()
		if strings.TrimSpace(text) == "" {
			// Blank input is a silent no-op.
			return m, nil
		}
		return m, sendCmd(m.sess, text)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func sendCmd(sess *session.Session, text string) tea.Cmd {
	return func() tea.Msg {
		return SendDoneMsg{Err: sess.Send(context.Background(), text)}
	}
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentHeight := height - chromeHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = contentHeight
	}
	m.chatInput.Width = width - 4
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.transcript.Render(m.theme, components.RenderOptions{
		Width:          m.viewport.Width - 2,
		ShowTimestamps: m.cfg.UI.ShowTimestamps,
		CompactMode:    m.cfg.UI.CompactMode,
		SpinnerView:    m.spin.View(),
	}))
	if atBottom {
		m.viewport.GotoBottom()
	}
}
