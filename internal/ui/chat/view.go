// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wonderxxxx/super-chizuko/internal/util"
)

// chromeHeight is the number of rows taken by header, input and status bar.
const chromeHeight = 4

// View implements tea.Model.
func (m *Model) View() string {
	if m.view == viewLogin {
		return m.viewLoginForm()
	}
	return m.viewChatScreen()
}

// =============================================================================
// LOGIN FORM
// =============================================================================

func (m *Model) viewLoginForm() string {
	var sb strings.Builder

	sb.WriteString(m.theme.Header.Render("super-chizuko"))
	sb.WriteString("\n\n")
	sb.WriteString("Who are you chatting as?\n\n")
	sb.WriteString(m.loginInput.View())
	sb.WriteString("\n\n")

	switch {
	case m.loggingIn:
		sb.WriteString(m.theme.Hint.Render(m.spin.View() + " Logging in..."))
	case m.loginErr != "":
		sb.WriteString(m.theme.Error.Render(m.loginErr))
	default:
		sb.WriteString(m.theme.Hint.Render("Enter to start, Esc to quit."))
	}

	form := lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}

// =============================================================================
// CHAT SCREEN
// =============================================================================

func (m *Model) viewChatScreen() string {
	header := m.theme.Header.Render("super-chizuko") +
		" " + m.theme.Hint.Render(m.sess.Identity())

	input := m.theme.Prompt.Render("> ") + m.chatInput.View()

	status := "backend " + m.cfg.BackendURL
	if !m.persist {
		status += "  " + m.theme.Warning.Render("history not persisted")
	}
	statusBar := m.theme.StatusBar.Width(maxInt(m.width, 1)).
		Render(util.TruncateWidth(status, maxInt(m.width-2, 1)))

	return header + "\n" +
		m.viewport.View() + "\n" +
		input + "\n" +
		statusBar
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
