// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package styles provides the visual styling system for the super-chizuko
// terminal UI. All colors use Lip Gloss AdaptiveColor for automatic
// light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// PALETTE
// =============================================================================

// Pink - Chizuko's accent, assistant labels and borders
var Pink = lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F472B6"}

// Cyan - User labels and prompts
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Rose - Errors and validation messages
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, degraded-persistence notice
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Text - Primary foreground
var Text = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}

// TextDim - Secondary foreground: timestamps, hints, expressions
var TextDim = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Chrome
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Hint      lipgloss.Style

	// Transcript
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Dialogue       lipgloss.Style
	Expression     lipgloss.Style
	Timestamp      lipgloss.Style
	Pending        lipgloss.Style

	// Input
	Prompt lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewTheme builds the theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}

	t.Header = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true)

	t.Dialogue = lipgloss.NewStyle().
		Foreground(Text)

	// Expressions are stage directions: visually distinct from speech.
	t.Expression = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextDim)

	t.Pending = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	t.Prompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Error = lipgloss.NewStyle().
		Foreground(Rose)

	t.Warning = lipgloss.NewStyle().
		Foreground(Amber)

	return t
}
