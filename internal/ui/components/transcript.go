// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package components provides the visual components for the super-chizuko
// terminal UI.
package components

import (
	"strings"
	"time"

	"github.com/wonderxxxx/super-chizuko/internal/model"
	"github.com/wonderxxxx/super-chizuko/internal/segment"
	"github.com/wonderxxxx/super-chizuko/internal/ui/styles"
	"github.com/wonderxxxx/super-chizuko/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// EntryKind distinguishes finished messages from loading placeholders.
type EntryKind int

const (
	EntryMessage EntryKind = iota
	EntryPending
)

// Entry is one row of the transcript: a finished message group or a
// pending placeholder waiting for its reply.
type Entry struct {
	Kind      EntryKind
	Role      model.Role
	Segments  []segment.Segment
	Timestamp time.Time
	PendingID string
}

// Transcript is the ordered append-only list of rendered message groups.
// It is the TUI-side realization of the session's render sink: placeholders
// keep their position and are resolved in place, so a slow reply never
// reorders the conversation.
type Transcript struct {
	entries []Entry
}

// Append adds a finished message group.
func (t *Transcript) Append(role model.Role, segs []segment.Segment) {
	t.entries = append(t.entries, Entry{
		Kind:      EntryMessage,
		Role:      role,
		Segments:  segs,
		Timestamp: time.Now(),
	})
}

// AddPending inserts a loading placeholder.
func (t *Transcript) AddPending(id string) {
	t.entries = append(t.entries, Entry{
		Kind:      EntryPending,
		PendingID: id,
	})
}

// Resolve replaces the placeholder with the final assistant segments.
// Returns false if the placeholder is unknown.
func (t *Transcript) Resolve(id string, segs []segment.Segment) bool {
	for i := range t.entries {
		if t.entries[i].Kind == EntryPending && t.entries[i].PendingID == id {
			t.entries[i] = Entry{
				Kind:      EntryMessage,
				Role:      model.RoleAssistant,
				Segments:  segs,
				Timestamp: time.Now(),
			}
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// HasPending reports whether any placeholder is still unresolved.
func (t *Transcript) HasPending() bool {
	for _, e := range t.entries {
		if e.Kind == EntryPending {
			return true
		}
	}
	return false
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderOptions controls transcript rendering.
type RenderOptions struct {
	Width          int
	ShowTimestamps bool
	CompactMode    bool

	// SpinnerView is the current spinner frame for pending entries.
	SpinnerView string
}

// Render draws the whole transcript as a string for the viewport.
func (t *Transcript) Render(theme *styles.Theme, opts RenderOptions) string {
	var sb strings.Builder
	for i, e := range t.entries {
		if i > 0 {
			sb.WriteByte('\n')
			if !opts.CompactMode {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(renderEntry(e, theme, opts))
	}
	return sb.String()
}

func renderEntry(e Entry, theme *styles.Theme, opts RenderOptions) string {
	if e.Kind == EntryPending {
		return theme.Pending.Render(opts.SpinnerView + " Chizuko is typing...")
	}

	label := theme.AssistantLabel
	if e.Role == model.RoleUser {
		label = theme.UserLabel
	}

	header := label.Render(e.Role.DisplayName())
	if opts.ShowTimestamps {
		header += " " + theme.Timestamp.Render(e.Timestamp.Format("15:04"))
	}

	var sb strings.Builder
	sb.WriteString(header)
	for _, seg := range e.Segments {
		sb.WriteByte('\n')
		sb.WriteString(RenderSegment(seg, theme, opts.Width))
	}
	return sb.String()
}

// RenderSegment draws one segment wrapped to width. Dialogue keeps the
// primary text style; expressions re-wrap in parentheses and render as dim
// italic stage directions.
func RenderSegment(seg segment.Segment, theme *styles.Theme, width int) string {
	text := seg.Text
	style := theme.Dialogue
	if seg.Kind == segment.Expression {
		text = "(" + text + ")"
		style = theme.Expression
	}

	lines := util.WordWrap(text, width)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
