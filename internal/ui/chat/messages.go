// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wonderxxxx/super-chizuko/internal/model"
	"github.com/wonderxxxx/super-chizuko/internal/segment"
)

// =============================================================================
// SINK MESSAGES
// =============================================================================

// MessageAppendedMsg delivers a finished message group from the session.
type MessageAppendedMsg struct {
	Role     model.Role
	Segments []segment.Segment
}

// PendingAddedMsg inserts a loading placeholder for an in-flight reply.
type PendingAddedMsg struct {
	ID string
}

// PendingResolvedMsg replaces a placeholder with the final segments.
type PendingResolvedMsg struct {
	ID       string
	Segments []segment.Segment
}

// =============================================================================
// LIFECYCLE MESSAGES
// =============================================================================

// LoginDoneMsg reports the outcome of a Login call.
type LoginDoneMsg struct {
	Identity string
	Err      error
}

// SendDoneMsg reports the (diagnostic-only) outcome of a Send call: any
// transport failure was already recovered with the fallback reply.
type SendDoneMsg struct {
	Err error
}

// =============================================================================
// PROGRAM SINK
// =============================================================================

// ProgramSink adapts the session's RenderSink to the Bubble Tea loop by
// forwarding every render call as a program message. Program.Send is safe
// from any goroutine and preserves per-sender order, which keeps the
// transcript in strict session order.
type ProgramSink struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewProgramSink creates a sink that is not yet attached to a program.
func NewProgramSink() *ProgramSink {
	return &ProgramSink{}
}

// SetProgram attaches the running program. Must be called before the first
// session operation.
func (s *ProgramSink) SetProgram(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

func (s *ProgramSink) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// RenderMessage implements session.RenderSink.
func (s *ProgramSink) RenderMessage(role model.Role, segs []segment.Segment) {
	s.send(MessageAppendedMsg{Role: role, Segments: segs})
}

// RenderPending implements session.RenderSink.
func (s *ProgramSink) RenderPending(id string) {
	s.send(PendingAddedMsg{ID: id})
}

// ResolvePending implements session.RenderSink.
func (s *ProgramSink) ResolvePending(id string, segs []segment.Segment) {
	s.send(PendingResolvedMsg{ID: id, Segments: segs})
}
