// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wonderxxxx/super-chizuko/internal/model"
	"github.com/wonderxxxx/super-chizuko/internal/segment"
	"github.com/wonderxxxx/super-chizuko/internal/store"
)

// =============================================================================
// ERRORS
// =============================================================================

// ValidationError reports locally rejected input. The state machine does
// not move and the user is prompted to retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	// ErrBlankIdentity rejects a blank login identity.
	ErrBlankIdentity = &ValidationError{Reason: "identity must not be blank"}

	// ErrNotActive reports a send before login completed.
	ErrNotActive = &ValidationError{Reason: "session is not active"}

	// ErrAlreadyLoggedIn reports a second login on the same session.
	// There is no transition back to LoggedOut.
	ErrAlreadyLoggedIn = &ValidationError{Reason: "session is already logged in"}
)

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the session lifecycle state. Transitions only move forward:
// LoggedOut -> LoggingIn -> Active.
type State int

const (
	StateLoggedOut State = iota
	StateLoggingIn
	StateActive
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged-out"
	case StateLoggingIn:
		return "logging-in"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// Gateway is the backend the session sends messages through.
type Gateway interface {
	SendMessage(ctx context.Context, identity, text string) (string, error)
}

// RenderSink receives ordered message groups from the session. The session
// produces segments; everything visual beyond that belongs to the sink.
//
// Sink methods are called with the session's internal lock held and must
// not call back into the session.
type RenderSink interface {
	// RenderMessage appends one finished message group.
	RenderMessage(role model.Role, segs []segment.Segment)

	// RenderPending inserts a loading placeholder for an in-flight reply.
	RenderPending(id string)

	// ResolvePending replaces the placeholder with the final segments.
	ResolvePending(id string, segs []segment.Segment)
}

// =============================================================================
// SESSION
// =============================================================================

// Options configures a Session.
type Options struct {
	// FallbackReply replaces the assistant reply when the gateway fails.
	FallbackReply string

	// WelcomePrompt is the hidden directive sent by the welcome bootstrap.
	WelcomePrompt string

	// Logf, when set, receives diagnostics for recovered transport errors.
	// Never wired to the chat transcript.
	Logf func(format string, args ...any)
}

// Session orchestrates one login's message pipeline. All state mutation is
// serialized through an internal mutex; the gateway call is the only
// suspension point and runs outside the lock, so any number of sends may be
// in flight at once. Completion order across concurrent sends is
// unspecified; each resolves its own placeholder independently.
type Session struct {
	mu           sync.Mutex
	state        State
	identity     string
	bootstrapped bool

	store   store.Store
	gateway Gateway
	sink    RenderSink
	opts    Options
}

// New creates a logged-out session.
func New(st store.Store, gw Gateway, sink RenderSink, opts Options) *Session {
	return &Session{
		state:   StateLoggedOut,
		store:   st,
		gateway: gw,
		sink:    sink,
		opts:    opts,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns the logged-in identity, or "" before login.
func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// =============================================================================
// LOGIN
// =============================================================================

// Login moves the session to Active for the given identity: the identity is
// persisted, stored history is replayed through the render sink (assistant
// content re-segmented), and - when the history is empty - the one-shot
// welcome bootstrap fires through the normal send path.
//
// A blank identity returns ErrBlankIdentity and leaves the state unchanged.
// Login blocks until the bootstrap reply (if any) has settled.
func (s *Session) Login(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrBlankIdentity
	}

	s.mu.Lock()
	if s.state != StateLoggedOut {
		s.mu.Unlock()
		return ErrAlreadyLoggedIn
	}
	s.state = StateLoggingIn
	s.identity = identity

	s.store.SetLastIdentity(identity)
	history := s.store.History(identity)
	for _, msg := range history {
		s.sink.RenderMessage(msg.Role, segmentsFor(msg))
	}

	s.state = StateActive
	firstVisit := len(history) == 0 && !s.bootstrapped
	if firstVisit {
		// One shot per session instance, regardless of later
		// empty-history edge cases.
		s.bootstrapped = true
	}
	s.mu.Unlock()

	if firstVisit {
		return s.deliver(ctx, s.opts.WelcomePrompt, false)
	}
	return nil
}

// =============================================================================
// SENDING
// =============================================================================

// Send routes one user message through the pipeline. Blank or
// whitespace-only input is a silent no-op.
//
// The returned error is diagnostic only: a transport failure has already
// been recovered by rendering and persisting the fallback reply before
// Send returns it.
func (s *Session) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if s.State() != StateActive {
		return ErrNotActive
	}
	return s.deliver(ctx, text, true)
}

// deliver runs the shared send path. When visible is false the outgoing
// text is a hidden directive: it is neither rendered nor persisted, but its
// reply is handled identically to any assistant reply.
func (s *Session) deliver(ctx context.Context, text string, visible bool) error {
	s.mu.Lock()
	identity := s.identity

	if visible {
		// Optimistic: the user message is rendered and persisted before
		// the network round trip.
		msg := model.NewUserMessage(text)
		s.sink.RenderMessage(msg.Role, segmentsFor(msg))
		s.store.AppendHistory(identity, msg)
	}

	pendingID := "pending_" + uuid.NewString()
	s.sink.RenderPending(pendingID)
	s.mu.Unlock()

	reply, sendErr := s.gateway.SendMessage(ctx, identity, text)
	if sendErr != nil {
		s.logf("chat request failed, substituting fallback: %v", sendErr)
		reply = s.opts.FallbackReply
	}

	s.mu.Lock()
	msg := model.NewAssistantMessage(reply)
	s.sink.ResolvePending(pendingID, segment.Split(reply))
	s.store.AppendHistory(identity, msg)
	s.mu.Unlock()

	return sendErr
}

func (s *Session) logf(format string, args ...any) {
	if s.opts.Logf != nil {
		s.opts.Logf(format, args...)
	}
}

// segmentsFor derives the render segments for a message. Assistant content
// is re-segmented on every render, including history replay; user content
// is always one plain dialogue run.
func segmentsFor(msg model.Message) []segment.Segment {
	if msg.Role == model.RoleAssistant {
		return segment.Split(msg.Content)
	}
	return []segment.Segment{{Kind: segment.Dialogue, Text: msg.Content}}
}
