// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/wonderxxxx/super-chizuko/internal/model"
)

func openTestStore(t *testing.T) *Local {
	t.Helper()
	s := Open(filepath.Join(t.TempDir(), "chizuko.db"))
	t.Cleanup(s.Close)
	if !s.Persistent() {
		t.Fatal("expected a persistent store on a fresh temp path")
	}
	return s
}

func TestLastIdentityRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.LastIdentity(); ok {
		t.Error("fresh store should have no identity")
	}

	s.SetLastIdentity("alice@example.com")
	got, ok := s.LastIdentity()
	if !ok || got != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %q (ok=%v)", got, ok)
	}

	s.SetLastIdentity("bob@example.com")
	got, _ = s.LastIdentity()
	if got != "bob@example.com" {
		t.Errorf("expected overwrite to bob@example.com, got %q", got)
	}
}

func TestHistoryAppendAndOrder(t *testing.T) {
	s := openTestStore(t)

	if h := s.History("alice"); len(h) != 0 {
		t.Fatalf("fresh history should be empty, got %d", len(h))
	}

	s.AppendHistory("alice", model.NewUserMessage("hi"))
	s.AppendHistory("alice", model.NewAssistantMessage("hello (waves)"))
	s.AppendHistory("alice", model.NewUserMessage("how are you?"))

	h := s.History("alice")
	if len(h) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(h))
	}
	if h[0].Content != "hi" || h[1].Content != "hello (waves)" || h[2].Content != "how are you?" {
		t.Errorf("history out of order: %+v", h)
	}
	if h[0].Role != model.RoleUser || h[1].Role != model.RoleAssistant {
		t.Errorf("roles wrong: %s, %s", h[0].Role, h[1].Role)
	}
}

func TestHistoryIsolatedPerIdentity(t *testing.T) {
	s := openTestStore(t)

	s.AppendHistory("alice", model.NewUserMessage("for alice"))
	s.AppendHistory("bob", model.NewUserMessage("for bob"))

	if h := s.History("alice"); len(h) != 1 || h[0].Content != "for alice" {
		t.Errorf("alice history wrong: %+v", h)
	}
	if h := s.History("bob"); len(h) != 1 || h[0].Content != "for bob" {
		t.Errorf("bob history wrong: %+v", h)
	}
	if h := s.History("carol"); len(h) != 0 {
		t.Errorf("carol should have no history, got %+v", h)
	}
}

func TestHistoryCapKeepsNewest(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < model.MaxHistory+5; i++ {
		s.AppendHistory("alice", model.NewUserMessage(fmt.Sprintf("msg-%d", i)))
	}

	h := s.History("alice")
	if len(h) != model.MaxHistory {
		t.Fatalf("expected exactly %d messages, got %d", model.MaxHistory, len(h))
	}
	// The 5 oldest are gone; msg-5 is now the head.
	if h[0].Content != "msg-5" {
		t.Errorf("expected oldest survivor msg-5, got %q", h[0].Content)
	}
	if h[len(h)-1].Content != fmt.Sprintf("msg-%d", model.MaxHistory+4) {
		t.Errorf("expected newest message last, got %q", h[len(h)-1].Content)
	}
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chizuko.db")

	s := Open(path)
	s.SetLastIdentity("alice")
	s.AppendHistory("alice", model.NewUserMessage("persisted"))
	s.Close()

	s2 := Open(path)
	defer s2.Close()

	if id, ok := s2.LastIdentity(); !ok || id != "alice" {
		t.Errorf("identity not persisted: %q (ok=%v)", id, ok)
	}
	h := s2.History("alice")
	if len(h) != 1 || h[0].Content != "persisted" {
		t.Errorf("history not persisted: %+v", h)
	}
}

func TestOpenUnwritablePathDegradesToMemory(t *testing.T) {
	// A path whose parent is a file cannot be created; the store must
	// still come up and serve the session from memory.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}

	s := Open(filepath.Join(blocker, "sub", "chizuko.db"))
	defer s.Close()

	if s.Persistent() {
		t.Error("expected a memory-only store for an unwritable path")
	}

	s.SetLastIdentity("alice")
	if id, ok := s.LastIdentity(); !ok || id != "alice" {
		t.Errorf("memory fallback lost the identity: %q (ok=%v)", id, ok)
	}
	s.AppendHistory("alice", model.NewUserMessage("ephemeral"))
	if h := s.History("alice"); len(h) != 1 {
		t.Errorf("memory fallback lost the history: %+v", h)
	}
}

func TestBlankIdentityNotReported(t *testing.T) {
	s := openTestStore(t)
	s.SetLastIdentity("")
	if _, ok := s.LastIdentity(); ok {
		t.Error("blank saved identity should read back as absent")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()

	if _, ok := s.LastIdentity(); ok {
		t.Error("fresh memory store should have no identity")
	}
	s.SetLastIdentity("alice")
	if id, ok := s.LastIdentity(); !ok || id != "alice" {
		t.Errorf("expected alice, got %q (ok=%v)", id, ok)
	}

	for i := 0; i < model.MaxHistory+1; i++ {
		s.AppendHistory("alice", model.NewUserMessage(fmt.Sprintf("m%d", i)))
	}
	h := s.History("alice")
	if len(h) != model.MaxHistory {
		t.Fatalf("expected %d messages, got %d", model.MaxHistory, len(h))
	}
	if h[0].Content != "m1" {
		t.Errorf("expected m1 first after truncation, got %q", h[0].Content)
	}

	// The returned slice is a copy; mutating it must not affect the store.
	h[0].Content = "mutated"
	if s.History("alice")[0].Content != "m1" {
		t.Error("History returned an aliased slice")
	}
}
