// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/wonderxxxx/super-chizuko/internal/model"
)

// Durable storage keys, unchanged from the browser build.
const (
	keyLastIdentity  = "userEmail"
	historyKeyPrefix = "chatHistory_"
)

// Store is the durable local store the session writes through.
//
// No operation returns an error: persistence failures degrade silently to
// in-memory operation (see package doc). All methods are safe for use from
// a single session goroutine at a time; the session serializes access.
type Store interface {
	// LastIdentity returns the previously saved identity, if any.
	LastIdentity() (string, bool)

	// SetLastIdentity overwrites the saved identity.
	SetLastIdentity(id string)

	// History returns the stored history for an identity, oldest first.
	// An empty slice means this is the identity's first interaction.
	History(identity string) []model.Message

	// AppendHistory appends one message to an identity's history and
	// truncates it to the newest model.MaxHistory entries.
	AppendHistory(identity string, msg model.Message)
}

// DefaultPath returns the default database location, ~/.chizuko/chizuko.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".chizuko", "chizuko.db")
	}
	return filepath.Join(home, ".chizuko", "chizuko.db")
}

func historyKey(identity string) string {
	return historyKeyPrefix + identity
}

// =============================================================================
// LOCAL STORE
// =============================================================================

// Local is the SQLite-backed Store. It write-through caches every value in
// memory, so a storage failure at any point switches it to pure in-memory
// operation without losing the current conversation.
type Local struct {
	mu  sync.Mutex
	db  *kvDB             // nil once degraded
	mem map[string]string // write-through cache, complete after degrade
}

// Open opens (or creates) the store at path. It never fails: when the
// database cannot be opened the returned store is memory-only.
func Open(path string) *Local {
	s := &Local{mem: make(map[string]string)}
	db, err := openKV(path)
	if err == nil {
		s.db = db
	}
	return s
}

// OpenDefault opens the store at DefaultPath.
func OpenDefault() *Local {
	return Open(DefaultPath())
}

// Persistent reports whether writes are still reaching durable storage.
func (s *Local) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// Close releases the underlying database, if any.
func (s *Local) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		s.db.close()
		s.db = nil
	}
}

// LastIdentity returns the previously saved identity, if any.
func (s *Local) LastIdentity() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.get(keyLastIdentity)
	return v, ok && v != ""
}

// SetLastIdentity overwrites the saved identity.
func (s *Local) SetLastIdentity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(keyLastIdentity, id)
}

// History returns the stored history for an identity, oldest first.
func (s *Local) History(identity string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyLocked(identity)
}

// AppendHistory appends one message and truncates to the newest
// model.MaxHistory entries. The write is a single read-modify-write; no
// partial state is ever observable through this store.
func (s *Local) AppendHistory(identity string, msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.historyLocked(identity), msg)
	if len(msgs) > model.MaxHistory {
		msgs = msgs[len(msgs)-model.MaxHistory:]
	}

	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	s.set(historyKey(identity), string(data))
}

func (s *Local) historyLocked(identity string) []model.Message {
	raw, ok := s.get(historyKey(identity))
	if !ok || raw == "" {
		return nil
	}
	var msgs []model.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		// Corrupt entry: treat as empty rather than failing the session.
		return nil
	}
	return msgs
}

// get reads a key, falling back to the memory cache once degraded.
// Must be called with s.mu held.
func (s *Local) get(key string) (string, bool) {
	if s.db != nil {
		v, ok, err := s.db.get(key)
		if err == nil {
			if ok {
				s.mem[key] = v
			}
			return v, ok
		}
		s.degrade()
	}
	v, ok := s.mem[key]
	return v, ok
}

// set writes a key through to the database and the memory cache.
// Must be called with s.mu held.
func (s *Local) set(key, value string) {
	s.mem[key] = value
	if s.db != nil {
		if err := s.db.set(key, value); err != nil {
			s.degrade()
		}
	}
}

// degrade drops the database and continues memory-only.
// Must be called with s.mu held.
func (s *Local) degrade() {
	if s.db != nil {
		s.db.close()
		s.db = nil
	}
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// Memory is a Store that never persists. It backs tests and any embedder
// that wants an ephemeral session.
type Memory struct {
	mu       sync.Mutex
	identity string
	hasID    bool
	history  map[string][]model.Message
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{history: make(map[string][]model.Message)}
}

// LastIdentity returns the identity saved during this process life.
func (s *Memory) LastIdentity() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.hasID && s.identity != ""
}

// SetLastIdentity overwrites the saved identity.
func (s *Memory) SetLastIdentity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
	s.hasID = true
}

// History returns the in-memory history for an identity, oldest first.
func (s *Memory) History(identity string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.history[identity]
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// AppendHistory appends one message, truncating to model.MaxHistory.
func (s *Memory) AppendHistory(identity string, msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append(s.history[identity], msg)
	if len(msgs) > model.MaxHistory {
		msgs = msgs[len(msgs)-model.MaxHistory:]
	}
	s.history[identity] = msgs
}
