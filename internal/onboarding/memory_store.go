package onboarding

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

type memoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

// NewMemoryStore builds an in-process session store. A zero ttl keeps
// sessions until they are deleted.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

func (m *memoryStore) Create(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(session.ID); ok {
		return errors.New("session exists")
	}
	m.put(session)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.live(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (m *memoryStore) Save(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.live(session.ID)
	if !ok {
		return ErrSessionNotFound
	}
	if entry.session.Version != session.Version {
		return ErrStaleSession
	}
	session.Version++
	m.put(session)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) live(id string) (memoryEntry, bool) {
	entry, ok := m.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		return memoryEntry{}, false
	}
	return entry, true
}

func (m *memoryStore) put(session *Session) {
	entry := memoryEntry{session: *session}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.sessions[session.ID] = entry
}
