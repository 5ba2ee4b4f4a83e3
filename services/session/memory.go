package session

import (
	"context"
	"sync"
	"time"

	"spacetact/models"
)

type memoryEntry struct {
	state   models.SessionState
	expires time.Time
}

// MemoryStore is the default store; state lives only as long as the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
}

// NewMemoryStore creates a store whose entries expire ttl after their last
// save. A zero ttl keeps entries until deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
	}
}

func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	m.mu.RLock()
	entry, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok || m.expired(entry) {
		return nil, ErrNotFound
	}
	state := copyState(entry.state)
	return &state, nil
}

func (m *MemoryStore) Save(ctx context.Context, state *models.SessionState) error {
	entry := memoryEntry{state: copyState(*state)}
	if m.ttl > 0 {
		entry.expires = time.Now().Add(m.ttl)
	}
	m.mu.Lock()
	m.sessions[state.SessionID] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// Sweep removes expired entries.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, entry := range m.sessions {
		if m.expired(entry) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *MemoryStore) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && time.Now().After(e.expires)
}

// copyState detaches the transcript slice so callers cannot mutate stored state.
func copyState(s models.SessionState) models.SessionState {
	s.Transcript = append([]models.ConversationTurn(nil), s.Transcript...)
	return s
}
