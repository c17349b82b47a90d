package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session pairs one browsing session's cart with its drawer controller.
type Session struct {
	ID       uuid.UUID
	Store    *Store
	Drawer   *Drawer
	LastSeen time.Time
}

// SessionStore hands out per-session carts keyed by the session cookie and
// evicts sessions idle longer than the TTL. Carts live only in memory; a
// restart empties them.
type SessionStore struct {
	sessions map[uuid.UUID]*Session
	sink     Sink
	ttl      time.Duration
	mu       sync.RWMutex
}

func NewSessionStore(sink Sink, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		sink:     sink,
		ttl:      ttl,
	}
}

// Get returns the session for id, creating one when id is uuid.Nil or
// unknown. The returned session's ID is what the cookie should carry.
func (ss *SessionStore) Get(id uuid.UUID) *Session {
	ss.CleanupIdle()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if id != uuid.Nil {
		if session, exists := ss.sessions[id]; exists {
			session.LastSeen = time.Now()
			return session
		}
	}

	store := NewStore()
	session := &Session{
		ID:       uuid.New(),
		Store:    store,
		Drawer:   NewDrawer(store, ss.sink),
		LastSeen: time.Now(),
	}
	ss.sessions[session.ID] = session
	return session
}

// CleanupIdle removes sessions not touched within the TTL.
func (ss *SessionStore) CleanupIdle() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	cutoff := time.Now().Add(-ss.ttl)
	for id, session := range ss.sessions {
		if session.LastSeen.Before(cutoff) {
			delete(ss.sessions, id)
		}
	}
}

// Len reports the number of live sessions.
func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}
