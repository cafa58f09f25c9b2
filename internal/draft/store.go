package draft

import (
	"sync"
	"time"
)

// SessionStore manages editing sessions keyed by location.
type SessionStore struct {
	sessions map[int64]*Session
	mu       sync.RWMutex
	timeout  time.Duration
}

// NewSessionStore creates a session store with an idle timeout.
func NewSessionStore(timeout time.Duration) *SessionStore {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &SessionStore{
		sessions: make(map[int64]*Session),
		timeout:  timeout,
	}
}

// Get returns the session for a location, or nil.
func (ss *SessionStore) Get(locationID int64) *Session {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	session, ok := ss.sessions[locationID]
	if !ok || session.IsExpired(ss.timeout) {
		return nil
	}
	return session
}

// Put registers a session for a location, replacing any existing one.
func (ss *SessionStore) Put(locationID int64, session *Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[locationID] = session
}

// Delete removes a location's session.
func (ss *SessionStore) Delete(locationID int64) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, locationID)
}

// Cleanup removes expired sessions and returns how many were dropped.
func (ss *SessionStore) Cleanup() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for locationID, session := range ss.sessions {
		if session.IsExpired(ss.timeout) {
			delete(ss.sessions, locationID)
			removed++
		}
	}
	return removed
}
