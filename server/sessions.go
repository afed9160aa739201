package server

import (
	"sync"
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
)

// Session is one upload. Sessions share nothing mutable: the dataset they
// point at is never modified after processing.
type Session struct {
	ID        string                 `json:"id"`
	FileName  string                 `json:"file_name"`
	SourceKey string                 `json:"source_sha256"`
	CreatedAt time.Time              `json:"created_at"`
	Warnings  []string               `json:"warnings,omitempty"`
	Cached    bool                   `json:"cached"`
	Dataset   *activitystats.Dataset `json:"-"`
}

// SessionStore keeps upload sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Put adds or replaces a session and returns the session count.
func (s *SessionStore) Put(sess *Session) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return len(s.sessions)
}

// Get looks up a session by id.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete removes a session and reports whether it existed, plus the
// remaining count.
func (s *SessionStore) Delete(id string) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok, len(s.sessions)
}
