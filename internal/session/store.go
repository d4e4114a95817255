package session

import (
	"sync"
	"time"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
)

// Store keeps sessions by ID. Callers receive copies; changes go through
// Set or Update. Every access refreshes the session's LastSeen, which Prune
// uses to expire idle sessions.
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

func (s *Store) Get(sessionID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	session.LastSeen = time.Now()
	return session.Clone(), true
}

func (s *Store) Set(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := session.Clone()
	c.LastSeen = time.Now()
	s.sessions[session.ID] = c
}

// GetOrCreate returns the session for sessionID, starting a new one with
// default criteria when it is unknown
func (s *Store) GetOrCreate(sessionID string, rs corpus.RecordSet) *Session {
	if session, ok := s.Get(sessionID); ok {
		return session
	}
	session := New(rs)
	s.Set(session)
	return session.Clone()
}

// Update applies fn to the stored session under the write lock and returns
// a copy of the result. ok is false when the session does not exist.
func (s *Store) Update(sessionID string, fn func(*Session)) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	fn(session)
	session.LastSeen = time.Now()
	return session.Clone(), true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Prune deletes sessions not seen for longer than maxAge and returns how
// many were removed
func (s *Store) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
