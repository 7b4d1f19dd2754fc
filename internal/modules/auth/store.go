// README: In-memory session store; tokens do not survive a restart.
package auth

import (
	"sync"
	"time"
)

// Store owns all issued tokens. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

func (s *Store) create(token string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &session{createdAt: now}
}

func (s *Store) get(token string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

func (s *Store) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
