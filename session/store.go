package session

import (
	"sync"
	"time"
)

// Store tracks the set of currently active admin tokens. A token that is
// removed (or whose TTL lapses) is rejected even when its signature is
// still valid.
type Store interface {
	Put(token string, expires time.Time)
	Has(token string) bool
	Delete(token string)
}

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewMemoryStore returns an in-process Store. Sessions are lost on restart,
// which is acceptable: tokens carry their own expiry and clients re-login.
func NewMemoryStore() Store {
	return &memoryStore{sessions: map[string]time.Time{}}
}

func (s *memoryStore) Put(token string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = expires
}

func (s *memoryStore) Has(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(s.sessions, token)
		return false
	}
	return true
}

func (s *memoryStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
