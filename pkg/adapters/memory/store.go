package memory

import (
	"context"
	"sync"

	"github.com/seamly/garmentd/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use. Sessions are copied on the way in and out so a
// caller can never mutate store state through a retained pointer.
type Store struct {
	data map[string]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory session store. It starts empty: sessions
// never survive a process restart, so any session not cleaned up before a
// restart leaves an orphaned output directory behind.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Session),
	}
}

// Insert adds a session under its id.
func (s *Store) Insert(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[sess.ID]; exists {
		return domain.ErrDuplicateSession
	}
	s.data[sess.ID] = sess.Clone()
	return nil
}

// Get retrieves a copy of the session.
func (s *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.data, id)
	return nil
}

// List returns the ids of all active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
