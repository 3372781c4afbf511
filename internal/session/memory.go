package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process session store for tests and local development.
// A single mutex covers both indexes, which gives the same add/remove
// atomicity the Redis store gets from single-command set mutations.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]map[string]struct{}
	owners map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[uuid.UUID]map[string]struct{}),
		owners: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) AddToken(_ context.Context, userID uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.tokens[userID]
	if !ok {
		set = make(map[string]struct{})
		s.tokens[userID] = set
	}
	set[token] = struct{}{}
	s.owners[token] = userID
	return nil
}

func (s *MemoryStore) RemoveToken(_ context.Context, userID uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set, ok := s.tokens[userID]; ok {
		delete(set, token)
		if len(set) == 0 {
			delete(s.tokens, userID)
		}
	}
	delete(s.owners, token)
	return nil
}

func (s *MemoryStore) FindOwner(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners[token]
	if !ok {
		return uuid.Nil, ErrSessionNotFound
	}
	return owner, nil
}
