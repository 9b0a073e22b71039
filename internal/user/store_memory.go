package user

import (
	"context"
	"sync"
)

// InMemoryStore keeps profiles in a map. Default store for development and
// unit tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]Profile)}
}

// Put inserts or replaces a profile. Used by tests and seeding.
func (s *InMemoryStore) Put(profile Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
}

func (s *InMemoryStore) GetByID(_ context.Context, userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}
