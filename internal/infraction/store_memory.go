package infraction

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore keeps infractions in insertion order. Default store for
// development and unit tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*Infraction
	byID    map[string]*Infraction
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]*Infraction)}
}

func (s *InMemoryStore) Insert(_ context.Context, record *Infraction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *record
	stored.ID = uuid.NewString()
	s.records = append(s.records, &stored)
	s.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (*Infraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *InMemoryStore) Update(_ context.Context, id string, fields UpdateFields) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	if fields.Reason != nil {
		record.Reason = *fields.Reason
	}
	if fields.Active != nil {
		active := *fields.Active
		record.Active = &active
	}
	if fields.ExpiresAt != nil {
		expiresAt := *fields.ExpiresAt
		record.ExpiresAt = &expiresAt
	}
	return true, nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Infraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Infraction
	for _, record := range s.records {
		if filter.UserID != "" && record.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && record.Type != filter.Type {
			continue
		}
		copied := *record
		out = append(out, &copied)
	}
	return out, nil
}
