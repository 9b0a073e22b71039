package jam

import (
	"context"
	"slices"
	"sync"
)

// InMemoryStore is a map-backed Store for tests and development.
type InMemoryStore struct {
	mu           sync.RWMutex
	jams         map[int64]Jam
	forms        map[int64][]Question
	participants map[string]struct{}
	responses    []Response
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		jams:         make(map[int64]Jam),
		forms:        make(map[int64][]Question),
		participants: make(map[string]struct{}),
	}
}

// PutJam seeds a jam.
func (s *InMemoryStore) PutJam(jam Jam) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jams[jam.ID] = jam
}

// PutForm seeds a jam's form questions.
func (s *InMemoryStore) PutForm(jamID int64, questions []Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[jamID] = slices.Clone(questions)
}

// PutParticipant seeds a participant profile.
func (s *InMemoryStore) PutParticipant(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[userID] = struct{}{}
}

func (s *InMemoryStore) GetJam(_ context.Context, id int64) (*Jam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jam, ok := s.jams[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &jam, nil
}

func (s *InMemoryStore) GetForm(_ context.Context, jamID int64) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions, ok := s.forms[jamID]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(questions), nil
}

func (s *InMemoryStore) HasParticipant(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.participants[userID]
	return ok, nil
}

func (s *InMemoryStore) FindResponse(_ context.Context, jamID int64, userID string) (*Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, response := range s.responses {
		if response.JamID == jamID && response.UserID == userID {
			found := response
			return &found, nil
		}
	}
	return nil, nil
}

func (s *InMemoryStore) InsertResponse(_ context.Context, response *Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses = append(s.responses, *response)
	return nil
}

// InMemoryBanStore is a map-backed BanStore for tests and development.
type InMemoryBanStore struct {
	mu      sync.RWMutex
	records map[string]BanRecord
}

func NewInMemoryBanStore() *InMemoryBanStore {
	return &InMemoryBanStore{records: make(map[string]BanRecord)}
}

func (s *InMemoryBanStore) ListByParticipant(_ context.Context, userID string) ([]BanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	record.DecrementedFor = slices.Clone(record.DecrementedFor)
	return []BanRecord{record}, nil
}

func (s *InMemoryBanStore) Upsert(_ context.Context, record BanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.DecrementedFor = slices.Clone(record.DecrementedFor)
	s.records[record.Participant] = record
	return nil
}
