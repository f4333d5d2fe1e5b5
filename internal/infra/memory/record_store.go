package memory

import (
	"context"
	"sync"

	"countdown-quiz/internal/domain"
)

// RecordStore is an in-memory implementation of app.RecordStorage.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string][]byte),
	}
}

func (s *RecordStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[name]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *RecordStore) Save(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[name] = append([]byte(nil), data...)
	return nil
}

func (s *RecordStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, name)
	return nil
}
