package store

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() Store {
	return &memoryStore{
		records: make(map[string]Record),
	}
}

func (s *memoryStore) Create(ctx context.Context, rec Record) (*Record, error) {
	rec = prepareCreate(rec)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exist := s.records[rec.ID]; exist {
		return nil, ErrRecordExists
	}
	s.records[rec.ID] = rec
	return &rec, nil
}

func (s *memoryStore) Update(ctx context.Context, id string, patch RecordPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exist := s.records[id]
	if !exist {
		return ErrRecordNotFound
	}
	patch.Apply(&rec)
	rec.UpdatedAt = time.Now().Unix()
	s.records[id] = rec
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exist := s.records[id]
	if !exist {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}
