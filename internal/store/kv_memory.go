package store

import (
	"context"
	"sync"
)

// memoryKV keeps documents for the lifetime of the process only.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (s *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryKV) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
