package store

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/etnz/stockkeeper"
)

// Memory keeps keys in memory. It is used for dry runs and tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemory returns an empty memory store.
func NewMemory() *Memory { return &Memory{entries: make(map[string]string)} }

func (s *Memory) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("%q: %w", key, stockkeeper.ErrNotFound)
	}
	return v, nil
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Entries returns a copy of all the entries.
func (s *Memory) Entries() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.entries)
}

func (s *Memory) Close() error { return nil }
