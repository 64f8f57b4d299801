package tokenstore

import (
	"context"
	"errors"
	"sync"
)

// DefaultKey is the storage key the session token lives under.
const DefaultKey = "token"

var ErrKeyRequired = errors.New("storage key is required")

// Store holds at most one token under a fixed key. Setting an empty token
// removes the entry.
type Store interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, token string) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	token string
	found bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.found, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.found = token != ""
	return nil
}
