package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps a flat key/value JSON object on disk, one entry per
// storage key, so several tools can share a single file.
type FileStore struct {
	path string
	key  string

	mu     sync.Mutex
	values map[string]string
}

func NewFileStore(path, key string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("token store file path is required")
	}
	if key == "" {
		return nil, ErrKeyRequired
	}

	s := &FileStore{
		path:   path,
		key:    key,
		values: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another process may have written the file since the last read.
	if err := s.load(); err != nil {
		return "", false, err
	}
	tok, ok := s.values[s.key]
	return tok, ok, nil
}

func (s *FileStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	if token == "" {
		delete(s.values, s.key)
	} else {
		s.values[s.key] = token
	}
	return s.persistLocked()
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.values = make(map[string]string)
			return nil
		}
		return fmt.Errorf("read token store file: %w", err)
	}
	if len(b) == 0 {
		s.values = make(map[string]string)
		return nil
	}

	decoded := make(map[string]string)
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("decode token store file: %w", err)
	}
	s.values = decoded
	return nil
}

func (s *FileStore) persistLocked() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token store file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir token store dir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write token store file: %w", err)
	}
	return nil
}
