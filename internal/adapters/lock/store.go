// Package lock persists artifact fingerprints between configuration passes.
package lock

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.ArtifactLock
}

// NewStore creates an unbound Store. Call Open before use.
func NewStore() *Store {
	return &Store{cache: make(map[string]domain.ArtifactLock)}
}

// Open binds the store to path and loads its records. A missing file is an empty store.
func (s *Store) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = filepath.Clean(path)
	s.cache = make(map[string]domain.ArtifactLock)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "path", s.path)
	}
	return nil
}

// Get retrieves the lock for key.
func (s *Store) Get(key string) (*domain.ArtifactLock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lock, ok := s.cache[key]
	if !ok {
		return nil, nil
	}
	return &lock, nil
}

// Put stores the lock and writes the file.
func (s *Store) Put(lock domain.ArtifactLock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return zerr.With(zerr.New("lock store is not open"), "key", lock.Key)
	}
	s.cache[lock.Key] = lock

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "path", s.path)
	}
	return nil
}
