package ports

import "go.trai.ch/buildsrc/internal/core/domain"

// LockStore persists artifact fingerprints between configuration passes.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LockStore interface {
	// Open binds the store to the file at path, loading existing records.
	Open(path string) error

	// Get retrieves the lock for key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.ArtifactLock, error)

	// Put stores the lock.
	Put(lock domain.ArtifactLock) error
}
