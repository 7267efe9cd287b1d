// Package blob provides the key-value persistence used for analyzer state
// (version metadata and pattern tables serialized as JSON). Writes are best
// effort with no locking; the stored state is effectively static
// configuration.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists opaque blobs by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

const DefaultRoot = "data/models"

type fsStore struct {
	root string
}

// NewFSStore returns a Store writing <root>/<key>.json files. An empty root
// falls back to DefaultRoot.
func NewFSStore(root string) Store {
	if root == "" {
		root = DefaultRoot
	}
	return &fsStore{root: root}
}

func (s *fsStore) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

func (s *fsStore) Put(_ context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("blob key cannot be empty")
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create blob root: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	return nil
}

func (s *fsStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", key, err)
	}
	return data, nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Put(_ context.Context, key string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[key] = cp
	return nil
}

func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %q not found", key)
	}
	return data, nil
}
