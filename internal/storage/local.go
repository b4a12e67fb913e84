package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists uploaded files and returns opaque keys.
type Store interface {
	Save(category, fileName string, data []byte) (string, error)
	Read(key string) ([]byte, error)
	Remove(key string) error
}

type localStore struct {
	baseDir string
}

// NewLocalStore builds a filesystem-backed store rooted at baseDir.
func NewLocalStore(baseDir string) (Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStore{baseDir: baseDir}, nil
}

// Save writes data under a generated key. The original file name only
// contributes its extension; the key is safe to store and serve.
func (s *localStore) Save(category, fileName string, data []byte) (string, error) {
	key := filepath.Join(category, uuid.NewString()+filepath.Ext(fileName))
	path := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return key, nil
}

func (s *localStore) Read(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, key))
}

func (s *localStore) Remove(key string) error {
	return os.Remove(filepath.Join(s.baseDir, key))
}
