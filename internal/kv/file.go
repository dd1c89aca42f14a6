package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileStore implements Store with one file per key inside a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at the given directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the file for key. A missing file means the key was never written.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Put writes the file for key. Creates the directory if it doesn't exist.
func (s *FileStore) Put(_ context.Context, key, value string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, key), []byte(value), 0644)
}
