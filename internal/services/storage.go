package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempStorage writes uploads to uniquely named files so concurrent
// extractions never share a path.
type TempStorage struct {
	dir string
}

// NewTempStorage uses os.TempDir when dir is empty.
func NewTempStorage(dir string) *TempStorage {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempStorage{dir: dir}
}

func (s *TempStorage) Dir() string {
	return s.dir
}

// Save writes data to <dir>/<uuid><ext> and returns the path.
func (s *TempStorage) Save(ext string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	path := filepath.Join(s.dir, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	return path, nil
}

// Remove deletes path. A file that is already gone is not an error.
func (s *TempStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete temp file: %w", err)
	}
	return nil
}
