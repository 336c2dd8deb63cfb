// Package storage persists generated images as individual files in the
// configured output directory. There is no database or index; discovery is
// by directory listing.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes and reads images under a single base directory.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath, creating the
// directory when absent.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// BasePath returns the configured output directory.
func (s *FileStore) BasePath() string {
	return s.basePath
}

// Write persists data under the given filename and returns the full path.
// Filenames are validated to prevent directory traversal.
func (s *FileStore) Write(filename string, data []byte) (string, error) {
	clean, err := sanitizeName(filename)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, clean)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return fullPath, nil
}

// Read loads a previously written image by filename.
func (s *FileStore) Read(filename string) ([]byte, error) {
	clean, err := sanitizeName(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.basePath, clean))
	if err != nil {
		return nil, fmt.Errorf("storage: read file: %w", err)
	}
	return data, nil
}

// List returns the filenames currently present in the output directory.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("storage: list files: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// sanitizeName rejects anything that would escape the base directory.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("storage: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || cleaned == "." || cleaned == ".." {
		return "", errors.New("storage: invalid filename")
	}
	return cleaned, nil
}
