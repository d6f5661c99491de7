package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appsitemeta "github.com/ngkart/backend/internal/application/sitemeta"
)

var _ appsitemeta.ObjectStorage = (*LocalObjectStorage)(nil)

// LocalObjectStorage writes uploads to a directory on disk. Development
// only; production deployments use the S3 driver.
type LocalObjectStorage struct {
	dir     string
	baseURL string
}

// NewLocalObjectStorage creates a filesystem-backed object store rooted at dir
func NewLocalObjectStorage(dir, baseURL string) (*LocalObjectStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalObjectStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Put stores the object under dir and returns its public URL
func (s *LocalObjectStorage) Put(_ context.Context, key string, body io.Reader, _ string, _ int64) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	target, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write object file: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object file
func (s *LocalObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object file: %w", err)
	}
	return nil
}

// resolve maps a key to a path under dir, rejecting traversal attempts
func (s *LocalObjectStorage) resolve(key string) (string, error) {
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	base, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve object path: %w", err)
	}
	if abs != base && !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", errors.New("invalid storage key")
	}
	return target, nil
}
