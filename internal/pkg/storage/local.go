package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSource reads objects from a directory on the local file system.
type LocalSource struct {
	basePath string
}

// NewLocalSource creates a source rooted at basePath.
func NewLocalSource(basePath string) *LocalSource {
	return &LocalSource{basePath: basePath}
}

// Get opens the file stored under key.
func (s *LocalSource) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath := filepath.Join(s.basePath, filepath.Clean("/"+key))
	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func splitPath(p string) (dir, key string) {
	return filepath.Dir(p), filepath.Base(p)
}
