package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local writes images under a directory served as static files
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	return &Local{dir: dir}, nil
}

func (l *Local) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	dst, err := os.Create(filepath.Join(l.dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create image file, %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file, %w", err)
	}

	return path.Join(path.Base(l.dir), key), nil
}

func (l *Local) Delete(ctx context.Context, ref string) error {
	key := path.Base(ref)
	if key == "." || key == "/" || strings.Contains(key, "..") {
		return fmt.Errorf("invalid image reference %q", ref)
	}

	return os.Remove(filepath.Join(l.dir, key))
}

func (l *Local) URL(ref string) string {
	return "/" + ref
}
