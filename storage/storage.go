// Package storage persists article images and hands back stable
// reference paths
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/viper"
)

// Store is the image collaborator: given a blob and its declared
// extension it returns a reference that can be stored on the article.
// Deletes are best-effort, callers log failures and move on
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string) string
}

// New picks the store implementation from the config
func New() (Store, error) {
	switch viper.GetString("storage.type") {
	case "local":
		return NewLocal(viper.GetString("storage.local_path"))
	case "s3":
		return NewS3()
	}

	return nil, errors.New("invalid storage type provided")
}
