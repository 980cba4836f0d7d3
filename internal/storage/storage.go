package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// BlobStore is the system edge for CV file content. The engine only keeps
// the key it hands back.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Remove(ctx context.Context, key string) error
}

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, r)
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
