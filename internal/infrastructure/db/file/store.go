// Package file implements the record store on top of one JSON file per
// collection inside a data directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/codec"
)

// Store keeps each collection in <dir>/<collection>.json. Saves go through a
// temp file and a rename, so readers never see a half-written collection.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a Store rooted at dir, creating the directory when missing.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", domain.ErrStorageUnavailable, err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Load reads the collection file. A missing file is an empty collection.
func (s *Store) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(collection)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorageUnavailable, collection, err)
	}
	return codec.DecodeRecords(data)
}

// Save replaces the collection file.
func (s *Store) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(collection)
	if err != nil {
		return err
	}
	data, err := codec.EncodeRecords(records)
	if err != nil {
		return err
	}

	lock := s.lock(collection)
	lock.Lock()
	defer lock.Unlock()

	if err := writeAtomic(s.dir, path, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorageUnavailable, collection, err)
	}
	return nil
}

// Ping checks that the data directory is still there.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrStorageUnavailable, s.dir)
	}
	return nil
}

func (s *Store) path(collection string) (string, error) {
	if collection == "" || strings.ContainsAny(collection, `/\.`) {
		return "", fmt.Errorf("%w: invalid collection name %q", domain.ErrStorageUnavailable, collection)
	}
	return filepath.Join(s.dir, collection+".json"), nil
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func writeAtomic(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
