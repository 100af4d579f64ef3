// Package memory implements an in-process record store. Collections are kept
// in their encoded form so callers never share slices with the store.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/accesshub/accounts-api/internal/infrastructure/db/codec"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

func New() *Store {
	return &Store{collections: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data := s.collections[collection]
	s.mu.RUnlock()

	return codec.DecodeRecords(data)
}

func (s *Store) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := codec.EncodeRecords(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.collections[collection] = data
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }
