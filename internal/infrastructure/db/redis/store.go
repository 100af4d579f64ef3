package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/codec"
)

const defaultPrefix = "accounts:"

// RecordStore keeps every collection as a single JSON array under one key.
// Key format: <prefix><collection>
type RecordStore struct {
	client *redis.Client
	prefix string
}

// NewRecordStore wraps client. An empty prefix falls back to "accounts:".
func NewRecordStore(client *redis.Client, prefix string) *RecordStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RecordStore{client: client, prefix: prefix}
}

func (s *RecordStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%w: redis get %s: %v", domain.ErrStorageUnavailable, collection, err)
	}
	return codec.DecodeRecords(data)
}

func (s *RecordStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	data, err := codec.EncodeRecords(records)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", domain.ErrStorageUnavailable, collection, err)
	}
	return nil
}

func (s *RecordStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RecordStore) key(collection string) string {
	return s.prefix + collection
}
