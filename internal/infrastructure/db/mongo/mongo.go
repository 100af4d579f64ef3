// Package mongo implements the record store on a MongoDB database.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching MongoDB and the collection that
// holds the record documents.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Open connects to MongoDB, verifies the connection with a ping and returns a
// RecordStore over cfg.Database.cfg.Collection.
func Open(ctx context.Context, cfg Config) (*RecordStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("accounts-api").
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return NewRecordStore(client.Database(cfg.Database), cfg.Collection), nil
}

// Close disconnects the underlying client.
func (s *RecordStore) Close(ctx context.Context) error {
	return s.coll.Database().Client().Disconnect(ctx)
}
