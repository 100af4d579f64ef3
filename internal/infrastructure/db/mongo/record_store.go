package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

const defaultCollection = "record_collections"

// RecordStore keeps every logical collection as one MongoDB document keyed by
// the collection name, so a save replaces the whole collection atomically.
type RecordStore struct {
	coll *mongo.Collection
}

// NewRecordStore stores collections in db.<name>. An empty name falls back to
// "record_collections".
func NewRecordStore(db *mongo.Database, name string) *RecordStore {
	if name == "" {
		name = defaultCollection
	}
	return &RecordStore{coll: db.Collection(name)}
}

type collectionDocument struct {
	Name    string   `bson:"_id"`
	Records []bson.D `bson:"records"`
}

func (s *RecordStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var doc collectionDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%w: find %s: %v", domain.ErrStorageUnavailable, collection, err)
	}
	return fromDocuments(doc.Records)
}

func (s *RecordStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	docs, err := toDocuments(records)
	if err != nil {
		return err
	}

	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": collection},
		collectionDocument{Name: collection, Records: docs},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: replace %s: %v", domain.ErrStorageUnavailable, collection, err)
	}
	return nil
}

func (s *RecordStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: mongo ping: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func toDocuments(records []json.RawMessage) ([]bson.D, error) {
	docs := make([]bson.D, 0, len(records))
	for i, rec := range records {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(rec, false, &doc); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrCorruptData, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func fromDocuments(docs []bson.D) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, len(docs))
	for i, doc := range docs {
		data, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrCorruptData, i, err)
		}
		records = append(records, data)
	}
	return records, nil
}
