package ports

import (
	"context"
	"encoding/json"
)

// RecordStore persists named collections of JSON records.
//
// Load returns the records in stored order; a collection that was never saved
// loads as empty. Save replaces the whole collection so that concurrent readers
// observe either the previous or the new contents. Implementations report
// domain.ErrStorageUnavailable when the medium cannot be reached and
// domain.ErrCorruptData when stored content is not a JSON array of objects.
type RecordStore interface {
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)
	Save(ctx context.Context, collection string, records []json.RawMessage) error
	Ping(ctx context.Context) error
}
